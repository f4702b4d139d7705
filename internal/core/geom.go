// Package core provides fundamental types and utilities for the trapsweep platform.
// It has no Bubble Tea dependency so game logic stays pure and testable.
package core

import "cmp"

// Rect is an axis-aligned area of the screen buffer. X and Y are the
// top-left corner.
type Rect struct {
	X, Y, W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right and Bottom are exclusive edges.
func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks r by n cells on every side, never below zero size.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(0, r.W-2*n), H: max(0, r.H-2*n)}
}

// ScrollOffset picks the first visible index of a view-sized window over
// total items so that focus stays visible, centred where the edges allow.
func ScrollOffset(focus, view, total int) int {
	if view <= 0 || total <= view {
		return 0
	}
	return Clamp(focus-view/2, 0, total-view)
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
