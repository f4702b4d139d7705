package trapsweep

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/engine"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/hero"
)

// Glyphs for board cells.
const (
	GlyphHidden = '░'
	GlyphEmpty  = '·'
	GlyphFlag   = 'F'
	GlyphTrap   = '*'
	GlyphBoom   = 'X'
	GlyphPillar = '█'
	GlyphShrine = 'Ω'
	GlyphCurse  = '¤'
	GlyphHero   = '@'
	GlyphShard  = '◆'
)

var numberColors = [9]core.Color{
	core.ColorDefault,
	core.ColorBrightBlue,
	core.ColorGreen,
	core.ColorBrightRed,
	core.ColorBlue,
	core.ColorRed,
	core.ColorCyan,
	core.ColorMagenta,
	core.ColorGray,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	g.renderBoard(dst)
	g.renderFooter(dst)

	switch {
	case g.roundEnded && g.summary.Outcome == engine.StateWon.String():
		g.renderOverlay(dst, fmt.Sprintf("Level %d cleared! +%d", g.depth+1, g.summary.Score), "Enter or R: descend")
	case g.roundEnded:
		g.renderOverlay(dst, fmt.Sprintf("Caught by a trap at depth %d", g.depth+1), fmt.Sprintf("Run score %d  -  R: new run", g.runScore))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	flags := g.eng.RemainingFlags()
	level := "Fixed"
	if g.difficulty.IsEnabled() {
		level = fmt.Sprintf("Depth %d", g.depth+1)
	}
	hud := fmt.Sprintf(" %s  %s  Flags %d/%d  Score %d  Run %d  %s",
		g.Title(), level, flags, g.eng.TrapCount(), g.roundScore(), g.runScore, formatDuration(g.clock()))
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)

	if g.mode == ModeCrawl && g.hero != nil {
		p := g.hero.Profile()
		info := p.Name
		if p.Spell != hero.SpellNone {
			casts := "∞"
			if c := g.hero.Casts(); c >= 0 {
				casts = fmt.Sprint(c)
			}
			info += fmt.Sprintf(" [%s x%s]", p.Spell, casts)
		}
		if p.UsesShards {
			info += fmt.Sprintf(" ◆%d", g.hero.Shards())
		}
		if n := g.hero.InvincibleSteps(); n > 0 {
			info += fmt.Sprintf(" ward:%d", n)
		}
		if g.shrine.placed {
			info += fmt.Sprintf(" orbs:%d", g.shrine.orbs)
		}
		x := dst.Width() - utf8.RuneCountInString(info) - 1
		dst.DrawTextColor(max(x, utf8.RuneCountInString(hud)+1), 0, info, core.ColorBrightCyan)
	}

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// clock is the round time, frozen once the round ends.
func (g *Game) clock() time.Duration {
	if g.roundEnded {
		return g.summary.Duration
	}
	return g.elapsed()
}

func formatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// focus is the cell the viewport follows.
func (g *Game) focus() board.Coord {
	if g.mode == ModeCrawl && g.hero != nil && !g.shrine.active {
		return g.hero.Pos()
	}
	return g.cursor
}

// viewport returns the board window that fits into area and its frame.
func (g *Game) viewport(area core.Rect, w, h int) (frame core.Rect, offX, offY, viewW, viewH int) {
	viewW = max(1, min(w, (area.W-3)/cellWidth))
	viewH = max(1, min(h, area.H-2))
	frameW := viewW*cellWidth + 3
	frameH := viewH + 2
	frame = core.NewRect(area.X+(area.W-frameW)/2, area.Y+(area.H-frameH)/2, frameW, frameH)

	f := g.focus()
	offX = core.ScrollOffset(f.X, viewW, w)
	offY = core.ScrollOffset(f.Y, viewH, h)
	return frame, offX, offY, viewW, viewH
}

func (g *Game) renderBoard(dst *core.Screen) {
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerHeight)
	snap := g.fx.latest
	if snap == nil {
		snap = g.eng.Snapshot()
	}
	frame, offX, offY, viewW, viewH := g.viewport(area, snap.Width(), snap.Height())
	frame.X += g.fx.shakeOffset()

	border := core.ColorGray
	if g.shrine.active {
		border = core.ColorBrightMagenta
	}
	dst.DrawBox(frame, border)

	for vy := 0; vy < viewH; vy++ {
		for vx := 0; vx < viewW; vx++ {
			c := board.C(offX+vx, offY+vy)
			r, col := g.cellLook(snap.Cell(c))
			dst.SetColor(frame.X+2+vx*cellWidth, frame.Y+1+vy, r, col)
		}
	}
}

// cellLook picks the glyph and colour of one board cell, including the
// hero, shards, cursor, hint and fog.
func (g *Game) cellLook(cell board.Cell) (rune, core.Color) {
	r, col := baseLook(cell)

	if g.hintTTL > 0 && cell.Pos == g.hint.Pos && cell.Hidden() {
		col = core.ColorBrightRed
		if g.hint.Safe {
			col = core.ColorBrightGreen
		}
	}

	if g.mode == ModeCrawl && g.hero != nil {
		if g.shards[cell.Pos] && cell.Hidden() {
			r, col = GlyphShard, core.ColorBrightCyan
		}
		if cell.Pos.Chebyshev(g.hero.Pos()) > g.hero.Config().LightRadius {
			col = core.ColorDarkGray
		}
		if cell.Pos == g.hero.Pos() {
			r, col = GlyphHero, core.ColorBrightWhite
			if cell.Exploded {
				col = core.ColorAlert
			}
		}
	}

	if cell.Pos == g.cursor && !g.roundEnded {
		col = core.ColorCursor
	}
	return r, col
}

func baseLook(cell board.Cell) (rune, core.Color) {
	switch {
	case cell.Kind == board.KindPillar:
		return GlyphPillar, core.ColorWhite
	case cell.Kind == board.KindShrine:
		return GlyphShrine, core.ColorBrightMagenta
	case cell.Kind == board.KindCurse:
		return GlyphCurse, core.ColorMagenta
	case cell.Exploded:
		return GlyphBoom, core.ColorAlert
	case cell.Flagged:
		if cell.Revealed && cell.IsTrap() {
			return GlyphTrap, core.ColorYellow
		}
		return GlyphFlag, core.ColorBrightYellow
	case !cell.Revealed:
		return GlyphHidden, core.ColorGray
	case cell.IsTrap():
		return GlyphTrap, core.ColorRed
	case cell.Kind == board.KindNumber:
		return rune('0' + cell.Number), numberColors[cell.Number]
	default:
		return GlyphEmpty, core.ColorDarkGray
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if g.fx.message != "" {
		dst.DrawTextColor(1, y, g.fx.message, g.fx.color)
		return
	}
	help := "space reveal  f flag  ? hint  p pause  q quit"
	if g.mode == ModeCrawl {
		help = "wasd walk  arrows aim  f flag  c cast  e shrine  ? hint  q quit"
	}
	dst.DrawTextColor(1, y, help, core.ColorGray)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-5)/2, width, 5)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColor(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCenteredColor(box.Y+3, line2, core.ColorGray)
}
