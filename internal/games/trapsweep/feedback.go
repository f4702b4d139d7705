package trapsweep

import (
	"fmt"

	"github.com/vovakirdan/trapsweep/internal/core"
	"github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"
)

const (
	messageTicks = 90 // ~3s at 30 ticks per second
	shakeTicks   = 12
	nudgeTicks   = 2

	floodNote  = 2  // reveals in one step that earn a "+N cells" note
	floodNudge = 12 // reveals in one step that nudge the board
)

// feedback turns engine notifications into status-line messages and a
// short board shake, and keeps the latest board copy for drawing. It
// implements engine.Presenter and engine.Renderer.
type feedback struct {
	message string
	color   core.Color
	ttl     int
	shake   int
	said    bool // a message was set since the last step

	revealed int         // cells uncovered since the last step
	latest   *board.Grid // last board handed over by the engine
}

func (f *feedback) CellRevealed(board.Cell) {
	f.revealed++
}

func (f *feedback) Explosion(c board.Cell) {
	f.say(fmt.Sprintf("BOOM! Trap at %s", c.Pos), core.ColorAlert)
	f.shake = shakeTicks
}

func (f *feedback) LevelComplete() {
	f.say("Level cleared!", core.ColorBrightGreen)
}

func (f *feedback) FlagToggled(c board.Cell) {
	if c.Flagged {
		f.say(fmt.Sprintf("Flag placed at %s", c.Pos), core.ColorYellow)
	} else {
		f.say(fmt.Sprintf("Flag removed from %s", c.Pos), core.ColorGray)
	}
}

func (f *feedback) BoardChanged(g *board.Grid) {
	f.latest = g
}

// say replaces the status message.
func (f *feedback) say(msg string, c core.Color) {
	f.message = msg
	f.color = c
	f.ttl = messageTicks
	f.said = true
}

// step ages the message and shake, then reports the cells uncovered since
// the last step: a "+N cells" note unless something else was said, and a
// nudge for big floods.
func (f *feedback) step() {
	if f.ttl > 0 {
		f.ttl--
		if f.ttl == 0 {
			f.message = ""
		}
	}
	if f.shake > 0 {
		f.shake--
	}

	if f.revealed >= floodNote && !f.said {
		f.say(fmt.Sprintf("+%d cells", f.revealed), core.ColorCyan)
	}
	if f.revealed >= floodNudge {
		f.shake = max(f.shake, nudgeTicks)
	}
	f.revealed = 0
	f.said = false
}

// shakeOffset returns the horizontal board jitter for this frame.
func (f *feedback) shakeOffset() int {
	if f.shake == 0 {
		return 0
	}
	if f.shake%2 == 0 {
		return 1
	}
	return -1
}

func (f *feedback) reset() {
	*f = feedback{}
}
