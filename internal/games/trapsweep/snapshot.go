package trapsweep

import "github.com/vovakirdan/trapsweep/internal/games/trapsweep/board"

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Depth     int
	State     string // engine state, or "paused_small_window"
	Score     int
	RunScore  int
	Flags     int
	Traps     int
	Revealed  int
	Cursor    board.Coord
	Hero      board.Coord
	Shards    int
	Orbs      int
	Layout    []string // cell contents, see board.Grid.Layout
	Uncovered []string // '1' where a cell is revealed, 'F' where flagged
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := g.eng.State().String()
	if g.tooSmall {
		state = "paused_small_window"
	}

	grid := g.eng.Snapshot()
	snap := Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		Depth:    g.depth,
		State:    state,
		Score:    g.roundScore(),
		RunScore: g.runScore,
		Flags:    g.eng.RemainingFlags(),
		Traps:    g.eng.TrapCount(),
		Revealed: g.eng.Stats().Revealed,
		Cursor:   g.cursor,
		Orbs:     g.shrine.orbs,
		Layout:   grid.Layout(),
	}
	if g.hero != nil && g.mode == ModeCrawl {
		snap.Hero = g.hero.Pos()
		snap.Shards = g.hero.Shards()
	}

	snap.Uncovered = make([]string, grid.Height())
	for y := range snap.Uncovered {
		row := make([]rune, grid.Width())
		for x := range row {
			cell := grid.Cell(board.C(x, y))
			switch {
			case cell.Flagged:
				row[x] = 'F'
			case cell.Revealed:
				row[x] = '1'
			default:
				row[x] = '0'
			}
		}
		snap.Uncovered[y] = string(row)
	}
	return snap
}
