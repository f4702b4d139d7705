package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trapsweep/internal/core"
)

type swatch struct {
	fg, bg  string // ANSI 256 codes, empty for the terminal default
	bold    bool
	reverse bool
}

var palette = map[core.Color]swatch{
	core.ColorRed:           {fg: "1"},
	core.ColorGreen:         {fg: "2"},
	core.ColorYellow:        {fg: "3"},
	core.ColorBlue:          {fg: "4"},
	core.ColorMagenta:       {fg: "5"},
	core.ColorCyan:          {fg: "6"},
	core.ColorWhite:         {fg: "7"},
	core.ColorBrightRed:     {fg: "9"},
	core.ColorBrightGreen:   {fg: "10"},
	core.ColorBrightYellow:  {fg: "11"},
	core.ColorBrightBlue:    {fg: "12"},
	core.ColorBrightMagenta: {fg: "13"},
	core.ColorBrightCyan:    {fg: "14"},
	core.ColorBrightWhite:   {fg: "15"},
	core.ColorOrange:        {fg: "208"},
	core.ColorGray:          {fg: "245"},
	core.ColorDarkGray:      {fg: "238"},
	core.ColorCursor:        {reverse: true},
	core.ColorAlert:         {fg: "15", bg: "1", bold: true},
}

var cellStyles = buildCellStyles()

func buildCellStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(palette)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, sw := range palette {
		st := lipgloss.NewStyle().Bold(sw.bold).Reverse(sw.reverse)
		if sw.fg != "" {
			st = st.Foreground(lipgloss.Color(sw.fg))
		}
		if sw.bg != "" {
			st = st.Background(lipgloss.Color(sw.bg))
		}
		styles[c] = st
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := cellStyles[c]; ok {
		return st
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen turns the screen buffer into styled terminal text, one
// escape sequence per run of same-coloured cells.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run = run[:0]
		var current core.Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current && len(run) > 0 {
				sb.WriteString(styleFor(current).Render(string(run)))
				run = run[:0]
			}
			current = cell.Color
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(styleFor(current).Render(string(run)))
		}
	}
	return sb.String()
}
