package core

// Color is a logical palette entry for a screen cell. Games pick colours
// by meaning; the platform decides how each one looks.
type Color uint8

// The sixteen terminal colours.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// Extended entries used by the board renderer: orange for warnings, gray
// for hidden cells, dark gray for fog, a reverse-video cursor and a white
// on red alert.
const (
	ColorOrange Color = iota + ColorBrightWhite + 1
	ColorGray
	ColorDarkGray
	ColorCursor
	ColorAlert
)
