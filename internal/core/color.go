package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorBrown
	ColorPink
	ColorPurple
	ColorGold
	ColorSky
	ColorBlack
)

// Palette lists every named color, in declaration order.
func Palette() []Color {
	out := make([]Color, 0, int(ColorBlack)+1)
	for c := ColorDefault; c <= ColorBlack; c++ {
		out = append(out, c)
	}
	return out
}
