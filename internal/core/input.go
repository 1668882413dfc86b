package core

import "strings"

// Key codes follow the browser KeyboardEvent.code naming so game code reads
// the same regardless of which host delivers the events.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeySpace      = "Space"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyTab        = "Tab"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyShiftLeft  = "ShiftLeft"
	KeyShiftRight = "ShiftRight"
)

// Letter returns the code of a letter key ("KeyA".."KeyZ").
// The second result is false for runes that are not ASCII letters.
func Letter(r rune) (string, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + strings.ToUpper(string(r)), true
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r), true
	}
	return "", false
}

// Digit returns the code of a top-row digit key ("Digit0".."Digit9").
func Digit(r rune) (string, bool) {
	if r < '0' || r > '9' {
		return "", false
	}
	return "Digit" + string(r), true
}

// DigitValue returns the numeric value of a digit code, or -1.
func DigitValue(code string) int {
	if len(code) != len("Digit0") || !strings.HasPrefix(code, "Digit") {
		return -1
	}
	d := code[len(code)-1]
	if d < '0' || d > '9' {
		return -1
	}
	return int(d - '0')
}

// MouseButton identifies a pointer button using browser numbering.
type MouseButton uint8

const (
	MouseLeft   MouseButton = 0
	MouseMiddle MouseButton = 1
	MouseRight  MouseButton = 2
)

// String returns a human-readable name for the button.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	default:
		return "Unknown"
	}
}
