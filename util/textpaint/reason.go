package textpaint

import "fmt"

type Reason int

const (
	Internal Reason = iota
	Configuration
	KeyStroke
	MouseButton
	Selection
	TextChange
)

func (r Reason) String() string {
	switch r {
	case Internal:
		return "internal"
	case Configuration:
		return "configuration"
	case KeyStroke:
		return "keystroke"
	case MouseButton:
		return "mousebutton"
	case Selection:
		return "selection"
	case TextChange:
		return "textchange"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}
