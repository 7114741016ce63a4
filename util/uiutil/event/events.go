// Input events handled by the ui nodes.
package event

import (
	"image"
)

type Handle bool

const (
	NotHandled Handle = false
	Handled    Handle = true
)

//----------

type MouseDown struct {
	Point  image.Point
	Button MouseButton
	Mods   KeyModifiers
}

type MouseUp struct {
	Point  image.Point
	Button MouseButton
	Mods   KeyModifiers
}

type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

//----------

// Rune is zero for keys without text (arrows, home, ...).
type KeyDown struct {
	Point  image.Point
	KeySym KeySym
	Mods   KeyModifiers
	Rune   rune
}

//----------

type KeyModifiers uint8

func (km KeyModifiers) HasAny(m KeyModifiers) bool {
	return km&m != 0
}

const (
	ModShift KeyModifiers = 1 << iota
	ModCtrl
	ModAlt

	ModNone KeyModifiers = 0
)

//----------

type KeySym int

const (
	KSymNone KeySym = iota // see KeyDown.Rune

	KSymReturn
	KSymBackspace
	KSymDelete
	KSymTab
	KSymHome
	KSymEnd
	KSymLeft
	KSymRight
	KSymUp
	KSymDown
)
