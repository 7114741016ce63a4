package fontutil

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type FontFace struct {
	Face    font.Face
	Size    float64 // in points, readonly (zero if unknown)
	Metrics font.Metrics

	lineHeight   fixed.Int26_6
	baselineY    fixed.Int26_6
	avgCharWidth int
	monospaced   bool
}

func NewFontFace(face font.Face, tabWidth int) *FontFace {
	face = NewFaceRunes(face, tabWidth)
	face = NewFaceCache(face)

	ff := &FontFace{Face: face}
	ff.Metrics = face.Metrics()

	ff.lineHeight = max(
		ff.Metrics.Ascent+ff.Metrics.Descent,
		ff.Metrics.Height)
	ff.baselineY = min(
		ff.Metrics.Ascent,
		ff.lineHeight-ff.Metrics.Descent)

	ff.measure()
	return ff
}

func (ff *FontFace) measure() {
	sum := fixed.Int26_6(0)
	n := 0
	ff.monospaced = true
	first := fixed.Int26_6(-1)
	for ru := rune(0x20); ru < 0x7f; ru++ {
		adv, ok := ff.Face.GlyphAdvance(ru)
		if !ok {
			continue
		}
		sum += adv
		n++
		if first < 0 {
			first = adv
		} else if adv != first {
			ff.monospaced = false
		}
	}
	if n > 0 {
		ff.avgCharWidth = (sum / fixed.Int26_6(n)).Round()
	}
}

//----------

func (ff *FontFace) LineHeight() fixed.Int26_6 {
	return ff.lineHeight
}
func (ff *FontFace) LineHeightInt() int {
	return ff.LineHeight().Ceil()
}

func (ff *FontFace) BaseLine() fixed.Point26_6 {
	return fixed.Point26_6{X: 0, Y: ff.baselineY}
}

// Average advance of the printable ascii runes, in pixels.
func (ff *FontFace) AvgCharWidth() int {
	return ff.avgCharWidth
}

func (ff *FontFace) IsMonospaced() bool {
	return ff.monospaced
}

func (ff *FontFace) RuneAdvance(ru rune) fixed.Int26_6 {
	adv, ok := ff.Face.GlyphAdvance(ru)
	if !ok {
		return 0
	}
	return adv
}

func (ff *FontFace) StringAdvance(s string) fixed.Int26_6 {
	return font.MeasureString(ff.Face, s)
}
