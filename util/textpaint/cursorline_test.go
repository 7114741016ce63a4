package textpaint_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/jmigpin/textdeco/util/testutil"
	"github.com/jmigpin/textdeco/util/textdoc"
	"github.com/jmigpin/textdeco/util/textpaint"
)

func hasRect(rs []image.Rectangle, r image.Rectangle) bool {
	for _, r2 := range rs {
		if r2 == r {
			return true
		}
	}
	return false
}

//----------

func TestCursorLineTyping(t *testing.T) {
	v, doc, ui := newTestViewer("abc\ndef\n")
	w := v.Widget()
	v.SetCaretOffset(5, false)
	ui.RunPending()

	m := textpaint.NewPaintManager(v)
	cl := textpaint.NewCursorLinePainter(v)
	m.AddPainter(cl)

	d := w.Damage()
	if len(d) != 1 || d[0] != image.Rect(0, 13, 400, 26) {
		t.Fatal(d)
	}
	cat := m.PositionManager().Category()
	ps, _ := doc.Positions(cat)
	if len(ps) != 1 || *ps[0] != (textdoc.Position{Offset: 4, Length: 4}) {
		t.Fatal(ps)
	}

	// no paint while the events are handled
	ui.Painter = nil
	ui.RunPending()

	rp := &recPainter{}
	m.AddPainter(rp)
	_ = doc.Insert(4, "X")
	if *ps[0] != (textdoc.Position{Offset: 4, Length: 5}) {
		t.Fatal(ps[0])
	}
	if w.CaretOffset() != 6 {
		t.Fatal(w.CaretOffset())
	}
	n := len(w.Damage())
	ui.RunPending()
	if rp.count(textpaint.TextChange) != 1 {
		t.Fatal(rp.reasons)
	}
	if len(w.Damage()) != n {
		t.Fatal("redundant redraw", w.Damage())
	}
}

func TestCursorLineRepeatedPaint(t *testing.T) {
	v, _, ui := newTestViewer("abc\ndef\n")
	w := v.Widget()
	m := textpaint.NewPaintManager(v)
	cl := textpaint.NewCursorLinePainter(v)
	m.AddPainter(cl)
	ui.RunPending()

	w.SetCaretOffset(5) // widget only, no events
	cl.Paint(textpaint.Selection)
	d := w.Damage()
	// old line and new line
	if !hasRect(d, image.Rect(0, 0, 400, 13)) || !hasRect(d, image.Rect(0, 13, 400, 26)) {
		t.Fatal(d)
	}
	ui.RunPending()
	cl.Paint(textpaint.Selection)
	cl.Paint(textpaint.Selection)
	if d := w.Damage(); len(d) > 1 {
		t.Fatal(d)
	}
}

func TestCursorLineBackground(t *testing.T) {
	v, _, ui := newTestViewer("abc\ndef\n")
	m := textpaint.NewPaintManager(v)
	cl := textpaint.NewCursorLinePainter(v)
	hl := color.RGBA{255, 0, 0, 255}
	cl.SetHighlightColor(hl)
	m.AddPainter(cl)
	v.SetCaretOffset(5, false)
	ui.RunPending()

	img := ui.Image()
	if !testutil.SameColor(img.At(300, 15), hl) {
		t.Fatal(img.At(300, 15))
	}
	if testutil.SameColor(img.At(300, 2), hl) {
		t.Fatal(img.At(300, 2))
	}

	// multi-line selection: no highlight
	v.SetSelection(1, 6)
	v.Widget().Redraw()
	ui.RunPending()
	if testutil.SameColor(img.At(300, 15), hl) {
		t.Fatal(img.At(300, 15))
	}

	// removing the painter clears the highlight
	v.SetCaretOffset(5, false)
	ui.RunPending()
	if !testutil.SameColor(img.At(300, 15), hl) {
		t.Fatal(img.At(300, 15))
	}
	m.RemovePainter(cl)
	ui.RunPending()
	if testutil.SameColor(img.At(300, 15), hl) {
		t.Fatal(img.At(300, 15))
	}
}

func TestCursorLineWordWrap(t *testing.T) {
	v, _, ui := newTestViewer("abcdefgh\n")
	w := v.Widget()
	w.SetWordWrap(true)
	w.SetSize(image.Point{28, 100})
	ui.RunPending()

	m := textpaint.NewPaintManager(v)
	cl := textpaint.NewCursorLinePainter(v)
	m.AddPainter(cl)
	// line wraps in two rows
	if d := w.Damage(); len(d) != 1 || d[0] != image.Rect(0, 0, 28, 26) {
		t.Fatal(d)
	}
	ui.RunPending()

	// empty last line
	v.SetCaretOffset(9, false)
	if d := w.Damage(); !hasRect(d, image.Rect(0, 26, 28, 39)) {
		t.Fatal(d)
	}
}

func TestCursorLineNoDocument(t *testing.T) {
	v, _, ui := newTestViewer("abc\n")
	m := textpaint.NewPaintManager(v)
	cl := textpaint.NewCursorLinePainter(v)
	m.AddPainter(cl)
	lbId := textpaint.WidgetEvIdLineBackground
	if v.Widget().EvReg().NCallbacks(lbId) != 1 {
		t.Fatal("not active")
	}
	v.SetDocument(nil)
	if v.Widget().EvReg().NCallbacks(lbId) != 0 {
		t.Fatal("still active")
	}
	ui.RunPending()

	v.SetDocument(textdoc.NewDocument("xyz\nxyz"))
	if v.Widget().EvReg().NCallbacks(lbId) != 1 {
		t.Fatal("not active")
	}
	ps, _ := v.TextDocument().Positions(m.PositionManager().Category())
	if len(ps) != 1 || *ps[0] != (textdoc.Position{Offset: 0, Length: 4}) {
		t.Fatal(ps)
	}
}

func TestCursorLineDeletedLine(t *testing.T) {
	v, doc, ui := newTestViewer("abc\ndef\n")
	w := v.Widget()
	v.SetCaretOffset(5, false)
	m := textpaint.NewPaintManager(v)
	cl := textpaint.NewCursorLinePainter(v)
	m.AddPainter(cl)
	ui.RunPending()

	cat := m.PositionManager().Category()
	ps, _ := doc.Positions(cat)
	if len(ps) != 1 || *ps[0] != (textdoc.Position{Offset: 4, Length: 4}) {
		t.Fatal(ps)
	}
	line := ps[0]

	// removes the caret line
	ui.Painter = nil
	if err := doc.Delete(3, 5); err != nil {
		t.Fatal(err)
	}
	cl.Paint(textpaint.Selection)
	ui.RunPending()
	if !hasRect(w.Damage(), image.Rect(0, 0, 400, 13)) {
		t.Fatal(w.Damage())
	}
	ps, _ = doc.Positions(cat)
	if len(ps) != 1 || ps[0] != line || *line != (textdoc.Position{Offset: 0, Length: 3}) {
		t.Fatal(ps)
	}

	// still updated by edits
	if err := doc.Insert(0, "XY"); err != nil {
		t.Fatal(err)
	}
	if *line != (textdoc.Position{Offset: 0, Length: 5}) {
		t.Fatal(line)
	}
}

func TestCursorLineBackgroundEvent(t *testing.T) {
	v, _, ui := newTestViewer("abc\ndef\n")
	m := textpaint.NewPaintManager(v)
	cl := textpaint.NewCursorLinePainter(v)
	hl := color.RGBA{255, 0, 0, 255}
	cl.SetHighlightColor(hl)
	m.AddPainter(cl)
	v.SetCaretOffset(5, false)
	ui.RunPending()

	reg := v.Widget().EvReg()
	lineBg := func(offset int, text string) color.Color {
		ev := &textpaint.LineBackgroundEvent{LineOffset: offset, LineText: text}
		reg.RunCallbacks(textpaint.WidgetEvIdLineBackground, ev)
		return ev.Bg
	}
	if c := lineBg(4, "def\n"); c != color.Color(hl) {
		t.Fatal(c)
	}
	if c := lineBg(0, "abc\n"); c != nil {
		t.Fatal(c)
	}

	// selection in one line
	v.SetSelection(4, 6)
	if c := lineBg(4, "def\n"); c != color.Color(hl) {
		t.Fatal(c)
	}

	// multi-line selection
	v.SetSelection(1, 6)
	if c := lineBg(4, "def\n"); c != nil {
		t.Fatal(c)
	}
}
