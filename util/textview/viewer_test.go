package textview

import (
	"image"
	"testing"

	"github.com/jmigpin/textdeco/util/textdoc"
	"github.com/jmigpin/textdeco/util/textpaint"
	"github.com/jmigpin/textdeco/util/uiutil"
	"github.com/jmigpin/textdeco/util/uiutil/event"
)

func newTestViewer(s string) (*Viewer, *textdoc.Document, *uiutil.BasicUI) {
	ui := uiutil.NewBasicUI(image.Point{200, 130})
	w := newTestWidget("")
	v := NewViewer(w, ui)
	ui.RootNode = v
	ui.Painter = w
	doc := textdoc.NewDocument(s)
	v.SetDocument(doc)
	return v, doc, ui
}

//----------

func TestViewerImplementsProjection(t *testing.T) {
	var _ textpaint.ProjectionViewer = (*Viewer)(nil)
	var _ textpaint.Document = (*textdoc.Document)(nil)
}

func TestViewerNilDocument(t *testing.T) {
	ui := uiutil.NewBasicUI(image.Point{10, 10})
	v := NewViewer(newTestWidget(""), ui)
	if v.Document() != nil {
		t.Fatal("expecting untyped nil")
	}
	v.SetDocument(textdoc.NewDocument("a"))
	v.SetDocument(nil)
	if v.Document() != nil || v.Widget().CharCount() != 0 {
		t.Fatal()
	}
}

func TestViewerVisibleRegion(t *testing.T) {
	v, doc, _ := newTestViewer("0123\n5678\nabcd\n")
	if err := v.SetVisibleRegion(5, 5); err != nil {
		t.Fatal(err)
	}
	if v.Widget().Text() != "5678\n" {
		t.Fatal(v.Widget().Text())
	}
	if v.ModelOffset2WidgetOffset(6) != 1 || v.ModelOffset2WidgetOffset(3) != -1 {
		t.Fatal()
	}
	if v.ModelOffset2WidgetOffset(10) != 5 {
		t.Fatal(v.ModelOffset2WidgetOffset(10))
	}
	if v.WidgetOffset2ModelOffset(2) != 7 || v.WidgetOffset2ModelOffset(6) != -1 {
		t.Fatal()
	}
	if v.ModelLine2WidgetLine(1) != 0 || v.ModelLine2WidgetLine(0) != -1 {
		t.Fatal()
	}
	if v.WidgetLine2ModelLine(0) != 1 {
		t.Fatal(v.WidgetLine2ModelLine(0))
	}

	// edits before the region shift it
	if err := doc.Insert(0, "XX"); err != nil {
		t.Fatal(err)
	}
	if r := v.VisibleRegion(); r != (textdoc.Region{Offset: 7, Length: 5}) {
		t.Fatal(r)
	}
	if v.Widget().Text() != "5678\n" {
		t.Fatal(v.Widget().Text())
	}

	v.ResetVisibleRegion()
	if v.Widget().Text() != doc.Str() {
		t.Fatal(v.Widget().Text())
	}
}

func TestViewerFold(t *testing.T) {
	v, doc, _ := newTestViewer("l0\nl1\nl2\nl3\n")
	if err := v.Fold(0, 2); err != nil {
		t.Fatal(err)
	}
	if v.Widget().Text() != "l0\nl3\n" {
		t.Fatal(v.Widget().Text())
	}
	if v.ModelLine2WidgetLine(1) != -1 || v.ModelLine2WidgetLine(2) != -1 {
		t.Fatal()
	}
	if v.ModelLine2WidgetLine(3) != 1 || v.WidgetLine2ModelLine(1) != 3 {
		t.Fatal(v.ModelLine2WidgetLine(3), v.WidgetLine2ModelLine(1))
	}
	if v.ModelOffset2WidgetOffset(4) != -1 || v.ModelOffset2WidgetOffset(9) != 3 {
		t.Fatal()
	}

	// edit inside the start line keeps the fold
	if err := doc.Insert(0, "_"); err != nil {
		t.Fatal(err)
	}
	if v.Widget().Text() != "_l0\nl3\n" {
		t.Fatal(v.Widget().Text())
	}

	v.ExpandAll()
	if v.Widget().Text() != doc.Str() {
		t.Fatal(v.Widget().Text())
	}
}

func TestViewerFoldLastLine(t *testing.T) {
	v, _, _ := newTestViewer("l0\nl1\nl2")
	if err := v.Fold(0, 2); err != nil {
		t.Fatal(err)
	}
	if v.Widget().Text() != "l0" {
		t.Fatal(v.Widget().Text())
	}
	if err := v.Fold(2, 1); err == nil {
		t.Fatal("expecting error")
	}
}

func TestViewerTyping(t *testing.T) {
	v, doc, ui := newTestViewer("abc\ndef\n")
	v.SetCaretOffset(5, false)

	nkeys, ntext := 0, 0
	v.EvReg().Add(textpaint.ViewerEvIdKeyDown, func(ev any) { nkeys++ })
	v.EvReg().Add(textpaint.ViewerEvIdTextChanged, func(ev0 any) {
		ev := ev0.(*textpaint.TextEvent)
		ntext++
		if ev.Offset != 5 || ev.Text != "X" || !ev.RedrawEnabled {
			t.Fatalf("%+v", ev)
		}
	})
	ui.EnqueueEvent(&event.KeyDown{Rune: 'X'})
	ui.RunPending()
	if doc.Str() != "abc\ndXef\n" {
		t.Fatal(doc.Str())
	}
	if v.Widget().CaretOffset() != 6 {
		t.Fatal(v.Widget().CaretOffset())
	}
	if nkeys != 1 || ntext != 1 {
		t.Fatal(nkeys, ntext)
	}
}

func TestViewerCaretFollowsEdits(t *testing.T) {
	v, doc, _ := newTestViewer("abc\ndef\n")
	v.SetCaretOffset(5, false)
	_ = doc.Insert(4, "X") // before the caret
	if v.Widget().CaretOffset() != 6 {
		t.Fatal(v.Widget().CaretOffset())
	}
	_ = doc.Insert(7, "Y") // after the caret
	if v.Widget().CaretOffset() != 6 {
		t.Fatal(v.Widget().CaretOffset())
	}
	_ = doc.Delete(3, 4) // removes the caret position
	if v.Widget().CaretOffset() != 3 {
		t.Fatal(v.Widget().CaretOffset())
	}
}

func TestViewerSelectionKeys(t *testing.T) {
	v, _, ui := newTestViewer("abc\ndef\n")
	nsel := 0
	v.EvReg().Add(textpaint.ViewerEvIdSelectionChanged, func(ev any) { nsel++ })
	ui.EnqueueEvent(&event.KeyDown{KeySym: event.KSymRight, Mods: event.ModShift})
	ui.EnqueueEvent(&event.KeyDown{KeySym: event.KSymDown, Mods: event.ModShift})
	ui.RunPending()
	s, e := v.Widget().Selection()
	if s != 0 || e != 5 || nsel != 2 {
		t.Fatal(s, e, nsel)
	}
	ui.EnqueueEvent(&event.MouseDown{Point: image.Point{1, 1}, Button: event.ButtonLeft})
	ui.RunPending()
	s, e = v.Widget().Selection()
	if s != 0 || e != 0 || nsel != 3 {
		t.Fatal(s, e, nsel)
	}
}

func TestViewerInputEvents(t *testing.T) {
	v, doc, _ := newTestViewer("abc")
	u := []string{}
	v.EvReg().Add(textpaint.ViewerEvIdInputAboutToChange, func(ev0 any) {
		ev := ev0.(*textpaint.InputEvent)
		if ev.Old != textpaint.Document(doc) || ev.New != nil {
			t.Fatal(ev)
		}
		u = append(u, "about")
	})
	v.EvReg().Add(textpaint.ViewerEvIdInputChanged, func(ev any) {
		u = append(u, "changed")
	})
	v.SetDocument(nil)
	if len(u) != 2 || u[0] != "about" || u[1] != "changed" {
		t.Fatal(u)
	}
	// the old document is no longer observed
	_ = doc.Insert(0, "x")
	if v.Widget().Text() != "" {
		t.Fatal(v.Widget().Text())
	}
	if doc.NPositionUpdaters() != 0 {
		t.Fatal(doc.NPositionUpdaters())
	}
}

func TestViewerRedrawState(t *testing.T) {
	v, doc, _ := newTestViewer("abc")
	states := []bool{}
	v.EvReg().Add(textpaint.ViewerEvIdTextChanged, func(ev0 any) {
		states = append(states, ev0.(*textpaint.TextEvent).RedrawEnabled)
	})
	v.SetRedraw(false)
	_ = doc.Insert(0, "x")
	v.SetRedraw(true)
	if len(states) != 2 || states[0] || !states[1] {
		t.Fatal(states)
	}
}
