package textview

import (
	"image"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jmigpin/textdeco/util/evreg"
	"github.com/jmigpin/textdeco/util/textdoc"
	"github.com/jmigpin/textdeco/util/textpaint"
	"github.com/jmigpin/textdeco/util/uiutil/event"
	"github.com/pkg/errors"
)

type UIRunner interface {
	RunOnUIThread(func())
}

//----------

// Shows a projection of a document in a widget: the visible region minus the folded regions.
type Viewer struct {
	w  *Widget
	ui UIRunner

	doc     *textdoc.Document
	docRegs evreg.Unregister
	evReg   evreg.Register

	vrCat     *textdoc.Category
	vrUpdater *textdoc.DefaultPositionUpdater
	visible   *textdoc.Position // nil shows the whole document

	foldCat     *textdoc.Category
	foldUpdater *textdoc.DefaultPositionUpdater

	segs   []segment
	redraw bool

	anchor     int // selection anchor (widget offset)
	caretModel int // caret model offset saved before a document change
}

// Visible part of the document.
type segment struct {
	textdoc.Region
	widget int // widget offset of the region start
}

func NewViewer(w *Widget, ui UIRunner) *Viewer {
	v := &Viewer{w: w, ui: ui, redraw: true}
	v.rebuild()
	return v
}

//----------

func (v *Viewer) EvReg() *evreg.Register {
	return &v.evReg
}

func (v *Viewer) RunOnUIThread(fn func()) {
	v.ui.RunOnUIThread(fn)
}

func (v *Viewer) TextWidget() textpaint.Widget {
	return v.w
}

func (v *Viewer) Widget() *Widget {
	return v.w
}

func (v *Viewer) Document() textpaint.Document {
	return docIface(v.doc)
}

func (v *Viewer) TextDocument() *textdoc.Document {
	return v.doc
}

func docIface(d *textdoc.Document) textpaint.Document {
	if d == nil {
		return nil
	}
	return d
}

//----------

func (v *Viewer) SetDocument(doc *textdoc.Document) {
	ev := &textpaint.InputEvent{Old: docIface(v.doc), New: docIface(doc)}
	v.evReg.RunCallbacks(textpaint.ViewerEvIdInputAboutToChange, ev)

	oldLen := v.w.CharCount()
	v.unhookDocument()
	v.doc = doc
	v.hookDocument()
	v.rebuild()
	v.w.SetCaretOffset(0)
	v.setSelection(0, 0, 0)
	v.fireTextChanged(0, oldLen, v.w.Text())

	v.evReg.RunCallbacks(textpaint.ViewerEvIdInputChanged, ev)
}

func (v *Viewer) hookDocument() {
	if v.doc == nil {
		return
	}
	v.vrCat = v.doc.AddPositionCategory()
	v.vrUpdater = &textdoc.DefaultPositionUpdater{Category: v.vrCat, Policy: textdoc.UpdateExtend}
	v.doc.AddPositionUpdater(v.vrUpdater)

	v.foldCat = v.doc.AddPositionCategory()
	v.foldUpdater = textdoc.NewDefaultPositionUpdater(v.foldCat)
	v.doc.AddPositionUpdater(v.foldUpdater)

	reg := v.doc.EvReg()
	v.docRegs.Add(
		reg.Add(textdoc.DocEvIdAboutToChange, v.onDocAboutToChange),
		reg.Add(textdoc.DocEvIdChanged, v.onDocChanged),
	)
}

func (v *Viewer) unhookDocument() {
	if v.doc == nil {
		return
	}
	v.docRegs.UnregisterAll()
	v.doc.RemovePositionUpdater(v.vrUpdater)
	v.doc.RemovePositionUpdater(v.foldUpdater)
	_ = v.doc.RemovePositionCategory(v.vrCat)
	_ = v.doc.RemovePositionCategory(v.foldCat)
	v.visible = nil
	v.vrCat, v.foldCat = nil, nil
	v.vrUpdater, v.foldUpdater = nil, nil
}

//----------

func (v *Viewer) onDocAboutToChange(ev0 any) {
	v.caretModel = v.WidgetOffset2ModelOffset(v.w.CaretOffset())
}

func (v *Viewer) onDocChanged(ev0 any) {
	ev := ev0.(*textdoc.DocumentEvent)

	// caret follows the edit (typing at the caret moves it)
	c := v.caretModel
	if c >= ev.Offset {
		c = max(ev.Offset+len(ev.Text), c+len(ev.Text)-ev.Length)
	}

	v.rebuild()
	wc := v.nearestWidgetOffset(c)
	v.w.SetCaretOffset(wc)
	v.setSelection(wc, wc, wc)

	wo := v.ModelOffset2WidgetOffset(ev.Offset)
	v.fireTextChanged(wo, ev.Length, ev.Text)
}

func (v *Viewer) fireTextChanged(offset, length int, text string) {
	ev := &textpaint.TextEvent{
		Offset:        offset,
		Length:        length,
		Text:          text,
		RedrawEnabled: v.redraw,
	}
	v.evReg.RunCallbacks(textpaint.ViewerEvIdTextChanged, ev)
}

//----------

// While disabled, text change events report the redraw state as disabled and the widget postpones painting.
func (v *Viewer) SetRedraw(on bool) {
	if v.redraw == on {
		return
	}
	v.redraw = on
	v.w.SetRedraw(on)
	if on {
		v.w.Redraw()
		v.fireTextChanged(0, 0, "")
	}
}

func (v *Viewer) Redraw() bool {
	return v.redraw
}

//----------

func (v *Viewer) VisibleRegion() textdoc.Region {
	if v.doc == nil {
		return textdoc.Region{}
	}
	if v.visible == nil || v.visible.Deleted {
		return textdoc.Region{Offset: 0, Length: v.doc.Len()}
	}
	return textdoc.Region{Offset: v.visible.Offset, Length: v.visible.Length}
}

func (v *Viewer) SetVisibleRegion(offset, length int) error {
	if v.doc == nil {
		return errors.New("no document")
	}
	p := textdoc.NewPosition(offset, length)
	if err := v.doc.AddPosition(v.vrCat, p); err != nil {
		return err
	}
	if v.visible != nil {
		_ = v.doc.RemovePosition(v.vrCat, v.visible)
	}
	v.visible = p
	v.projectionChanged()
	return nil
}

func (v *Viewer) ResetVisibleRegion() {
	if v.doc == nil || v.visible == nil {
		return
	}
	_ = v.doc.RemovePosition(v.vrCat, v.visible)
	v.visible = nil
	v.projectionChanged()
}

//----------

// Hides the lines after startLine up to endLine (inclusive). The start line stays visible.
func (v *Viewer) Fold(startLine, endLine int) error {
	if v.doc == nil {
		return errors.New("no document")
	}
	if endLine <= startLine {
		return errors.Errorf("bad fold lines: %v, %v", startLine, endLine)
	}
	start, err := v.doc.LineOffset(startLine + 1)
	if err != nil {
		return err
	}
	end := v.doc.Len()
	if endLine+1 < v.doc.NumberOfLines() {
		end, err = v.doc.LineOffset(endLine + 1)
		if err != nil {
			return err
		}
	} else {
		// last line: hide the delimiter of the start line too
		r, err := v.doc.LineInfo(startLine)
		if err != nil {
			return err
		}
		start = r.End()
	}
	p := textdoc.NewPosition(start, end-start)
	if err := v.doc.AddPosition(v.foldCat, p); err != nil {
		return err
	}
	v.projectionChanged()
	return nil
}

func (v *Viewer) ExpandAll() {
	if v.doc == nil {
		return
	}
	ps, _ := v.doc.Positions(v.foldCat)
	for _, p := range ps {
		_ = v.doc.RemovePosition(v.foldCat, p)
	}
	v.projectionChanged()
}

// Hidden regions.
func (v *Viewer) Folds() []textdoc.Region {
	if v.doc == nil {
		return nil
	}
	ps, _ := v.doc.Positions(v.foldCat)
	u := []textdoc.Region{}
	for _, p := range ps {
		if !p.Deleted {
			u = append(u, textdoc.Region{Offset: p.Offset, Length: p.Length})
		}
	}
	sort.Slice(u, func(a, b int) bool {
		return u[a].Offset < u[b].Offset
	})
	return u
}

func (v *Viewer) projectionChanged() {
	c := v.WidgetOffset2ModelOffset(v.w.CaretOffset())
	oldLen := v.w.CharCount()
	v.rebuild()
	wc := v.nearestWidgetOffset(c)
	v.w.SetCaretOffset(wc)
	v.setSelection(wc, wc, wc)
	v.fireTextChanged(0, oldLen, v.w.Text())
}

//----------

func (v *Viewer) rebuild() {
	v.segs = v.segs[:0]
	if v.doc == nil {
		v.w.SetText("")
		return
	}
	vr := v.VisibleRegion()
	wo := 0
	add := func(start, end int) {
		s := segment{Region: textdoc.Region{Offset: start, Length: end - start}, widget: wo}
		v.segs = append(v.segs, s)
		wo += s.Length
	}
	o := vr.Offset
	for _, f := range v.Folds() {
		if f.End() <= o || f.Offset >= vr.End() {
			continue
		}
		if f.Offset > o {
			add(o, f.Offset)
		}
		o = max(o, f.End())
	}
	if o < vr.End() || len(v.segs) == 0 {
		add(min(o, vr.End()), vr.End())
	}

	sb := strings.Builder{}
	for _, s := range v.segs {
		str, err := v.doc.TextRange(s.Offset, s.Length)
		if err != nil {
			continue
		}
		sb.WriteString(str)
	}
	v.w.SetText(sb.String())
}

func (v *Viewer) nearestWidgetOffset(mo int) int {
	if wo := v.ModelOffset2WidgetOffset(mo); wo >= 0 {
		return wo
	}
	for _, s := range v.segs {
		if mo < s.Offset {
			return s.widget
		}
	}
	return v.w.CharCount()
}

//----------

func (v *Viewer) ModelOffset2WidgetOffset(offset int) int {
	for i, s := range v.segs {
		if s.Offset <= offset && offset < s.End() {
			return s.widget + offset - s.Offset
		}
		if i == len(v.segs)-1 && offset == s.End() {
			return s.widget + s.Length
		}
	}
	return -1
}

func (v *Viewer) WidgetOffset2ModelOffset(offset int) int {
	for i, s := range v.segs {
		if s.widget <= offset && offset < s.widget+s.Length {
			return s.Offset + offset - s.widget
		}
		if i == len(v.segs)-1 && offset == s.widget+s.Length {
			return s.End()
		}
	}
	return -1
}

func (v *Viewer) ModelLine2WidgetLine(line int) int {
	if v.doc == nil {
		return -1
	}
	lo, err := v.doc.LineOffset(line)
	if err != nil {
		return -1
	}
	lineLast := v.doc.Len()
	if line+1 < v.doc.NumberOfLines() {
		next, err := v.doc.LineOffset(line + 1)
		if err != nil {
			return -1
		}
		lineLast = next - 1
	}
	for i, s := range v.segs {
		c := max(lo, s.Offset)
		if c > lineLast {
			break
		}
		if c < s.End() || (i == len(v.segs)-1 && c == s.End()) {
			return v.w.LineAtOffset(s.widget + c - s.Offset)
		}
	}
	return -1
}

func (v *Viewer) WidgetLine2ModelLine(line int) int {
	if v.doc == nil || line < 0 || line >= v.w.LineCount() {
		return -1
	}
	mo := v.WidgetOffset2ModelOffset(v.w.OffsetAtLine(line))
	if mo < 0 {
		return -1
	}
	l, err := v.doc.LineOfOffset(mo)
	if err != nil {
		return -1
	}
	return l
}

//----------

func (v *Viewer) SetCaretOffset(o int, extend bool) {
	v.w.SetCaretOffset(o)
	o = v.w.CaretOffset()
	if extend {
		v.setSelection(v.anchor, o, v.anchor)
	} else {
		v.setSelection(o, o, o)
	}
}

// Widget offsets.
func (v *Viewer) SetSelection(start, end int) {
	v.w.SetCaretOffset(end)
	v.setSelection(start, end, start)
}

func (v *Viewer) setSelection(a, b, anchor int) {
	v.anchor = anchor
	s0, e0 := v.w.Selection()
	v.w.SetSelection(a, b)
	s, e := v.w.Selection()
	if s != s0 || e != e0 {
		ev := &textpaint.SelectionEvent{Start: s, End: e}
		v.evReg.RunCallbacks(textpaint.ViewerEvIdSelectionChanged, ev)
	}
}

//----------

// Key down events are reported to listeners after the caret was updated.
func (v *Viewer) HandleInput(ev any) event.Handle {
	switch t := ev.(type) {
	case *event.KeyDown:
		v.onKeyDown(t)
		v.evReg.RunCallbacks(textpaint.ViewerEvIdKeyDown, t)
		return event.Handled
	case *event.MouseDown:
		v.onMouseDown(t)
		v.evReg.RunCallbacks(textpaint.ViewerEvIdMouseDown, t)
		return event.Handled
	}
	return event.NotHandled
}

func (v *Viewer) onMouseDown(ev *event.MouseDown) {
	if ev.Button != event.ButtonLeft {
		return
	}
	o, ok := v.w.OffsetAtLocation(ev.Point)
	if !ok {
		o = v.w.CharCount()
		if ev.Point.Y+v.w.TopPixel() < 0 {
			o = 0
		}
	}
	v.SetCaretOffset(o, ev.Mods.HasAny(event.ModShift))
}

func (v *Viewer) onKeyDown(ev *event.KeyDown) {
	w := v.w
	caret := w.CaretOffset()
	shift := ev.Mods.HasAny(event.ModShift)
	switch ev.KeySym {
	case event.KSymLeft:
		_, size := utf8.DecodeLastRuneInString(w.text[:caret])
		v.SetCaretOffset(caret-size, shift)
	case event.KSymRight:
		_, size := utf8.DecodeRuneInString(w.text[caret:])
		v.SetCaretOffset(caret+size, shift)
	case event.KSymUp, event.KSymDown:
		p := w.LocationAtOffset(caret)
		if ev.KeySym == event.KSymUp {
			p.Y -= w.LineHeight()
		} else {
			p.Y += w.LineHeight()
		}
		if o, ok := w.OffsetAtLocation(image.Pt(p.X, p.Y)); ok {
			v.SetCaretOffset(o, shift)
		}
	case event.KSymHome:
		l := w.lines[w.LineAtOffset(caret)]
		v.SetCaretOffset(l.start, shift)
	case event.KSymEnd:
		l := w.lines[w.LineAtOffset(caret)]
		v.SetCaretOffset(l.contentEnd, shift)
	case event.KSymBackspace:
		s, e := w.Selection()
		if s == e {
			_, size := utf8.DecodeLastRuneInString(w.text[:caret])
			s = caret - size
			e = caret
		}
		v.replaceWidgetRange(s, e, "")
	case event.KSymDelete:
		s, e := w.Selection()
		if s == e {
			_, size := utf8.DecodeRuneInString(w.text[caret:])
			s = caret
			e = caret + size
		}
		v.replaceWidgetRange(s, e, "")
	case event.KSymReturn:
		v.replaceSelection("\n")
	case event.KSymTab:
		v.replaceSelection("\t")
	default:
		if ev.Rune != 0 && !ev.Mods.HasAny(event.ModCtrl|event.ModAlt) {
			v.replaceSelection(string(ev.Rune))
		}
	}
}

func (v *Viewer) replaceSelection(s string) {
	a, b := v.w.Selection()
	if a == b {
		a = v.w.CaretOffset()
		b = a
	}
	v.replaceWidgetRange(a, b, s)
}

func (v *Viewer) replaceWidgetRange(a, b int, s string) {
	if v.doc == nil || a >= b && s == "" {
		return
	}
	ma := v.WidgetOffset2ModelOffset(a)
	mb := v.WidgetOffset2ModelOffset(b)
	if ma < 0 || mb < ma {
		return
	}
	// caret at the end of the replaced range so typing moves it past the inserted text
	v.w.SetCaretOffset(b)
	_ = v.doc.Replace(ma, mb-ma, s)
}
