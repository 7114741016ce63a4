package textpaint

import (
	"image"
	"image/color"

	"github.com/jmigpin/textdeco/util/evreg"
	"github.com/jmigpin/textdeco/util/textdoc"
)

// Highlights the background of the line where the caret is.
type CursorLinePainter struct {
	viewer    Viewer
	pm        *PositionManager
	highlight color.Color
	active    bool
	lbReg     *evreg.Regist

	lastLineNumber int // -1 if no line was painted
	currentLine    *textdoc.Position
	lastLine       *textdoc.Position // not managed
}

func NewCursorLinePainter(v Viewer) *CursorLinePainter {
	return &CursorLinePainter{
		viewer:         v,
		lastLineNumber: -1,
		currentLine:    textdoc.NewPosition(0, 0),
		lastLine:       textdoc.NewPosition(0, 0),
		highlight:      color.RGBA{232, 242, 254, 255},
	}
}

func (p *CursorLinePainter) SetHighlightColor(c color.Color) {
	p.highlight = c
	if p.active {
		p.drawHighlightLine(p.currentLine)
	}
}

func (p *CursorLinePainter) SetPositionManager(pm *PositionManager) {
	p.pm = pm
}

//----------

func (p *CursorLinePainter) Paint(reason Reason) {
	if p.viewer.Document() == nil {
		p.Deactivate(false)
		return
	}
	if !p.active {
		p.active = true
		w := p.viewer.TextWidget()
		p.lbReg = w.EvReg().Add(WidgetEvIdLineBackground, p.onLineBackground)
		if p.pm != nil {
			p.pm.ManagePosition(p.currentLine)
		}
	}
	hadLine := p.lastLineNumber >= 0
	if p.updateHighlightLine() {
		if hadLine {
			p.drawHighlightLine(p.lastLine)
		}
		p.drawHighlightLine(p.currentLine)
	}
}

func (p *CursorLinePainter) Deactivate(redraw bool) {
	if !p.active {
		return
	}
	p.active = false
	if redraw {
		p.drawHighlightLine(p.currentLine)
	}
	p.lbReg.Unregister()
	p.lbReg = nil
	if p.pm != nil {
		p.pm.UnmanagePosition(p.currentLine)
	}
	p.lastLineNumber = -1
	p.currentLine.Set(0, 0)
}

func (p *CursorLinePainter) Dispose() {
	p.Deactivate(false)
}

//----------

// Returns true if the line changed and needs to be redrawn. The previous line is kept in lastLine.
func (p *CursorLinePainter) updateHighlightLine() bool {
	doc := p.viewer.Document()
	caret := p.modelCaret()
	lineNumber, err := doc.LineOfOffset(caret)
	if err != nil {
		return false
	}
	if lineNumber == p.lastLineNumber && p.currentLineHas(caret) {
		return false
	}
	lineOffset, err := doc.LineOffset(lineNumber)
	if err != nil {
		return false
	}
	length := 0
	if lineNumber == doc.NumberOfLines()-1 {
		length = doc.Len() - lineOffset
	} else {
		next, err := doc.LineOffset(lineNumber + 1)
		if err != nil {
			return false
		}
		length = next - lineOffset
	}

	*p.lastLine = *p.currentLine
	deleted := p.currentLine.Deleted
	p.currentLine.Set(lineOffset, length)
	if deleted && p.pm != nil {
		// the updater dropped it from the category
		p.pm.ManagePosition(p.currentLine)
	}
	p.lastLineNumber = lineNumber
	return true
}

// End inclusive: the caret can be at the end of the last line.
func (p *CursorLinePainter) currentLineHas(offset int) bool {
	l := p.currentLine
	return !l.Deleted && l.Offset <= offset && offset <= l.End()
}

func (p *CursorLinePainter) modelCaret() int {
	caret := p.viewer.TextWidget().CaretOffset()
	return widgetToModelOffset(p.viewer, caret)
}

//----------

func (p *CursorLinePainter) drawHighlightLine(pos *textdoc.Position) {
	if pos.Deleted {
		return
	}
	wo, ok := modelToWidgetOffset(p.viewer, pos.Offset)
	if !ok {
		return
	}
	w := p.viewer.TextWidget()
	if wo < 0 || wo > w.CharCount() {
		return
	}
	upperLeft := w.LocationAtOffset(wo)
	width := w.ClientArea().Dx() + w.HorizontalPixel()
	height := w.LineHeightAt(wo)
	if w.WordWrap() {
		end := min(wo+pos.Length, w.CharCount())
		if end > wo {
			height = w.TextBounds(wo, end-1).Dy()
		}
	}
	w.RedrawRect(image.Rect(0, upperLeft.Y, width, upperLeft.Y+height))
}

//----------

func (p *CursorLinePainter) onLineBackground(ev0 any) {
	ev := ev0.(*LineBackgroundEvent)
	w := p.viewer.TextWidget()
	caret := w.CaretOffset()
	start := ev.LineOffset
	end := start + len(ev.LineText)
	if caret < start || caret > end {
		return
	}
	s, e := w.Selection()
	if w.LineAtOffset(s) != w.LineAtOffset(e) {
		return
	}
	ev.Bg = p.highlight
}

//----------

// Falls back to visible region arithmetic if the viewer has no projection.
func modelToWidgetOffset(v Viewer, offset int) (int, bool) {
	if pv, ok := v.(ProjectionViewer); ok {
		wo := pv.ModelOffset2WidgetOffset(offset)
		return wo, wo >= 0
	}
	vr := v.VisibleRegion()
	wo := offset - vr.Offset
	if wo < 0 || wo > vr.Length {
		return 0, false
	}
	return wo, true
}

func widgetToModelOffset(v Viewer, offset int) int {
	if pv, ok := v.(ProjectionViewer); ok {
		return pv.WidgetOffset2ModelOffset(offset)
	}
	return offset + v.VisibleRegion().Offset
}
