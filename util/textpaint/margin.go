package textpaint

import (
	"image/color"

	"github.com/jmigpin/textdeco/util/evreg"
	"github.com/jmigpin/textdeco/util/fontutil"
	"github.com/jmigpin/textdeco/util/imageutil"
)

type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDash
)

//----------

// Paints a vertical line at a column (ex: print margin).
type MarginPainter struct {
	viewer Viewer
	column int
	color  color.Color
	width  int
	style  LineStyle

	active   bool
	paintReg *evreg.Regist

	cachedX    int // -1 if invalid
	cachedFace *fontutil.FontFace
}

func NewMarginPainter(v Viewer) *MarginPainter {
	return &MarginPainter{
		viewer:  v,
		column:  80,
		color:   color.RGBA{0xc0, 0xc0, 0xc0, 0xff},
		width:   1,
		cachedX: -1,
	}
}

func (p *MarginPainter) SetMarginRulerColumn(col int) {
	p.column = col
}
func (p *MarginPainter) SetMarginRulerColor(c color.Color) {
	p.color = c
}
func (p *MarginPainter) SetMarginRulerWidth(w int) {
	p.width = w
}
func (p *MarginPainter) SetMarginRulerStyle(s LineStyle) {
	p.style = s
}

// Recomputes the ruler position and redraws. Call after changing settings.
func (p *MarginPainter) Initialize() {
	p.computeWidgetX()
	p.viewer.TextWidget().Redraw()
}

func (p *MarginPainter) SetPositionManager(pm *PositionManager) {}

//----------

func (p *MarginPainter) Paint(reason Reason) {
	if !p.active {
		p.active = true
		w := p.viewer.TextWidget()
		p.paintReg = w.EvReg().Add(WidgetEvIdPaint, p.onPaint)
		p.Initialize()
		return
	}
	if reason == Configuration || reason == Internal {
		p.viewer.TextWidget().Redraw()
	}
}

func (p *MarginPainter) Deactivate(redraw bool) {
	if !p.active {
		return
	}
	p.active = false
	p.paintReg.Unregister()
	p.paintReg = nil
	p.cachedX = -1
	p.cachedFace = nil
	if redraw {
		p.viewer.TextWidget().Redraw()
	}
}

func (p *MarginPainter) Dispose() {
	p.Deactivate(false)
}

//----------

// Ruler x in client coordinates. False if scrolled out of view.
func (p *MarginPainter) RulerX() (int, bool) {
	w := p.viewer.TextWidget()
	if p.cachedX < 0 || p.cachedFace != w.FontFace() {
		p.computeWidgetX()
	}
	x := p.cachedX - w.HorizontalPixel()
	return x, x >= 0
}

func (p *MarginPainter) computeWidgetX() {
	w := p.viewer.TextWidget()
	p.cachedFace = w.FontFace()
	p.cachedX = p.cachedFace.AvgCharWidth()*p.column + w.LeftMargin()
}

func (p *MarginPainter) onPaint(ev0 any) {
	ev := ev0.(*PaintEvent)
	x, ok := p.RulerX()
	if !ok {
		return
	}
	area := p.viewer.TextWidget().ClientArea()
	dash := 0
	if p.style == LineDash {
		dash = 3 * max(p.width, 1)
	}
	imageutil.DrawVLine(ev.Img, x, area.Min.Y, area.Max.Y, p.width, p.color, dash, ev.Rect)
}
