package textview

import (
	"image"
	"image/color"
	"image/draw"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jmigpin/textdeco/util/evreg"
	"github.com/jmigpin/textdeco/util/fontutil"
	"github.com/jmigpin/textdeco/util/imageutil"
	"github.com/jmigpin/textdeco/util/mathutil"
	"github.com/jmigpin/textdeco/util/textpaint"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Pixel text widget. Lays out text in lines (optionally char wrapped into rows), tracks damaged areas and paints them on request.
type Widget struct {
	ff   *fontutil.FontFace
	text string

	lines []wline
	rows  []wrow

	size       image.Point // client area size
	leftMargin int
	topPixel   int
	hPixel     int
	wrap       bool

	caret            int
	selStart, selEnd int
	styles           []*textpaint.StyleRange // sorted, not overlapping

	fg, bg       color.Color
	selFg, selBg color.Color

	disposed  bool
	redrawOff bool
	damage    []image.Rectangle
	evReg     evreg.Register
}

type wline struct {
	start      int
	contentEnd int // excludes the line delimiter
	end        int
	row        int // first row
	nrows      int
}

type wrow struct {
	start, end int
	line       int
}

func NewWidget(ff *fontutil.FontFace) *Widget {
	w := &Widget{
		ff:    ff,
		size:  image.Point{400, 300},
		fg:    color.Black,
		bg:    color.White,
		selFg: color.White,
		selBg: color.RGBA{0x33, 0x66, 0xcc, 0xff},
	}
	w.layout()
	return w
}

//----------

func (w *Widget) EvReg() *evreg.Register {
	return &w.evReg
}

func (w *Widget) IsDisposed() bool {
	return w.disposed
}

func (w *Widget) Dispose() {
	w.disposed = true
	w.damage = nil
}

//----------

func (w *Widget) Text() string {
	return w.text
}

func (w *Widget) SetText(s string) {
	w.text = s
	w.styles = nil
	w.layout()
	w.caret = mathutil.Limit(w.caret, 0, len(s))
	w.selStart = mathutil.Limit(w.selStart, 0, len(s))
	w.selEnd = mathutil.Limit(w.selEnd, w.selStart, len(s))
	w.Redraw()
}

func (w *Widget) FontFace() *fontutil.FontFace {
	return w.ff
}

func (w *Widget) SetFontFace(ff *fontutil.FontFace) {
	w.ff = ff
	w.layout()
	w.Redraw()
}

func (w *Widget) SetSize(size image.Point) {
	w.size = size
	w.layout()
	w.Redraw()
}

func (w *Widget) ClientArea() image.Rectangle {
	return image.Rectangle{Max: w.size}
}

func (w *Widget) WordWrap() bool {
	return w.wrap
}

func (w *Widget) SetWordWrap(v bool) {
	w.wrap = v
	if v {
		w.hPixel = 0
	}
	w.layout()
	w.Redraw()
}

func (w *Widget) LeftMargin() int {
	return w.leftMargin
}

func (w *Widget) SetLeftMargin(m int) {
	w.leftMargin = m
	w.layout()
	w.Redraw()
}

func (w *Widget) TopPixel() int {
	return w.topPixel
}

func (w *Widget) SetTopPixel(y int) {
	w.topPixel = max(y, 0)
	w.Redraw()
}

func (w *Widget) HorizontalPixel() int {
	return w.hPixel
}

func (w *Widget) SetHorizontalPixel(x int) {
	if w.wrap {
		return
	}
	w.hPixel = max(x, 0)
	w.Redraw()
}

//----------

func (w *Widget) Foreground() color.Color          { return w.fg }
func (w *Widget) Background() color.Color          { return w.bg }
func (w *Widget) SelectionForeground() color.Color { return w.selFg }
func (w *Widget) SelectionBackground() color.Color { return w.selBg }

func (w *Widget) SetColors(fg, bg, selFg, selBg color.Color) {
	w.fg, w.bg, w.selFg, w.selBg = fg, bg, selFg, selBg
	w.Redraw()
}

//----------

func (w *Widget) CaretOffset() int {
	return w.caret
}

func (w *Widget) SetCaretOffset(o int) {
	o = mathutil.Limit(o, 0, len(w.text))
	if o == w.caret {
		return
	}
	w.RedrawRect(w.caretRect())
	w.caret = o
	w.RedrawRect(w.caretRect())
}

func (w *Widget) Selection() (int, int) {
	return w.selStart, w.selEnd
}

func (w *Widget) SetSelection(start, end int) {
	if start > end {
		start, end = end, start
	}
	start = mathutil.Limit(start, 0, len(w.text))
	end = mathutil.Limit(end, 0, len(w.text))
	if start == w.selStart && end == w.selEnd {
		return
	}
	w.redrawRange(w.selStart, w.selEnd)
	w.selStart, w.selEnd = start, end
	w.redrawRange(start, end)
}

//----------

// Style ranges are in widget offsets.
func (w *Widget) SetStyleRanges(srs []*textpaint.StyleRange) {
	u := append([]*textpaint.StyleRange{}, srs...)
	sort.Slice(u, func(a, b int) bool {
		return u[a].Start < u[b].Start
	})
	w.styles = u
	w.layout() // metrics change the advances
	w.Redraw()
}

func (w *Widget) StyleAt(offset int) *textpaint.StyleRange {
	k := sort.Search(len(w.styles), func(i int) bool {
		return w.styles[i].End() > offset
	})
	if k < len(w.styles) && w.styles[k].Start <= offset {
		return w.styles[k]
	}
	return nil
}

//----------

func (w *Widget) CharCount() int {
	return len(w.text)
}

func (w *Widget) LineCount() int {
	return len(w.lines)
}

func (w *Widget) TextRange(offset, n int) string {
	a := mathutil.Limit(offset, 0, len(w.text))
	b := mathutil.Limit(offset+n, a, len(w.text))
	return w.text[a:b]
}

func (w *Widget) OffsetAtLine(line int) int {
	line = mathutil.Limit(line, 0, len(w.lines)-1)
	return w.lines[line].start
}

func (w *Widget) LineAtOffset(offset int) int {
	offset = mathutil.Limit(offset, 0, len(w.text))
	k := sort.Search(len(w.lines), func(i int) bool {
		return w.lines[i].start > offset
	})
	return max(k-1, 0)
}

func (w *Widget) LineHeight() int {
	return w.ff.LineHeightInt()
}

func (w *Widget) LineHeightAt(offset int) int {
	return w.LineHeight()
}

// Line at the client y coordinate (clamped to the existing lines).
func (w *Widget) LineIndex(y int) int {
	row := w.rowAtY(y)
	return w.rows[row].line
}

// Top of the line in client coordinates.
func (w *Widget) LinePixel(line int) int {
	line = mathutil.Limit(line, 0, len(w.lines)-1)
	return w.lines[line].row*w.LineHeight() - w.topPixel
}

// Top left corner of the char at offset in client coordinates.
func (w *Widget) LocationAtOffset(offset int) image.Point {
	offset = mathutil.Limit(offset, 0, len(w.text))
	row := w.rowAtOffset(offset)
	return image.Point{w.xAtOffset(row, offset), w.rowY(row)}
}

// Offset of the char nearest to p. False if p is above or below the text.
func (w *Widget) OffsetAtLocation(p image.Point) (int, bool) {
	ry := p.Y + w.topPixel
	if ry < 0 {
		return 0, false
	}
	row := ry / w.LineHeight()
	if row >= len(w.rows) {
		return 0, false
	}
	r := w.rows[row]
	x := fixed.I(w.leftMargin - w.hPixel)
	px := fixed.I(p.X)
	for o := r.start; o < r.end; {
		ru, size := utf8.DecodeRuneInString(w.text[o:])
		adv := w.charAdvance(o, ru)
		if px < x+adv/2 {
			return o, true
		}
		x += adv
		o += size
	}
	return r.end, true
}

// Bounds of the chars from start to end (inclusive).
func (w *Widget) TextBounds(start, end int) image.Rectangle {
	lh := w.LineHeight()
	if len(w.text) == 0 {
		x := w.leftMargin - w.hPixel
		return image.Rect(x, w.rowY(0), x, w.rowY(0)+lh)
	}
	start = mathutil.Limit(start, 0, len(w.text)-1)
	end = mathutil.Limit(end, start, len(w.text)-1)
	r := image.Rectangle{}
	first := true
	for o := start; o <= end; {
		ru, size := utf8.DecodeRuneInString(w.text[o:])
		row := w.rowAtOffset(o)
		x := w.xAtOffset(row, o)
		y := w.rowY(row)
		adv := w.charAdvance(o, ru).Round()
		if first {
			r = image.Rect(x, y, x+adv, y+lh)
			first = false
		} else {
			r.Min.X = min(r.Min.X, x)
			r.Min.Y = min(r.Min.Y, y)
			r.Max.X = max(r.Max.X, x+adv)
			r.Max.Y = max(r.Max.Y, y+lh)
		}
		o += size
	}
	return r
}

//----------

func (w *Widget) Redraw() {
	w.RedrawRect(w.ClientArea())
}

func (w *Widget) RedrawRect(r image.Rectangle) {
	if w.disposed {
		return
	}
	r = r.Intersect(w.ClientArea())
	if r.Empty() {
		return
	}
	w.damage = append(w.damage, r)
}

// Pending redraw areas.
func (w *Widget) Damage() []image.Rectangle {
	return append([]image.Rectangle{}, w.damage...)
}

// Paint is postponed while disabled (damage accumulates).
func (w *Widget) SetRedraw(v bool) {
	w.redrawOff = !v
}

func (w *Widget) redrawRange(start, end int) {
	if start >= end {
		return
	}
	r := w.TextBounds(start, end-1)
	r.Min.X = 0
	r.Max.X = w.size.X
	w.RedrawRect(r)
}

//----------

func (w *Widget) layout() {
	w.lines = w.lines[:0]
	w.rows = w.rows[:0]
	for start := 0; ; {
		i := strings.IndexByte(w.text[start:], '\n')
		end := len(w.text)
		if i >= 0 {
			end = start + i + 1
		}
		ce := end
		for ce > start && (w.text[ce-1] == '\n' || w.text[ce-1] == '\r') {
			ce--
		}
		l := wline{start: start, contentEnd: ce, end: end, row: len(w.rows)}
		w.wrapLine(len(w.lines), &l)
		w.lines = append(w.lines, l)
		if i < 0 {
			break
		}
		start = end
	}
}

func (w *Widget) wrapLine(line int, l *wline) {
	rowStart := l.start
	if w.wrap {
		width := fixed.I(w.size.X - w.leftMargin)
		x := fixed.Int26_6(0)
		for o := l.start; o < l.contentEnd; {
			ru, size := utf8.DecodeRuneInString(w.text[o:])
			adv := w.charAdvance(o, ru)
			if x+adv > width && o > rowStart {
				w.rows = append(w.rows, wrow{rowStart, o, line})
				rowStart = o
				x = 0
			}
			x += adv
			o += size
		}
	}
	w.rows = append(w.rows, wrow{rowStart, l.contentEnd, line})
	l.nrows = len(w.rows) - l.row
}

func (w *Widget) charAdvance(offset int, ru rune) fixed.Int26_6 {
	adv := w.ff.RuneAdvance(ru)
	if sr := w.StyleAt(offset); sr != nil && sr.Metrics != nil {
		adv += fixed.I(sr.Metrics.Width)
	}
	return adv
}

func (w *Widget) rowAtOffset(offset int) int {
	l := w.lines[w.LineAtOffset(offset)]
	row := l.row
	for r := l.row + 1; r < l.row+l.nrows; r++ {
		if w.rows[r].start <= offset {
			row = r
		}
	}
	return row
}

func (w *Widget) rowAtY(y int) int {
	ry := max(y+w.topPixel, 0)
	return min(ry/w.LineHeight(), len(w.rows)-1)
}

func (w *Widget) rowY(row int) int {
	return row*w.LineHeight() - w.topPixel
}

func (w *Widget) xAtOffset(row, offset int) int {
	r := w.rows[row]
	x := fixed.Int26_6(0)
	for o := r.start; o < offset && o < r.end; {
		ru, size := utf8.DecodeRuneInString(w.text[o:])
		x += w.charAdvance(o, ru)
		o += size
	}
	return w.leftMargin + x.Round() - w.hPixel
}

func (w *Widget) caretRect() image.Rectangle {
	p := w.LocationAtOffset(w.caret)
	return image.Rect(p.X, p.Y, p.X+1, p.Y+w.LineHeight())
}

//----------

// Paints the damaged area. Returns the painted rectangle.
func (w *Widget) PaintIfNeeded(img draw.Image) (image.Rectangle, bool) {
	if w.disposed || w.redrawOff || len(w.damage) == 0 {
		return image.Rectangle{}, false
	}
	var r image.Rectangle
	for _, d := range w.damage {
		r = r.Union(d)
	}
	w.damage = nil
	r = r.Intersect(w.ClientArea()).Intersect(img.Bounds())
	if r.Empty() {
		return r, false
	}

	dst := imageutil.SubImage(img, r)
	imageutil.FillRectangle(dst, r, w.bg)
	w.paintLineBackgrounds(dst, r)
	w.paintSelection(dst, r)
	w.paintText(dst, r)
	imageutil.FillRectangle(dst, w.caretRect().Intersect(r), w.fg)

	ev := &textpaint.PaintEvent{Img: dst, Rect: r}
	w.evReg.RunCallbacks(textpaint.WidgetEvIdPaint, ev)
	return r, true
}

func (w *Widget) paintLineBackgrounds(img draw.Image, r image.Rectangle) {
	lh := w.LineHeight()
	for line := w.LineIndex(r.Min.Y); line <= w.LineIndex(r.Max.Y-1); line++ {
		l := w.lines[line]
		ev := &textpaint.LineBackgroundEvent{
			LineOffset: l.start,
			LineText:   w.text[l.start:l.contentEnd],
		}
		w.evReg.RunCallbacks(textpaint.WidgetEvIdLineBackground, ev)
		if ev.Bg == nil {
			continue
		}
		y := w.rowY(l.row)
		lr := image.Rect(0, y, w.size.X, y+l.nrows*lh)
		imageutil.FillRectangle(img, lr.Intersect(r), ev.Bg)
	}
}

func (w *Widget) paintSelection(img draw.Image, r image.Rectangle) {
	lh := w.LineHeight()
	for o := w.selStart; o < w.selEnd; {
		ru, size := utf8.DecodeRuneInString(w.text[o:])
		row := w.rowAtOffset(o)
		x := w.xAtOffset(row, o)
		y := w.rowY(row)
		adv := w.charAdvance(o, ru).Round()
		cr := image.Rect(x, y, x+adv, y+lh)
		imageutil.FillRectangle(img, cr.Intersect(r), w.selBg)
		o += size
	}
}

func (w *Widget) paintText(img draw.Image, r image.Rectangle) {
	d := &font.Drawer{Dst: img, Face: w.ff.Face}
	baseline := w.ff.BaseLine()
	for row := w.rowAtY(r.Min.Y); row <= w.rowAtY(r.Max.Y-1); row++ {
		wr := w.rows[row]
		y := w.rowY(row)
		x := fixed.I(w.leftMargin - w.hPixel)
		for o := wr.start; o < wr.end; {
			ru, size := utf8.DecodeRuneInString(w.text[o:])
			adv := w.charAdvance(o, ru)
			if ru != '\t' && ru != '\r' && ru != '\n' {
				gx := x
				if sr := w.StyleAt(o); sr != nil && sr.Metrics != nil {
					gx += fixed.I(sr.Metrics.Width)
				}
				d.Src = image.NewUniform(w.charColor(o))
				d.Dot = fixed.Point26_6{X: gx, Y: fixed.I(y)}.Add(baseline)
				d.DrawString(string(ru))
			}
			x += adv
			o += size
		}
	}
}

func (w *Widget) charColor(offset int) color.Color {
	if w.selStart <= offset && offset < w.selEnd {
		return w.selFg
	}
	if sr := w.StyleAt(offset); sr != nil && sr.Foreground != nil {
		return sr.Foreground
	}
	return w.fg
}
