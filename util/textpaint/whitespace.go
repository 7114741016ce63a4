package textpaint

import (
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"github.com/jmigpin/textdeco/util/evreg"
	"github.com/jmigpin/textdeco/util/fontutil"
	"github.com/jmigpin/textdeco/util/imageutil"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	spaceSign            = '·'
	ideographicSpaceSign = '°'
	tabSign              = '»'
	carriageReturnSign   = '¤'
	lineFeedSign         = '¶'
)

const ideographicSpace = '\u3000'

type WhitespaceConfig struct {
	LeadingSpace  bool
	EnclosedSpace bool
	TrailingSpace bool

	LeadingIdeographicSpace  bool
	EnclosedIdeographicSpace bool
	TrailingIdeographicSpace bool

	LeadingTab  bool
	EnclosedTab bool
	TrailingTab bool

	CarriageReturn bool
	LineFeed       bool

	Alpha uint8
}

func DefaultWhitespaceConfig() WhitespaceConfig {
	return WhitespaceConfig{
		LeadingSpace:             true,
		EnclosedSpace:            true,
		TrailingSpace:            true,
		LeadingIdeographicSpace:  true,
		EnclosedIdeographicSpace: true,
		TrailingIdeographicSpace: true,
		LeadingTab:               true,
		EnclosedTab:              true,
		TrailingTab:              true,
		CarriageReturn:           true,
		LineFeed:                 true,
		Alpha:                    80,
	}
}

//----------

// Draws glyphs over whitespace characters.
type WhitespacePainter struct {
	viewer   Viewer
	cfg      WhitespaceConfig
	active   bool
	paintReg *evreg.Regist

	monoFace *fontutil.FontFace // face of the cached mono value
	mono     bool
}

func NewWhitespacePainter(v Viewer, cfg WhitespaceConfig) *WhitespacePainter {
	return &WhitespacePainter{viewer: v, cfg: cfg}
}

func (p *WhitespacePainter) Config() WhitespaceConfig {
	return p.cfg
}

func (p *WhitespacePainter) SetConfig(cfg WhitespaceConfig) {
	p.cfg = cfg
}

func (p *WhitespacePainter) SetPositionManager(pm *PositionManager) {}

//----------

func (p *WhitespacePainter) Paint(reason Reason) {
	if p.viewer.Document() == nil {
		p.Deactivate(false)
		return
	}
	w := p.viewer.TextWidget()
	if !p.active {
		p.active = true
		p.paintReg = w.EvReg().Add(WidgetEvIdPaint, p.onPaint)
		w.Redraw()
		return
	}
	if reason == Configuration || reason == Internal {
		w.Redraw()
	}
}

func (p *WhitespacePainter) Deactivate(redraw bool) {
	if !p.active {
		return
	}
	p.active = false
	p.paintReg.Unregister()
	p.paintReg = nil
	if redraw {
		p.viewer.TextWidget().Redraw()
	}
}

func (p *WhitespacePainter) Dispose() {
	p.Deactivate(false)
}

//----------

func (p *WhitespacePainter) onPaint(ev0 any) {
	ev := ev0.(*PaintEvent)
	w := p.viewer.TextWidget()
	if w.CharCount() == 0 || ev.Rect.Empty() {
		return
	}
	startLine := w.LineIndex(ev.Rect.Min.Y)
	endLine := w.LineIndex(ev.Rect.Max.Y - 1)
	for line := startLine; line <= endLine; line++ {
		p.drawLine(ev.Img, ev.Rect, line)
	}
}

func (p *WhitespacePainter) drawLine(img draw.Image, r image.Rectangle, line int) {
	w := p.viewer.TextWidget()
	lineOffset := w.OffsetAtLine(line)
	lineEnd := w.CharCount()
	if line+1 < w.LineCount() {
		lineEnd = w.OffsetAtLine(line + 1)
	}
	lineText := w.TextRange(lineOffset, lineEnd-lineOffset)

	// visible part of the line
	start, end := 0, len(lineText)
	if !w.WordWrap() {
		y := w.LinePixel(line)
		contentLen := len(lineText)
		for contentLen > 0 && isLineDelimiter(lineText[contentLen-1]) {
			contentLen--
		}
		endOfLine := w.LocationAtOffset(lineOffset + contentLen)
		if o, ok := w.OffsetAtLocation(image.Pt(r.Min.X, y)); ok {
			start = runeStart(lineText, max(o-lineOffset-1, 0))
		}
		if r.Max.X < endOfLine.X {
			if o, ok := w.OffsetAtLocation(image.Pt(r.Max.X, y)); ok {
				end = min(o-lineOffset+1, len(lineText))
			}
		}
	}
	if end > start {
		p.drawCharRange(img, lineOffset, lineText, start, end)
	}
}

// Start and end are offsets in lineText; lineText includes the line delimiter.
func (p *WhitespacePainter) drawCharRange(img draw.Image, lineOffset int, lineText string, start, end int) {
	w := p.viewer.TextWidget()
	textBegin, textEnd := textBounds(lineText)
	mono := p.isMonospaced(w.FontFace())

	var buf []rune
	bufOffset, bufEnd := 0, 0
	var bufColor color.RGBA
	lastRune := rune(0)

	flush := func(eol bool) {
		if len(buf) == 0 {
			return
		}
		if !eol || !p.isFoldedLine(w.LineAtOffset(bufOffset)) {
			p.drawGlyphs(img, bufOffset, string(buf), bufColor)
		}
		buf = buf[:0]
	}

	for i := start; i < end; {
		ru, size := utf8.DecodeRuneInString(lineText[i:])
		wo := lineOffset + i

		sign, ok := p.sign(ru, i, textBegin, textEnd)
		if !ok {
			// a cr glyph waiting for its (hidden) lf
			flush(ru == '\n' && lastRune == '\r' && bufEnd == wo)
			i += size
			continue
		}
		crlf := ru == '\r' && i+1 < end && lineText[i+1] == '\n'
		eol := ru == '\n' || (ru == '\r' && !crlf)

		c := imageutil.RgbaColor(p.glyphColor(wo))
		// line end glyphs only join each other (folded lines hide them)
		join := false
		if len(buf) > 0 && bufEnd == wo {
			if ru == '\r' || ru == '\n' {
				join = ru == '\n' && lastRune == '\r'
			} else if mono && c == bufColor && lastRune != '\t' && ru != '\t' && !hasMetrics(w.StyleAt(wo)) {
				join = lastRune != '\r' && lastRune != '\n'
			}
		}
		if !join {
			flush(false)
			bufOffset = wo
			bufColor = c
		}
		buf = append(buf, sign)
		bufEnd = wo + size
		lastRune = ru
		if eol {
			flush(true)
		}
		i += size
	}
	flush(false)
}

func (p *WhitespacePainter) sign(ru rune, i, textBegin, textEnd int) (rune, bool) {
	cfg := &p.cfg
	switch ru {
	case ' ':
		return spaceSign, showInZone(i, textBegin, textEnd, cfg.LeadingSpace, cfg.EnclosedSpace, cfg.TrailingSpace)
	case ideographicSpace:
		return ideographicSpaceSign, showInZone(i, textBegin, textEnd, cfg.LeadingIdeographicSpace, cfg.EnclosedIdeographicSpace, cfg.TrailingIdeographicSpace)
	case '\t':
		return tabSign, showInZone(i, textBegin, textEnd, cfg.LeadingTab, cfg.EnclosedTab, cfg.TrailingTab)
	case '\r':
		return carriageReturnSign, cfg.CarriageReturn
	case '\n':
		return lineFeedSign, cfg.LineFeed
	}
	return 0, false
}

func (p *WhitespacePainter) glyphColor(offset int) color.Color {
	w := p.viewer.TextWidget()
	s, e := w.Selection()
	if s <= offset && offset < e {
		return w.SelectionForeground()
	}
	if sr := w.StyleAt(offset); sr != nil && sr.Foreground != nil {
		return sr.Foreground
	}
	return w.Foreground()
}

func (p *WhitespacePainter) drawGlyphs(img draw.Image, offset int, s string, c color.Color) {
	w := p.viewer.TextWidget()
	ff := w.FontFace()
	loc := w.LocationAtOffset(offset)
	x := loc.X
	// space reserved before the char (ex: inline annotations)
	if sr := w.StyleAt(offset); hasMetrics(sr) {
		x += sr.Metrics.Width
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(imageutil.AlphaColor(c, p.cfg.Alpha)),
		Face: ff.Face,
		Dot:  fixed.P(x, loc.Y).Add(ff.BaseLine()),
	}
	d.DrawString(s)
}

// Line end glyphs are not drawn if the next lines are folded into this one.
func (p *WhitespacePainter) isFoldedLine(widgetLine int) bool {
	pv, ok := p.viewer.(ProjectionViewer)
	if !ok {
		return false
	}
	modelLine := pv.WidgetLine2ModelLine(widgetLine)
	if modelLine < 0 {
		return false
	}
	return pv.ModelLine2WidgetLine(modelLine+1) == -1
}

// Glyphs can be drawn in runs if they all have the width of a space.
func (p *WhitespacePainter) isMonospaced(ff *fontutil.FontFace) bool {
	if ff == p.monoFace {
		return p.mono
	}
	p.monoFace = ff
	p.mono = ff.IsMonospaced()
	if p.mono {
		adv := ff.RuneAdvance(' ')
		for _, ru := range []rune{spaceSign, ideographicSpaceSign, tabSign, carriageReturnSign, lineFeedSign} {
			if ff.RuneAdvance(ru) != adv {
				p.mono = false
				break
			}
		}
	}
	return p.mono
}

//----------

// Index of the first and last non-whitespace char, or -1 if the line is blank.
func textBounds(s string) (int, int) {
	begin, end := -1, -1
	for i, ru := range s {
		if isWhitespace(ru) {
			continue
		}
		if begin < 0 {
			begin = i
		}
		end = i
	}
	return begin, end
}

func showInZone(i, textBegin, textEnd int, leading, enclosed, trailing bool) bool {
	switch {
	case textBegin < 0:
		return leading || enclosed || trailing
	case i < textBegin:
		return leading
	case i < textEnd:
		return enclosed
	default:
		return trailing
	}
}

func isWhitespace(ru rune) bool {
	switch ru {
	case ' ', ideographicSpace, '\t', '\r', '\n':
		return true
	}
	return false
}

func isLineDelimiter(b byte) bool {
	return b == '\r' || b == '\n'
}

func runeStart(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func hasMetrics(sr *StyleRange) bool {
	return sr != nil && sr.Metrics != nil
}
