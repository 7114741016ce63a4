package textpaint

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/jmigpin/textdeco/util/evreg"
	"github.com/jmigpin/textdeco/util/fontutil"
	"github.com/jmigpin/textdeco/util/textdoc"
)

// Implemented by *textdoc.Document.
type Document interface {
	Len() int
	NumberOfLines() int
	LineOfOffset(offset int) (int, error)
	LineOffset(line int) (int, error)
	LineLength(line int) (int, error)
	EvReg() *evreg.Register

	AddPositionCategory() *textdoc.Category
	RemovePositionCategory(c *textdoc.Category) error
	AddPosition(c *textdoc.Category, p *textdoc.Position) error
	RemovePosition(c *textdoc.Category, p *textdoc.Position) error
	AddPositionUpdater(u textdoc.PositionUpdater)
	RemovePositionUpdater(u textdoc.PositionUpdater)
}

//----------

type Viewer interface {
	Document() Document // nil if there is no input
	TextWidget() Widget
	VisibleRegion() textdoc.Region
	EvReg() *evreg.Register
	// Safe to call from any goroutine. The func runs later on the ui goroutine.
	RunOnUIThread(func())
}

// Viewer that shows a projection of the document. The methods return -1 when the offset/line is not visible.
type ProjectionViewer interface {
	Viewer
	ModelOffset2WidgetOffset(offset int) int
	WidgetOffset2ModelOffset(offset int) int
	ModelLine2WidgetLine(line int) int
	WidgetLine2ModelLine(line int) int
}

const (
	ViewerEvIdSelectionChanged   = iota // ev=*SelectionEvent
	ViewerEvIdTextChanged               // ev=*TextEvent
	ViewerEvIdKeyDown                   // ev=*event.KeyDown
	ViewerEvIdMouseDown                 // ev=*event.MouseDown
	ViewerEvIdInputAboutToChange        // ev=*InputEvent
	ViewerEvIdInputChanged              // ev=*InputEvent
)

// Widget offsets.
type SelectionEvent struct {
	Start, End int
}

// Widget offsets.
type TextEvent struct {
	Offset        int
	Length        int // replaced length
	Text          string
	RedrawEnabled bool // viewer redraw state
}

type InputEvent struct {
	Old, New Document
}

//----------

// Pixel text widget. Offsets are widget offsets, locations are relative to the client area.
type Widget interface {
	IsDisposed() bool
	EvReg() *evreg.Register

	CharCount() int
	LineCount() int
	TextRange(offset, n int) string
	OffsetAtLine(line int) int
	LineAtOffset(offset int) int
	LineIndex(y int) int
	LinePixel(line int) int
	LocationAtOffset(offset int) image.Point
	OffsetAtLocation(p image.Point) (int, bool)
	LineHeightAt(offset int) int
	TextBounds(start, end int) image.Rectangle // end inclusive

	CaretOffset() int
	Selection() (int, int)
	ClientArea() image.Rectangle
	HorizontalPixel() int
	LeftMargin() int
	WordWrap() bool
	FontFace() *fontutil.FontFace
	Foreground() color.Color
	SelectionForeground() color.Color
	StyleAt(offset int) *StyleRange // nil if none

	Redraw()
	RedrawRect(r image.Rectangle)
}

const (
	WidgetEvIdPaint          = iota // ev=*PaintEvent
	WidgetEvIdLineBackground        // ev=*LineBackgroundEvent
)

// Img is already clipped to Rect.
type PaintEvent struct {
	Img  draw.Image
	Rect image.Rectangle
}

// Callbacks set Bg to have the line background painted.
type LineBackgroundEvent struct {
	LineOffset int
	LineText   string
	Bg         color.Color
}

//----------

type StyleRange struct {
	Start, Length int
	Foreground    color.Color // can be nil
	Background    color.Color // can be nil
	Metrics       *GlyphMetrics
}

func (sr *StyleRange) End() int { return sr.Start + sr.Length }

// Reserves space before each char of the style range (ex: inline annotations).
type GlyphMetrics struct {
	Width int
}
