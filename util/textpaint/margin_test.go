package textpaint_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/jmigpin/textdeco/util/testutil"
	"github.com/jmigpin/textdeco/util/textpaint"
)

func TestMarginRulerX(t *testing.T) {
	v, _, ui := newTestViewer("")
	w := v.Widget()
	w.SetLeftMargin(2)
	w.SetSize(image.Point{700, 130})

	m := textpaint.NewPaintManager(v)
	mp := textpaint.NewMarginPainter(v)
	red := color.RGBA{255, 0, 0, 255}
	mp.SetMarginRulerColor(red)
	m.AddPainter(mp)
	ui.RunPending()

	img := ui.Image()
	if x, ok := mp.RulerX(); !ok || x != 562 {
		t.Fatal(x, ok)
	}
	if !testutil.SameColor(img.At(562, 50), red) || testutil.SameColor(img.At(563, 50), red) {
		t.Fatal("ruler not at 562")
	}

	w.SetHorizontalPixel(100)
	ui.RunPending()
	if x, ok := mp.RulerX(); !ok || x != 462 {
		t.Fatal(x, ok)
	}
	if !testutil.SameColor(img.At(462, 50), red) || testutil.SameColor(img.At(562, 50), red) {
		t.Fatal("ruler not at 462")
	}

	w.SetHorizontalPixel(600)
	ui.RunPending()
	if _, ok := mp.RulerX(); ok {
		t.Fatal("ruler visible")
	}
	for x := 0; x < 700; x++ {
		if testutil.SameColor(img.At(x, 50), red) {
			t.Fatal("ruler painted at", x)
		}
	}
}

func TestMarginStyle(t *testing.T) {
	v, _, ui := newTestViewer("")
	m := textpaint.NewPaintManager(v)
	mp := textpaint.NewMarginPainter(v)
	red := color.RGBA{255, 0, 0, 255}
	mp.SetMarginRulerColor(red)
	mp.SetMarginRulerColumn(10)
	m.AddPainter(mp)
	ui.RunPending()

	img := ui.Image()
	if !testutil.SameColor(img.At(70, 1), red) || !testutil.SameColor(img.At(70, 4), red) {
		t.Fatal("expecting solid line")
	}

	mp.SetMarginRulerStyle(textpaint.LineDash)
	mp.SetMarginRulerWidth(2)
	mp.Initialize()
	ui.RunPending()
	// dash of 6 for a width of 2
	if !testutil.SameColor(img.At(70, 1), red) || !testutil.SameColor(img.At(71, 1), red) {
		t.Fatal("expecting dash")
	}
	if testutil.SameColor(img.At(70, 7), red) {
		t.Fatal("expecting gap")
	}
	if !testutil.SameColor(img.At(70, 13), red) {
		t.Fatal("expecting dash")
	}

	m.RemovePainter(mp)
	ui.RunPending()
	if testutil.SameColor(img.At(70, 1), red) {
		t.Fatal("ruler not removed")
	}
	if v.Widget().EvReg().NCallbacks(textpaint.WidgetEvIdPaint) != 0 {
		t.Fatal("paint callback not removed")
	}
}
