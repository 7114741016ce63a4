package imageutil

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/colornames"
)

func TestDrawVLineDash(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	FillRectangle(img, img.Bounds(), color.White)
	DrawVLine(img, 3, 0, 10, 2, color.Black, 2, img.Bounds())

	black := color.RGBA{0, 0, 0, 255}
	for y := 0; y < 10; y++ {
		on := (y/2)%2 == 0
		for x := 3; x < 5; x++ {
			got := img.RGBAAt(x, y) == black
			if got != on {
				t.Fatalf("%v,%v: %v", x, y, got)
			}
		}
	}
	if img.RGBAAt(2, 0) == black || img.RGBAAt(5, 0) == black {
		t.Fatal("line too wide")
	}
}

func TestDrawVLineClip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	clip := image.Rect(0, 5, 10, 10)
	DrawVLine(img, 1, 0, 10, 1, color.Black, 0, clip)
	if img.RGBAAt(1, 4).A != 0 || img.RGBAAt(1, 5).A != 255 {
		t.Fatal(img.RGBAAt(1, 4), img.RGBAAt(1, 5))
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#102030")
	if err != nil || RgbaColor(c) != (color.RGBA{0x10, 0x20, 0x30, 0xff}) {
		t.Fatal(c, err)
	}
	c, err = ParseColor("#ff000080")
	if err != nil {
		t.Fatal(err)
	}
	n := c.(color.NRGBA)
	if n != (color.NRGBA{0xff, 0, 0, 0x80}) {
		t.Fatal(n)
	}
	c, err = ParseColor("LightYellow")
	if err != nil || c != colornames.Lightyellow {
		t.Fatal(c, err)
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Fatal("expecting error")
	}
	if _, err := ParseColor("notacolor"); err == nil {
		t.Fatal("expecting error")
	}
}
