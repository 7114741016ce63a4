package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

func DrawUniformMask(
	dst draw.Image,
	r image.Rectangle,
	c color.Color,
	mask image.Image, maskp image.Point,
	op draw.Op,
) {
	if c == nil {
		return
	}
	src := image.NewUniform(c)
	draw.DrawMask(dst, r, src, image.Point{}, mask, maskp, op)
}

func DrawUniform(dst draw.Image, r image.Rectangle, c color.Color, op draw.Op) {
	DrawUniformMask(dst, r, c, nil, image.Point{}, op)
}

//----------

func FillRectangle(img draw.Image, r image.Rectangle, c color.Color) {
	DrawUniform(img, r, c, draw.Src)
}

//----------

// Vertical line from y0 to y1 (exclusive) with the given width, starting at x. A dash>0 alternates dash pixels on and dash pixels off, counting from y0. Only the part inside clip is drawn.
func DrawVLine(dst draw.Image, x, y0, y1, width int, c color.Color, dash int, clip image.Rectangle) {
	if width < 1 {
		width = 1
	}
	r := image.Rect(x, y0, x+width, y1)
	if dash <= 0 {
		DrawUniform(dst, r.Intersect(clip), c, draw.Over)
		return
	}
	for y := y0; y < y1; y += 2 * dash {
		r2 := image.Rect(x, y, x+width, min(y+dash, y1))
		r2 = r2.Intersect(clip)
		if r2.Empty() {
			continue
		}
		DrawUniform(dst, r2, c, draw.Over)
	}
}

//----------

// Image restricted to r if the image supports it (ex: *image.RGBA).
func SubImage(img draw.Image, r image.Rectangle) draw.Image {
	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		if u, ok := si.SubImage(r).(draw.Image); ok {
			return u
		}
	}
	return img
}
