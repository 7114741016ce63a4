package testutil

import (
	"fmt"
	"image"
	"image/color"
)

func SameColor(c1, c2 color.Color) bool {
	r1, g1, b1, a1 := c1.RGBA()
	r2, g2, b2, a2 := c2.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// Error reports the first different pixel and the number of differences.
func CompareImgs(img1, img2 image.Image) error {
	if img1.Bounds() != img2.Bounds() {
		return fmt.Errorf("bounds: %v %v", img1.Bounds(), img2.Bounds())
	}
	b := img1.Bounds()
	nFails := 0
	first := image.Point{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !SameColor(img1.At(x, y), img2.At(x, y)) {
				if nFails == 0 {
					first = image.Point{x, y}
				}
				nFails++
			}
		}
	}
	if nFails > 0 {
		c1 := color.RGBAModel.Convert(img1.At(first.X, first.Y))
		c2 := color.RGBAModel.Convert(img2.At(first.X, first.Y))
		return fmt.Errorf("colors: xy=%v: %v %v (nfails: %v)", first, c1, c2, nFails)
	}
	return nil
}
