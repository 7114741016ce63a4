package fontutil

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Caches glyph masks, advances, bounds and kerns. Safe for concurrent use.
type FaceCache struct {
	font.Face
	mu  sync.RWMutex
	gc  map[rune]*GlyphCache
	gac map[rune]*GlyphAdvanceCache
	gbc map[rune]*GlyphBoundsCache
	kc  map[[2]rune]fixed.Int26_6 // kern cache
}

func NewFaceCache(face font.Face) *FaceCache {
	fc := &FaceCache{Face: face}
	fc.gc = make(map[rune]*GlyphCache)
	fc.gac = make(map[rune]*GlyphAdvanceCache)
	fc.gbc = make(map[rune]*GlyphBoundsCache)
	fc.kc = make(map[[2]rune]fixed.Int26_6)
	return fc
}

func (fc *FaceCache) Glyph(dot fixed.Point26_6, ru rune) (
	dr image.Rectangle,
	mask image.Image,
	maskp image.Point,
	advance fixed.Int26_6,
	ok bool,
) {
	fc.mu.RLock()
	gc, ok := fc.gc[ru]
	fc.mu.RUnlock()
	if !ok {
		fc.mu.Lock()
		gc = NewGlyphCache(fc.Face, ru)
		fc.gc[ru] = gc
		fc.mu.Unlock()
	}
	p := image.Point{dot.X.Floor(), dot.Y.Floor()}
	dr2 := gc.dr.Add(p)
	return dr2, gc.mask, gc.maskp, gc.advance, gc.ok
}

func (fc *FaceCache) GlyphAdvance(ru rune) (advance fixed.Int26_6, ok bool) {
	fc.mu.RLock()
	gac, ok := fc.gac[ru]
	fc.mu.RUnlock()
	if !ok {
		fc.mu.Lock()
		gac = &GlyphAdvanceCache{}
		gac.advance, gac.ok = fc.Face.GlyphAdvance(ru)
		fc.gac[ru] = gac
		fc.mu.Unlock()
	}
	return gac.advance, gac.ok
}

func (fc *FaceCache) GlyphBounds(ru rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	fc.mu.RLock()
	gbc, ok := fc.gbc[ru]
	fc.mu.RUnlock()
	if !ok {
		fc.mu.Lock()
		gbc = &GlyphBoundsCache{}
		gbc.bounds, gbc.advance, gbc.ok = fc.Face.GlyphBounds(ru)
		fc.gbc[ru] = gbc
		fc.mu.Unlock()
	}
	return gbc.bounds, gbc.advance, gbc.ok
}

func (fc *FaceCache) Kern(r0, r1 rune) fixed.Int26_6 {
	i := [2]rune{r0, r1}
	fc.mu.RLock()
	k, ok := fc.kc[i]
	fc.mu.RUnlock()
	if !ok {
		fc.mu.Lock()
		k = fc.Face.Kern(r0, r1)
		fc.kc[i] = k
		fc.mu.Unlock()
	}
	return k
}

//----------

type GlyphCache struct {
	dr      image.Rectangle
	mask    image.Image
	maskp   image.Point
	advance fixed.Int26_6
	ok      bool
}

func NewGlyphCache(face font.Face, ru rune) *GlyphCache {
	var zeroDot fixed.Point26_6 // always use zero
	dr, mask, maskp, adv, ok := face.Glyph(zeroDot, ru)

	// the truetype face reuses its mask buffer between calls
	if ok {
		mask = copyMask(mask)
	}

	return &GlyphCache{dr, mask, maskp, adv, ok}
}

type GlyphAdvanceCache struct {
	advance fixed.Int26_6
	ok      bool
}

type GlyphBoundsCache struct {
	bounds  fixed.Rectangle26_6
	advance fixed.Int26_6
	ok      bool
}

//----------

func copyMask(mask image.Image) image.Image {
	a, ok := mask.(*image.Alpha)
	if !ok {
		return mask
	}
	alpha := *a // copy structure
	pix := make([]uint8, len(alpha.Pix))
	copy(pix, alpha.Pix)
	alpha.Pix = pix
	return &alpha
}
