package fontutil

import (
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var FontsMan = NewFontsManager()

//----------

type FontsManager struct {
	mu         sync.Mutex
	fontsCache map[string]*Font
}

func NewFontsManager() *FontsManager {
	fm := &FontsManager{}
	fm.ClearFontsCache()
	return fm
}

func (fm *FontsManager) ClearFontsCache() {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.fontsCache = map[string]*Font{}
}

func (fm *FontsManager) Font(ttf []byte) (*Font, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	f, ok := fm.fontsCache[string(ttf)]
	if ok {
		return f, nil
	}
	f, err := NewFont(ttf)
	if err != nil {
		return nil, err
	}
	fm.fontsCache[string(ttf)] = f
	return f, nil
}

// Name can be one of the go fonts ("regular", "medium", "mono") or a ttf filename.
func (fm *FontsManager) NamedFont(name string) (*Font, error) {
	switch name {
	case "", "mono":
		return fm.Font(gomono.TTF)
	case "regular":
		return fm.Font(goregular.TTF)
	case "medium":
		return fm.Font(gomedium.TTF)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "font")
	}
	return fm.Font(b)
}

//----------

type FaceOptions struct {
	Size     float64 // in points
	DPI      float64
	TabWidth int
}

type Font struct {
	Font       *truetype.Font
	mu         sync.Mutex
	facesCache map[FaceOptions]*FontFace
}

func NewFont(ttf []byte) (*Font, error) {
	font, err := truetype.Parse(ttf)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}
	f := &Font{Font: font}
	f.facesCache = map[FaceOptions]*FontFace{}
	return f, nil
}

func (f *Font) FontFace(opt FaceOptions) *FontFace {
	if opt.Size == 0 {
		opt.Size = 12
	}
	if opt.DPI == 0 {
		opt.DPI = 72
	}
	if opt.TabWidth == 0 {
		opt.TabWidth = 8
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	ff, ok := f.facesCache[opt]
	if ok {
		return ff
	}
	topt := &truetype.Options{
		Size:    opt.Size,
		DPI:     opt.DPI,
		Hinting: font.HintingFull,
	}
	face := truetype.NewFace(f.Font, topt)
	ff = NewFontFace(face, opt.TabWidth)
	ff.Size = opt.Size
	f.facesCache[opt] = ff
	return ff
}
