package imageutil

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

func RgbaColor(c color.Color) color.RGBA {
	if u, ok := c.(color.RGBA); ok {
		return u
	} else {
		return convertToRgbaColor(c)
	}
}
func convertToRgbaColor(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{
		uint8(r >> 8),
		uint8(g >> 8),
		uint8(b >> 8),
		uint8(a >> 8),
	}
}

//----------

func RgbaFromInt(u int) color.RGBA {
	v := u & 0xffffff
	r := uint8((v << 0) >> 16)
	g := uint8((v << 8) >> 16)
	b := uint8((v << 16) >> 16)
	return color.RGBA{r, g, b, 255}
}

// Same color with the alpha replaced (non-premultiplied).
func AlphaColor(c color.Color, alpha uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = alpha
	return n
}

//----------

// Accepts "#rrggbb", "#rrggbbaa" or an svg color name ("lightyellow").
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		h := s[1:]
		if len(h) != 6 && len(h) != 8 {
			return nil, errors.Errorf("bad color: %q", s)
		}
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "bad color: %q", s)
		}
		if len(h) == 6 {
			return RgbaFromInt(int(v)), nil
		}
		c := RgbaFromInt(int(v >> 8))
		return AlphaColor(c, uint8(v&0xff)), nil
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return nil, errors.Errorf("unknown color name: %q", s)
	}
	return c, nil
}
