package core

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmigpin/textdeco/util/imageutil"
	"github.com/jmigpin/textdeco/util/textpaint"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Preferences file contents. Keys not present in the file keep their current values.
type Prefs struct {
	CursorLine CursorLinePrefs `toml:"cursorline" yaml:"cursorline"`
	Margin     MarginPrefs     `toml:"margin" yaml:"margin"`
	Whitespace WhitespacePrefs `toml:"whitespace" yaml:"whitespace"`
	View       ViewPrefs       `toml:"view" yaml:"view"`
	Font       FontPrefs       `toml:"font" yaml:"font"`
}

type CursorLinePrefs struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Color   string `toml:"color" yaml:"color"`
}

type MarginPrefs struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Column  int    `toml:"column" yaml:"column"`
	Color   string `toml:"color" yaml:"color"`
	Width   int    `toml:"width" yaml:"width"`
	Style   string `toml:"style" yaml:"style"` // "solid" or "dash"
}

type WhitespacePrefs struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`

	LeadingSpace  bool `toml:"leading_space" yaml:"leading_space"`
	EnclosedSpace bool `toml:"enclosed_space" yaml:"enclosed_space"`
	TrailingSpace bool `toml:"trailing_space" yaml:"trailing_space"`

	LeadingIdeographicSpace  bool `toml:"leading_ideographic_space" yaml:"leading_ideographic_space"`
	EnclosedIdeographicSpace bool `toml:"enclosed_ideographic_space" yaml:"enclosed_ideographic_space"`
	TrailingIdeographicSpace bool `toml:"trailing_ideographic_space" yaml:"trailing_ideographic_space"`

	LeadingTab  bool `toml:"leading_tab" yaml:"leading_tab"`
	EnclosedTab bool `toml:"enclosed_tab" yaml:"enclosed_tab"`
	TrailingTab bool `toml:"trailing_tab" yaml:"trailing_tab"`

	CarriageReturn bool `toml:"carriage_return" yaml:"carriage_return"`
	LineFeed       bool `toml:"line_feed" yaml:"line_feed"`

	Alpha int `toml:"alpha" yaml:"alpha"`
}

type ViewPrefs struct {
	Wrap       bool `toml:"wrap" yaml:"wrap"`
	TabWidth   int  `toml:"tabwidth" yaml:"tabwidth"`
	LeftMargin int  `toml:"leftmargin" yaml:"leftmargin"`
}

type FontPrefs struct {
	Name string  `toml:"name" yaml:"name"` // go font name, ttf filename, or "basic"
	Size float64 `toml:"size" yaml:"size"`
	DPI  float64 `toml:"dpi" yaml:"dpi"`
}

//----------

func DefaultPrefs(opt *Options) *Prefs {
	ws := textpaint.DefaultWhitespaceConfig()
	p := &Prefs{
		CursorLine: CursorLinePrefs{Enabled: true, Color: "#e8f2fe"},
		Margin: MarginPrefs{
			Enabled: true,
			Column:  80,
			Color:   "#c0c0c0",
			Width:   1,
			Style:   "solid",
		},
		Whitespace: WhitespacePrefs{
			LeadingSpace:             ws.LeadingSpace,
			EnclosedSpace:            ws.EnclosedSpace,
			TrailingSpace:            ws.TrailingSpace,
			LeadingIdeographicSpace:  ws.LeadingIdeographicSpace,
			EnclosedIdeographicSpace: ws.EnclosedIdeographicSpace,
			TrailingIdeographicSpace: ws.TrailingIdeographicSpace,
			LeadingTab:               ws.LeadingTab,
			EnclosedTab:              ws.EnclosedTab,
			TrailingTab:              ws.TrailingTab,
			CarriageReturn:           ws.CarriageReturn,
			LineFeed:                 ws.LineFeed,
			Alpha:                    int(ws.Alpha),
		},
		View: ViewPrefs{
			Wrap:       opt.Wrap,
			TabWidth:   opt.TabWidth,
			LeftMargin: opt.LeftMargin,
		},
		Font: FontPrefs{Name: opt.Font, Size: opt.FontSize, DPI: opt.DPI},
	}
	if p.View.TabWidth == 0 {
		p.View.TabWidth = 8
	}
	if p.Font.Size == 0 {
		p.Font.Size = 12
	}
	if p.Font.DPI == 0 {
		p.Font.DPI = 72
	}
	return p
}

//----------

// Decodes the file over p. The format is chosen by the extension (".toml", ".yaml", ".yml"). Unknown keys are errors.
func ReadPrefsFile(filename string, p *Prefs) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "prefs")
	}
	if err := DecodePrefs(b, filepath.Ext(filename), p); err != nil {
		return errors.Wrapf(err, "prefs: %v", filename)
	}
	return nil
}

func DecodePrefs(b []byte, ext string, p *Prefs) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		return dec.Decode(p)
	case ".yaml", ".yml":
		if len(bytes.TrimSpace(b)) == 0 {
			return nil // yaml decoder fails with io.EOF
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		return dec.Decode(p)
	}
	return errors.Errorf("unsupported prefs format: %q", ext)
}

//----------

func (p *Prefs) Validate() error {
	if _, err := imageutil.ParseColor(p.CursorLine.Color); err != nil {
		return errors.Wrap(err, "cursorline")
	}
	m := &p.Margin
	if _, err := imageutil.ParseColor(m.Color); err != nil {
		return errors.Wrap(err, "margin")
	}
	if m.Column < 0 {
		return errors.Errorf("margin: bad column: %v", m.Column)
	}
	if m.Width < 1 {
		return errors.Errorf("margin: bad width: %v", m.Width)
	}
	if _, err := m.lineStyle(); err != nil {
		return err
	}
	if a := p.Whitespace.Alpha; a < 0 || a > 255 {
		return errors.Errorf("whitespace: bad alpha: %v", a)
	}
	if p.View.TabWidth < 1 {
		return errors.Errorf("view: bad tabwidth: %v", p.View.TabWidth)
	}
	if p.View.LeftMargin < 0 {
		return errors.Errorf("view: bad leftmargin: %v", p.View.LeftMargin)
	}
	if p.Font.Size <= 0 || p.Font.DPI <= 0 {
		return errors.Errorf("font: bad size/dpi: %v/%v", p.Font.Size, p.Font.DPI)
	}
	return nil
}

//----------

func (m *MarginPrefs) lineStyle() (textpaint.LineStyle, error) {
	switch m.Style {
	case "", "solid":
		return textpaint.LineSolid, nil
	case "dash":
		return textpaint.LineDash, nil
	}
	return 0, errors.Errorf("margin: bad style: %q", m.Style)
}

func (w *WhitespacePrefs) config() textpaint.WhitespaceConfig {
	return textpaint.WhitespaceConfig{
		LeadingSpace:             w.LeadingSpace,
		EnclosedSpace:            w.EnclosedSpace,
		TrailingSpace:            w.TrailingSpace,
		LeadingIdeographicSpace:  w.LeadingIdeographicSpace,
		EnclosedIdeographicSpace: w.EnclosedIdeographicSpace,
		TrailingIdeographicSpace: w.TrailingIdeographicSpace,
		LeadingTab:               w.LeadingTab,
		EnclosedTab:              w.EnclosedTab,
		TrailingTab:              w.TrailingTab,
		CarriageReturn:           w.CarriageReturn,
		LineFeed:                 w.LineFeed,
		Alpha:                    uint8(w.Alpha),
	}
}
