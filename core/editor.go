package core

import (
	"image"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/jmigpin/textdeco/core/fswatcher"
	"github.com/jmigpin/textdeco/util/fontutil"
	"github.com/jmigpin/textdeco/util/imageutil"
	"github.com/jmigpin/textdeco/util/textdoc"
	"github.com/jmigpin/textdeco/util/textpaint"
	"github.com/jmigpin/textdeco/util/textview"
	"github.com/jmigpin/textdeco/util/uiutil"
	"github.com/pkg/errors"
	"golang.org/x/image/font/basicfont"
)

// Viewer with the decorations configured from options and the preferences file.
type Editor struct {
	UI         *uiutil.BasicUI
	Viewer     *textview.Viewer
	PaintMan   *textpaint.PaintManager
	CursorLine *textpaint.CursorLinePainter
	Margin     *textpaint.MarginPainter
	Whitespace *textpaint.WhitespacePainter

	OnReload func(filename string, err error) // runs on the ui goroutine after a watched file reload

	opt        *Options
	prefs      *Prefs
	watchers   []*fswatcher.FileWatcher
	basicFaces map[int]*fontutil.FontFace // by tab width
}

func NewEditor(opt *Options) (*Editor, error) {
	ed := &Editor{opt: opt, basicFaces: map[int]*fontutil.FontFace{}}

	prefs, err := ed.readPrefs()
	if err != nil {
		return nil, err
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	ff, err := ed.fontFace(prefs)
	if err != nil {
		return nil, err
	}

	size := image.Point{opt.Width, opt.Height}
	if size.X <= 0 || size.Y <= 0 {
		size = image.Point{640, 480}
	}
	ed.UI = uiutil.NewBasicUI(size)

	w := textview.NewWidget(ff)
	w.SetSize(size)
	ed.Viewer = textview.NewViewer(w, ed.UI)
	ed.UI.RootNode = ed.Viewer
	ed.UI.Painter = w

	ed.PaintMan = textpaint.NewPaintManager(ed.Viewer)
	ed.CursorLine = textpaint.NewCursorLinePainter(ed.Viewer)
	ed.Margin = textpaint.NewMarginPainter(ed.Viewer)
	ed.Whitespace = textpaint.NewWhitespacePainter(ed.Viewer, textpaint.DefaultWhitespaceConfig())

	if err := ed.ApplyPrefs(prefs); err != nil {
		return nil, err
	}
	return ed, nil
}

func (ed *Editor) Close() error {
	var err error
	for _, fw := range ed.watchers {
		if err2 := fw.Close(); err2 != nil && err == nil {
			err = err2
		}
	}
	ed.watchers = nil
	ed.PaintMan.Dispose()
	ed.Viewer.Widget().Dispose()
	ed.UI.Close()
	return err
}

//----------

func (ed *Editor) LoadFile(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "load file")
	}
	ed.Viewer.SetDocument(textdoc.NewDocument(string(b)))
	return ed.applyViewOptions()
}

func (ed *Editor) SetDocument(doc *textdoc.Document) {
	ed.Viewer.SetDocument(doc)
}

func (ed *Editor) applyViewOptions() error {
	for _, f := range ed.opt.Folds.Folds() {
		if err := ed.Viewer.Fold(f.Start, f.End); err != nil {
			return errors.Wrapf(err, "fold %v", f)
		}
	}
	if ed.opt.Caret > 0 {
		wo := ed.Viewer.ModelOffset2WidgetOffset(ed.opt.Caret)
		if wo < 0 {
			return errors.Errorf("caret not visible: %v", ed.opt.Caret)
		}
		ed.Viewer.SetCaretOffset(wo, false)
	}
	return nil
}

//----------

func (ed *Editor) Prefs() *Prefs {
	return ed.prefs
}

func (ed *Editor) ApplyPrefs(p *Prefs) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ff, err := ed.fontFace(p)
	if err != nil {
		return err
	}

	w := ed.Viewer.Widget()
	if w.FontFace() != ff {
		w.SetFontFace(ff)
	}
	if w.WordWrap() != p.View.Wrap {
		w.SetWordWrap(p.View.Wrap)
	}
	if w.LeftMargin() != p.View.LeftMargin {
		w.SetLeftMargin(p.View.LeftMargin)
	}

	// colors were checked by validate
	hc, _ := imageutil.ParseColor(p.CursorLine.Color)
	ed.CursorLine.SetHighlightColor(hc)
	ed.enablePainter(ed.CursorLine, p.CursorLine.Enabled)

	mc, _ := imageutil.ParseColor(p.Margin.Color)
	style, _ := p.Margin.lineStyle()
	ed.Margin.SetMarginRulerColumn(p.Margin.Column)
	ed.Margin.SetMarginRulerColor(mc)
	ed.Margin.SetMarginRulerWidth(p.Margin.Width)
	ed.Margin.SetMarginRulerStyle(style)
	ed.enablePainter(ed.Margin, p.Margin.Enabled)
	if p.Margin.Enabled {
		ed.Margin.Initialize()
	}

	ed.Whitespace.SetConfig(p.Whitespace.config())
	ed.enablePainter(ed.Whitespace, p.Whitespace.Enabled)

	ed.prefs = p
	ed.PaintMan.Paint(textpaint.Configuration)
	return nil
}

func (ed *Editor) enablePainter(p textpaint.Painter, on bool) {
	if on {
		ed.PaintMan.AddPainter(p)
	} else {
		ed.PaintMan.RemovePainter(p)
	}
}

func (ed *Editor) ReloadPrefs() error {
	p, err := ed.readPrefs()
	if err != nil {
		return err
	}
	return ed.ApplyPrefs(p)
}

func (ed *Editor) readPrefs() (*Prefs, error) {
	p := DefaultPrefs(ed.opt)
	if ed.opt.Prefs != "" {
		if err := ReadPrefsFile(ed.opt.Prefs, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

//----------

// Reloads the preferences file when it changes.
func (ed *Editor) WatchPrefs() error {
	if ed.opt.Prefs == "" {
		return errors.New("watch: no preferences file")
	}
	return ed.watch(ed.opt.Prefs, ed.ReloadPrefs)
}

// Reloads the document from the file when it changes. The document is edited in place so the decorations follow the edit.
func (ed *Editor) WatchFile(filename string) error {
	return ed.watch(filename, func() error {
		return ed.reloadDocument(filename)
	})
}

func (ed *Editor) reloadDocument(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "reload")
	}
	doc := ed.Viewer.TextDocument()
	if doc == nil {
		ed.Viewer.SetDocument(textdoc.NewDocument(string(b)))
		return nil
	}
	if doc.Str() == string(b) {
		return nil
	}
	return doc.Set(string(b))
}

// The reload func runs on the ui goroutine.
func (ed *Editor) watch(filename string, reload func() error) error {
	w, err := fswatcher.NewFsnWatcher()
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	onChange := func(name string) { // watcher goroutine
		ed.UI.RunOnUIThread(func() {
			err := reload()
			if err != nil {
				log.Print(err) // keeps the previous state
			}
			if ed.OnReload != nil {
				ed.OnReload(filename, err)
			}
		})
	}
	fw, err := fswatcher.NewFileWatcher(w, filename, 50*time.Millisecond, onChange)
	if err != nil {
		_ = w.Close()
		return err
	}
	ed.watchers = append(ed.watchers, fw)
	return nil
}

//----------

func (ed *Editor) fontFace(p *Prefs) (*fontutil.FontFace, error) {
	if p.Font.Name == "basic" {
		ff, ok := ed.basicFaces[p.View.TabWidth]
		if !ok {
			ff = fontutil.NewFontFace(basicfont.Face7x13, p.View.TabWidth)
			ed.basicFaces[p.View.TabWidth] = ff
		}
		return ff, nil
	}
	f, err := fontutil.FontsMan.NamedFont(p.Font.Name)
	if err != nil {
		return nil, err
	}
	opt := fontutil.FaceOptions{Size: p.Font.Size, DPI: p.Font.DPI, TabWidth: p.View.TabWidth}
	return f.FontFace(opt), nil
}

//----------

// Handles pending events and paints.
func (ed *Editor) Render() image.Image {
	ed.UI.RunPending()
	return ed.UI.Image()
}

func (ed *Editor) SavePNG(filename string) error {
	img := ed.Render()
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "save png")
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return errors.Wrap(err, "save png")
	}
	return f.Close()
}
