// Renders a text file with its live decorations into a png image.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/jmigpin/textdeco/core"
	"github.com/pkg/errors"
)

func main() {
	log.SetFlags(log.Lshortfile)

	opt := &core.Options{}
	flag.StringVar(&opt.Font, "font", "mono", "font: regular, medium, mono, basic, or a ttf filename")
	flag.Float64Var(&opt.FontSize, "fontsize", 12, "")
	flag.Float64Var(&opt.DPI, "dpi", 72, "monitor dots per inch")
	flag.IntVar(&opt.TabWidth, "tabwidth", 8, "")
	flag.BoolVar(&opt.Wrap, "wrap", false, "wrap lines")
	flag.IntVar(&opt.LeftMargin, "leftmargin", 2, "left margin in pixels")
	flag.IntVar(&opt.Width, "width", 640, "image width")
	flag.IntVar(&opt.Height, "height", 480, "image height")
	flag.StringVar(&opt.Prefs, "prefs", "", "preferences filename (.toml, .yaml)")
	flag.BoolVar(&opt.Watch, "watch", false, "render again when the file or the preferences change")
	flag.StringVar(&opt.Output, "o", "out.png", "output png filename")
	flag.IntVar(&opt.Caret, "caret", 0, "caret document offset")
	flag.Var(&opt.Folds, "fold", "fold the lines `start:end` (can be repeated)")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [options] <filename>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opt.Filename = args[0]

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(opt); err != nil {
		log.Fatal(err)
	}
}

func run(opt *core.Options) error {
	ed, err := core.NewEditor(opt)
	if err != nil {
		return err
	}
	defer ed.Close()

	if err := ed.LoadFile(opt.Filename); err != nil {
		return err
	}
	if err := ed.SavePNG(opt.Output); err != nil {
		return err
	}
	if !opt.Watch {
		return nil
	}

	ed.OnReload = func(name string, err error) {
		if err != nil {
			return // already logged, keeps the previous image
		}
		if err := ed.SavePNG(opt.Output); err != nil {
			log.Print(err)
			return
		}
		log.Printf("%v: rendered %v", name, opt.Output)
	}
	if err := ed.WatchFile(opt.Filename); err != nil {
		return err
	}
	if opt.Prefs != "" {
		if err := ed.WatchPrefs(); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err = ed.UI.EventLoop(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
