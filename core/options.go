package core

import (
	"fmt"
	"strconv"
	"strings"
)

type Options struct {
	Font       string
	FontSize   float64
	DPI        float64
	TabWidth   int
	Wrap       bool
	LeftMargin int

	Width  int
	Height int

	Prefs string // preferences filename (toml/yaml)
	Watch bool

	Filename string
	Output   string // png filename

	Caret int // document offset
	Folds FoldsOpt
}

//----------

// implements flag.Value interface
type FoldsOpt struct {
	folds []*FoldOpt
}

func (fo *FoldsOpt) Set(s string) error {
	f, err := parseFoldOpt(s)
	if err != nil {
		return err
	}
	fo.folds = append(fo.folds, f)
	return nil
}

func (fo *FoldsOpt) String() string {
	u := []string{}
	for _, f := range fo.folds {
		u = append(u, f.String())
	}
	return strings.Join(u, ",")
}

func (fo *FoldsOpt) Folds() []*FoldOpt {
	return fo.folds
}

//----------

// Lines after Start up to End (inclusive) are hidden. Lines start at zero.
type FoldOpt struct {
	Start, End int
}

func parseFoldOpt(s string) (*FoldOpt, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("expecting start:end lines: %q", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return nil, fmt.Errorf("fold start: %w", err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return nil, fmt.Errorf("fold end: %w", err)
	}
	if start < 0 || end <= start {
		return nil, fmt.Errorf("bad fold lines: %v:%v", start, end)
	}
	return &FoldOpt{Start: start, End: end}, nil
}

func (f *FoldOpt) String() string {
	return fmt.Sprintf("%v:%v", f.Start, f.End)
}
