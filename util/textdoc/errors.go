package textdoc

import "github.com/pkg/errors"

var (
	ErrBadLocation = errors.New("bad location")
	ErrBadCategory = errors.New("bad position category")
	ErrBadPosition = errors.New("bad position")
)
