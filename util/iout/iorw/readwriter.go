package iorw

import (
	"io"
	"unicode/utf8"
)

type ReadWriterAt interface {
	ReaderAt
	WriterAt
}

//----------

type ReaderAt interface {
	// Returns a slice (not a copy) of at most n bytes.
	// Returns io.EOF if i==Max() and n>0.
	ReadFastAt(i, n int) ([]byte, error)

	Min() int
	Max() int
}

type WriterAt interface {
	OverwriteAt(i, del int, p []byte) error
}

//----------

// Returns a slice (not a copy).
func ReadFastFull(rd ReaderAt) ([]byte, error) {
	min, max := rd.Min(), rd.Max()
	return rd.ReadFastAt(min, max-min)
}

func ReadFullCopy(rd ReaderAt) ([]byte, error) {
	b, err := ReadFastFull(rd)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

func SetBytes(rw ReadWriterAt, b []byte) error {
	min, max := rw.Min(), rw.Max()
	return rw.OverwriteAt(min, max-min, b)
}

//----------

func ReadRuneAt(rd ReaderAt, i int) (rune, int, error) {
	b, err := rd.ReadFastAt(i, utf8.UTFMax)
	if err != nil {
		return 0, 0, err
	}
	ru, size := utf8.DecodeRune(b)
	return ru, size, nil
}

// Iterate over n+1 runes, with the last rune being EndRune(-1).
func ReaderIter(r ReaderAt, fn func(i int, ru rune) bool) error {
	for i := r.Min(); ; {
		ru, size, err := ReadRuneAt(r, i)
		if err != nil {
			if err == io.EOF {
				_ = fn(i, EndRune)
				return nil
			}
			return err
		}
		if !fn(i, ru) {
			return nil
		}
		i += size
	}
}

const EndRune = -1
