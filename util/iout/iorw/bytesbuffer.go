package iorw

import (
	"fmt"
	"io"
	"slices"
)

// In-memory ReadWriterAt.
type BytesBuffer struct {
	b []byte
}

func NewBytesBuffer(b []byte) *BytesBuffer {
	return &BytesBuffer{b: b}
}

func (bb *BytesBuffer) Min() int { return 0 }
func (bb *BytesBuffer) Max() int { return len(bb.b) }

func (bb *BytesBuffer) ReadFastAt(i, n int) ([]byte, error) {
	if i < 0 || i > len(bb.b) {
		return nil, fmt.Errorf("iorw: index out of range: %v (len=%v)", i, len(bb.b))
	}
	if n < 0 {
		return nil, fmt.Errorf("iorw: negative length: %v", n)
	}
	if n == 0 {
		return nil, nil // allows reading an empty buffer
	}
	if i == len(bb.b) {
		return nil, io.EOF
	}
	return bb.b[i:min(i+n, len(bb.b))], nil
}

func (bb *BytesBuffer) OverwriteAt(i, del int, p []byte) error {
	if i < 0 || del < 0 || i+del > len(bb.b) {
		return fmt.Errorf("iorw: bad overwrite range: %v+%v (len=%v)", i, del, len(bb.b))
	}
	bb.b = slices.Replace(bb.b, i, i+del, p...)

	// release memory after large deletes
	if len(bb.b) > 1024 && 3*len(bb.b) < cap(bb.b) {
		bb.b = slices.Clip(slices.Clone(bb.b))
	}
	return nil
}
