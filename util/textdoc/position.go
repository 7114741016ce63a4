package textdoc

import (
	"fmt"

	"github.com/google/uuid"
)

type Region struct {
	Offset, Length int
}

func (r Region) End() int { return r.Offset + r.Length }

//----------

// Tracked span of the document. Mutated only by position updaters while the document notifies an edit.
type Position struct {
	Offset  int
	Length  int
	Deleted bool
}

func NewPosition(offset, length int) *Position {
	return &Position{Offset: offset, Length: length}
}

func (p *Position) End() int { return p.Offset + p.Length }

func (p *Position) Includes(index int) bool {
	if p.Deleted {
		return false
	}
	return p.Offset <= index && index < p.End()
}

func (p *Position) OverlapsWith(offset, length int) bool {
	end := offset + length
	if length > 0 {
		if p.Length > 0 {
			return p.Offset < end && offset < p.End()
		}
		return offset <= p.Offset && p.Offset < end
	}
	if p.Length > 0 {
		return p.Offset <= offset && offset < p.End()
	}
	return p.Offset == offset
}

func (p *Position) Set(offset, length int) {
	p.Offset = offset
	p.Length = length
	p.Deleted = false
}

func (p *Position) String() string {
	if p.Deleted {
		return fmt.Sprintf("[%v,%v deleted]", p.Offset, p.Length)
	}
	return fmt.Sprintf("[%v,%v]", p.Offset, p.Length)
}

//----------

// Token for a bucket of positions inside one document.
type Category struct {
	id string
}

func newCategory() *Category {
	return &Category{id: uuid.NewString()}
}

func (c *Category) String() string {
	if c == nil {
		return "<nil category>"
	}
	return c.id
}
