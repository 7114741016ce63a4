package textdoc

import (
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmigpin/textdeco/util/evreg"
	"github.com/jmigpin/textdeco/util/iout/iorw"
	"github.com/pkg/errors"
)

type Document struct {
	rw       *iorw.RWEvents
	lines    []int // line start offsets
	cats     map[*Category][]*Position
	catOrder []*Category
	updaters []PositionUpdater
	evReg    evreg.Register
}

func NewDocument(s string) *Document {
	d := &Document{cats: map[*Category][]*Position{}}
	d.rw = iorw.NewRWEvents(iorw.NewBytesBuffer([]byte(s)))
	d.rw.EvReg.Add(iorw.RWEvIdPreWrite, d.onPreWrite)
	d.rw.EvReg.Add(iorw.RWEvIdWrite, d.onWrite)
	d.updateLines(0)
	return d
}

//----------

func (d *Document) EvReg() *evreg.Register {
	return &d.evReg
}

//----------

func (d *Document) Len() int {
	return d.rw.Max() - d.rw.Min()
}

func (d *Document) Bytes() []byte {
	b, err := iorw.ReadFullCopy(d.rw)
	if err != nil {
		return nil
	}
	return b
}

func (d *Document) Str() string {
	return string(d.Bytes())
}

func (d *Document) TextRange(offset, n int) (string, error) {
	if offset < 0 || n < 0 || offset+n > d.Len() {
		return "", errors.Wrapf(ErrBadLocation, "range %v,%v", offset, n)
	}
	b, err := d.rw.ReadFastAt(offset, n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

//----------

func (d *Document) Replace(offset, length int, text string) error {
	if offset < 0 || length < 0 || offset+length > d.Len() {
		return errors.Wrapf(ErrBadLocation, "replace %v,%v", offset, length)
	}
	if length == 0 && len(text) == 0 {
		return nil
	}
	return d.rw.OverwriteAt(offset, length, []byte(text))
}

func (d *Document) Insert(offset int, text string) error {
	return d.Replace(offset, 0, text)
}

func (d *Document) Delete(offset, length int) error {
	return d.Replace(offset, length, "")
}

func (d *Document) Set(text string) error {
	return d.Replace(0, d.Len(), text)
}

//----------

func (d *Document) onPreWrite(ev0 any) {
	u := ev0.(*iorw.RWEvPreWrite)
	ev := &DocumentEvent{Doc: d, Offset: u.Index, Length: u.N, Text: string(u.P)}
	d.evReg.RunCallbacks(DocEvIdAboutToChange, ev)
}

func (d *Document) onWrite(ev0 any) {
	u := ev0.(*iorw.RWEvWrite)
	ev := &DocumentEvent{Doc: d, Offset: u.Index, Length: u.Dn, Text: string(u.P)}

	d.updateLines(u.Index)

	// positions are updated before any listener is notified
	for _, up := range append([]PositionUpdater{}, d.updaters...) {
		up.Update(ev)
	}

	d.evReg.RunCallbacks(DocEvIdChanged, ev)
}

//----------

func (d *Document) updateLines(offset int) {
	// keep lines that start at or before the edit offset
	k := sort.SearchInts(d.lines, offset+1)
	if k == 0 {
		k = 1
	}
	if len(d.lines) == 0 {
		d.lines = []int{0}
	}
	d.lines = d.lines[:k]

	b, err := iorw.ReadFastFull(d.rw)
	if err != nil {
		return
	}
	for i := d.lines[k-1]; i < len(b); i++ {
		if b[i] == '\n' {
			d.lines = append(d.lines, i+1)
		}
	}
}

func (d *Document) NumberOfLines() int {
	return len(d.lines)
}

func (d *Document) LineOfOffset(offset int) (int, error) {
	if offset < 0 || offset > d.Len() {
		return 0, errors.Wrapf(ErrBadLocation, "offset %v", offset)
	}
	k := sort.SearchInts(d.lines, offset+1)
	return k - 1, nil
}

func (d *Document) LineOffset(line int) (int, error) {
	if line < 0 || line >= len(d.lines) {
		return 0, errors.Wrapf(ErrBadLocation, "line %v", line)
	}
	return d.lines[line], nil
}

// Length including the line delimiter.
func (d *Document) LineLength(line int) (int, error) {
	o, err := d.LineOffset(line)
	if err != nil {
		return 0, err
	}
	if line+1 < len(d.lines) {
		return d.lines[line+1] - o, nil
	}
	return d.Len() - o, nil
}

// Region excluding the line delimiter.
func (d *Document) LineInfo(line int) (Region, error) {
	o, err := d.LineOffset(line)
	if err != nil {
		return Region{}, err
	}
	l, err := d.LineLength(line)
	if err != nil {
		return Region{}, err
	}
	s, err := d.TextRange(o, l)
	if err != nil {
		return Region{}, err
	}
	return Region{o, len(s) - len(LineDelimiter(s))}, nil
}

//----------

func (d *Document) AddPositionCategory() *Category {
	c := newCategory()
	d.cats[c] = nil
	d.catOrder = append(d.catOrder, c)
	return c
}

func (d *Document) RemovePositionCategory(c *Category) error {
	if _, ok := d.cats[c]; !ok {
		return errors.Wrapf(ErrBadCategory, "remove %v", c)
	}
	delete(d.cats, c)
	for i, c2 := range d.catOrder {
		if c2 == c {
			d.catOrder = append(d.catOrder[:i], d.catOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (d *Document) ContainsPositionCategory(c *Category) bool {
	_, ok := d.cats[c]
	return ok
}

func (d *Document) AddPosition(c *Category, p *Position) error {
	ps, ok := d.cats[c]
	if !ok {
		return errors.Wrapf(ErrBadCategory, "add position %v", c)
	}
	if p.Offset < 0 || p.Length < 0 || p.End() > d.Len() {
		return errors.Wrapf(ErrBadLocation, "add position %v", p)
	}
	for _, p2 := range ps {
		if p2 == p {
			return nil
		}
	}
	d.cats[c] = append(ps, p)
	return nil
}

func (d *Document) RemovePosition(c *Category, p *Position) error {
	ps, ok := d.cats[c]
	if !ok {
		return errors.Wrapf(ErrBadCategory, "remove position %v", c)
	}
	for i, p2 := range ps {
		if p2 == p {
			u := make([]*Position, 0, len(ps)-1)
			u = append(u, ps[:i]...)
			d.cats[c] = append(u, ps[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(ErrBadPosition, "remove position %v", p)
}

// Returns a copy of the category slice (the positions are not copied).
func (d *Document) Positions(c *Category) ([]*Position, error) {
	ps, ok := d.cats[c]
	if !ok {
		return nil, errors.Wrapf(ErrBadCategory, "positions %v", c)
	}
	return append([]*Position{}, ps...), nil
}

//----------

func (d *Document) AddPositionUpdater(u PositionUpdater) {
	for _, u2 := range d.updaters {
		if u2 == u {
			return
		}
	}
	d.updaters = append(d.updaters, u)
}

func (d *Document) RemovePositionUpdater(u PositionUpdater) {
	for i, u2 := range d.updaters {
		if u2 == u {
			d.updaters = append(d.updaters[:i:i], d.updaters[i+1:]...)
			return
		}
	}
}

func (d *Document) NPositionUpdaters() int {
	return len(d.updaters)
}

//----------

func (d *Document) Dump() string {
	u := map[string][]*Position{}
	for _, c := range d.catOrder {
		u[c.String()] = d.cats[c]
	}
	return spew.Sdump(u)
}

//----------

const (
	DocEvIdAboutToChange = iota // ev=*DocumentEvent
	DocEvIdChanged              // ev=*DocumentEvent
)

type DocumentEvent struct {
	Doc    *Document
	Offset int
	Length int    // replaced length
	Text   string // inserted text
}

//----------

// Returns the line delimiter at the end of s ("\r\n", "\n" or "").
func LineDelimiter(s string) string {
	n := len(s)
	if n >= 1 && s[n-1] == '\n' {
		if n >= 2 && s[n-2] == '\r' {
			return "\r\n"
		}
		return "\n"
	}
	return ""
}
