package textdoc

type PositionUpdater interface {
	Update(ev *DocumentEvent)
}

//----------

// Computes the new state of a position given an edit that removed n bytes at offset and inserted m bytes.
type UpdatePolicy func(p *Position, offset, removed, inserted int)

// Edits after the position are ignored, edits before shift it, overlapping edits shrink it. An edit that removes the whole position marks it deleted.
func UpdateShift(p *Position, offset, removed, inserted int) {
	updatePosition(p, offset, removed, inserted, false)
}

// Same as UpdateShift but insertions touching the start or end of the position extend it.
func UpdateExtend(p *Position, offset, removed, inserted int) {
	updatePosition(p, offset, removed, inserted, true)
}

func updatePosition(p *Position, offset, removed, inserted int, extend bool) {
	if p.Deleted {
		return
	}
	start, end := p.Offset, p.End()
	editEnd := offset + removed

	// insertion touching the boundaries
	if extend && removed == 0 && (offset == start || offset == end) {
		p.Length += inserted
		return
	}

	// edit after
	if offset >= end {
		return
	}
	// edit before
	if editEnd <= start {
		p.Offset += inserted - removed
		return
	}

	// overlap: the edit removes all of the position
	if offset <= start && editEnd >= end {
		p.Deleted = true
		return
	}
	// overlap: edit starts before (or at) and ends inside
	if offset <= start {
		p.Length = end - editEnd
		if extend {
			p.Offset = offset
			p.Length += inserted
		} else {
			p.Offset = offset + inserted
		}
		return
	}
	// overlap: edit starts inside
	r := removed
	if editEnd > end {
		r = end - offset
	}
	p.Length += inserted - r
}

//----------

// Applies a policy to all positions of a category, and removes the positions marked deleted from the category.
type DefaultPositionUpdater struct {
	Category *Category
	Policy   UpdatePolicy
}

func NewDefaultPositionUpdater(c *Category) *DefaultPositionUpdater {
	return &DefaultPositionUpdater{Category: c, Policy: UpdateShift}
}

func (u *DefaultPositionUpdater) Update(ev *DocumentEvent) {
	ps, err := ev.Doc.Positions(u.Category)
	if err != nil {
		return
	}
	n := len(ev.Text)
	for _, p := range ps {
		if p.Deleted {
			continue
		}
		u.Policy(p, ev.Offset, ev.Length, n)
		if p.Deleted {
			_ = ev.Doc.RemovePosition(u.Category, p)
		}
	}
}
