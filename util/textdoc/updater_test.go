package textdoc

import (
	"testing"
)

type policyTest struct {
	p                          Position
	offset, removed, inserted int
	want                       Position
}

func runPolicyTests(t *testing.T, policy UpdatePolicy, tests []policyTest) {
	t.Helper()
	for i, tt := range tests {
		p := tt.p
		policy(&p, tt.offset, tt.removed, tt.inserted)
		if p != tt.want {
			t.Fatalf("test %v: got %v, want %v", i, &p, &tt.want)
		}
	}
}

func TestUpdateShift(t *testing.T) {
	runPolicyTests(t, UpdateShift, []policyTest{
		// edit after
		{Position{4, 4, false}, 8, 0, 3, Position{4, 4, false}},
		{Position{4, 4, false}, 9, 2, 0, Position{4, 4, false}},
		// edit before (shift)
		{Position{4, 4, false}, 0, 0, 3, Position{7, 4, false}},
		{Position{4, 4, false}, 1, 2, 0, Position{2, 4, false}},
		{Position{4, 4, false}, 2, 2, 5, Position{7, 4, false}},
		// insertion at start shifts
		{Position{4, 4, false}, 4, 0, 1, Position{5, 4, false}},
		// contained
		{Position{4, 4, false}, 5, 2, 0, Position{4, 2, false}},
		{Position{4, 4, false}, 5, 2, 3, Position{4, 5, false}},
		{Position{4, 4, false}, 5, 0, 3, Position{4, 7, false}},
		// starts inside, ends after
		{Position{4, 4, false}, 6, 5, 1, Position{4, 3, false}},
		// starts before, ends inside
		{Position{4, 4, false}, 2, 4, 0, Position{2, 2, false}},
		{Position{4, 4, false}, 2, 4, 3, Position{5, 2, false}},
		// full consumption
		{Position{4, 4, false}, 4, 4, 0, Position{4, 4, true}},
		{Position{4, 4, false}, 0, 10, 2, Position{4, 4, true}},
		// already deleted: untouched
		{Position{4, 4, true}, 0, 0, 2, Position{4, 4, true}},
	})
}

func TestUpdateExtend(t *testing.T) {
	runPolicyTests(t, UpdateExtend, []policyTest{
		// insertion at start extends
		{Position{4, 4, false}, 4, 0, 1, Position{4, 5, false}},
		// insertion at end extends
		{Position{4, 4, false}, 8, 0, 2, Position{4, 6, false}},
		// replacement at end does not
		{Position{4, 4, false}, 8, 1, 2, Position{4, 4, false}},
		// zero length
		{Position{4, 0, false}, 4, 0, 3, Position{4, 3, false}},
		// before/after as default
		{Position{4, 4, false}, 0, 1, 0, Position{3, 4, false}},
		{Position{4, 4, false}, 9, 0, 1, Position{4, 4, false}},
		// contained
		{Position{4, 4, false}, 5, 2, 1, Position{4, 3, false}},
		// starts before, ends inside: replacement stays inside
		{Position{4, 4, false}, 2, 4, 3, Position{2, 5, false}},
		// full consumption
		{Position{4, 4, false}, 3, 6, 1, Position{4, 4, true}},
	})
}

// Shift invariant: edits strictly before the position only shift it.
func TestUpdateShiftInvariant(t *testing.T) {
	for off := 0; off < 6; off++ {
		for rem := 0; off+rem <= 6; rem++ {
			for ins := 0; ins < 4; ins++ {
				if rem == 0 && ins == 0 {
					continue
				}
				p := Position{Offset: 6, Length: 3}
				UpdateShift(&p, off, rem, ins)
				if p.Offset != 6+ins-rem || p.Length != 3 || p.Deleted {
					t.Fatalf("%v,%v,%v: %v", off, rem, ins, &p)
				}
			}
		}
	}
}

// Positions are updated independently of each other.
func TestDefaultPositionUpdaterOrderIndependent(t *testing.T) {
	d := NewDocument("0123456789")
	c := d.AddPositionCategory()
	d.AddPositionUpdater(NewDefaultPositionUpdater(c))
	p1 := NewPosition(2, 2)
	p2 := NewPosition(4, 2)
	p3 := NewPosition(6, 2)
	for _, p := range []*Position{p3, p1, p2} {
		if err := d.AddPosition(c, p); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.Replace(4, 2, ""); err != nil {
		t.Fatal(err)
	}
	if *p1 != (Position{2, 2, false}) {
		t.Fatal(p1)
	}
	if !p2.Deleted {
		t.Fatal(p2)
	}
	if *p3 != (Position{4, 2, false}) {
		t.Fatal(p3)
	}

	// deleted positions leave the category
	ps, _ := d.Positions(c)
	if len(ps) != 2 {
		t.Fatal(d.Dump())
	}
}
