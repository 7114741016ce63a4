package evreg

import "testing"

func TestRunCallbacks(t *testing.T) {
	var reg Register
	c := 0
	r1 := reg.Add(1, func(ev any) { c += ev.(int) })
	reg.Add(1, func(ev any) { c += ev.(int) * 10 })
	if n := reg.RunCallbacks(1, 2); n != 2 {
		t.Fatal(n)
	}
	if c != 22 {
		t.Fatal(c)
	}
	r1.Unregister()
	if reg.NCallbacks(1) != 1 {
		t.Fatal()
	}
	if n := reg.RunCallbacks(2, 0); n != 0 {
		t.Fatal(n)
	}
}

func TestRemoveWhileRunning(t *testing.T) {
	var reg Register
	var r2 *Regist
	c := 0
	reg.Add(1, func(any) {
		c++
		r2.Unregister()
	})
	r2 = reg.Add(1, func(any) { c++ })

	// the running loop keeps its snapshot
	if n := reg.RunCallbacks(1, nil); n != 2 || c != 2 {
		t.Fatal(n, c)
	}
	if n := reg.RunCallbacks(1, nil); n != 1 || c != 3 {
		t.Fatal(n, c)
	}
}

func TestUnregisterAll(t *testing.T) {
	var reg Register
	var unr Unregister
	unr.Add(reg.Add(1, func(any) {}), reg.Add(2, func(any) {}))
	if unr.Len() != 2 {
		t.Fatal()
	}
	unr.UnregisterAll()
	if reg.NCallbacks(1) != 0 || reg.NCallbacks(2) != 0 {
		t.Fatal()
	}
	if unr.Len() != 0 {
		t.Fatal()
	}
}
