package iorw

import (
	"io"
	"testing"
)

func TestOverwriteAt(t *testing.T) {
	rw := NewBytesBuffer(nil)
	if err := rw.OverwriteAt(0, 0, []byte("0123456789")); err != nil {
		t.Fatal(err)
	}
	if err := rw.OverwriteAt(2, 3, []byte("ab")); err != nil {
		t.Fatal(err)
	}
	b, err := ReadFastFull(rw)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "01ab56789" {
		t.Fatal(string(b))
	}
	if err := rw.OverwriteAt(8, 3, nil); err == nil {
		t.Fatal("expecting error")
	}
}

func TestReadFastAt(t *testing.T) {
	rw := NewBytesBuffer([]byte("abc"))
	if _, err := rw.ReadFastAt(3, 1); err != io.EOF {
		t.Fatal(err)
	}
	b, err := rw.ReadFastAt(1, 10)
	if err != nil || string(b) != "bc" {
		t.Fatal(err, string(b))
	}
	if _, err := rw.ReadFastAt(-1, 1); err == nil {
		t.Fatal()
	}
}

func TestRWEvents(t *testing.T) {
	rw := NewRWEvents(NewBytesBuffer([]byte("abc")))
	pre, post := 0, 0
	rw.EvReg.Add(RWEvIdPreWrite, func(ev any) {
		pre++
		if post != 0 {
			t.Fatal("pre after post")
		}
	})
	rw.EvReg.Add(RWEvIdWrite, func(ev any) {
		post++
		u := ev.(*RWEvWrite)
		if u.Index != 1 || u.Dn != 1 || string(u.P) != "XY" {
			t.Fatalf("%+v", u)
		}
	})
	if err := rw.OverwriteAt(1, 1, []byte("XY")); err != nil {
		t.Fatal(err)
	}
	if pre != 1 || post != 1 {
		t.Fatal(pre, post)
	}
}

func TestReaderIter(t *testing.T) {
	rw := NewBytesBuffer([]byte("aé"))
	s := []rune{}
	_ = ReaderIter(rw, func(i int, ru rune) bool {
		s = append(s, ru)
		return true
	})
	if len(s) != 3 || s[1] != 'é' || s[2] != EndRune {
		t.Fatal(s)
	}
}
