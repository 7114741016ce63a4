package iorw

import (
	"github.com/jmigpin/textdeco/util/evreg"
)

// Runs callbacks on operations.
type RWEvents struct {
	ReadWriterAt
	EvReg evreg.Register
}

func NewRWEvents(rw ReadWriterAt) *RWEvents {
	return &RWEvents{ReadWriterAt: rw}
}

//----------

func (rw *RWEvents) OverwriteAt(i, del int, p []byte) error {
	// pre write event
	ev := &RWEvPreWrite{i, del, p, nil}
	rw.EvReg.RunCallbacks(RWEvIdPreWrite, ev)
	if ev.ReplyErr != nil {
		return ev.ReplyErr
	}

	if err := rw.ReadWriterAt.OverwriteAt(i, del, p); err != nil {
		return err
	}

	// write event
	u := &RWEvWrite{i, del, p}
	rw.EvReg.RunCallbacks(RWEvIdWrite, u)
	return nil
}

//----------

const (
	RWEvIdWrite    = iota // ev=*RWEvWrite
	RWEvIdPreWrite        // ev=*RWEvPreWrite
)

//----------

type RWEvWrite struct {
	Index int
	Dn    int    // n deleted bytes
	P     []byte // inserted bytes
}

type RWEvPreWrite struct {
	Index    int
	N        int
	P        []byte
	ReplyErr error // can be set by any caller to cancel the write
}
