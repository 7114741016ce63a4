// Event registers of the document, viewer and widget. Callbacks run on the caller's goroutine.
package evreg

// Callbacks by event id. The zero register is ready for use.
type Register struct {
	m map[int][]*Callback
}

//----------

// Removed with the returned Regist.
func (reg *Register) Add(evId int, fn func(any)) *Regist {
	return reg.AddCallback(evId, &Callback{fn})
}

//----------

func (reg *Register) AddCallback(evId int, cb *Callback) *Regist {
	if reg.m == nil {
		reg.m = map[int][]*Callback{}
	}
	reg.m[evId] = append(reg.m[evId], cb)
	return &Regist{reg, evId, cb}
}

func (reg *Register) RemoveCallback(evId int, cb *Callback) {
	if reg.m == nil {
		return
	}
	l, ok := reg.m[evId]
	if !ok {
		return
	}
	// new slice: a running callback loop keeps iterating its own snapshot
	u := make([]*Callback, 0, len(l))
	for _, cb2 := range l {
		if cb2 != cb {
			u = append(u, cb2)
		}
	}
	if len(u) == 0 {
		delete(reg.m, evId)
		return
	}
	reg.m[evId] = u
}

//----------

// Returns the number of callbacks run. Callbacks added or removed by a running callback only take effect on the next run.
func (reg *Register) RunCallbacks(evId int, ev any) int {
	if reg.m == nil {
		return 0
	}
	l, ok := reg.m[evId]
	if !ok {
		return 0
	}
	for _, cb := range l {
		cb.F(ev)
	}
	return len(l)
}

// Number of registered callbacks for an event id.
func (reg *Register) NCallbacks(evId int) int {
	if reg.m == nil {
		return 0
	}
	return len(reg.m[evId])
}

//----------

type Callback struct {
	F func(ev any)
}

//----------

type Regist struct {
	evReg *Register
	id    int
	cb    *Callback
}

func (reg *Regist) Unregister() {
	reg.evReg.RemoveCallback(reg.id, reg.cb)
}

//----------

// Registrations removed together (ex: the viewer listeners of a paint manager).
type Unregister struct {
	v []*Regist
}

func (unr *Unregister) Add(u ...*Regist) {
	unr.v = append(unr.v, u...)
}
func (unr *Unregister) UnregisterAll() {
	for _, e := range unr.v {
		e.Unregister()
	}
	unr.v = nil
}
func (unr *Unregister) Len() int {
	return len(unr.v)
}
