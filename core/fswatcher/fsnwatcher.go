package fswatcher

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

type FsnWatcher struct {
	w         *fsnotify.Watcher
	events    chan any
	opMask    Op
	done      chan struct{}
	closeOnce sync.Once
}

func NewFsnWatcher() (*FsnWatcher, error) {
	w0, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FsnWatcher{
		w:      w0,
		events: make(chan any),
		opMask: AllOps,
		done:   make(chan struct{}),
	}
	go w.eventLoop()
	return w, nil
}

//----------

func (w *FsnWatcher) Close() error {
	err := error(nil)
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.w.Close() // closes the fsnotify chans (Events/Errors)
	})
	return err
}

// Not safe to change while events are being delivered.
func (w *FsnWatcher) OpMask() *Op {
	return &w.opMask
}

//----------

func (w *FsnWatcher) Add(name string) error {
	return w.w.Add(name)
}
func (w *FsnWatcher) Remove(name string) error {
	return w.w.Remove(name)
}

//----------

// Closed after the watcher is closed.
func (w *FsnWatcher) Events() <-chan any {
	return w.events
}

func (w *FsnWatcher) send(v any) bool {
	select {
	case w.events <- v:
		return true
	case <-w.done:
		return false
	}
}

//----------

func (w *FsnWatcher) eventLoop() {
	defer close(w.events)
	for {
		select {
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			if !w.send(err) {
				return
			}
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			ev2, ok := w.convert(ev)
			if !ok {
				continue
			}
			if !w.send(ev2) {
				return
			}
		}
	}
}

func (w *FsnWatcher) convert(ev fsnotify.Event) (*Event, bool) {
	name := ev.Name
	subName := ""

	var op Op
	if ev.Has(fsnotify.Create) {
		op.Add(Create)
		// event name is the dir, subname the file
		dir, file := filepath.Split(name)
		name, subName = filepath.Clean(dir), file
	}
	if ev.Has(fsnotify.Write) {
		op.Add(Modify)
	}
	if ev.Has(fsnotify.Remove) {
		op.Add(Remove)
	}
	if ev.Has(fsnotify.Rename) {
		op.Add(Rename)
	}
	if ev.Has(fsnotify.Chmod) {
		op.Add(Attrib)
	}

	if op&w.opMask == 0 {
		return nil, false
	}
	return &Event{Op: op, Name: name, SubName: subName}, true
}
