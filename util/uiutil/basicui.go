package uiutil

import (
	"context"
	"image"
	"image/draw"
	"log"
	"sync"

	"github.com/jmigpin/textdeco/util/uiutil/event"
)

type Node interface {
	HandleInput(ev any) event.Handle
}

type Painter interface {
	PaintIfNeeded(img draw.Image) (image.Rectangle, bool)
}

//----------

// Headless ui: events are queued from any goroutine and handled on the goroutine running the event loop, painting into an image.
type BasicUI struct {
	RootNode Node
	Painter  Painter

	img draw.Image

	mu     sync.Mutex
	q      []any
	wake   chan struct{}
	closed bool
}

func NewBasicUI(size image.Point) *BasicUI {
	ui := &BasicUI{
		img:  image.NewRGBA(image.Rectangle{Max: size}),
		wake: make(chan struct{}, 1),
	}
	return ui
}

func (ui *BasicUI) Image() draw.Image {
	return ui.img
}

func (ui *BasicUI) Close() {
	ui.mu.Lock()
	ui.closed = true
	ui.mu.Unlock()
	ui.signal()
}

//----------

func (ui *BasicUI) EnqueueEvent(ev any) {
	ui.mu.Lock()
	ui.q = append(ui.q, ev)
	ui.mu.Unlock()
	ui.signal()
}

func (ui *BasicUI) EnqueueNoOpEvent() {
	ui.EnqueueEvent(struct{}{})
}

func (ui *BasicUI) RunOnUIThread(f func()) {
	ui.EnqueueEvent(&UIRunFuncEvent{f})
}

func (ui *BasicUI) signal() {
	select {
	case ui.wake <- struct{}{}:
	default:
	}
}

func (ui *BasicUI) pop() (any, bool) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if len(ui.q) == 0 {
		return nil, false
	}
	ev := ui.q[0]
	ui.q = ui.q[1:]
	return ev, true
}

//----------

func (ui *BasicUI) HandleEvent(ev any) {
	switch t := ev.(type) {
	case *UIRunFuncEvent:
		t.Func()
	case *event.KeyDown, *event.MouseDown, *event.MouseUp:
		if ui.RootNode != nil {
			ui.RootNode.HandleInput(t)
		}
	case struct{}:
		// no op
	default:
		log.Printf("unhandled event: %#v", ev)
	}
}

// Handles the queued events (including the ones queued while handling) and paints. Must be called from the ui goroutine. Returns the number of events handled.
func (ui *BasicUI) RunPending() int {
	n := 0
	for {
		ev, ok := ui.pop()
		if !ok {
			break
		}
		ui.HandleEvent(ev)
		n++
	}
	ui.PaintIfNeeded()
	return n
}

// Runs until the context is done or the ui is closed.
func (ui *BasicUI) EventLoop(ctx context.Context) error {
	for {
		ui.RunPending()

		ui.mu.Lock()
		closed := ui.closed
		ui.mu.Unlock()
		if closed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ui.wake:
		}
	}
}

func (ui *BasicUI) PaintIfNeeded() (image.Rectangle, bool) {
	if ui.Painter == nil {
		return image.Rectangle{}, false
	}
	return ui.Painter.PaintIfNeeded(ui.img)
}

//----------

type UIRunFuncEvent struct {
	Func func()
}
