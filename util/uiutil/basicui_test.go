package uiutil

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"
)

func TestRunOnUIThreadOrder(t *testing.T) {
	ui := NewBasicUI(image.Point{10, 10})
	u := []int{}
	ui.RunOnUIThread(func() {
		u = append(u, 1)
		ui.RunOnUIThread(func() { u = append(u, 3) })
	})
	ui.RunOnUIThread(func() { u = append(u, 2) })
	if n := ui.RunPending(); n != 3 {
		t.Fatal(n)
	}
	if len(u) != 3 || u[0] != 1 || u[1] != 2 || u[2] != 3 {
		t.Fatal(u)
	}
}

func TestEventLoop(t *testing.T) {
	ui := NewBasicUI(image.Point{10, 10})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ui.RunOnUIThread(func() { count++ })
		}()
	}
	go func() {
		wg.Wait()
		ui.RunOnUIThread(ui.Close)
	}()
	if err := ui.EventLoop(ctx); err != nil {
		t.Fatal(err)
	}
	if count != 10 {
		t.Fatal(count)
	}
}
