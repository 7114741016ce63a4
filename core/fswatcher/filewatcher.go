package fswatcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Watches a single file through its directory, so saves that replace the file (write to a temporary file and rename) are also detected. Bursts of events are coalesced into one call to the callback after a quiet delay.
type FileWatcher struct {
	w        Watcher
	name     string
	delay    time.Duration
	onChange func(name string)

	done      chan struct{}
	closeOnce sync.Once
}

func NewFileWatcher(w Watcher, name string, delay time.Duration, onChange func(name string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, errors.Wrap(err, "filewatcher")
	}
	dir := filepath.Dir(abs)
	if err := w.Add(dir); err != nil {
		return nil, errors.Wrapf(err, "filewatcher: watch dir: %v", dir)
	}
	fw := &FileWatcher{
		w:        w,
		name:     abs,
		delay:    delay,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go fw.eventLoop()
	return fw, nil
}

// Absolute filename.
func (fw *FileWatcher) Name() string {
	return fw.name
}

func (fw *FileWatcher) Close() error {
	err := error(nil)
	fw.closeOnce.Do(func() {
		close(fw.done)
		err = fw.w.Close()
	})
	return err
}

//----------

func (fw *FileWatcher) eventLoop() {
	timer := time.NewTimer(fw.delay)
	stopTimer := func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}
	stopTimer()
	defer timer.Stop()

	for {
		select {
		case <-fw.done:
			return
		case ev, ok := <-fw.w.Events():
			if !ok {
				return
			}
			switch t := ev.(type) {
			case error:
				log.Printf("filewatcher: %v", t)
			case *Event:
				if !fw.refersToFile(t) {
					continue
				}
				stopTimer()
				timer.Reset(fw.delay)
			}
		case <-timer.C:
			fw.onChange(fw.name)
		}
	}
}

func (fw *FileWatcher) refersToFile(ev *Event) bool {
	// rename events refer to the old name (file moved away)
	return ev.JoinNames() == fw.name && ev.Op.HasAny(Create|Modify)
}
