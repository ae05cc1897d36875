package main

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/joshuapare/tierkit/internal/logger"
)

// imageChangedMsg reports that another process wrote the tier image.
type imageChangedMsg struct{}

// watchImage forwards writes to the file at path as imageChangedMsg, at most
// one per interval. Events inside an interval are dropped; the next render
// reads the current bytes anyway. Closing the returned watcher stops it.
func watchImage(path string, interval time.Duration, send func(tea.Msg)) (io.Closer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		_ = w.Close()
		return nil, err
	}

	limit := rate.NewLimiter(rate.Every(interval), 1)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !isImageWrite(ev) || !limit.Allow() {
					continue
				}
				logger.Debug("tier image changed", "event", ev.String())
				send(imageChangedMsg{})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "error", err)
			}
		}
	}()
	return w, nil
}

func isImageWrite(ev fsnotify.Event) bool {
	return ev.Op&fsnotify.Write == fsnotify.Write
}
