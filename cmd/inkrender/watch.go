package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/drawing"
)

// watch renders once and then again after every change to the scene
// file, until ctx is done. Render errors are logged and do not stop the
// watch.
func (r *renderer) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory: editors often save by renaming over the file.
	if err := w.Add(filepath.Dir(r.scenePath)); err != nil {
		return err
	}
	if err := r.render(); err != nil {
		drawing.Logger().Error("render failed", "err", err)
	}

	abs, _ := filepath.Abs(r.scenePath)
	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if evAbs, _ := filepath.Abs(ev.Name); evAbs != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.NewTimer(r.conf.Debounce)
			fire = debounce.C

		case <-fire:
			debounce, fire = nil, nil
			drawing.Logger().Debug("scene changed, reloading", "scene", r.scenePath)
			if err := r.render(); err != nil {
				drawing.Logger().Error("render failed", "err", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			drawing.Logger().Warn("watch error", "err", err)
		}
	}
}
