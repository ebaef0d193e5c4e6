package config

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 250 * time.Millisecond

// Watch monitors the given files and invokes onChange with the path of a
// file after it changed on disk. Watching the parent directories keeps
// rename-and-replace saves (the common editor behavior) visible. Watch
// returns after starting its goroutine; it stops when ctx is cancelled.
func Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			log.Printf("config: cannot watch %s: %v", dir, err)
		}
	}

	go func() {
		defer w.Close()
		pending := make(map[string]time.Time)
		tick := time.NewTicker(watchDebounce)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				abs, err := filepath.Abs(ev.Name)
				if err != nil || !watched[abs] {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					pending[abs] = time.Now()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("config: watch error: %v", err)
			case now := <-tick.C:
				for path, at := range pending {
					if now.Sub(at) >= watchDebounce {
						delete(pending, path)
						log.Printf("config: %s changed, reloading", path)
						onChange(path)
					}
				}
			}
		}
	}()
	return nil
}
