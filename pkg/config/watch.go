package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch starts a file watcher on the configuration file and logs a notice
// whenever it changes on disk. Configuration is read-only for the life of the
// process, so the watcher never reloads anything; it only tells the operator
// that a restart is needed to pick up the change.
//
// The returned stop function releases the watcher. Watch returns a nil stop
// function and an error if the watcher cannot be created.
func Watch(path string) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file: editors that replace the file
	// (rename + create) would otherwise silently drop the watch.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					slog.Warn("configuration file changed on disk; restart to apply",
						"path", path,
						"op", event.Op.String(),
					)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("configuration watcher error", "error", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
