package remind

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports writes to the reminders file and its includes so the
// caller can rebuild the window. Editors that replace files on save show up
// as create events, which are watched too.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func(string)
	done     chan struct{}
}

// WatchFiles starts watching the given files. Files that cannot be watched
// (typically includes that do not exist yet) are skipped silently.
func WatchFiles(files []string, onChange func(string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher:  watcher,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		if err := watcher.Add(abs); err != nil {
			continue
		}
	}

	go fw.run()
	return fw, nil
}

func (fw *FileWatcher) run() {
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Debounce rapid write bursts from editors.
			if timer, exists := debounce[event.Name]; exists {
				timer.Stop()
			}
			name := event.Name
			debounce[name] = time.AfterFunc(100*time.Millisecond, func() {
				fw.onChange(name)
			})

		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
