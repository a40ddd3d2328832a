package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher calls onChange after a watched config file is written or replaced.
//
// Directories are watched rather than the files themselves because most
// editors save by renaming a new file over the old one.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	dirs     map[string]int
	onChange func(string)
	onError  func(error)
	mu       sync.RWMutex
	done     chan struct{}
	once     sync.Once
}

func NewWatcher(onChange func(string), onError func(error)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  watcher,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}

	go w.watch()
	return w, nil
}

func (w *Watcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.files[absPath]; exists {
		return nil // Already watching
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	w.dirs[dir]++
	w.files[absPath] = struct{}{}
	return nil
}

func (w *Watcher) watching(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.files[path]
	return ok
}

func (w *Watcher) watch() {
	var (
		mu       sync.Mutex
		debounce = make(map[string]*time.Timer)
	)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			name := filepath.Clean(event.Name)
			if !w.watching(name) {
				continue
			}

			// Debounce rapid events
			mu.Lock()
			if timer, exists := debounce[name]; exists {
				timer.Stop()
			}
			debounce[name] = time.AfterFunc(watchDebounce, func() {
				mu.Lock()
				delete(debounce, name)
				mu.Unlock()

				if w.onChange != nil {
					w.onChange(name)
				}
			})
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
