package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"inlaw/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// FileStore persists values as a JSON object in a single file. Several
// processes may share the file; Watch reports changes made by the others.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string]string

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileStore opens or creates the store at path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, unavailable("create store directory", err)
	}

	fs := &FileStore{path: path, data: make(map[string]string)}
	data, err := fs.read()
	if err != nil {
		return nil, err
	}
	fs.data = data
	logging.Store("FileStore opened at %s (%d keys)", path, len(data))
	return fs, nil
}

// read loads the file. A missing file is an empty store.
func (f *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, unavailable("read store", err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", f.path, err)
	}
	return data, nil
}

// write replaces the file atomically. Caller holds mu.
func (f *FileStore) write() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".store-*.tmp")
	if err != nil {
		return unavailable("write store", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return unavailable("write store", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return unavailable("write store", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return unavailable("replace store", err)
	}
	return nil
}

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.data[key]
	f.data[key] = value
	if err := f.write(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev := f.data
	f.data = map[string]string{}
	if err := f.write(); err != nil {
		f.data = prev
		return err
	}
	return nil
}

func (f *FileStore) Keys() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Watch starts watching the store's directory and returns a channel that
// receives a value whenever another writer changed the stored pairs.
// Writes made through this FileStore do not signal. The channel is closed
// when ctx ends or the store is closed.
func (f *FileStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	f.watchMu.Lock()
	defer f.watchMu.Unlock()
	if f.watcher != nil {
		return nil, errors.New("file store is already being watched")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// The file is replaced by rename, so watch the directory.
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}

	f.watcher = w
	f.done = make(chan struct{})
	changes := make(chan struct{}, 1)
	go f.run(ctx, w, changes)
	logging.StoreDebug("FileStore watching %s", f.path)
	return changes, nil
}

func (f *FileStore) run(ctx context.Context, w *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(f.done)
	defer close(changes)

	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(f.path) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if f.reload() {
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logging.StoreWarn("FileStore watcher error: %v", err)
		}
	}
}

// reload re-reads the file and reports whether its pairs differ from memory.
func (f *FileStore) reload() bool {
	data, err := f.read()
	if err != nil {
		// Another writer may be mid-write; the next event will retry.
		logging.StoreDebug("FileStore reload skipped: %v", err)
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if maps.Equal(data, f.data) {
		return false
	}
	f.data = data
	logging.Store("FileStore picked up external change (%d keys)", len(data))
	return true
}

// Close stops any watcher.
func (f *FileStore) Close() error {
	f.watchMu.Lock()
	w, done := f.watcher, f.done
	f.watcher = nil
	f.watchMu.Unlock()
	if w == nil {
		return nil
	}
	err := w.Close()
	<-done
	return err
}
