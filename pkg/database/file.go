package database

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"ips/pkg/utils"
)

// FileStore keeps all keys in a single JSON document on disk. The document is
// rewritten on every Set, like the browser's localStorage mirror.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// OpenFile reads path if it exists. A corrupt document is treated as empty and
// replaced on the next write.
func OpenFile(path string) (*FileStore, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	fs := &FileStore{path: path, entries: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(data) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(data, &fs.entries); err != nil {
		utils.Warn("store file %s is corrupt, starting empty: %v", path, err)
		fs.entries = map[string]string{}
	}
	return fs, nil
}

func (f *FileStore) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

func (f *FileStore) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[key] = string(value)
	return f.flush()
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[key]; !ok {
		return nil
	}
	delete(f.entries, key)
	return f.flush()
}

func (f *FileStore) Close() error {
	return nil
}

// flush writes to a temporary file first so a crash never leaves half a document
func (f *FileStore) flush() error {
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
