package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"sync"
)

// StoreFile is the file name of the default LocalStore.
const StoreFile = "storage.json"

// LocalStore is a string key/value store persisted as a JSON object.
// Every operation re-reads the file so concurrent processes see each
// other's writes; writes hold an exclusive flock.
type LocalStore struct {
	path string
	lock string
}

// NewLocalStore returns a store backed by the file at path.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path, lock: path + ".lock"}
}

// OpenLocalStore returns the store at Dir()/storage.json.
func OpenLocalStore() (*LocalStore, error) {
	path, err := Path(StoreFile)
	if err != nil {
		return nil, err
	}
	return NewLocalStore(path), nil
}

// Path returns the backing file.
func (s *LocalStore) Path() string {
	return s.path
}

func (s *LocalStore) load() (map[string]string, error) {
	data := map[string]string{}
	if err := LoadJSON(s.path, &data); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, nil
}

// Get returns the value stored under key.
func (s *LocalStore) Get(key string) (string, bool, error) {
	data, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *LocalStore) Set(key, value string) error {
	return s.update(func(data map[string]string) bool {
		if cur, ok := data[key]; ok && cur == value {
			return false
		}
		data[key] = value
		return true
	})
}

// Remove deletes keys. Missing keys are ignored.
func (s *LocalStore) Remove(keys ...string) error {
	return s.update(func(data map[string]string) bool {
		changed := false
		for _, k := range keys {
			if _, ok := data[k]; ok {
				delete(data, k)
				changed = true
			}
		}
		return changed
	})
}

// Keys returns the stored keys in sorted order.
func (s *LocalStore) Keys() ([]string, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(data)), nil
}

func (s *LocalStore) update(fn func(map[string]string) bool) error {
	return WithLock(s.lock, func() error {
		data, err := s.load()
		if err != nil {
			return err
		}
		if !fn(data) {
			return nil
		}
		return SaveJSON(s.path, data)
	})
}

// MemoryStore is an in-memory store for tests and one-off sessions.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore returns a store seeded with initial, which may be nil.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	data := maps.Clone(initial)
	if data == nil {
		data = map[string]string{}
	}
	return &MemoryStore{data: data}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Remove deletes keys.
func (m *MemoryStore) Remove(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.data)), nil
}
