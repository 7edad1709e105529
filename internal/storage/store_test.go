package storage

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
)

type kv interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(keys ...string) error
	Keys() ([]string, error)
}

func testStore(t *testing.T, s kv) {
	t.Helper()

	if _, ok, err := s.Get("authToken"); err != nil || ok {
		t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
	}

	if err := s.Set("authToken", "abc"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set("token", "legacy"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, ok, err := s.Get("authToken")
	if err != nil || !ok || v != "abc" {
		t.Errorf("Get(authToken) = %q, %v, %v", v, ok, err)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(keys, []string{"authToken", "token"}) {
		t.Errorf("Keys() = %v", keys)
	}

	if err := s.Remove("authToken", "token", "missing"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if keys, _ := s.Keys(); len(keys) != 0 {
		t.Errorf("Keys() after Remove = %v, want empty", keys)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	testStore(t, NewMemoryStore(nil))
}

func TestMemoryStore_SeedIsCopied(t *testing.T) {
	t.Parallel()

	seed := map[string]string{"token": "x"}
	s := NewMemoryStore(seed)
	_ = s.Remove("token")
	if seed["token"] != "x" {
		t.Error("NewMemoryStore should not alias its seed map")
	}
}

func TestLocalStore(t *testing.T) {
	t.Parallel()
	testStore(t, NewLocalStore(filepath.Join(t.TempDir(), StoreFile)))
}

func TestLocalStore_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), StoreFile)
	if err := NewLocalStore(path).Set("authToken", "abc"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := NewLocalStore(path).Get("authToken")
	if err != nil || !ok || v != "abc" {
		t.Errorf("Get() from second instance = %q, %v, %v", v, ok, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("store file mode = %o, want 600", perm)
	}
}

func TestLocalStore_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), StoreFile)
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// separate instances behave like separate processes
			if err := NewLocalStore(path).Set(k, k); err != nil {
				t.Errorf("Set(%s) error = %v", k, err)
			}
		}()
	}
	wg.Wait()

	got, err := NewLocalStore(path).Keys()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, keys) {
		t.Errorf("Keys() = %v, want %v", got, keys)
	}
}

func TestLocalStore_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), StoreFile)
	if err := os.WriteFile(path, []byte("{oops"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := NewLocalStore(path).Get("authToken"); err == nil {
		t.Error("Get() on corrupt file should fail")
	}
}
