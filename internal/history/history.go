// Package history tracks recently viewed brew logs and coffees.
// This enables `brewlog brew show` with no arguments to reopen the last
// viewed brew log.
package history

import (
	"errors"
	"io/fs"
	"slices"
	"time"

	"github.com/raphi011/brewlog/internal/storage"
)

// File is the history file name inside the state directory.
const File = "history.json"

// MaxEntries caps the number of remembered entries.
const MaxEntries = 50

// Kind is the type of a remembered item.
type Kind string

const (
	KindBrewLog Kind = "brewlog"
	KindCoffee  Kind = "coffee"
)

// Entry is one remembered item.
type Entry struct {
	Kind        Kind      `json:"kind"`
	ID          int64     `json:"id"`
	Label       string    `json:"label,omitempty"`
	LastAccess  time.Time `json:"last_access"`
	AccessCount int       `json:"access_count"`
}

// History holds entries sorted by most recent access first.
type History struct {
	Entries []Entry `json:"entries"`
}

// DefaultPath returns the history file in the state directory.
func DefaultPath() (string, error) {
	return storage.Path(File)
}

// Load reads the history at path. A missing or corrupted file yields an
// empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &History{}, nil
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		// corrupted, start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Save writes the history to path atomically.
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// Record moves the item to the front, creating it if needed.
func (h *History) Record(kind Kind, id int64, label string, now time.Time) {
	i := h.index(kind, id)
	if i >= 0 {
		e := h.Entries[i]
		h.Entries = slices.Delete(h.Entries, i, i+1)
		e.AccessCount++
		e.LastAccess = now
		if label != "" {
			e.Label = label
		}
		h.Entries = slices.Insert(h.Entries, 0, e)
	} else {
		h.Entries = slices.Insert(h.Entries, 0, Entry{
			Kind:        kind,
			ID:          id,
			Label:       label,
			LastAccess:  now,
			AccessCount: 1,
		})
	}
	if len(h.Entries) > MaxEntries {
		h.Entries = h.Entries[:MaxEntries]
	}
}

// MostRecent returns the most recently accessed entry of kind.
func (h *History) MostRecent(kind Kind) (Entry, bool) {
	for _, e := range h.Entries {
		if e.Kind == kind {
			return e, true
		}
	}
	return Entry{}, false
}

// Remove drops an item and reports whether it was present.
func (h *History) Remove(kind Kind, id int64) bool {
	i := h.index(kind, id)
	if i < 0 {
		return false
	}
	h.Entries = slices.Delete(h.Entries, i, i+1)
	return true
}

func (h *History) index(kind Kind, id int64) int {
	return slices.IndexFunc(h.Entries, func(e Entry) bool {
		return e.Kind == kind && e.ID == id
	})
}

// RecordAccess loads the history at path, records the item and saves.
func RecordAccess(path string, kind Kind, id int64, label string) error {
	h, err := Load(path)
	if err != nil {
		return err
	}
	h.Record(kind, id, label, time.Now())
	return h.Save(path)
}

// Forget removes an item from the history at path.
func Forget(path string, kind Kind, id int64) error {
	h, err := Load(path)
	if err != nil {
		return err
	}
	if !h.Remove(kind, id) {
		return nil
	}
	return h.Save(path)
}
