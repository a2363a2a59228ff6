package panzoom

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
)

type prefObserver struct {
	keys map[string]bool
	h    PrefHandler
}

// PrefStore is an in-memory Preferences implementation that can be loaded
// from and saved to a TOML file. Only boolean and string values are kept.
//
// Keys may be written either quoted or as nested tables:
//
//	"ui.scrolling.negate_wheel_scroll" = true
//
//	[ui.scrolling]
//	negate_wheel_scroll = true
//
// PrefStore is safe for concurrent use. Observers are notified on the
// goroutine that changed the value, outside the store's lock.
type PrefStore struct {
	mu        sync.Mutex
	values    map[string]any
	observers []prefObserver
}

// NewPrefStore creates an empty store.
func NewPrefStore() *PrefStore {
	return &PrefStore{values: make(map[string]any)}
}

// LoadPrefStore reads a TOML preference file. A missing file yields an
// empty store.
func LoadPrefStore(path string) (*PrefStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewPrefStore(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParsePrefStore(data)
}

// ParsePrefStore decodes TOML preference data.
func ParsePrefStore(data []byte) (*PrefStore, error) {
	raw := make(map[string]any)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	s := NewPrefStore()
	flattenPrefs("", raw, s.values)
	return s, nil
}

// flattenPrefs copies bool and string leaves of nested tables into dst
// under dotted keys.
func flattenPrefs(prefix string, src map[string]any, dst map[string]any) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flattenPrefs(key, val, dst)
		case bool, string:
			dst[key] = val
		default:
			Logger().Warn("ignoring preference with unsupported type", "key", key, "type", fmt.Sprintf("%T", v))
		}
	}
}

// Save writes the store to path as TOML with one quoted key per line.
func (s *PrefStore) Save(path string) error {
	s.mu.Lock()
	snapshot := make(map[string]any, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *PrefStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bool returns a boolean preference and whether it is set.
func (s *PrefStore) Bool(name string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name].(bool)
	return v, ok
}

// String returns a string preference and whether it is set.
func (s *PrefStore) String(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name].(string)
	return v, ok
}

// SetBool stores a boolean preference and notifies its observers.
func (s *PrefStore) SetBool(name string, value bool) {
	s.set(name, value)
}

// SetString stores a string preference and notifies its observers.
func (s *PrefStore) SetString(name string, value string) {
	s.set(name, value)
}

func (s *PrefStore) set(name string, value any) {
	s.mu.Lock()
	s.values[name] = value
	var targets []PrefHandler
	for _, o := range s.observers {
		if o.keys[name] {
			targets = append(targets, o.h)
		}
	}
	s.mu.Unlock()

	for _, h := range targets {
		deliverPref(h, name, value)
	}
}

// AddObserver implements Preferences. Keys that already have a value are
// delivered to h before AddObserver returns.
func (s *PrefStore) AddObserver(keys []string, h PrefHandler) {
	if h == nil {
		return
	}
	o := prefObserver{keys: make(map[string]bool, len(keys)), h: h}
	for _, k := range keys {
		o.keys[k] = true
	}

	s.mu.Lock()
	s.observers = append(s.observers, o)
	current := make(map[string]any)
	for _, k := range keys {
		if v, ok := s.values[k]; ok {
			current[k] = v
		}
	}
	s.mu.Unlock()

	for _, k := range keys {
		if v, ok := current[k]; ok {
			deliverPref(h, k, v)
		}
	}
}

// RemoveObserver implements Preferences.
func (s *PrefStore) RemoveObserver(h PrefHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.observers[:0]
	for _, o := range s.observers {
		if o.h != h {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(s.observers); i++ {
		s.observers[i] = prefObserver{}
	}
	s.observers = kept
}

// Observers returns the number of registered observers.
func (s *PrefStore) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

func deliverPref(h PrefHandler, name string, value any) {
	switch v := value.(type) {
	case bool:
		h.PrefBool(name, v)
	case string:
		h.PrefString(name, v)
	}
}
