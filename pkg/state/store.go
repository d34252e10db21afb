package state

import (
	"fmt"
	"sync"
)

// Store is a Container holding a tree of values addressed by dotted paths.
// The zero value is an empty store.
// Every path present in the seed values, and every path written through Set
// or Declare, is observable. Paths the store has never seen are not.
type Store struct {
	mu       sync.RWMutex
	values   map[string]any
	declared map[string]struct{}
	obs      observers
}

var (
	_ Container  = (*Store)(nil)
	_ Subscriber = (*Store)(nil)
)

// NewStore seeds the store with a deep copy of values.
func NewStore(values map[string]any) *Store {
	s := &Store{
		values:   cloneValues(values),
		declared: make(map[string]struct{}),
	}
	collectPaths("", s.values, s.declared)
	return s
}

// Get resolves a dotted path.
func (s *Store) Get(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getPath(s.values, path)
}

// Set writes value at path and notifies subscribers of that path.
func (s *Store) Set(path string, value any) error {
	if s == nil {
		return ErrNilContainer
	}
	previous, err := s.write(path, value)
	if err != nil {
		return err
	}
	s.obs.notify(Change{Field: path, Previous: previous, Value: value})
	return nil
}

// Declare writes an initial value at path without notifying subscribers.
func (s *Store) Declare(path string, value any) error {
	if s == nil {
		return ErrNilContainer
	}
	_, err := s.write(path, value)
	return err
}

func (s *Store) write(path string, value any) (any, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil, fmt.Errorf("state: empty path")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if s.declared == nil {
		s.declared = make(map[string]struct{})
	}
	previous, _ := getPath(s.values, path)
	if err := setPath(s.values, segments, value); err != nil {
		return nil, err
	}
	prefix := ""
	for _, segment := range segments {
		prefix = joinPath(prefix, segment)
		s.declared[prefix] = struct{}{}
	}
	collectPaths(path, value, s.declared)
	return previous, nil
}

// Observable reports whether the store tracks path.
func (s *Store) Observable(path string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.declared[path]
	return ok
}

// Subscribe registers fn for writes to path. An empty path subscribes to
// every write.
func (s *Store) Subscribe(path string, fn func(Change)) func() {
	if s == nil {
		return func() {}
	}
	return s.obs.add(path, fn)
}

// Values returns a deep copy of the stored tree.
func (s *Store) Values() map[string]any {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneValues(s.values)
}

// Paths lists the observable paths in sorted order.
func (s *Store) Paths() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.declared)
}
