package state

import (
	"encoding/json"
	"sync"
)

// Updatable wraps a value together with a flag recording whether a user
// change has been committed since the last reset.
type Updatable struct {
	mu      sync.RWMutex
	value   any
	updated bool
	obs     observers
}

// NewUpdatable returns a wrapper holding value with the updated flag cleared.
func NewUpdatable(value any) *Updatable {
	return &Updatable{value: value}
}

// Value returns the wrapped value.
func (u *Updatable) Value() any {
	if u == nil {
		return nil
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.value
}

// Updated reports whether Set has been called since construction or Reset.
func (u *Updatable) Updated() bool {
	if u == nil {
		return false
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.updated
}

// Set stores value, marks the wrapper as updated and notifies subscribers.
func (u *Updatable) Set(value any) {
	if u == nil {
		return
	}
	u.mu.Lock()
	previous := u.value
	u.value = value
	u.updated = true
	u.mu.Unlock()

	u.obs.notify(Change{Previous: previous, Value: value})
}

// Reset stores value and clears the updated flag. Subscribers are not
// notified.
func (u *Updatable) Reset(value any) {
	if u == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.value = value
	u.updated = false
}

// Subscribe registers fn for every Set. Changes carry an empty Field.
func (u *Updatable) Subscribe(fn func(Change)) func() {
	if u == nil {
		return func() {}
	}
	return u.obs.add("", fn)
}

// MarshalJSON encodes the value and the updated flag; a nil wrapper encodes
// as null.
func (u *Updatable) MarshalJSON() ([]byte, error) {
	if u == nil {
		return []byte("null"), nil
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	return json.Marshal(struct {
		Value   any  `json:"value"`
		Updated bool `json:"updated"`
	}{u.value, u.updated})
}
