// Package formerrors implements the per-form validation error registry that
// bindings consult when rendering helper text.
package formerrors

import (
	"strings"
	"sync"
)

// Entry is a single (field, message) pair. An empty Field marks a form-level
// message.
type Entry struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldError is the display-ready pair merged into element props.
type FieldError struct {
	Error      bool   `json:"error"`
	HelperText string `json:"helperText"`
}

// Handler holds the error entries of one validation context. The zero value
// is ready to use.
type Handler struct {
	mu        sync.RWMutex
	entries   []Entry
	listeners map[int]func()
	next      int
}

// New returns an empty Handler.
func New() *Handler {
	return &Handler{}
}

// Error appends an entry for field.
func (h *Handler) Error(field, message string) {
	h.mu.Lock()
	h.entries = append(h.entries, Entry{Field: field, Message: message})
	h.mu.Unlock()
	h.changed()
}

// HasError reports whether any entry exists.
func (h *Handler) HasError() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries) > 0
}

// FieldHasError reports whether field has at least one entry.
func (h *Handler) FieldHasError(field string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, e := range h.entries {
		if e.Field == field {
			return true
		}
	}
	return false
}

// GetFieldError returns the first message recorded for field. Absent fields
// yield the zero FieldError.
func (h *Handler) GetFieldError(field string) FieldError {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, e := range h.entries {
		if e.Field == field {
			return FieldError{Error: true, HelperText: e.Message}
		}
	}
	return FieldError{}
}

// ResetFieldError removes every entry for field.
func (h *Handler) ResetFieldError(field string) {
	h.mu.Lock()
	kept := h.entries[:0]
	removed := false
	for _, e := range h.entries {
		if e.Field == field {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	h.entries = kept
	h.mu.Unlock()
	if removed {
		h.changed()
	}
}

// Reset clears all entries.
func (h *Handler) Reset() {
	h.mu.Lock()
	had := len(h.entries) > 0
	h.entries = nil
	h.mu.Unlock()
	if had {
		h.changed()
	}
}

// Entries returns a copy of the recorded entries in insertion order.
func (h *Handler) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.entries) == 0 {
		return nil
	}
	return append([]Entry(nil), h.entries...)
}

// FormErrors returns the normalised form-level messages.
func (h *Handler) FormErrors() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []string
	for _, e := range h.entries {
		if strings.TrimSpace(e.Field) == "" {
			out = append(out, e.Message)
		}
	}
	return normalizeMessages(out)
}

// Subscribe registers fn to run after every mutation. The returned func
// removes it.
func (h *Handler) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listeners == nil {
		h.listeners = make(map[int]func())
	}
	id := h.next
	h.next++
	h.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.listeners, id)
		})
	}
}

func (h *Handler) changed() {
	h.mu.RLock()
	fns := make([]func(), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}
