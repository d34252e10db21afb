package state

import (
	"sort"
	"sync"
)

// observers fans changes out to subscribers keyed by field. The empty key
// receives every change.
type observers struct {
	mu    sync.Mutex
	next  int
	byKey map[string]map[int]func(Change)
}

func (o *observers) add(key string, fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.byKey == nil {
		o.byKey = make(map[string]map[int]func(Change))
	}
	if o.byKey[key] == nil {
		o.byKey[key] = make(map[int]func(Change))
	}
	id := o.next
	o.next++
	o.byKey[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.byKey[key], id)
			if len(o.byKey[key]) == 0 {
				delete(o.byKey, key)
			}
		})
	}
}

// notify must be called without holding the owner's lock so that observers
// may read the owner.
func (o *observers) notify(change Change) {
	o.mu.Lock()
	var fns []func(Change)
	fns = appendOrdered(fns, o.byKey[change.Field])
	if change.Field != "" {
		fns = appendOrdered(fns, o.byKey[""])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

func appendOrdered(dst []func(Change), set map[int]func(Change)) []func(Change) {
	if len(set) == 0 {
		return dst
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		dst = append(dst, set[id])
	}
	return dst
}
