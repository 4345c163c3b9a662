package normalize

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
)

// Registry maps type identifiers to handler factories.
//
// Registration is append-only. A registry is sealed when the first
// Dispatcher is built on it; after that it is immutable and reads take no
// locks. Independent registries (one per API version, say) can coexist.
type Registry struct {
	mu      sync.RWMutex
	sealed  atomic.Bool
	entries map[TypeID]Entry
	byType  map[reflect.Type]TypeID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[TypeID]Entry),
		byType:  make(map[reflect.Type]TypeID),
	}
}

// Register adds an entry.
//
// Registering the same identifier twice for the same Go type is a no-op.
// Reusing an identifier for a different Go type, or a Go type under a second
// identifier, is ErrDuplicateRegistration.
func (r *Registry) Register(e Entry) error {
	if e.err != nil {
		return e.err
	}
	if e.ID == "" {
		return newRegistrationError(ErrInvalidEntry, "", "empty type identifier")
	}
	if e.Factory == nil {
		return newRegistrationError(ErrInvalidEntry, e.ID, "nil factory")
	}
	if e.Type != nil && e.Type.Kind() == reflect.Pointer {
		e.Type = e.Type.Elem()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return newRegistrationError(ErrRegistrySealed, e.ID, "")
	}

	if existing, ok := r.entries[e.ID]; ok {
		if sameEntry(existing, e) {
			return nil
		}
		return newRegistrationError(ErrDuplicateRegistration, e.ID,
			fmt.Sprintf("already registered for %v, got %v", existing.Type, e.Type))
	}

	if e.Type != nil {
		if id, ok := r.byType[e.Type]; ok {
			return newRegistrationError(ErrDuplicateRegistration, e.ID,
				fmt.Sprintf("go type %v already registered as %q", e.Type, id))
		}
		r.byType[e.Type] = e.ID
	}
	r.entries[e.ID] = e
	return nil
}

// sameEntry reports whether re-registering e over existing is a no-op.
// Decode-only entries carry no identity and always conflict.
func sameEntry(existing, e Entry) bool {
	return e.Type != nil && existing.Type == e.Type && existing.source == e.source
}

// MustRegister registers entries and panics on the first error.
// This function is meant for use during program initialization.
func (r *Registry) MustRegister(entries ...Entry) *Registry {
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the entry registered under id.
func (r *Registry) Lookup(id TypeID) (Entry, bool) {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	e, ok := r.entries[id]
	return e, ok
}

// TypeOf returns the identifier registered for a Go type. Pointer types
// resolve to their element type.
func (r *Registry) TypeOf(t reflect.Type) (TypeID, bool) {
	if t == nil {
		return "", false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	id, ok := r.byType[t]
	return id, ok
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []TypeID {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	ids := lo.Keys(r.entries)
	slices.Sort(ids)
	return ids
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	return len(r.entries)
}

// Sealed reports whether the registry has been frozen by a dispatcher.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Validate checks that the registry is closed under nesting: every Go type
// reachable from a registered type's fields is itself registered.
func (r *Registry) Validate() error {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}

	var missing []string
	for _, id := range lo.Keys(r.entries) {
		for _, nested := range r.entries[id].Nested {
			if _, ok := r.byType[nested]; !ok {
				missing = append(missing, fmt.Sprintf("%v (from %s)", nested, id))
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	missing = lo.Uniq(missing)
	slices.Sort(missing)
	return newRegistrationError(ErrIncompleteRegistry, "", "unregistered nested types: "+strings.Join(missing, ", "))
}

// seal freezes the registry.
func (r *Registry) seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed.Store(true)
}
