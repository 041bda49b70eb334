// Package registry holds the process-wide catalog of renderable
// compositions.
//
// Lifecycle: populated at startup, read-only during rendering, cleared only
// by an explicit Reset (tests). Because rendering never writes, the only
// locking the registry needs is registration-time exclusion; reads take the
// shared side of an RWMutex and never contend with each other.
package registry

import (
	"iter"
	"sync"

	"github.com/seqlab/framecast/internal/scene"
)

// Registry is the catalog. The zero value is not usable; call New.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]*scene.Composition
	order []*scene.Composition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byID: make(map[string]*scene.Composition),
	}
}

// Register validates and adds a composition. A duplicate id or invalid
// metadata fails with a ValidationError and leaves the registry exactly as
// it was - a failed registration is never partially visible.
func (r *Registry) Register(comp *scene.Composition) error {
	if err := comp.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[comp.ID]; exists {
		return &scene.ValidationError{
			Code:          scene.ErrCodeDuplicateID,
			Message:       "composition id already registered",
			CompositionID: comp.ID,
		}
	}

	r.byID[comp.ID] = comp
	r.order = append(r.order, comp)
	return nil
}

// Lookup returns the composition registered under id, or a NotFoundError.
func (r *Registry) Lookup(id string) (*scene.Composition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comp, ok := r.byID[id]
	if !ok {
		return nil, &scene.NotFoundError{CompositionID: id}
	}
	return comp, nil
}

// List yields registered compositions in registration order. The sequence
// is finite and restartable: each range starts over from the first
// registration. The snapshot is taken when iteration begins, so a List in
// flight is unaffected by later Resets.
func (r *Registry) List() iter.Seq[*scene.Composition] {
	return func(yield func(*scene.Composition) bool) {
		r.mu.RLock()
		snapshot := make([]*scene.Composition, len(r.order))
		copy(snapshot, r.order)
		r.mu.RUnlock()

		for _, comp := range snapshot {
			if !yield(comp) {
				return
			}
		}
	}
}

// Len returns the number of registered compositions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Reset clears the registry. For tests only; production code populates once
// at startup and never clears.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]*scene.Composition)
	r.order = nil
}
