// Package store owns the in-memory entity collections. All mutation goes
// through copy-and-swap: an update builds a new State and the store replaces
// the old one in a single step, so readers never observe a half-applied
// change and invariants are checked at exactly one point, the writer.
package store

import (
	"sync"

	"github.com/teguhahmad/kost01/internal/model"
)

// State is one immutable snapshot of every collection. Collections preserve
// insertion order.
type State struct {
	Tenants  []model.Tenant
	Rooms    []model.Room
	Payments []model.Payment
	Requests []model.MaintenanceRequest
}

// Clone returns a deep copy of the state. Facilities slices are copied too,
// so a cloned state shares nothing with its source.
func (s State) Clone() State {
	out := State{
		Tenants:  make([]model.Tenant, len(s.Tenants)),
		Rooms:    make([]model.Room, len(s.Rooms)),
		Payments: make([]model.Payment, len(s.Payments)),
		Requests: make([]model.MaintenanceRequest, len(s.Requests)),
	}
	copy(out.Tenants, s.Tenants)
	copy(out.Payments, s.Payments)
	copy(out.Requests, s.Requests)
	for i, r := range s.Rooms {
		if r.Facilities != nil {
			r.Facilities = append([]string(nil), r.Facilities...)
		}
		out.Rooms[i] = r
	}
	return out
}

// Tenant looks up a tenant by id.
func (s State) Tenant(id string) (model.Tenant, bool) {
	for _, t := range s.Tenants {
		if t.ID == id {
			return t, true
		}
	}
	return model.Tenant{}, false
}

// Room looks up a room by id.
func (s State) Room(id string) (model.Room, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return model.Room{}, false
}

// Payment looks up a payment by id.
func (s State) Payment(id string) (model.Payment, bool) {
	for _, p := range s.Payments {
		if p.ID == id {
			return p, true
		}
	}
	return model.Payment{}, false
}

// Request looks up a maintenance request by id.
func (s State) Request(id string) (model.MaintenanceRequest, bool) {
	for _, q := range s.Requests {
		if q.ID == id {
			return q, true
		}
	}
	return model.MaintenanceRequest{}, false
}

// Store holds the current State and serializes writers. Readers get a deep
// copy and may iterate it without any coordination with writers.
type Store struct {
	mu    sync.RWMutex
	state State
}

// New returns a store with empty collections.
func New() *Store {
	return &Store{}
}

// NewFromState returns a store seeded with a copy of the given state.
func NewFromState(s State) *Store {
	return &Store{state: s.Clone()}
}

// View returns a snapshot of the current state.
func (st *Store) View() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.Clone()
}

// Update runs fn against a copy of the current state and, when fn succeeds,
// swaps the returned state in as the new current one. A non-nil error leaves
// the store untouched. The whole State swaps at once, so an update that
// rewrites both sides of the tenant/room link is atomic by construction.
func (st *Store) Update(fn func(State) (State, error)) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	next, err := fn(st.state.Clone())
	if err != nil {
		return err
	}
	st.state = next
	return nil
}
