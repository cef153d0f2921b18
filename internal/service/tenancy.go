// Package service implements the workflows that mutate the entity store:
// tenancy (tenant and room records plus the assignment link), payments, and
// maintenance requests. Every mutation builds the next state inside a single
// store.Update call, so the tenant/room link and the derived payment status
// are never visible half-written.
package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/teguhahmad/kost01/internal/model"
	"github.com/teguhahmad/kost01/internal/monitoring"
	"github.com/teguhahmad/kost01/internal/store"
)

// TenancyService owns tenant and room records and the bidirectional
// assignment link between them.
type TenancyService struct {
	store *store.Store
}

func NewTenancyService(st *store.Store) *TenancyService {
	return &TenancyService{store: st}
}

// AddTenant creates a tenant. The room link always starts empty; housing a
// tenant goes through Assign. PaymentStatus starts at the vacuous default,
// paid, since a tenant with no payments owes nothing.
func (s *TenancyService) AddTenant(t model.Tenant) (model.Tenant, error) {
	if err := validateTenant(t); err != nil {
		monitoring.ObserveOperation("tenant_add", err)
		return model.Tenant{}, err
	}
	t.ID = uuid.NewString()
	t.RoomID = ""
	if t.Status == "" {
		t.Status = model.TenantActive
	}
	t.PaymentStatus = model.PaymentPaid

	err := s.store.Update(func(st store.State) (store.State, error) {
		st.Tenants = append(st.Tenants, t)
		return st, nil
	})
	monitoring.ObserveOperation("tenant_add", err)
	if err != nil {
		return model.Tenant{}, err
	}
	log.Info().Str("tenant_id", t.ID).Str("name", t.Name).Msg("Tenant added")
	return t, nil
}

// UpdateTenant rewrites a tenant's editable fields. The room link and the
// derived payment status are preserved from the stored record; they belong to
// Assign/Unassign and the payment lifecycle respectively.
func (s *TenancyService) UpdateTenant(t model.Tenant) error {
	if err := validateTenant(t); err != nil {
		monitoring.ObserveOperation("tenant_update", err)
		return err
	}
	err := s.store.Update(func(st store.State) (store.State, error) {
		for i, cur := range st.Tenants {
			if cur.ID == t.ID {
				t.RoomID = cur.RoomID
				t.PaymentStatus = cur.PaymentStatus
				st.Tenants[i] = t
				return st, nil
			}
		}
		return st, fmt.Errorf("tenant %s: %w", t.ID, model.ErrNotFound)
	})
	monitoring.ObserveOperation("tenant_update", err)
	return err
}

// DeleteTenant removes the tenant record. The delete does not cascade: a room
// still pointing at the tenant is unlinked, but payments keep their tenant id
// and readers resolve it to a placeholder.
func (s *TenancyService) DeleteTenant(id string) error {
	err := s.store.Update(func(st store.State) (store.State, error) {
		idx := -1
		for i, t := range st.Tenants {
			if t.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return st, fmt.Errorf("tenant %s: %w", id, model.ErrNotFound)
		}
		st.Tenants = append(st.Tenants[:idx], st.Tenants[idx+1:]...)
		for i, r := range st.Rooms {
			if r.TenantID == id {
				st.Rooms[i].TenantID = ""
				st.Rooms[i].Status = model.RoomVacant
			}
		}
		return st, nil
	})
	monitoring.ObserveOperation("tenant_delete", err)
	if err == nil {
		log.Info().Str("tenant_id", id).Msg("Tenant deleted")
	}
	return err
}

// AddRoom creates a room. New rooms start vacant and unlinked regardless of
// what the form submitted; occupancy only changes through Assign.
func (s *TenancyService) AddRoom(r model.Room) (model.Room, error) {
	if err := validateRoom(r); err != nil {
		monitoring.ObserveOperation("room_add", err)
		return model.Room{}, err
	}
	r.ID = uuid.NewString()
	r.Status = model.RoomVacant
	r.TenantID = ""
	r.Facilities = dedupeFacilities(r.Facilities)

	err := s.store.Update(func(st store.State) (store.State, error) {
		st.Rooms = append(st.Rooms, r)
		return st, nil
	})
	monitoring.ObserveOperation("room_add", err)
	if err != nil {
		return model.Room{}, err
	}
	log.Info().Str("room_id", r.ID).Str("number", r.Number).Msg("Room added")
	return r, nil
}

// UpdateRoom rewrites a room's editable fields, preserving the stored status
// and tenant link.
func (s *TenancyService) UpdateRoom(r model.Room) error {
	if err := validateRoom(r); err != nil {
		monitoring.ObserveOperation("room_update", err)
		return err
	}
	r.Facilities = dedupeFacilities(r.Facilities)
	err := s.store.Update(func(st store.State) (store.State, error) {
		for i, cur := range st.Rooms {
			if cur.ID == r.ID {
				r.Status = cur.Status
				r.TenantID = cur.TenantID
				st.Rooms[i] = r
				return st, nil
			}
		}
		return st, fmt.Errorf("room %s: %w", r.ID, model.ErrNotFound)
	})
	monitoring.ObserveOperation("room_update", err)
	return err
}

// DeleteRoom removes the room record, unlinking a housed tenant first.
// Payments referencing the room keep their room id.
func (s *TenancyService) DeleteRoom(id string) error {
	err := s.store.Update(func(st store.State) (store.State, error) {
		idx := -1
		for i, r := range st.Rooms {
			if r.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return st, fmt.Errorf("room %s: %w", id, model.ErrNotFound)
		}
		for i, t := range st.Tenants {
			if t.RoomID == id {
				st.Tenants[i].RoomID = ""
			}
		}
		st.Rooms = append(st.Rooms[:idx], st.Rooms[idx+1:]...)
		return st, nil
	})
	monitoring.ObserveOperation("room_delete", err)
	return err
}

// Assign links a tenant to a vacant room, writing both sides of the link in
// one swap.
func (s *TenancyService) Assign(tenantID, roomID string) error {
	err := s.store.Update(func(st store.State) (store.State, error) {
		ti := -1
		for i, t := range st.Tenants {
			if t.ID == tenantID {
				ti = i
				break
			}
		}
		if ti < 0 {
			return st, fmt.Errorf("tenant %s: %w", tenantID, model.ErrNotFound)
		}
		ri := -1
		for i, r := range st.Rooms {
			if r.ID == roomID {
				ri = i
				break
			}
		}
		if ri < 0 {
			return st, fmt.Errorf("room %s: %w", roomID, model.ErrNotFound)
		}
		if st.Rooms[ri].Status != model.RoomVacant {
			return st, fmt.Errorf("room %s is %s: %w", roomID, st.Rooms[ri].Status, model.ErrConflict)
		}
		if st.Tenants[ti].RoomID != "" {
			return st, fmt.Errorf("tenant %s already housed in room %s: %w", tenantID, st.Tenants[ti].RoomID, model.ErrConflict)
		}
		st.Rooms[ri].Status = model.RoomOccupied
		st.Rooms[ri].TenantID = tenantID
		st.Tenants[ti].RoomID = roomID
		return st, nil
	})
	monitoring.ObserveOperation("assign", err)
	if err == nil {
		log.Info().Str("tenant_id", tenantID).Str("room_id", roomID).Msg("Tenant assigned to room")
	}
	return err
}

// Unassign clears both sides of the room's link and returns the room to
// vacant. A room whose linked tenant no longer exists still unassigns
// cleanly; only a missing room is an error.
func (s *TenancyService) Unassign(roomID string) error {
	err := s.store.Update(func(st store.State) (store.State, error) {
		ri := -1
		for i, r := range st.Rooms {
			if r.ID == roomID {
				ri = i
				break
			}
		}
		if ri < 0 {
			return st, fmt.Errorf("room %s: %w", roomID, model.ErrNotFound)
		}
		linked := st.Rooms[ri].TenantID
		st.Rooms[ri].TenantID = ""
		st.Rooms[ri].Status = model.RoomVacant
		if linked != "" {
			for i, t := range st.Tenants {
				// Only clear the currently-linked tenant; a stale request
				// naming someone else must not touch their record.
				if t.ID == linked && t.RoomID == roomID {
					st.Tenants[i].RoomID = ""
				}
			}
		}
		return st, nil
	})
	monitoring.ObserveOperation("unassign", err)
	return err
}

// SetRoomMaintenance moves a room between vacant and maintenance. An occupied
// room must be unassigned first.
func (s *TenancyService) SetRoomMaintenance(roomID string, under bool) error {
	err := s.store.Update(func(st store.State) (store.State, error) {
		for i, r := range st.Rooms {
			if r.ID != roomID {
				continue
			}
			if r.Status == model.RoomOccupied {
				return st, fmt.Errorf("room %s is occupied: %w", roomID, model.ErrConflict)
			}
			if under {
				st.Rooms[i].Status = model.RoomMaintenance
			} else {
				st.Rooms[i].Status = model.RoomVacant
			}
			return st, nil
		}
		return st, fmt.Errorf("room %s: %w", roomID, model.ErrNotFound)
	})
	monitoring.ObserveOperation("room_maintenance", err)
	return err
}

func validateTenant(t model.Tenant) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tenant name is required: %w", model.ErrValidation)
	}
	if t.StartDate != "" && !model.ValidDate(t.StartDate) {
		return fmt.Errorf("start date %q: %w", t.StartDate, model.ErrValidation)
	}
	if t.EndDate != "" && !model.ValidDate(t.EndDate) {
		return fmt.Errorf("end date %q: %w", t.EndDate, model.ErrValidation)
	}
	if t.Status != "" && t.Status != model.TenantActive && t.Status != model.TenantInactive {
		return fmt.Errorf("tenant status %q: %w", t.Status, model.ErrValidation)
	}
	return nil
}

func validateRoom(r model.Room) error {
	if strings.TrimSpace(r.Number) == "" {
		return fmt.Errorf("room number is required: %w", model.ErrValidation)
	}
	switch r.Type {
	case model.RoomSingle, model.RoomDouble, model.RoomDeluxe:
	default:
		return fmt.Errorf("room type %q: %w", r.Type, model.ErrValidation)
	}
	if r.Price.Cents < 0 {
		return fmt.Errorf("room price: %w", model.ErrValidation)
	}
	return nil
}

func dedupeFacilities(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, f := range in {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
