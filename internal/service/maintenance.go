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

// MaintenanceService owns maintenance requests and their
// open -> in-progress -> completed progression.
type MaintenanceService struct {
	store *store.Store
}

func NewMaintenanceService(st *store.Store) *MaintenanceService {
	return &MaintenanceService{store: st}
}

// Open files a new request against a room. The room reference is not
// enforced; a request can outlive its room.
func (s *MaintenanceService) Open(q model.MaintenanceRequest) (model.MaintenanceRequest, error) {
	if strings.TrimSpace(q.Title) == "" {
		err := fmt.Errorf("request title is required: %w", model.ErrValidation)
		monitoring.ObserveOperation("maintenance_open", err)
		return model.MaintenanceRequest{}, err
	}
	if !model.ValidDate(q.Date) {
		err := fmt.Errorf("request date %q: %w", q.Date, model.ErrValidation)
		monitoring.ObserveOperation("maintenance_open", err)
		return model.MaintenanceRequest{}, err
	}
	switch q.Priority {
	case model.PriorityLow, model.PriorityNormal, model.PriorityUrgent:
	case "":
		q.Priority = model.PriorityNormal
	default:
		err := fmt.Errorf("request priority %q: %w", q.Priority, model.ErrValidation)
		monitoring.ObserveOperation("maintenance_open", err)
		return model.MaintenanceRequest{}, err
	}
	q.ID = uuid.NewString()
	q.Status = model.RequestOpen

	err := s.store.Update(func(st store.State) (store.State, error) {
		st.Requests = append(st.Requests, q)
		return st, nil
	})
	monitoring.ObserveOperation("maintenance_open", err)
	if err != nil {
		return model.MaintenanceRequest{}, err
	}
	log.Info().Str("request_id", q.ID).Str("room_id", q.RoomID).Str("priority", string(q.Priority)).Msg("Maintenance request opened")
	return q, nil
}

// Advance moves a request forward. Only open -> in-progress and
// in-progress -> completed are legal; completed is terminal.
func (s *MaintenanceService) Advance(id string, next model.RequestStatus) error {
	err := s.store.Update(func(st store.State) (store.State, error) {
		for i, q := range st.Requests {
			if q.ID != id {
				continue
			}
			if !legalRequestTransition(q.Status, next) {
				return st, fmt.Errorf("request %s is %s, cannot move to %s: %w", id, q.Status, next, model.ErrConflict)
			}
			st.Requests[i].Status = next
			return st, nil
		}
		return st, fmt.Errorf("request %s: %w", id, model.ErrNotFound)
	})
	monitoring.ObserveOperation("maintenance_advance", err)
	return err
}

func legalRequestTransition(from, to model.RequestStatus) bool {
	switch from {
	case model.RequestOpen:
		return to == model.RequestInProgress || to == model.RequestCompleted
	case model.RequestInProgress:
		return to == model.RequestCompleted
	default:
		return false
	}
}
