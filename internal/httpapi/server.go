// Package httpapi is the JSON surface in front of the services. It owns
// nothing: it decodes form values, calls the operation, and renders whatever
// the store and engines hand back.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/teguhahmad/kost01/internal/cache"
	"github.com/teguhahmad/kost01/internal/model"
	"github.com/teguhahmad/kost01/internal/service"
	"github.com/teguhahmad/kost01/internal/store"
)

// Server wires the services to HTTP routes.
type Server struct {
	store       *store.Store
	tenancy     *service.TenancyService
	payments    *service.PaymentService
	maintenance *service.MaintenanceService
	reports     *cache.ReportCache
	now         func() time.Time
}

// New builds the server. reports may be a disabled cache.
func New(st *store.Store, reports *cache.ReportCache) *Server {
	return &Server{
		store:       st,
		tenancy:     service.NewTenancyService(st),
		payments:    service.NewPaymentService(st),
		maintenance: service.NewMaintenanceService(st),
		reports:     reports,
		now:         time.Now,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/tenants", s.listTenants)
	mux.HandleFunc("POST /api/tenants", s.addTenant)
	mux.HandleFunc("PUT /api/tenants/{id}", s.updateTenant)
	mux.HandleFunc("DELETE /api/tenants/{id}", s.deleteTenant)

	mux.HandleFunc("GET /api/rooms", s.listRooms)
	mux.HandleFunc("POST /api/rooms", s.addRoom)
	mux.HandleFunc("PUT /api/rooms/{id}", s.updateRoom)
	mux.HandleFunc("DELETE /api/rooms/{id}", s.deleteRoom)
	mux.HandleFunc("POST /api/rooms/{id}/assign", s.assignRoom)
	mux.HandleFunc("POST /api/rooms/{id}/unassign", s.unassignRoom)
	mux.HandleFunc("POST /api/rooms/{id}/maintenance", s.roomMaintenance)

	mux.HandleFunc("GET /api/payments", s.listPayments)
	mux.HandleFunc("GET /api/payments/upcoming", s.upcomingPayments)
	mux.HandleFunc("POST /api/payments", s.createPayment)
	mux.HandleFunc("POST /api/payments/{id}/record", s.recordPayment)
	mux.HandleFunc("POST /api/payments/{id}/overdue", s.overduePayment)
	mux.HandleFunc("DELETE /api/payments/{id}", s.deletePayment)

	mux.HandleFunc("GET /api/maintenance", s.listMaintenance)
	mux.HandleFunc("POST /api/maintenance", s.openMaintenance)
	mux.HandleFunc("POST /api/maintenance/{id}/status", s.advanceMaintenance)

	mux.HandleFunc("GET /api/reports/monthly", s.monthlyReport)
	mux.HandleFunc("GET /api/dashboard", s.dashboard)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(model.ErrValidation, err)
	}
	return nil
}
