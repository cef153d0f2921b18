package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/teguhahmad/kost01/internal/model"
	"github.com/teguhahmad/kost01/internal/monitoring"
	"github.com/teguhahmad/kost01/internal/query"
	"github.com/teguhahmad/kost01/internal/report"
	"github.com/teguhahmad/kost01/internal/service"
)

// Forms submit amounts as strings, so request bodies carry them that way and
// the handler parses them at the boundary.

type tenantRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

func (tr tenantRequest) toModel() model.Tenant {
	return model.Tenant{
		Name:      tr.Name,
		Email:     tr.Email,
		Phone:     tr.Phone,
		StartDate: tr.StartDate,
		EndDate:   tr.EndDate,
		Status:    model.TenantStatus(tr.Status),
	}
}

func (s *Server) listTenants(w http.ResponseWriter, r *http.Request) {
	st := s.store.View()
	rows := query.Filter(st.Tenants,
		query.Text(r.URL.Query().Get("q"), func(t model.Tenant) []string {
			return []string{t.Name, t.Email, t.Phone}
		}),
		query.Status(r.URL.Query().Get("status"), func(t model.Tenant) string {
			return string(t.Status)
		}),
	)
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) addTenant(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, err := s.tenancy.AddTenant(req.toModel())
	if err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTenant(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t := req.toModel()
	t.ID = r.PathValue("id")
	if err := s.tenancy.UpdateTenant(t); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) deleteTenant(w http.ResponseWriter, r *http.Request) {
	if err := s.tenancy.DeleteTenant(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type roomRequest struct {
	Number     string   `json:"number"`
	Floor      string   `json:"floor"`
	Type       string   `json:"type"`
	Price      string   `json:"price"`
	Facilities []string `json:"facilities"`
}

func (rr roomRequest) toModel() (model.Room, error) {
	price, err := model.ParseAmount(rr.Price)
	if err != nil {
		return model.Room{}, err
	}
	return model.Room{
		Number:     rr.Number,
		Floor:      rr.Floor,
		Type:       model.RoomType(rr.Type),
		Price:      price,
		Facilities: rr.Facilities,
	}, nil
}

func (s *Server) listRooms(w http.ResponseWriter, r *http.Request) {
	st := s.store.View()
	rows := query.Filter(st.Rooms,
		query.Text(r.URL.Query().Get("q"), func(rm model.Room) []string {
			return []string{rm.Number, rm.Floor}
		}),
		query.Status(r.URL.Query().Get("status"), func(rm model.Room) string {
			return string(rm.Status)
		}),
	)
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) addRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rm, err := req.toModel()
	if err != nil {
		writeError(w, err)
		return
	}
	rm, err = s.tenancy.AddRoom(rm)
	if err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, rm)
}

func (s *Server) updateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rm, err := req.toModel()
	if err != nil {
		writeError(w, err)
		return
	}
	rm.ID = r.PathValue("id")
	if err := s.tenancy.UpdateRoom(rm); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := s.tenancy.DeleteRoom(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) assignRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TenantID string `json:"tenant_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.tenancy.Assign(req.TenantID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) unassignRoom(w http.ResponseWriter, r *http.Request) {
	if err := s.tenancy.Unassign(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) roomMaintenance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Under bool `json:"under"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.tenancy.SetRoomMaintenance(r.PathValue("id"), req.Under); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type paymentRequest struct {
	TenantID string `json:"tenant_id"`
	RoomID   string `json:"room_id"`
	Amount   string `json:"amount"`
	DueDate  string `json:"due_date"`
	Notes    string `json:"notes"`
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows := query.Filter(service.ResolvePayments(s.store.View()),
		query.Text(q.Get("q"), func(p service.PaymentRow) []string {
			return []string{p.TenantName, p.RoomNumber}
		}),
		query.Status(q.Get("status"), func(p service.PaymentRow) string {
			return string(p.Status)
		}),
		query.DateBetween(q.Get("from"), q.Get("to"), func(p service.PaymentRow) string {
			return p.DueDate
		}),
	)
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) upcomingPayments(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, s.payments.Upcoming(limit))
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := s.payments.Create(model.Payment{
		TenantID: req.TenantID,
		RoomID:   req.RoomID,
		Amount:   amount,
		DueDate:  req.DueDate,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string `json:"date"`
		Method string `json:"method"`
		Notes  string `json:"notes"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.payments.Record(r.PathValue("id"), req.Date, req.Method, req.Notes); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) overduePayment(w http.ResponseWriter, r *http.Request) {
	if err := s.payments.MarkOverdue(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) deletePayment(w http.ResponseWriter, r *http.Request) {
	if err := s.payments.Delete(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	s.reports.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) listMaintenance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st := s.store.View()
	rows := query.Filter(st.Requests,
		query.Text(q.Get("q"), func(m model.MaintenanceRequest) []string {
			return []string{m.Title, m.Description}
		}),
		query.Status(q.Get("status"), func(m model.MaintenanceRequest) string {
			return string(m.Status)
		}),
		query.DateBetween(q.Get("from"), q.Get("to"), func(m model.MaintenanceRequest) string {
			return m.Date
		}),
	)
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) openMaintenance(w http.ResponseWriter, r *http.Request) {
	var req model.MaintenanceRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	q, err := s.maintenance.Open(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) advanceMaintenance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.maintenance.Advance(r.PathValue("id"), model.RequestStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) monthlyReport(w http.ResponseWriter, r *http.Request) {
	months := report.DefaultWindow
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, model.ErrValidation)
			return
		}
		months = n
	}

	if data, ok := s.reports.Get(r.Context(), months); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	st := s.store.View()
	start := time.Now()
	rep := report.Monthly(st.Payments, st.Rooms, months, s.now())
	monitoring.ReportDuration.Observe(time.Since(start).Seconds())

	if data, err := json.Marshal(rep); err == nil {
		s.reports.Set(r.Context(), months, data)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// dashboard returns the overview scalars the landing cards show.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	st := s.store.View()
	rep := report.Monthly(st.Payments, st.Rooms, 1, s.now())

	openRequests := 0
	for _, q := range st.Requests {
		if q.Status != model.RequestCompleted {
			openRequests++
		}
	}
	current := rep.Months[len(rep.Months)-1]
	writeJSON(w, http.StatusOK, map[string]any{
		"monthly_revenue":  current.Revenue,
		"occupancy_rate":   current.OccupancyRate,
		"total_pending":    rep.Summary.TotalPending,
		"total_overdue":    rep.Summary.TotalOverdue,
		"open_maintenance": openRequests,
		"tenants":          len(st.Tenants),
		"rooms":            len(st.Rooms),
	})
}
