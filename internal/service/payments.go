package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/teguhahmad/kost01/internal/model"
	"github.com/teguhahmad/kost01/internal/monitoring"
	"github.com/teguhahmad/kost01/internal/store"
)

// PaymentService owns the payment lifecycle: pending -> paid,
// pending -> overdue, overdue -> paid. Paid is terminal. Every transition
// re-derives the owning tenant's payment status inside the same swap.
type PaymentService struct {
	store *store.Store
}

func NewPaymentService(st *store.Store) *PaymentService {
	return &PaymentService{store: st}
}

// Create registers a pending charge against a tenant. Tenant and room ids are
// references only; a charge against an id that has since been deleted is
// accepted and resolves to a placeholder on display.
func (s *PaymentService) Create(p model.Payment) (model.Payment, error) {
	if p.Amount.Cents <= 0 {
		err := fmt.Errorf("payment amount must be positive: %w", model.ErrValidation)
		monitoring.ObserveOperation("payment_create", err)
		return model.Payment{}, err
	}
	if !model.ValidDate(p.DueDate) {
		err := fmt.Errorf("due date %q: %w", p.DueDate, model.ErrValidation)
		monitoring.ObserveOperation("payment_create", err)
		return model.Payment{}, err
	}
	p.ID = uuid.NewString()
	p.Status = model.PaymentPending
	p.Date = ""
	p.Method = ""

	err := s.store.Update(func(st store.State) (store.State, error) {
		st.Payments = append(st.Payments, p)
		rederiveTenantStatus(&st, p.TenantID)
		return st, nil
	})
	monitoring.ObserveOperation("payment_create", err)
	if err != nil {
		return model.Payment{}, err
	}
	log.Info().Str("payment_id", p.ID).Str("tenant_id", p.TenantID).Int64("cents", p.Amount.Cents).Msg("Payment created")
	return p, nil
}

// Record marks a pending or overdue payment as paid. Date and method are
// required; re-recording an already paid payment is a conflict so a
// duplicate form submission cannot double-book revenue.
func (s *PaymentService) Record(id, date, method, notes string) error {
	if !model.ValidDate(date) {
		err := fmt.Errorf("payment date %q: %w", date, model.ErrValidation)
		monitoring.ObserveOperation("payment_record", err)
		return err
	}
	if strings.TrimSpace(method) == "" {
		err := fmt.Errorf("payment method is required: %w", model.ErrValidation)
		monitoring.ObserveOperation("payment_record", err)
		return err
	}
	err := s.store.Update(func(st store.State) (store.State, error) {
		for i, p := range st.Payments {
			if p.ID != id {
				continue
			}
			if p.Status == model.PaymentPaid {
				return st, fmt.Errorf("payment %s already paid: %w", id, model.ErrConflict)
			}
			st.Payments[i].Status = model.PaymentPaid
			st.Payments[i].Date = date
			st.Payments[i].Method = method
			if notes != "" {
				st.Payments[i].Notes = notes
			}
			rederiveTenantStatus(&st, p.TenantID)
			return st, nil
		}
		return st, fmt.Errorf("payment %s: %w", id, model.ErrNotFound)
	})
	monitoring.ObserveOperation("payment_record", err)
	if err == nil {
		log.Info().Str("payment_id", id).Str("date", date).Str("method", method).Msg("Payment recorded")
	}
	return err
}

// MarkOverdue transitions a pending payment to overdue. The clock lives with
// the caller: an external sweep decides when, typically via the Overdue
// predicate.
func (s *PaymentService) MarkOverdue(id string) error {
	var tenantID string
	err := s.store.Update(func(st store.State) (store.State, error) {
		for i, p := range st.Payments {
			if p.ID != id {
				continue
			}
			if p.Status != model.PaymentPending {
				return st, fmt.Errorf("payment %s is %s: %w", id, p.Status, model.ErrConflict)
			}
			st.Payments[i].Status = model.PaymentOverdue
			tenantID = p.TenantID
			rederiveTenantStatus(&st, p.TenantID)
			return st, nil
		}
		return st, fmt.Errorf("payment %s: %w", id, model.ErrNotFound)
	})
	monitoring.ObserveOperation("payment_overdue", err)
	if err == nil {
		monitoring.Alert("payment overdue", map[string]string{
			"payment_id": id,
			"tenant_id":  tenantID,
		})
	}
	return err
}

// Delete removes a payment record and re-derives the owning tenant's status.
func (s *PaymentService) Delete(id string) error {
	err := s.store.Update(func(st store.State) (store.State, error) {
		for i, p := range st.Payments {
			if p.ID == id {
				st.Payments = append(st.Payments[:i], st.Payments[i+1:]...)
				rederiveTenantStatus(&st, p.TenantID)
				return st, nil
			}
		}
		return st, fmt.Errorf("payment %s: %w", id, model.ErrNotFound)
	})
	monitoring.ObserveOperation("payment_delete", err)
	return err
}

// Upcoming returns the unpaid payments ordered soonest due date first, at
// most limit entries (0 means no cap). Ties keep their stored order.
func (s *PaymentService) Upcoming(limit int) []model.Payment {
	st := s.store.View()
	out := make([]model.Payment, 0, len(st.Payments))
	for _, p := range st.Payments {
		if p.Status != model.PaymentPaid {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Overdue reports whether a payment due on dueDate is past due at now. A
// payment is overdue starting the day after its due date; a malformed due
// date never trips the predicate.
func Overdue(now time.Time, dueDate string) bool {
	d, err := model.ParseDate(dueDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return d.Before(today)
}

// DerivePaymentStatus returns the worst outstanding status among the tenant's
// payments: overdue beats pending beats paid. A tenant with no payments owes
// nothing and derives paid.
func DerivePaymentStatus(payments []model.Payment, tenantID string) model.PaymentStatus {
	derived := model.PaymentPaid
	for _, p := range payments {
		if p.TenantID != tenantID {
			continue
		}
		switch p.Status {
		case model.PaymentOverdue:
			return model.PaymentOverdue
		case model.PaymentPending:
			derived = model.PaymentPending
		}
	}
	return derived
}

// rederiveTenantStatus rewrites the tenant's derived status in place within a
// pending update. A dangling tenant id is fine; there is nothing to rewrite.
func rederiveTenantStatus(st *store.State, tenantID string) {
	for i, t := range st.Tenants {
		if t.ID == tenantID {
			st.Tenants[i].PaymentStatus = DerivePaymentStatus(st.Payments, tenantID)
			return
		}
	}
}
