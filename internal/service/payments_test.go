package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teguhahmad/kost01/internal/model"
	"github.com/teguhahmad/kost01/internal/store"
)

func TestDerivePaymentStatus_WorstWins(t *testing.T) {
	cases := []struct {
		name     string
		statuses []model.PaymentStatus
		want     model.PaymentStatus
	}{
		{"overdue beats paid", []model.PaymentStatus{model.PaymentOverdue, model.PaymentPaid}, model.PaymentOverdue},
		{"pending beats paid", []model.PaymentStatus{model.PaymentPending, model.PaymentPaid}, model.PaymentPending},
		{"all paid", []model.PaymentStatus{model.PaymentPaid}, model.PaymentPaid},
		{"no payments", nil, model.PaymentPaid},
		{"overdue beats pending", []model.PaymentStatus{model.PaymentPending, model.PaymentOverdue}, model.PaymentOverdue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			payments := make([]model.Payment, 0, len(c.statuses)+1)
			for i, status := range c.statuses {
				payments = append(payments, model.Payment{ID: string(rune('a' + i)), TenantID: "t1", Status: status})
			}
			// Another tenant's overdue payment must not leak in.
			payments = append(payments, model.Payment{ID: "other", TenantID: "t2", Status: model.PaymentOverdue})
			assert.Equal(t, c.want, DerivePaymentStatus(payments, "t1"))
		})
	}
}

func TestRecordPayment_Scenario(t *testing.T) {
	// Vacant room plus unhoused tenant: assign, charge, record, and the
	// tenant's derived status lands back on paid.
	st := seedStore()
	tenancy := NewTenancyService(st)
	payments := NewPaymentService(st)

	assert.NoError(t, tenancy.Assign("t1", "r1"))

	p, err := payments.Create(model.Payment{
		TenantID: "t1",
		RoomID:   "r1",
		Amount:   model.Money{Cents: 50000},
		DueDate:  "2024-03-15",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentPending, p.Status)

	tenant, _ := st.View().Tenant("t1")
	assert.Equal(t, model.PaymentPending, tenant.PaymentStatus)

	assert.NoError(t, payments.Record(p.ID, "2024-03-10", "cash", ""))

	view := st.View()
	got, _ := view.Payment(p.ID)
	assert.Equal(t, model.PaymentPaid, got.Status)
	assert.Equal(t, "2024-03-10", got.Date)
	assert.Equal(t, "cash", got.Method)
	tenant, _ = view.Tenant("t1")
	assert.Equal(t, model.PaymentPaid, tenant.PaymentStatus)
}

func TestRecordPayment_PaidIsTerminal(t *testing.T) {
	st := seedStore()
	payments := NewPaymentService(st)

	p, err := payments.Create(model.Payment{TenantID: "t1", RoomID: "r1", Amount: model.Money{Cents: 50000}, DueDate: "2024-03-15"})
	assert.NoError(t, err)
	assert.NoError(t, payments.Record(p.ID, "2024-03-10", "cash", ""))

	err = payments.Record(p.ID, "2024-03-11", "transfer", "")
	assert.ErrorIs(t, err, model.ErrConflict)

	got, _ := st.View().Payment(p.ID)
	assert.Equal(t, "2024-03-10", got.Date)
	assert.Equal(t, "cash", got.Method)
}

func TestRecordPayment_RequiresDateAndMethod(t *testing.T) {
	st := seedStore()
	payments := NewPaymentService(st)

	p, err := payments.Create(model.Payment{TenantID: "t1", RoomID: "r1", Amount: model.Money{Cents: 50000}, DueDate: "2024-03-15"})
	assert.NoError(t, err)

	assert.ErrorIs(t, payments.Record(p.ID, "", "cash", ""), model.ErrValidation)
	assert.ErrorIs(t, payments.Record(p.ID, "2024-03-10", "", ""), model.ErrValidation)
	assert.ErrorIs(t, payments.Record("missing", "2024-03-10", "cash", ""), model.ErrNotFound)
}

func TestMarkOverdue_Transitions(t *testing.T) {
	st := seedStore()
	payments := NewPaymentService(st)

	p, err := payments.Create(model.Payment{TenantID: "t1", RoomID: "r1", Amount: model.Money{Cents: 50000}, DueDate: "2024-03-15"})
	assert.NoError(t, err)

	assert.NoError(t, payments.MarkOverdue(p.ID))
	tenant, _ := st.View().Tenant("t1")
	assert.Equal(t, model.PaymentOverdue, tenant.PaymentStatus)

	// Overdue payments cannot go overdue again, but they can still be paid.
	assert.ErrorIs(t, payments.MarkOverdue(p.ID), model.ErrConflict)
	assert.NoError(t, payments.Record(p.ID, "2024-03-20", "transfer", "late"))

	view := st.View()
	got, _ := view.Payment(p.ID)
	assert.Equal(t, model.PaymentPaid, got.Status)
	tenant, _ = view.Tenant("t1")
	assert.Equal(t, model.PaymentPaid, tenant.PaymentStatus)
}

func TestCreatePayment_Validation(t *testing.T) {
	payments := NewPaymentService(seedStore())

	_, err := payments.Create(model.Payment{TenantID: "t1", Amount: model.Money{Cents: 0}, DueDate: "2024-03-15"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = payments.Create(model.Payment{TenantID: "t1", Amount: model.Money{Cents: 100}, DueDate: "15-03-2024"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestDeletePayment_RederivesTenantStatus(t *testing.T) {
	st := seedStore()
	payments := NewPaymentService(st)

	p, err := payments.Create(model.Payment{TenantID: "t1", RoomID: "r1", Amount: model.Money{Cents: 50000}, DueDate: "2024-03-15"})
	assert.NoError(t, err)
	assert.NoError(t, payments.MarkOverdue(p.ID))

	assert.NoError(t, payments.Delete(p.ID))

	tenant, _ := st.View().Tenant("t1")
	assert.Equal(t, model.PaymentPaid, tenant.PaymentStatus)
}

func TestUpcoming_OrdersByDueDate(t *testing.T) {
	st := store.NewFromState(store.State{
		Payments: []model.Payment{
			{ID: "p1", TenantID: "t1", DueDate: "2024-05-01", Status: model.PaymentPending},
			{ID: "p2", TenantID: "t1", DueDate: "2024-04-01", Status: model.PaymentOverdue},
			{ID: "p3", TenantID: "t1", DueDate: "2024-03-01", Status: model.PaymentPaid},
			{ID: "p4", TenantID: "t1", DueDate: "2024-04-15", Status: model.PaymentPending},
		},
	})
	payments := NewPaymentService(st)

	got := payments.Upcoming(0)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"p2", "p4", "p1"}, ids)

	assert.Len(t, payments.Upcoming(2), 2)
}

func TestOverduePredicate(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	assert.True(t, Overdue(now, "2024-03-14"))
	assert.False(t, Overdue(now, "2024-03-15")) // due today is not yet overdue
	assert.False(t, Overdue(now, "2024-03-16"))
	assert.False(t, Overdue(now, "not-a-date"))
}

func TestResolvePayments_Placeholders(t *testing.T) {
	st := store.NewFromState(store.State{
		Tenants: []model.Tenant{{ID: "t1", Name: "Budi"}},
		Rooms:   []model.Room{{ID: "r1", Number: "101"}},
		Payments: []model.Payment{
			{ID: "p1", TenantID: "t1", RoomID: "r1"},
			{ID: "p2", TenantID: "gone", RoomID: "also-gone"},
		},
	})

	rows := ResolvePayments(st.View())
	assert.Equal(t, "Budi", rows[0].TenantName)
	assert.Equal(t, "101", rows[0].RoomNumber)
	assert.Equal(t, UnknownLabel, rows[1].TenantName)
	assert.Equal(t, UnknownLabel, rows[1].RoomNumber)
}
