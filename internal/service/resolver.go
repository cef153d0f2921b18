package service

import (
	"github.com/teguhahmad/kost01/internal/model"
	"github.com/teguhahmad/kost01/internal/store"
)

// UnknownLabel is what a dangling tenant or room reference resolves to on
// display. Dangling references are expected after a non-cascading delete and
// are never an error.
const UnknownLabel = "Unknown"

// PaymentRow is a payment joined with the display names the list screen
// shows.
type PaymentRow struct {
	model.Payment
	TenantName string `json:"tenant_name"`
	RoomNumber string `json:"room_number"`
}

// ResolvePayments joins each payment with its tenant name and room number,
// substituting the Unknown placeholder for references that no longer resolve.
func ResolvePayments(st store.State) []PaymentRow {
	tenants := make(map[string]string, len(st.Tenants))
	for _, t := range st.Tenants {
		tenants[t.ID] = t.Name
	}
	rooms := make(map[string]string, len(st.Rooms))
	for _, r := range st.Rooms {
		rooms[r.ID] = r.Number
	}

	rows := make([]PaymentRow, 0, len(st.Payments))
	for _, p := range st.Payments {
		row := PaymentRow{Payment: p, TenantName: UnknownLabel, RoomNumber: UnknownLabel}
		if name, ok := tenants[p.TenantID]; ok {
			row.TenantName = name
		}
		if num, ok := rooms[p.RoomID]; ok {
			row.RoomNumber = num
		}
		rows = append(rows, row)
	}
	return rows
}
