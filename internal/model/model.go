package model

// Status and enum values used across the property records. They mirror the
// values the forms submit, so they marshal to JSON as plain strings.

type TenantStatus string

const (
	TenantActive   TenantStatus = "active"
	TenantInactive TenantStatus = "inactive"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

type RoomStatus string

const (
	RoomVacant      RoomStatus = "vacant"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomDeluxe RoomType = "deluxe"
)

type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityNormal RequestPriority = "normal"
	PriorityUrgent RequestPriority = "urgent"
)

type RequestStatus string

const (
	RequestOpen       RequestStatus = "open"
	RequestInProgress RequestStatus = "in-progress"
	RequestCompleted  RequestStatus = "completed"
)

// Tenant represents a person renting a room. RoomID is empty while the tenant
// is unhoused. PaymentStatus is derived from the tenant's payments and is
// never written directly by callers.
type Tenant struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	RoomID        string        `json:"room_id,omitempty"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	Status        TenantStatus  `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// Room represents a rentable unit. TenantID mirrors Tenant.RoomID; the two
// are only ever rewritten together.
type Room struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	Floor      string     `json:"floor"`
	Type       RoomType   `json:"type"`
	Price      Money      `json:"price"`
	Status     RoomStatus `json:"status"`
	TenantID   string     `json:"tenant_id,omitempty"`
	Facilities []string   `json:"facilities,omitempty"`
}

// Payment is a rent charge against a tenant. Date stays empty until the
// payment is recorded. TenantID and RoomID are plain references, not enforced
// foreign keys: readers resolve dangling ids to a placeholder.
type Payment struct {
	ID       string        `json:"id"`
	TenantID string        `json:"tenant_id"`
	RoomID   string        `json:"room_id"`
	Amount   Money         `json:"amount"`
	Date     string        `json:"date,omitempty"`
	DueDate  string        `json:"due_date"`
	Status   PaymentStatus `json:"status"`
	Method   string        `json:"method,omitempty"`
	Notes    string        `json:"notes,omitempty"`
}

// MaintenanceRequest tracks work against a room.
type MaintenanceRequest struct {
	ID          string          `json:"id"`
	RoomID      string          `json:"room_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    RequestPriority `json:"priority"`
	Status      RequestStatus   `json:"status"`
	Date        string          `json:"date"`
}

// HasFacility reports whether the room already lists the facility.
func (r Room) HasFacility(name string) bool {
	for _, f := range r.Facilities {
		if f == name {
			return true
		}
	}
	return false
}
