package domain

import "time"

// Status is the lifecycle state of a part order. The set is closed; the
// allowed movements between states live in the transition authority.
type Status string

const (
	StatusNeedToOrder    Status = "need to order"
	StatusOrdered        Status = "ordered"
	StatusReceived       Status = "received"
	StatusCompleted      Status = "completed"
	StatusOutOfStock     Status = "out of stock"
	StatusDistro         Status = "distro"
	StatusReturnRequired Status = "return required"
	StatusCancelled      Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNeedToOrder, StatusOrdered, StatusReceived, StatusCompleted,
		StatusOutOfStock, StatusDistro, StatusReturnRequired, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether s has no outgoing transitions under normal rules.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Role is the caller's role as established by the upstream session layer.
// The core trusts it; it is never re-derived here.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// CancellationWindow is how long after creation an employee may still cancel
// an unapproved order.
const CancellationWindow = time.Hour

type Order struct {
	ID                 uint
	CustomerName       string
	PartNumber         string
	Technician         string
	Store              string
	Status             Status
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
