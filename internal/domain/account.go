package domain

import "time"

// Role represents the role of an account
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Account represents a customer or administrator account
// Identity (passwords, sessions) is owned by the external identity provider;
// this record tracks role, approval and the one-time entitlement payment.
type Account struct {
	ID    string
	Name  string
	Email string // unique, used as the customer-matching key for appointments
	Role  Role

	IsApproved bool // administrator-controlled
	HasPaid    bool // set once by the registration payment callback

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true for administrator accounts
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanBook reports whether the account may browse the catalog and submit bookings.
// Admin accounts bypass the approval and payment gates.
func (a *Account) CanBook() bool {
	if a.IsAdmin() {
		return true
	}
	return a.IsApproved && a.HasPaid
}

// NeedsApproval returns true while the account waits for an administrator
func (a *Account) NeedsApproval() bool {
	return !a.IsAdmin() && !a.IsApproved
}

// NeedsEntitlementPayment returns true for approved accounts that have not paid
// the one-time registration fee yet
func (a *Account) NeedsEntitlementPayment() bool {
	return !a.IsAdmin() && a.IsApproved && !a.HasPaid
}
