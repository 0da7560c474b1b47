// Package customer defines the customer profile record, its closed status and
// account-type enums, and the NIC birth-detail derivation.
package customer

import "errors"

var (
	// ErrProfileNotFound is returned when no profile matches the account
	// number.
	ErrProfileNotFound = errors.New("customer profile not found")

	// ErrAlreadyInactive is returned when deactivating a profile that is
	// already inactive.
	ErrAlreadyInactive = errors.New("customer is already inactive")

	// ErrAlreadyActive is returned when restoring a profile that is already
	// active.
	ErrAlreadyActive = errors.New("customer is already active")

	// ErrDuplicateNIC is returned when a new profile reuses an NIC that is
	// already registered.
	ErrDuplicateNIC = errors.New("NIC already registered")
)

// Status is the lifecycle state of a customer profile. Transitions are
// Active<->Inactive only.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// AccountType determines interest eligibility.
type AccountType string

const (
	TypeSavings AccountType = "Savings"
	TypeCurrent AccountType = "Current"
)

// Gender as encoded in the NIC day-of-year.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// Profile holds the full customer record persisted alongside an account.
// DOB is kept in its persisted ISO form (YYYY-MM-DD) since it is derived from
// the NIC and only ever displayed.
type Profile struct {
	AccountNo string
	Name      string
	NIC       string
	DOB       string
	Phone     string
	Email     string
	Address   string
	Gender    Gender
	Type      AccountType
	Status    Status
}

// IsActive reports whether the profile allows account operations.
func (p Profile) IsActive() bool {
	return p.Status == StatusActive
}
