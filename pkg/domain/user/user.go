// Package user defines login credentials and roles.
package user

import (
	"errors"

	"github.com/abaasith/unibank/pkg/utils"
)

var (
	// ErrInvalidCredentials is returned when the username is unknown or the
	// password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotAuthorized is returned when a caller's role or account binding
	// does not permit the requested operation.
	ErrNotAuthorized = errors.New("not authorized")
)

// Role is the closed set of login roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// UsernamePrefix is prepended to an account number to form a customer login.
const UsernamePrefix = "user"

// Credential is a single login record. Credentials are created once at
// account-creation time and never mutated.
type Credential struct {
	Username     string
	PasswordHash string
	Role         Role
}

// NewCredential hashes the plain password and returns the credential record.
func NewCredential(username, password string, role Role) (Credential, error) {
	if username == "" {
		return Credential{}, errors.New("username cannot be empty")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Username: username, PasswordHash: hash, Role: role}, nil
}

// UsernameFor derives the customer login name for an account number.
func UsernameFor(accountNo string) string {
	return UsernamePrefix + accountNo
}
