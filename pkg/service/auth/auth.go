// Package auth authenticates logins against the credential store and binds
// customer sessions to their account.
package auth

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/abaasith/unibank/pkg/domain/account"
	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/user"
	"github.com/abaasith/unibank/pkg/repository"
	"github.com/abaasith/unibank/pkg/utils"
	"github.com/google/uuid"
)

// ProfileDirectory looks up the lifecycle status of a customer profile.
type ProfileDirectory interface {
	StatusOf(accountNo string) (customer.Status, error)
}

// Session is an authenticated login. AccountNo is empty for admins.
type Session struct {
	ID        uuid.UUID
	Role      user.Role
	AccountNo string
}

// CanAccess reports whether the session may target the given account:
// admins may target any account, users only their own.
func (s *Session) CanAccess(accountNo string) bool {
	return s.Role == user.RoleAdmin || s.AccountNo == accountNo
}

// Service authenticates users.
type Service struct {
	credentials repository.CredentialStore
	profiles    ProfileDirectory
	logger      *slog.Logger
}

// New returns an auth service.
func New(
	credentials repository.CredentialStore,
	profiles ProfileDirectory,
	logger *slog.Logger,
) *Service {
	return &Service{
		credentials: credentials,
		profiles:    profiles,
		logger:      logger.With("service", "auth"),
	}
}

// Authenticate verifies the username and password and returns a session.
// Bad credentials yield user.ErrInvalidCredentials; a known customer whose
// profile is inactive yields account.ErrAccountInactive. Callers present
// both identically to the end user, but the causes stay distinguishable.
func (s *Service) Authenticate(username, password string) (*Session, error) {
	credentials, err := s.credentials.Load()
	if err != nil {
		return nil, err
	}
	cred, ok := credentials[username]
	if !ok || !utils.CheckPasswordHash(password, cred.PasswordHash) {
		s.logger.Warn("login failed", "username", username)
		return nil, user.ErrInvalidCredentials
	}

	session := &Session{ID: uuid.New(), Role: cred.Role}
	if cred.Role == user.RoleUser {
		accountNo := strings.TrimPrefix(username, user.UsernamePrefix)
		status, err := s.profiles.StatusOf(accountNo)
		switch {
		case errors.Is(err, customer.ErrProfileNotFound):
			// Credential without a profile: let the login through and let
			// individual operations fail on the missing account.
			s.logger.Warn("credential has no matching profile", "account", accountNo)
		case err != nil:
			return nil, err
		case status == customer.StatusInactive:
			s.logger.Warn("login rejected for inactive account", "account", accountNo)
			return nil, account.ErrAccountInactive
		}
		session.AccountNo = accountNo
	}

	s.logger.Info("login successful",
		"session", session.ID, "role", session.Role, "account", session.AccountNo)
	return session, nil
}
