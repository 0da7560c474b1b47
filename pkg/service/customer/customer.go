// Package customer implements the customer profile manager: creation,
// reading, field-by-field updates, deactivation and restore of profile
// records, with field-level audit logging.
package customer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/abaasith/unibank/pkg/domain/account"
	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/abaasith/unibank/pkg/domain/user"
	"github.com/abaasith/unibank/pkg/repository"
	"github.com/abaasith/unibank/pkg/service/auth"
	"github.com/abaasith/unibank/pkg/validation"
)

const (
	dobLayout       = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Registrar is the ledger's account-opening surface.
type Registrar interface {
	Has(accountNo string) bool
	Open(number, name string, opening money.Money, narration string) error
}

// Created reports the outcome of account creation.
type Created struct {
	AccountNo string
	Username  string
	Password  string
	DOB       string
	Gender    customer.Gender
	Type      customer.AccountType
}

// Service manages customer profiles.
type Service struct {
	profiles    repository.ProfileStore
	credentials repository.CredentialStore
	accounts    repository.AccountStore
	audit       repository.AuditLogger
	journal     repository.Journal
	registrar   Registrar
	validator   *validation.Validator
	logger      *slog.Logger
	now         func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a profile manager.
func New(
	profiles repository.ProfileStore,
	credentials repository.CredentialStore,
	accounts repository.AccountStore,
	audit repository.AuditLogger,
	journal repository.Journal,
	registrar Registrar,
	validator *validation.Validator,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		profiles:    profiles,
		credentials: credentials,
		accounts:    accounts,
		audit:       audit,
		journal:     journal,
		registrar:   registrar,
		validator:   validator,
		logger:      logger.With("service", "customer"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the profile fields, derives date of birth and gender from
// the NIC, and commits the credential, account, opening narration and profile
// as one journaled unit. The profile line is written last so a failure in an
// earlier step cannot leave an orphaned profile.
func (s *Service) Create(
	ctx context.Context,
	in validation.ProfileInput,
	accountType customer.AccountType,
	opening money.Money,
) (*Created, error) {
	if err := s.validator.ProfileInput(&in); err != nil {
		return nil, err
	}
	dob, gender, err := customer.BirthDetails(in.NIC)
	if err != nil {
		return nil, err
	}
	if opening.IsNegative() {
		return nil, account.ErrAmountMustBePositive
	}

	existing, err := s.profiles.Load()
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.NIC == in.NIC {
			return nil, customer.ErrDuplicateNIC
		}
	}

	number, err := s.accounts.NextNumber()
	if err != nil {
		return nil, err
	}
	for s.registrar.Has(number) {
		n, err := strconv.Atoi(number)
		if err != nil {
			return nil, fmt.Errorf("non-numeric account number %q", number)
		}
		number = strconv.Itoa(n + 1)
	}

	username := user.UsernameFor(number)
	password := "pass" + number
	cred, err := user.NewCredential(username, password, user.RoleUser)
	if err != nil {
		return nil, err
	}

	token, err := s.journal.Begin("create-account", "account="+number)
	if err != nil {
		return nil, err
	}
	if err := s.credentials.Append(cred); err != nil {
		return nil, err
	}
	if err := s.registrar.Open(number, in.Name, opening,
		fmt.Sprintf("Account opened with Rs.%s", opening)); err != nil {
		return nil, err
	}
	profile := customer.Profile{
		AccountNo: number,
		Name:      in.Name,
		NIC:       in.NIC,
		DOB:       dob.Format(dobLayout),
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Gender:    gender,
		Type:      accountType,
		Status:    customer.StatusActive,
	}
	if err := s.profiles.Append(profile); err != nil {
		return nil, err
	}
	if err := s.journal.Commit(token); err != nil {
		return nil, err
	}

	s.logger.Info("account created", "account", number, "type", accountType)
	return &Created{
		AccountNo: number,
		Username:  username,
		Password:  password,
		DOB:       profile.DOB,
		Gender:    gender,
		Type:      accountType,
	}, nil
}

// Read returns a profile. Users may only read their own; inactive profiles
// return account.ErrAccountInactive instead of the data.
func (s *Service) Read(
	ctx context.Context,
	sess *auth.Session,
	accountNo string,
) (customer.Profile, error) {
	if !sess.CanAccess(accountNo) {
		return customer.Profile{}, user.ErrNotAuthorized
	}
	profile, _, err := s.find(accountNo)
	if err != nil {
		return customer.Profile{}, err
	}
	if !profile.IsActive() {
		return customer.Profile{}, account.ErrAccountInactive
	}
	return profile, nil
}

// Update changes one profile field, validating the new value and logging the
// old and new values to the change log. An NIC change recomputes date of
// birth and gender.
func (s *Service) Update(
	ctx context.Context,
	sess *auth.Session,
	accountNo string,
	field validation.Field,
	value string,
) error {
	if sess.Role != user.RoleAdmin {
		return user.ErrNotAuthorized
	}
	profiles, err := s.profiles.Load()
	if err != nil {
		return err
	}
	idx := -1
	for i := range profiles {
		if profiles[i].AccountNo == accountNo {
			idx = i
			break
		}
	}
	if idx < 0 {
		return customer.ErrProfileNotFound
	}
	if !profiles[idx].IsActive() {
		return account.ErrAccountInactive
	}

	normalized, err := s.validator.Normalize(field, value)
	if err != nil {
		return err
	}

	p := &profiles[idx]
	ts := s.now().Format(timestampLayout)
	var entry string
	switch field {
	case validation.FieldName:
		entry = fmt.Sprintf("%s - Name changed from %s to %s on %s", accountNo, p.Name, normalized, ts)
		p.Name = normalized
	case validation.FieldPhone:
		entry = fmt.Sprintf("%s - Phone changed from %s to %s on %s", accountNo, p.Phone, normalized, ts)
		p.Phone = normalized
	case validation.FieldEmail:
		entry = fmt.Sprintf("%s - Email changed from %s to %s on %s", accountNo, p.Email, normalized, ts)
		p.Email = normalized
	case validation.FieldAddress:
		entry = fmt.Sprintf("%s - Address changed from %s to %s on %s", accountNo, p.Address, normalized, ts)
		p.Address = normalized
	case validation.FieldNIC:
		dob, gender, err := customer.BirthDetails(normalized)
		if err != nil {
			return err
		}
		entry = fmt.Sprintf("%s - NIC changed from %s to %s, DOB and gender recalculated on %s",
			accountNo, p.NIC, normalized, ts)
		p.NIC = normalized
		p.DOB = dob.Format(dobLayout)
		p.Gender = gender
	default:
		return fmt.Errorf("%w: field %q not updatable", validation.ErrInvalidField, field)
	}

	if err := s.profiles.Rewrite(profiles); err != nil {
		return err
	}
	if err := s.audit.Change(entry); err != nil {
		return err
	}
	s.logger.Info("profile updated", "account", accountNo, "field", field)
	return nil
}

// Deactivate flips an active profile to inactive and logs the reason.
func (s *Service) Deactivate(
	ctx context.Context,
	sess *auth.Session,
	accountNo, reason string,
) error {
	if sess.Role != user.RoleAdmin {
		return user.ErrNotAuthorized
	}
	if err := s.setStatus(accountNo, customer.StatusInactive); err != nil {
		return err
	}
	entry := fmt.Sprintf("%s | Deactivated on %s | Reason: %s",
		accountNo, s.now().Format(timestampLayout), reason)
	if err := s.audit.Deactivation(entry); err != nil {
		return err
	}
	s.logger.Info("customer deactivated", "account", accountNo, "reason", reason)
	return nil
}

// Restore flips an inactive profile back to active.
func (s *Service) Restore(
	ctx context.Context,
	sess *auth.Session,
	accountNo string,
) error {
	if sess.Role != user.RoleAdmin {
		return user.ErrNotAuthorized
	}
	if err := s.setStatus(accountNo, customer.StatusActive); err != nil {
		return err
	}
	entry := fmt.Sprintf("%s | Restored on %s", accountNo, s.now().Format(timestampLayout))
	if err := s.audit.Deactivation(entry); err != nil {
		return err
	}
	s.logger.Info("customer restored", "account", accountNo)
	return nil
}

// SearchBy finds profiles by NIC or phone number. Admin only.
func (s *Service) SearchBy(
	ctx context.Context,
	sess *auth.Session,
	field validation.Field,
	value string,
) ([]customer.Profile, error) {
	if sess.Role != user.RoleAdmin {
		return nil, user.ErrNotAuthorized
	}
	profiles, err := s.profiles.Load()
	if err != nil {
		return nil, err
	}
	var matches []customer.Profile
	for _, p := range profiles {
		switch field {
		case validation.FieldNIC:
			if p.NIC == value {
				matches = append(matches, p)
			}
		case validation.FieldPhone:
			if p.Phone == value {
				matches = append(matches, p)
			}
		default:
			return nil, fmt.Errorf("%w: cannot search by %q", validation.ErrInvalidField, field)
		}
	}
	return matches, nil
}

// StatusOf implements the status lookup used by the ledger and auth
// services.
func (s *Service) StatusOf(accountNo string) (customer.Status, error) {
	profile, _, err := s.find(accountNo)
	if err != nil {
		return "", err
	}
	return profile.Status, nil
}

func (s *Service) find(accountNo string) (customer.Profile, int, error) {
	profiles, err := s.profiles.Load()
	if err != nil {
		return customer.Profile{}, 0, err
	}
	for i, p := range profiles {
		if p.AccountNo == accountNo {
			return p, i, nil
		}
	}
	return customer.Profile{}, 0, customer.ErrProfileNotFound
}

func (s *Service) setStatus(accountNo string, to customer.Status) error {
	profiles, err := s.profiles.Load()
	if err != nil {
		return err
	}
	for i := range profiles {
		if profiles[i].AccountNo != accountNo {
			continue
		}
		if profiles[i].Status == to {
			if to == customer.StatusInactive {
				return customer.ErrAlreadyInactive
			}
			return customer.ErrAlreadyActive
		}
		profiles[i].Status = to
		return s.profiles.Rewrite(profiles)
	}
	return customer.ErrProfileNotFound
}
