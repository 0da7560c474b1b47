// Package initializer wires the flat-file stores and services together and
// runs the startup checks: journal recovery and admin credential bootstrap.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/abaasith/unibank/infra/repository/flatfile"
	"github.com/abaasith/unibank/pkg/config"
	domaincustomer "github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/user"
	"github.com/abaasith/unibank/pkg/service/auth"
	"github.com/abaasith/unibank/pkg/service/customer"
	"github.com/abaasith/unibank/pkg/service/interest"
	"github.com/abaasith/unibank/pkg/service/ledger"
	"github.com/abaasith/unibank/pkg/validation"
)

// Deps holds every initialized dependency.
type Deps struct {
	Logger    *slog.Logger
	Auth      *auth.Service
	Ledger    *ledger.Service
	Customers *customer.Service
	Interest  *interest.Service
}

// InitializeDependencies builds the stores and services from configuration.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	store, err := flatfile.New(cfg.Store.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	accounts := flatfile.NewAccountStore(store, cfg.Store.AccountNumberFloor)
	transactions := flatfile.NewTransactionStore(store)
	profiles := flatfile.NewProfileStore(store)
	credentials := flatfile.NewCredentialStore(store)
	interestLog := flatfile.NewInterestLogStore(store)
	audit := flatfile.NewAuditLogger(store)
	journal := flatfile.NewJournal(store)

	// Surface mutations that never committed before hydrating any state.
	pending, err := journal.Recover()
	if err != nil {
		return nil, fmt.Errorf("failed to recover journal: %w", err)
	}
	for _, op := range pending {
		logger.Warn("found uncommitted operation from a previous run",
			"op", op.Op, "details", op.Details, "began_at", op.BeganAt)
	}

	deps := &Deps{Logger: logger}
	deps.Ledger, err = ledger.New(accounts, transactions, journal,
		ledger.StatusFunc(func(accountNo string) (domaincustomer.Status, error) {
			return deps.Customers.StatusOf(accountNo)
		}), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger: %w", err)
	}
	deps.Customers = customer.New(
		profiles, credentials, accounts, audit, journal,
		deps.Ledger, validation.New(), logger,
	)
	deps.Auth = auth.New(credentials, deps.Customers, logger)
	deps.Interest = interest.New(
		deps.Ledger, profiles, interestLog, journal,
		cfg.Interest.AnnualRate, logger,
	)

	if err := bootstrapAdmin(cfg.Admin, credentials, logger); err != nil {
		return nil, fmt.Errorf("failed to seed admin credential: %w", err)
	}
	return deps, nil
}

// bootstrapAdmin seeds the configured admin login when it does not exist yet,
// so a fresh data directory is usable immediately.
func bootstrapAdmin(cfg config.Admin, credentials *flatfile.CredentialStore, logger *slog.Logger) error {
	existing, err := credentials.Load()
	if err != nil {
		return err
	}
	if _, ok := existing[cfg.Username]; ok {
		return nil
	}
	cred, err := user.NewCredential(cfg.Username, cfg.Password, user.RoleAdmin)
	if err != nil {
		return err
	}
	if err := credentials.Append(cred); err != nil {
		return err
	}
	logger.Info("seeded admin credential", "username", cfg.Username)
	return nil
}
