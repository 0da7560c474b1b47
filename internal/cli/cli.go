// Package cli implements the interactive terminal session: login, the admin
// and customer menus, and input prompting with re-validation.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/abaasith/unibank/pkg/domain/account"
	"github.com/abaasith/unibank/pkg/domain/user"
	"github.com/abaasith/unibank/pkg/service/auth"
	"github.com/abaasith/unibank/pkg/service/customer"
	"github.com/abaasith/unibank/pkg/service/interest"
	"github.com/abaasith/unibank/pkg/service/ledger"
)

// CLI drives one terminal banking session over the given reader and writer.
type CLI struct {
	auth      *auth.Service
	ledger    *ledger.Service
	customers *customer.Service
	interest  *interest.Service
	prompt    *prompter
	out       io.Writer
	logger    *slog.Logger
	now       func() time.Time
}

// Option customizes a CLI.
type Option func(*CLI)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *CLI) { c.now = now }
}

// WithPlainPasswords disables masked password input. Used by tests feeding
// scripted input.
func WithPlainPasswords() Option {
	return func(c *CLI) { c.prompt.password = c.prompt.line }
}

// New builds a CLI over the services.
func New(
	authSvc *auth.Service,
	ledgerSvc *ledger.Service,
	customersSvc *customer.Service,
	interestSvc *interest.Service,
	in io.Reader,
	out io.Writer,
	logger *slog.Logger,
	opts ...Option,
) *CLI {
	c := &CLI{
		auth:      authSvc,
		ledger:    ledgerSvc,
		customers: customersSvc,
		interest:  interestSvc,
		prompt:    newPrompter(in, out),
		out:       out,
		logger:    logger.With("component", "cli"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run applies any due monthly interest, then loops over login sessions until
// the operator types "exit" or the input closes.
func (c *CLI) Run(ctx context.Context) error {
	renderBanner(c.out)

	credited, err := c.interest.Apply(ctx, c.now())
	if err != nil {
		return err
	}
	if credited > 0 {
		success.Fprintf(c.out, "Monthly interest credited to %d account(s).\n", credited)
	}

	for {
		username, err := c.prompt.line(`Username (or "exit")`)
		if err != nil {
			return c.quit(err)
		}
		if username == "exit" {
			return nil
		}
		password, err := c.prompt.password("Password")
		if err != nil {
			return c.quit(err)
		}

		session, err := c.auth.Authenticate(username, password)
		if err != nil {
			// The login prompt must not reveal whether an account exists or
			// is deactivated, so an inactive rejection reads exactly like a
			// bad password.
			if errors.Is(err, account.ErrAccountInactive) {
				err = user.ErrInvalidCredentials
			}
			fail.Fprintf(c.out, "%s\n", friendly(err))
			continue
		}
		success.Fprintf(c.out, "Welcome, %s.\n", username)

		if err := c.sessionLoop(ctx, session); err != nil {
			return c.quit(err)
		}
	}
}

func (c *CLI) quit(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
