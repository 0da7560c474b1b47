// Package interest applies the monthly interest accrual to eligible savings
// accounts. The interest log is the idempotence guard: one entry per account
// per calendar month, so re-running the accrual in the same month is a no-op.
package interest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/abaasith/unibank/pkg/repository"
)

const narrationDateLayout = "2006-01-02"

// Ledger is the account surface the accrual needs.
type Ledger interface {
	BalanceOf(accountNo string) (money.Money, bool)
	CreditInterest(accountNo string, amount money.Money, narration string) (money.Money, error)
}

// Service runs the monthly accrual.
type Service struct {
	ledger     Ledger
	profiles   repository.ProfileStore
	log        repository.InterestLogStore
	journal    repository.Journal
	annualRate float64
	logger     *slog.Logger
}

// New returns an interest service. annualRate is a fraction, e.g. 0.03.
func New(
	ledger Ledger,
	profiles repository.ProfileStore,
	log repository.InterestLogStore,
	journal repository.Journal,
	annualRate float64,
	logger *slog.Logger,
) *Service {
	return &Service{
		ledger:     ledger,
		profiles:   profiles,
		log:        log,
		journal:    journal,
		annualRate: annualRate,
		logger:     logger.With("service", "interest"),
	}
}

type monthKey struct {
	accountNo string
	year      int
	month     time.Month
}

// Apply credits one month of interest to every active savings account that
// has not been credited for asOf's calendar month yet. Returns the number of
// accounts credited.
func (s *Service) Apply(ctx context.Context, asOf time.Time) (int, error) {
	entries, err := s.log.Load()
	if err != nil {
		return 0, err
	}
	credited := make(map[monthKey]bool, len(entries))
	for _, e := range entries {
		credited[monthKey{e.AccountNo, e.Date.Year(), e.Date.Month()}] = true
	}

	profiles, err := s.profiles.Load()
	if err != nil {
		return 0, err
	}

	monthlyRate := s.annualRate / 12
	ratePercent := math.Round(monthlyRate*10000) / 100
	count := 0
	for _, p := range profiles {
		if p.Type != customer.TypeSavings || !p.IsActive() {
			continue
		}
		if credited[monthKey{p.AccountNo, asOf.Year(), asOf.Month()}] {
			continue
		}
		balance, ok := s.ledger.BalanceOf(p.AccountNo)
		if !ok {
			s.logger.Warn("savings profile without a ledger account", "account", p.AccountNo)
			continue
		}
		amount := balance.MultiplyRound(monthlyRate)

		token, err := s.journal.Begin("interest",
			fmt.Sprintf("account=%s amount=%s", p.AccountNo, amount))
		if err != nil {
			return count, err
		}
		if !amount.IsZero() {
			narration := fmt.Sprintf("Monthly Interest Rs.%s on %s",
				amount, asOf.Format(narrationDateLayout))
			if _, err := s.ledger.CreditInterest(p.AccountNo, amount, narration); err != nil {
				return count, err
			}
		}
		// Zero-interest months still get a log entry so the account is not
		// re-examined until the next month.
		if err := s.log.Append(repository.InterestEntry{
			AccountNo:   p.AccountNo,
			Date:        asOf,
			Amount:      amount,
			RatePercent: ratePercent,
		}); err != nil {
			return count, err
		}
		if err := s.journal.Commit(token); err != nil {
			return count, err
		}
		count++
		s.logger.Info("interest credited",
			"account", p.AccountNo, "amount", amount, "rate_percent", ratePercent)
	}
	return count, nil
}

// History returns the full interest accrual log in file order.
func (s *Service) History(ctx context.Context) ([]repository.InterestEntry, error) {
	return s.log.Load()
}
