// Package repository defines the persistence contracts for the ledger's
// record kinds. Implementations live under infra/repository.
package repository

import (
	"time"

	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/abaasith/unibank/pkg/domain/user"
)

// AccountRecord is a single persisted account line.
type AccountRecord struct {
	Number  string
	Name    string
	Balance money.Money
}

// TransactionRecord is an append-only narration fact for one account.
type TransactionRecord struct {
	AccountNo string
	Narration string
}

// InterestEntry records one monthly interest credit. Its presence for a
// given (account, year, month) is the idempotence guard against
// double-accrual.
type InterestEntry struct {
	AccountNo   string
	Date        time.Time
	Amount      money.Money
	RatePercent float64
}

// PendingOp is a journaled multi-file mutation that never committed.
type PendingOp struct {
	Token   string
	Op      string
	Details string
	BeganAt time.Time
}

// AccountStore persists account number, holder name and balance. Writes are
// append-only; Load keeps the last line per account number, so appending a
// fresh line is how a balance update is made durable.
type AccountStore interface {
	Load() (map[string]AccountRecord, error)
	Append(rec AccountRecord) error
	// NextNumber scans all existing account numbers and returns max+1,
	// starting from a configured floor when the store is empty.
	NextNumber() (string, error)
}

// TransactionStore persists transaction narrations.
type TransactionStore interface {
	Load() (map[string][]string, error)
	Append(rec TransactionRecord) error
	// AppendAll writes several records in a single write call so paired
	// narrations (both legs of a transfer) land together.
	AppendAll(recs []TransactionRecord) error
}

// ProfileStore persists customer profiles. Rewrite replaces the whole file
// atomically via a staging file and rename.
type ProfileStore interface {
	Load() ([]customer.Profile, error)
	Append(p customer.Profile) error
	Rewrite(ps []customer.Profile) error
}

// CredentialStore maps usernames to password hashes and roles. Read-only at
// runtime except for account creation.
type CredentialStore interface {
	Load() (map[string]user.Credential, error)
	Append(c user.Credential) error
}

// InterestLogStore persists the append-only interest accrual log.
type InterestLogStore interface {
	Load() ([]InterestEntry, error)
	Append(e InterestEntry) error
}

// AuditLogger appends free-text audit lines. The entries are write-only and
// never parsed back in.
type AuditLogger interface {
	Change(entry string) error
	Deactivation(entry string) error
}

// Journal is a write-ahead record of multi-file mutations. Begin is called
// before the writes, Commit after; Recover reports operations whose commit
// marker is missing so a crash between writes is at least detectable.
type Journal interface {
	Begin(op, details string) (token string, err error)
	Commit(token string) error
	Recover() ([]PendingOp, error)
}
