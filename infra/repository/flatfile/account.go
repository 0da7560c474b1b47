package flatfile

import (
	"strconv"
	"strings"

	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/abaasith/unibank/pkg/repository"
)

// AccountStore persists `accountNo|name|balance` lines. The file is append-
// only: a balance update is a fresh line, and Load keeps the last line per
// account number.
type AccountStore struct {
	store       *Store
	numberFloor int
}

// NewAccountStore returns an account store. numberFloor is the lowest value
// the account-number sequence can start from.
func NewAccountStore(store *Store, numberFloor int) *AccountStore {
	return &AccountStore{store: store, numberFloor: numberFloor}
}

// Load reads all account lines. Lines with fewer than three fields are
// skipped; an unparseable balance defaults to zero rather than aborting.
func (a *AccountStore) Load() (map[string]repository.AccountRecord, error) {
	lines, err := a.store.readLines(accountsFile)
	if err != nil {
		return nil, err
	}
	records := make(map[string]repository.AccountRecord, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, fieldSep)
		if len(parts) < 3 {
			a.store.logger.Warn("skipping malformed account line", "line", line)
			continue
		}
		balance, err := money.Parse(parts[2])
		if err != nil {
			a.store.logger.Warn("account line has bad balance, defaulting to 0",
				"account", parts[0], "balance", parts[2])
			balance = money.Zero()
		}
		records[parts[0]] = repository.AccountRecord{
			Number:  parts[0],
			Name:    parts[1],
			Balance: balance,
		}
	}
	return records, nil
}

// Append writes one account line.
func (a *AccountStore) Append(rec repository.AccountRecord) error {
	line := strings.Join([]string{rec.Number, rec.Name, rec.Balance.String()}, fieldSep)
	return a.store.appendLines(accountsFile, false, line)
}

// NextNumber scans every account number in the file and returns max+1.
// The full scan keeps the sequence correct even after manual edits.
func (a *AccountStore) NextNumber() (string, error) {
	lines, err := a.store.readLines(accountsFile)
	if err != nil {
		return "", err
	}
	highest := a.numberFloor
	for _, line := range lines {
		parts := strings.Split(line, fieldSep)
		if len(parts) == 0 {
			continue
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1), nil
}
