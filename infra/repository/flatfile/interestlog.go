package flatfile

import (
	"strconv"
	"strings"
	"time"

	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/abaasith/unibank/pkg/repository"
)

const interestDateLayout = "2006-01-02"

// InterestLogStore persists `accountNo|date|amount|ratePercent%` lines,
// append-only.
type InterestLogStore struct {
	store *Store
}

// NewInterestLogStore returns an interest log store.
func NewInterestLogStore(store *Store) *InterestLogStore {
	return &InterestLogStore{store: store}
}

// Load parses all interest entries, skipping malformed lines.
func (i *InterestLogStore) Load() ([]repository.InterestEntry, error) {
	lines, err := i.store.readLines(interestLogFile)
	if err != nil {
		return nil, err
	}
	entries := make([]repository.InterestEntry, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, fieldSep)
		if len(parts) != 4 {
			i.store.logger.Warn("skipping malformed interest line", "line", line)
			continue
		}
		date, err := time.Parse(interestDateLayout, parts[1])
		if err != nil {
			i.store.logger.Warn("skipping interest line with bad date", "line", line)
			continue
		}
		amount, err := money.Parse(parts[2])
		if err != nil {
			i.store.logger.Warn("skipping interest line with bad amount", "line", line)
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSuffix(parts[3], "%"), 64)
		if err != nil {
			i.store.logger.Warn("skipping interest line with bad rate", "line", line)
			continue
		}
		entries = append(entries, repository.InterestEntry{
			AccountNo:   parts[0],
			Date:        date,
			Amount:      amount,
			RatePercent: rate,
		})
	}
	return entries, nil
}

// Append writes one interest entry.
func (i *InterestLogStore) Append(e repository.InterestEntry) error {
	line := strings.Join([]string{
		e.AccountNo,
		e.Date.Format(interestDateLayout),
		e.Amount.String(),
		strconv.FormatFloat(e.RatePercent, 'f', -1, 64) + "%",
	}, fieldSep)
	return i.store.appendLines(interestLogFile, false, line)
}
