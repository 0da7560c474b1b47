package flatfile_test

import (
	"testing"
	"time"

	"github.com/abaasith/unibank/infra/repository/flatfile"
	"github.com/abaasith/unibank/pkg/domain/money"
	"github.com/abaasith/unibank/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestLogRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	log := flatfile.NewInterestLogStore(store)

	entry := repository.InterestEntry{
		AccountNo:   "2004",
		Date:        time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		Amount:      money.FromCents(2500),
		RatePercent: 0.25,
	}
	require.NoError(t, log.Append(entry))

	loaded, err := log.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "2004", loaded[0].AccountNo)
	assert.Equal(t, entry.Date, loaded[0].Date)
	assert.Equal(t, int64(2500), loaded[0].Amount.Cents())
	assert.InDelta(t, 0.25, loaded[0].RatePercent, 1e-9)
}

func TestJournalRecoverReportsUncommitted(t *testing.T) {
	store, _ := newStore(t)
	journal := flatfile.NewJournal(store)

	committed, err := journal.Begin("transfer", "from=2004 to=2005 amount=25.00")
	require.NoError(t, err)
	require.NoError(t, journal.Commit(committed))

	_, err = journal.Begin("interest", "account=2006 amount=12.50")
	require.NoError(t, err)

	pending, err := journal.Recover()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "interest", pending[0].Op)
	assert.Equal(t, "account=2006 amount=12.50", pending[0].Details)
}

func TestJournalTruncatesWhenClean(t *testing.T) {
	store, _ := newStore(t)
	journal := flatfile.NewJournal(store)

	token, err := journal.Begin("transfer", "from=2004 to=2005 amount=25.00")
	require.NoError(t, err)
	require.NoError(t, journal.Commit(token))

	pending, err := journal.Recover()
	require.NoError(t, err)
	assert.Empty(t, pending)

	// A second recovery over the truncated file is still clean.
	pending, err = journal.Recover()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAuditLogger(t *testing.T) {
	store, _ := newStore(t)
	audit := flatfile.NewAuditLogger(store)

	require.NoError(t, audit.Change("2004 - Phone changed from 0771234567 to 0719876543"))
	require.NoError(t, audit.Deactivation("2004 | Deactivated on 2026-08-28 | Reason: moved abroad"))
}
