package flatfile

import (
	"strings"

	"github.com/abaasith/unibank/pkg/repository"
)

// TransactionStore persists `accountNo|narration` lines, append-only.
type TransactionStore struct {
	store *Store
}

// NewTransactionStore returns a transaction store.
func NewTransactionStore(store *Store) *TransactionStore {
	return &TransactionStore{store: store}
}

// Load attaches each narration to its account number in file order.
// Malformed lines are skipped.
func (t *TransactionStore) Load() (map[string][]string, error) {
	lines, err := t.store.readLines(transactionsFile)
	if err != nil {
		return nil, err
	}
	byAccount := make(map[string][]string)
	for _, line := range lines {
		parts := strings.SplitN(line, fieldSep, 2)
		if len(parts) != 2 || parts[0] == "" {
			t.store.logger.Warn("skipping malformed transaction line", "line", line)
			continue
		}
		byAccount[parts[0]] = append(byAccount[parts[0]], parts[1])
	}
	return byAccount, nil
}

// Append writes one transaction line.
func (t *TransactionStore) Append(rec repository.TransactionRecord) error {
	return t.AppendAll([]repository.TransactionRecord{rec})
}

// AppendAll writes all records in a single write call so paired narrations
// land together.
func (t *TransactionStore) AppendAll(recs []repository.TransactionRecord) error {
	lines := make([]string, len(recs))
	for i, rec := range recs {
		lines[i] = rec.AccountNo + fieldSep + rec.Narration
	}
	return t.store.appendLines(transactionsFile, false, lines...)
}
