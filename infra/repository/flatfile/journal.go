package flatfile

import (
	"fmt"
	"strings"
	"time"

	"github.com/abaasith/unibank/pkg/repository"
	"github.com/google/uuid"
)

// Journal is a write-ahead record of multi-file mutations. Each operation
// appends `token|begin|op|details|timestamp` before its writes and
// `token|commit|timestamp` after. Journal appends are fsynced so the intent
// reaches disk before the data writes it covers.
type Journal struct {
	store *Store
}

// NewJournal returns a journal backed by the store's journal file.
func NewJournal(store *Store) *Journal {
	return &Journal{store: store}
}

// Begin records the intent to perform op and returns the token Commit needs.
func (j *Journal) Begin(op, details string) (string, error) {
	token := uuid.NewString()
	line := strings.Join([]string{
		token, "begin", op, details, time.Now().UTC().Format(time.RFC3339),
	}, fieldSep)
	if err := j.store.appendLines(journalFile, true, line); err != nil {
		return "", fmt.Errorf("journal begin %s: %w", op, err)
	}
	return token, nil
}

// Commit marks the operation identified by token as complete.
func (j *Journal) Commit(token string) error {
	line := strings.Join(
		[]string{token, "commit", time.Now().UTC().Format(time.RFC3339)},
		fieldSep,
	)
	if err := j.store.appendLines(journalFile, true, line); err != nil {
		return fmt.Errorf("journal commit: %w", err)
	}
	return nil
}

// Recover returns every begun operation without a commit marker. When the
// journal is fully committed it is truncated so it does not grow without
// bound.
func (j *Journal) Recover() ([]repository.PendingOp, error) {
	lines, err := j.store.readLines(journalFile)
	if err != nil {
		return nil, err
	}
	pending := make(map[string]repository.PendingOp)
	order := []string{}
	for _, line := range lines {
		parts := strings.Split(line, fieldSep)
		if len(parts) < 2 {
			continue
		}
		token, kind := parts[0], parts[1]
		switch kind {
		case "begin":
			if len(parts) != 5 {
				continue
			}
			began, _ := time.Parse(time.RFC3339, parts[4])
			pending[token] = repository.PendingOp{
				Token:   token,
				Op:      parts[2],
				Details: parts[3],
				BeganAt: began,
			}
			order = append(order, token)
		case "commit":
			delete(pending, token)
		}
	}
	if len(pending) == 0 {
		if len(lines) > 0 {
			if err := j.store.rewrite(journalFile, nil); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	ops := make([]repository.PendingOp, 0, len(pending))
	for _, token := range order {
		if op, ok := pending[token]; ok {
			ops = append(ops, op)
		}
	}
	return ops, nil
}
