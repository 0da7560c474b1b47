// Package flatfile implements the repository contracts over newline-
// terminated, pipe- or colon-delimited text files. Reads of missing files
// yield empty results (first-run condition), malformed lines are skipped,
// and whole-file rewrites go through a staging file plus atomic rename.
package flatfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// File names kept compatible with the existing store layout.
const (
	accountsFile      = "AccountDetails.txt"
	transactionsFile  = "transactions.txt"
	profilesFile      = "CustomerProfiles.txt"
	credentialsFile   = "credentials.txt"
	changeLogFile     = "change_log.txt"
	deactivationFile  = "deactivation_log.txt"
	interestLogFile   = "interestlog.txt"
	journalFile       = "journal.txt"
	fieldSep          = "|"
	credentialSep     = ":"
)

// Store is the shared base for the per-record-kind stores: it owns the data
// directory and the line-level file helpers.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates the data directory if needed and returns the base store.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger.With("component", "flatfile")}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readLines returns the non-empty lines of a file. A missing file is an
// empty store, not an error.
func (s *Store) readLines(name string) ([]string, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// appendLines writes the given lines in a single write call so multi-line
// records (both legs of a transfer) land together or not at all.
func (s *Store) appendLines(name string, sync bool, lines ...string) error {
	if len(lines) == 0 {
		return nil
	}
	f, err := os.OpenFile(s.path(name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", name, err)
	}
	defer f.Close()
	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return fmt.Errorf("append to %s: %w", name, err)
	}
	if sync {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("sync %s: %w", name, err)
		}
	}
	return nil
}

// rewrite replaces the file contents atomically: the new lines go to a
// staging file which is renamed over the original, so a crash mid-write
// leaves the previous contents intact.
func (s *Store) rewrite(name string, lines []string) error {
	tmp := s.path(name) + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create staging file for %s: %w", name, err)
	}
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write staging file for %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close staging file for %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
