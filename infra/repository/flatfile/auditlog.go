package flatfile

// AuditLogger appends free-text lines to the change and deactivation logs.
// The files are human-readable side effects and are never parsed back in.
type AuditLogger struct {
	store *Store
}

// NewAuditLogger returns an audit logger.
func NewAuditLogger(store *Store) *AuditLogger {
	return &AuditLogger{store: store}
}

// Change appends one line to the change log.
func (a *AuditLogger) Change(entry string) error {
	return a.store.appendLines(changeLogFile, false, entry)
}

// Deactivation appends one line to the deactivation log.
func (a *AuditLogger) Deactivation(entry string) error {
	return a.store.appendLines(deactivationFile, false, entry)
}
