package flatfile

import (
	"strings"

	"github.com/abaasith/unibank/pkg/domain/user"
)

// CredentialStore persists `username:passwordHash:role` lines. bcrypt hashes
// never contain a colon, so the separator is unambiguous.
type CredentialStore struct {
	store *Store
}

// NewCredentialStore returns a credential store.
func NewCredentialStore(store *Store) *CredentialStore {
	return &CredentialStore{store: store}
}

// Load maps usernames to credentials, skipping malformed lines.
func (c *CredentialStore) Load() (map[string]user.Credential, error) {
	lines, err := c.store.readLines(credentialsFile)
	if err != nil {
		return nil, err
	}
	credentials := make(map[string]user.Credential, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, credentialSep)
		if len(parts) != 3 {
			c.store.logger.Warn("skipping malformed credential line")
			continue
		}
		credentials[parts[0]] = user.Credential{
			Username:     parts[0],
			PasswordHash: parts[1],
			Role:         user.Role(parts[2]),
		}
	}
	return credentials, nil
}

// Append writes one credential line.
func (c *CredentialStore) Append(cred user.Credential) error {
	line := strings.Join(
		[]string{cred.Username, cred.PasswordHash, string(cred.Role)},
		credentialSep,
	)
	return c.store.appendLines(credentialsFile, false, line)
}
