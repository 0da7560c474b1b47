package auth_test

import (
	"log/slog"
	"testing"

	"github.com/abaasith/unibank/infra/repository/flatfile"
	"github.com/abaasith/unibank/pkg/domain/account"
	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/user"
	"github.com/abaasith/unibank/pkg/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfiles map[string]customer.Status

func (s stubProfiles) StatusOf(accountNo string) (customer.Status, error) {
	status, ok := s[accountNo]
	if !ok {
		return "", customer.ErrProfileNotFound
	}
	return status, nil
}

func newService(t *testing.T, profiles stubProfiles) (*auth.Service, *flatfile.CredentialStore) {
	t.Helper()
	store, err := flatfile.New(t.TempDir(), slog.Default())
	require.NoError(t, err)
	credentials := flatfile.NewCredentialStore(store)
	return auth.New(credentials, profiles, slog.Default()), credentials
}

func seed(t *testing.T, store *flatfile.CredentialStore, username, password string, role user.Role) {
	t.Helper()
	cred, err := user.NewCredential(username, password, role)
	require.NoError(t, err)
	require.NoError(t, store.Append(cred))
}

func TestAuthenticateAdmin(t *testing.T) {
	svc, creds := newService(t, stubProfiles{})
	seed(t, creds, "admin", "admin123", user.RoleAdmin)

	sess, err := svc.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, sess.Role)
	assert.Empty(t, sess.AccountNo)
	assert.True(t, sess.CanAccess("2004"))
	assert.True(t, sess.CanAccess("2005"))
}

func TestAuthenticateUser(t *testing.T) {
	svc, creds := newService(t, stubProfiles{"2004": customer.StatusActive})
	seed(t, creds, "user2004", "pass2004", user.RoleUser)

	sess, err := svc.Authenticate("user2004", "pass2004")
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, sess.Role)
	assert.Equal(t, "2004", sess.AccountNo)
	assert.True(t, sess.CanAccess("2004"))
	assert.False(t, sess.CanAccess("2005"))
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, creds := newService(t, stubProfiles{"2004": customer.StatusActive})
	seed(t, creds, "user2004", "pass2004", user.RoleUser)

	_, err := svc.Authenticate("user2004", "wrong")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody", "pass2004")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestAuthenticateRejectsInactiveCustomer(t *testing.T) {
	svc, creds := newService(t, stubProfiles{"2004": customer.StatusInactive})
	seed(t, creds, "user2004", "pass2004", user.RoleUser)

	_, err := svc.Authenticate("user2004", "pass2004")
	require.ErrorIs(t, err, account.ErrAccountInactive)
}

func TestAuthenticateAllowsCredentialWithoutProfile(t *testing.T) {
	svc, creds := newService(t, stubProfiles{})
	seed(t, creds, "user2004", "pass2004", user.RoleUser)

	sess, err := svc.Authenticate("user2004", "pass2004")
	require.NoError(t, err)
	assert.Equal(t, "2004", sess.AccountNo)
}
