package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movekenya/movekenya_backend/models"
)

type fakeSource struct {
	role     string
	accounts map[string]*models.Account
	err      error
}

func (s *fakeSource) Role() string { return s.role }

func (s *fakeSource) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	account, ok := s.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func TestResolve_FirstMatchWins(t *testing.T) {
	// The same email exists in both the admin and user collections; the
	// admin row must win because admins are probed first.
	resolver := NewAccountResolver(
		&fakeSource{role: models.RoleAdmin, accounts: map[string]*models.Account{
			"boss@x.com": {Email: "boss@x.com", Password: "admin-hash"},
		}},
		&fakeSource{role: models.RoleUser, accounts: map[string]*models.Account{
			"boss@x.com": {Email: "boss@x.com", Password: "user-hash"},
			"jane@x.com": {Email: "jane@x.com", Password: "jane-hash"},
		}},
		&fakeSource{role: models.RoleDriver, accounts: map[string]*models.Account{}},
	)

	account, err := resolver.Resolve(context.Background(), "boss@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)
	assert.Equal(t, "admin-hash", account.Password)

	account, err = resolver.Resolve(context.Background(), "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, account.Role)
}

func TestResolve_ExhaustedOrderIsNotFound(t *testing.T) {
	resolver := NewAccountResolver(
		&fakeSource{role: models.RoleAdmin, accounts: map[string]*models.Account{}},
		&fakeSource{role: models.RoleUser, accounts: map[string]*models.Account{}},
		&fakeSource{role: models.RoleDriver, accounts: map[string]*models.Account{}},
	)

	_, err := resolver.Resolve(context.Background(), "nobody@x.com")
	assert.Equal(t, ErrNotFound, err)
}

func TestResolve_StoreFaultStopsProbing(t *testing.T) {
	storeErr := errors.New("connection reset")
	resolver := NewAccountResolver(
		&fakeSource{role: models.RoleAdmin, err: storeErr},
		&fakeSource{role: models.RoleUser, accounts: map[string]*models.Account{
			"jane@x.com": {Email: "jane@x.com"},
		}},
	)

	_, err := resolver.Resolve(context.Background(), "jane@x.com")
	assert.Equal(t, storeErr, err)
}

func TestResolve_DriverRole(t *testing.T) {
	resolver := NewAccountResolver(
		&fakeSource{role: models.RoleAdmin, accounts: map[string]*models.Account{}},
		&fakeSource{role: models.RoleUser, accounts: map[string]*models.Account{}},
		&fakeSource{role: models.RoleDriver, accounts: map[string]*models.Account{
			"drv@x.com": {Email: "drv@x.com", Password: "drv-hash"},
		}},
	)

	account, err := resolver.Resolve(context.Background(), "drv@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, account.Role)
}
