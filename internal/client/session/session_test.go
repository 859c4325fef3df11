package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var (
	master = &domain.User{ID: 7, Username: "oleg", Roles: []domain.Role{{ID: 3, Name: domain.RoleMaster}}}
	admin  = &domain.User{ID: 1, Username: "admin", Roles: []domain.Role{
		{ID: 2, Name: domain.RoleAdmin},
		{ID: 3, Name: domain.RoleMaster},
	}}
)

func TestSession_LoginLogout(t *testing.T) {
	storage := NewMemoryStorage()
	s := NewSession(storage, new(MockTokenValidator), nopLogger{})

	require.NoError(t, s.Login("tok", master))
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsMasterOnly())
	assert.Equal(t, "tok", s.Token())

	state, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", state.Token)
	assert.Equal(t, int64(7), state.User.ID)

	s.Logout()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
	_, err = storage.Load()
	assert.ErrorIs(t, err, ErrNoState)
}

func TestSession_LoginRequiresTokenAndUser(t *testing.T) {
	s := NewSession(NewMemoryStorage(), new(MockTokenValidator), nopLogger{})

	assert.ErrorIs(t, s.Login("", master), ErrInvalidLogin)
	assert.ErrorIs(t, s.Login("tok", nil), ErrInvalidLogin)
	assert.False(t, s.IsAuthenticated())
}

func TestSession_MasterWithOtherRoleIsNotMasterOnly(t *testing.T) {
	s := NewSession(NewMemoryStorage(), new(MockTokenValidator), nopLogger{})

	require.NoError(t, s.Login("tok", admin))
	assert.False(t, s.IsMasterOnly())
}

func TestSession_Restore(t *testing.T) {
	tests := []struct {
		name      string
		stored    bool
		user      *domain.User
		err       error
		wantAuth  bool
		wantCalls int
	}{
		{name: "empty storage", stored: false, wantAuth: false, wantCalls: 0},
		{name: "valid token", stored: true, user: master, wantAuth: true, wantCalls: 1},
		{name: "rejected token", stored: true, err: errors.New("unauthorized"), wantAuth: false, wantCalls: 1},
		{name: "network error", stored: true, err: context.DeadlineExceeded, wantAuth: false, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			validator := new(MockTokenValidator)
			if tt.stored {
				seed := NewSession(storage, validator, nopLogger{})
				require.NoError(t, seed.Login("tok", master))
				validator.On("ValidateToken", mock.Anything, "tok").Return(tt.user, tt.err)
			}

			s := NewSession(storage, validator, nopLogger{})
			restored := s.Restore(context.Background())

			assert.Equal(t, tt.wantAuth, restored)
			assert.Equal(t, tt.wantAuth, s.IsAuthenticated())
			validator.AssertNumberOfCalls(t, "ValidateToken", tt.wantCalls)

			_, err := storage.Load()
			if tt.wantAuth {
				assert.NoError(t, err)
				assert.Equal(t, "tok", s.Token())
			} else {
				assert.ErrorIs(t, err, ErrNoState)
				assert.Empty(t, s.Token())
			}
		})
	}
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	storage := NewFileStorage(path)

	_, err := storage.Load()
	assert.ErrorIs(t, err, ErrNoState)

	s := NewSession(storage, new(MockTokenValidator), nopLogger{})
	require.NoError(t, s.Login("tok", master))

	state, err := NewFileStorage(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", state.Token)
	assert.Equal(t, "oleg", state.User.Username)
	assert.True(t, state.User.ToDomain().IsMasterOnly())

	require.NoError(t, storage.Clear())
	require.NoError(t, storage.Clear())
	_, err = storage.Load()
	assert.ErrorIs(t, err, ErrNoState)
}
