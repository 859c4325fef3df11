package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	userRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/user"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetCredentials(ctx context.Context, username string) (*domain.User, string, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

var testUser = &domain.User{
	ID:        7,
	Username:  "master",
	FirstName: "Иван",
	Roles:     []domain.Role{{ID: 3, Name: domain.RoleMaster}},
}

func newTestService(repo UserRepository, clock *fixedTime) *Service {
	s := NewService(repo, Config{Secret: "0123456789abcdef", TTL: time.Hour, Issuer: "test"}, nopLogger{})
	s.timeProvider = clock
	return s
}

func TestLogin_IssuesTokenThatValidates(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	repo := &MockUserRepository{}
	repo.On("GetCredentials", mock.Anything, "master").Return(testUser, hash, nil)
	repo.On("GetByID", mock.Anything, int64(7)).Return(testUser, nil)

	clock := &fixedTime{now: time.Now()}
	svc := newTestService(repo, clock)

	res, err := svc.Login(context.Background(), "master", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, clock.now.Add(time.Hour), res.ExpiresAt)

	principal, err := svc.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), principal.UserID)
	assert.True(t, principal.IsMasterOnly())
	assert.False(t, principal.HasAnyRole(domain.RoleAdmin, domain.RoleManager))

	user, err := svc.ValidateToken(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, testUser, user)

	repo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	repo := &MockUserRepository{}
	repo.On("GetCredentials", mock.Anything, "master").Return(testUser, hash, nil)

	_, err = newTestService(repo, &fixedTime{now: time.Now()}).Login(context.Background(), "master", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := &MockUserRepository{}
	repo.On("GetCredentials", mock.Anything, "ghost").Return(nil, "", userRepo.ErrUserNotFound)

	_, err := newTestService(repo, &fixedTime{now: time.Now()}).Login(context.Background(), "ghost", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_Rejects(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	repo := &MockUserRepository{}
	repo.On("GetCredentials", mock.Anything, "master").Return(testUser, hash, nil)

	clock := &fixedTime{now: time.Now()}
	svc := newTestService(repo, clock)
	res, err := svc.Login(context.Background(), "master", "secret1")
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		clock.now = clock.now.Add(2 * time.Hour)
		defer func() { clock.now = clock.now.Add(-2 * time.Hour) }()

		_, err := svc.ParseToken(res.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewService(repo, Config{Secret: "another-secret-value", TTL: time.Hour, Issuer: "test"}, nopLogger{})
		_, err := other.ParseToken(res.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestValidateToken_DeletedUser(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	repo := &MockUserRepository{}
	repo.On("GetCredentials", mock.Anything, "master").Return(testUser, hash, nil)
	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, userRepo.ErrUserNotFound)

	svc := newTestService(repo, &fixedTime{now: time.Now()})
	res, err := svc.Login(context.Background(), "master", "secret1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
