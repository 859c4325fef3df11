package change_password

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/auth"
	"github.com/m04kA/SMC-DetailingService/internal/service/users"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return m.Called(ctx, username, oldPassword, newPassword).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func request(username string, principal *auth.Principal) *http.Request {
	req := httptest.NewRequest(http.MethodGet,
		"/users/changePassword/"+username+"?oldPassword=old123&newPassword=new123", nil)
	req = mux.SetURLVars(req, map[string]string{"username": username})
	return req.WithContext(middleware.WithPrincipal(req.Context(), principal))
}

func TestHandle(t *testing.T) {
	self := &auth.Principal{UserID: 2, Username: "ivan", Roles: []domain.RoleName{domain.RoleManager}}

	tests := []struct {
		name     string
		username string
		err      error
		want     int
	}{
		{"changed", "ivan", nil, http.StatusNoContent},
		{"wrong old password", "ivan", users.ErrWrongPassword, http.StatusBadRequest},
		{"too short", "ivan", fmt.Errorf("%w: %s", users.ErrInvalidInput, users.MsgPasswordTooShort), http.StatusBadRequest},
		{"foreign account", "petr", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			svc.On("ChangePassword", mock.Anything, tt.username, "old123", "new123").Return(tt.err).Maybe()

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, request(tt.username, self))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				svc.AssertNotCalled(t, "ChangePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandle_InvalidInputMessage(t *testing.T) {
	self := &auth.Principal{UserID: 2, Username: "ivan"}
	svc := new(MockUserService)
	svc.On("ChangePassword", mock.Anything, "ivan", "old123", "new123").
		Return(fmt.Errorf("%w: %s", users.ErrInvalidInput, users.MsgPasswordTooShort))

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, request("ivan", self))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), users.MsgPasswordTooShort)
	assert.NotContains(t, rec.Body.String(), "invalid input")
}
