package get_order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/auth"
	"github.com/m04kA/SMC-DetailingService/internal/service/orders"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func orderWithMaster(masterID int64) *domain.Order {
	return &domain.Order{
		ID:         5,
		ClientName: "Петр",
		Status:     domain.StatusNew,
		Works: []domain.Work{{
			WorkType:    domain.WorkType{ID: 1, Code: "WASH", Name: "Мойка"},
			Cost:        1000,
			Assignments: []domain.MasterAssignment{{Master: domain.User{ID: masterID}, SalaryPercent: 30}},
		}},
	}
}

func request(principal *auth.Principal, id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/orders/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	if principal != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), principal))
	}
	return req
}

func TestHandle(t *testing.T) {
	master := &auth.Principal{UserID: 3, Roles: []domain.RoleName{domain.RoleMaster}}
	manager := &auth.Principal{UserID: 1, Roles: []domain.RoleName{domain.RoleManager}}

	tests := []struct {
		name      string
		principal *auth.Principal
		id        string
		order     *domain.Order
		err       error
		want      int
	}{
		{"manager sees any order", manager, "5", orderWithMaster(9), nil, http.StatusOK},
		{"master sees own order", master, "5", orderWithMaster(3), nil, http.StatusOK},
		{"master cannot see foreign order", master, "5", orderWithMaster(9), nil, http.StatusForbidden},
		{"not found", manager, "5", nil, orders.ErrOrderNotFound, http.StatusNotFound},
		{"bad id", manager, "abc", nil, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			svc.On("GetByID", mock.Anything, int64(5)).Return(tt.order, tt.err).Maybe()

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, request(tt.principal, tt.id))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
