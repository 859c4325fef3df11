package change_order_status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/order"
	userRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-DetailingService/pkg/ptr"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetStatusForUpdate(ctx context.Context, id int64) (domain.OrderStatus, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.OrderStatus), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, changedBy *int64) error {
	return m.Called(ctx, id, status, changedBy).Error(0)
}

func (m *MockOrderRepository) IsAssigned(ctx context.Context, orderID, masterID int64) (bool, error) {
	args := m.Called(ctx, orderID, masterID)
	return args.Bool(0), args.Error(1)
}

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

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestUseCase_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		current domain.OrderStatus
		code    string
		wantErr error
	}{
		{"new to in progress", domain.StatusNew, "IN_PROGRESS", nil},
		{"new to cancelled", domain.StatusNew, "cancelled", nil},
		{"in progress to completed", domain.StatusInProgress, "COMPLETED", nil},
		{"in progress cannot be cancelled", domain.StatusInProgress, "CANCELLED", ErrTransitionNotAllowed},
		{"completed is final", domain.StatusCompleted, "NEW", ErrTransitionNotAllowed},
		{"cancelled is final", domain.StatusCancelled, "IN_PROGRESS", ErrTransitionNotAllowed},
		{"skip in progress", domain.StatusNew, "COMPLETED", ErrTransitionNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(MockOrderRepository)
			orders.On("GetStatusForUpdate", mock.Anything, int64(1)).Return(tt.current, nil)
			orders.On("UpdateStatus", mock.Anything, int64(1), mock.Anything, (*int64)(nil)).Return(nil)

			uc := NewUseCase(orders, new(MockUserRepository), passThroughTx{}, nopLogger{})
			resp, err := uc.Execute(context.Background(), &Request{OrderID: 1, Code: tt.code})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.current, resp.Previous)
		})
	}
}

func TestUseCase_InvalidCode(t *testing.T) {
	orders := new(MockOrderRepository)
	uc := NewUseCase(orders, new(MockUserRepository), passThroughTx{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{OrderID: 1, Code: "DONE"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	orders.AssertNotCalled(t, "GetStatusForUpdate", mock.Anything, mock.Anything)
}

func TestUseCase_MasterActor(t *testing.T) {
	ctx := context.Background()

	t.Run("recorded as changer", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5, Roles: []domain.Role{{ID: 3, Name: domain.RoleMaster}}}, nil)
		orders := new(MockOrderRepository)
		orders.On("GetStatusForUpdate", mock.Anything, int64(1)).Return(domain.StatusNew, nil)
		orders.On("UpdateStatus", mock.Anything, int64(1), domain.StatusInProgress, ptr.Ptr(int64(5))).Return(nil)

		_, err := NewUseCase(orders, users, passThroughTx{}, nopLogger{}).
			Execute(ctx, &Request{OrderID: 1, Code: "IN_PROGRESS", MasterID: ptr.Ptr(int64(5))})

		require.NoError(t, err)
		orders.AssertExpectations(t)
	})

	t.Run("unknown master", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", ctx, int64(5)).Return(nil, userRepo.ErrUserNotFound)

		_, err := NewUseCase(new(MockOrderRepository), users, passThroughTx{}, nopLogger{}).
			Execute(ctx, &Request{OrderID: 1, Code: "IN_PROGRESS", MasterID: ptr.Ptr(int64(5))})

		assert.ErrorIs(t, err, ErrMasterNotFound)
	})

	t.Run("not a master", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5, Roles: []domain.Role{{ID: 1, Name: domain.RoleManager}}}, nil)

		_, err := NewUseCase(new(MockOrderRepository), users, passThroughTx{}, nopLogger{}).
			Execute(ctx, &Request{OrderID: 1, Code: "IN_PROGRESS", MasterID: ptr.Ptr(int64(5))})

		assert.ErrorIs(t, err, ErrNotMaster)
	})
}

func TestUseCase_OrderNotFound(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("GetStatusForUpdate", mock.Anything, int64(1)).Return(domain.OrderStatus(""), orderRepo.ErrOrderNotFound)

	_, err := NewUseCase(orders, new(MockUserRepository), passThroughTx{}, nopLogger{}).
		Execute(context.Background(), &Request{OrderID: 1, Code: "COMPLETED"})

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUseCase_AssignedOnly(t *testing.T) {
	ctx := context.Background()
	master := &domain.User{ID: 7, Roles: []domain.Role{{ID: 3, Name: domain.RoleMaster}}}

	t.Run("unassigned master is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", ctx, int64(7)).Return(master, nil)
		orders := new(MockOrderRepository)
		orders.On("GetStatusForUpdate", mock.Anything, int64(1)).Return(domain.StatusNew, nil)
		orders.On("IsAssigned", mock.Anything, int64(1), int64(7)).Return(false, nil)

		resp, err := NewUseCase(orders, users, passThroughTx{}, nopLogger{}).
			Execute(ctx, &Request{OrderID: 1, Code: "IN_PROGRESS", MasterID: ptr.Ptr(int64(7)), AssignedOnly: true})

		assert.ErrorIs(t, err, ErrForbidden)
		assert.Nil(t, resp)
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("assigned master changes status", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", ctx, int64(7)).Return(master, nil)
		orders := new(MockOrderRepository)
		orders.On("GetStatusForUpdate", mock.Anything, int64(1)).Return(domain.StatusNew, nil)
		orders.On("IsAssigned", mock.Anything, int64(1), int64(7)).Return(true, nil)
		orders.On("UpdateStatus", mock.Anything, int64(1), domain.StatusInProgress, ptr.Ptr(int64(7))).Return(nil)

		resp, err := NewUseCase(orders, users, passThroughTx{}, nopLogger{}).
			Execute(ctx, &Request{OrderID: 1, Code: "IN_PROGRESS", MasterID: ptr.Ptr(int64(7)), AssignedOnly: true})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, resp.Status)
		orders.AssertExpectations(t)
	})

	t.Run("without master", func(t *testing.T) {
		orders := new(MockOrderRepository)

		_, err := NewUseCase(orders, new(MockUserRepository), passThroughTx{}, nopLogger{}).
			Execute(ctx, &Request{OrderID: 1, Code: "IN_PROGRESS", AssignedOnly: true})

		assert.ErrorIs(t, err, ErrForbidden)
		orders.AssertNotCalled(t, "GetStatusForUpdate", mock.Anything, mock.Anything)
	})
}
