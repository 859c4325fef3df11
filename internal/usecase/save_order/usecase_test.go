package save_order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
	"github.com/m04kA/SMC-DetailingService/pkg/ptr"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, o)
	o.ID = int64(args.Int(0))
	return o, args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, o)
	return o, args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDictionaryRepository struct {
	mock.Mock
}

func (m *MockDictionaryRepository) ListByType(ctx context.Context, entryType string) ([]domain.DictionaryEntry, error) {
	args := m.Called(ctx, entryType)
	if e := args.Get(0); e != nil {
		return e.([]domain.DictionaryEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDictionaryRepository) ListCarBrands(ctx context.Context) ([]domain.CarBrand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CarBrand), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.RoleName) ([]*domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]*domain.User), args.Error(1)
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	brandAudi = domain.CarBrand{ID: 1, Name: "Audi"}
	wtFilm    = domain.WorkType{ID: 11, Code: "PVC", Name: "Пленка", Active: true}
	partHood  = domain.Part{ID: 100, WorkTypeCode: "PVC", Code: "HOOD", Name: "Капот", Active: true}
	master    = domain.User{ID: 5, FirstName: "Иван", Roles: []domain.Role{{ID: 3, Name: domain.RoleMaster}}}
)

type fixture struct {
	orders *MockOrderRepository
	dicts  *MockDictionaryRepository
	users  *MockUserRepository
	uc     *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		orders: new(MockOrderRepository),
		dicts:  new(MockDictionaryRepository),
		users:  new(MockUserRepository),
	}
	f.uc = NewUseCase(f.orders, f.dicts, f.users, passThroughTx{}, nopLogger{})

	f.dicts.On("ListCarBrands", mock.Anything).Return([]domain.CarBrand{brandAudi}, nil)
	f.dicts.On("ListByType", mock.Anything, domain.DictionaryTypeWorkType).Return([]domain.DictionaryEntry{
		{ID: 11, Type: domain.DictionaryTypeWorkType, Code: "PVC", Name: "Пленка", Active: true},
	}, nil)
	f.dicts.On("ListByType", mock.Anything, domain.DictionaryTypeInfo).Return([]domain.DictionaryEntry{}, nil)
	f.dicts.On("ListByType", mock.Anything, "PVC").Return([]domain.DictionaryEntry{
		{ID: 100, Type: "PVC", Code: "HOOD", Name: "Капот", Active: true},
	}, nil)
	f.users.On("ListByRole", mock.Anything, domain.RoleMaster).Return([]*domain.User{&master}, nil)
	return f
}

func validDraft() orderform.Draft {
	return orderform.Draft{
		ClientName:    "Анна",
		ClientPhone:   "+79990001122",
		CarBrand:      domain.Selected(brandAudi),
		ExecutionDate: ptr.Ptr(time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)),
		OrderCost:     ptr.Ptr(5000.0),
		Works: []orderform.WorkDraft{
			{
				WorkType:    domain.Selected(wtFilm),
				Parts:       []domain.Part{partHood},
				Cost:        ptr.Ptr(3000.0),
				Assignments: []orderform.AssignmentDraft{{Master: domain.Selected(master), SalaryPercent: ptr.Ptr(30.0)}},
			},
		},
	}
}

func TestUseCase_Create(t *testing.T) {
	f := newFixture()
	stored := &domain.Order{ID: 42, Status: domain.StatusNew}

	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ID == 0 && o.Status == domain.StatusNew && len(o.Works) == 1 && o.Works[0].Parts[0].ID == 100
	})).Return(42, nil)
	f.orders.On("GetByID", mock.Anything, int64(42)).Return(stored, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{Draft: validDraft()})

	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Same(t, stored, resp.Order)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUseCase_CreateIgnoresClientStatus(t *testing.T) {
	f := newFixture()
	draft := validDraft()
	draft.Status = domain.StatusCompleted

	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.StatusNew
	})).Return(7, nil)
	f.orders.On("GetByID", mock.Anything, int64(7)).Return(&domain.Order{ID: 7}, nil)

	_, err := f.uc.Execute(context.Background(), &Request{Draft: draft})

	require.NoError(t, err)
	f.orders.AssertExpectations(t)
}

func TestUseCase_Update(t *testing.T) {
	t.Run("overwrites by id", func(t *testing.T) {
		f := newFixture()
		f.orders.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
			return o.ID == 9
		})).Return(nil)
		f.orders.On("GetByID", mock.Anything, int64(9)).Return(&domain.Order{ID: 9, Status: domain.StatusInProgress}, nil)

		resp, err := f.uc.Execute(context.Background(), &Request{ID: 9, Draft: validDraft()})

		require.NoError(t, err)
		assert.False(t, resp.Created)
		assert.Equal(t, domain.StatusInProgress, resp.Order.Status)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newFixture()
		f.orders.On("Update", mock.Anything, mock.Anything).Return(orderRepo.ErrOrderNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{ID: 9, Draft: validDraft()})

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestUseCase_ValidationErrors(t *testing.T) {
	t.Run("empty works", func(t *testing.T) {
		f := newFixture()
		draft := validDraft()
		draft.Works = nil

		_, err := f.uc.Execute(context.Background(), &Request{Draft: draft})

		require.ErrorIs(t, err, ErrValidation)
		var fields orderform.Errors
		require.True(t, errors.As(err, &fields))
		assert.Equal(t, orderform.MsgNoWorks, fields["works"])
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("forged part", func(t *testing.T) {
		f := newFixture()
		draft := validDraft()
		draft.Works[0].Parts = append(draft.Works[0].Parts, domain.Part{ID: 999, WorkTypeCode: "PVC"})

		_, err := f.uc.Execute(context.Background(), &Request{Draft: draft})

		var fields orderform.Errors
		require.True(t, errors.As(err, &fields))
		assert.Equal(t, orderform.MsgPartNotAllowed, fields["works[0].parts[1]"])
	})

	t.Run("unknown master", func(t *testing.T) {
		f := newFixture()
		draft := validDraft()
		draft.Works[0].Assignments[0].Master = domain.Selected(domain.User{ID: 77})

		_, err := f.uc.Execute(context.Background(), &Request{Draft: draft})

		var fields orderform.Errors
		require.True(t, errors.As(err, &fields))
		assert.Equal(t, orderform.MsgUnknownReference, fields["works[0].assignments[0].master"])
	})
}

func TestUseCase_DictionaryFailure(t *testing.T) {
	f := &fixture{
		orders: new(MockOrderRepository),
		dicts:  new(MockDictionaryRepository),
		users:  new(MockUserRepository),
	}
	f.uc = NewUseCase(f.orders, f.dicts, f.users, passThroughTx{}, nopLogger{})

	f.dicts.On("ListCarBrands", mock.Anything).Return([]domain.CarBrand{}, errors.New("db down"))
	f.dicts.On("ListByType", mock.Anything, mock.Anything).Return([]domain.DictionaryEntry{}, nil)
	f.users.On("ListByRole", mock.Anything, mock.Anything).Return([]*domain.User{}, nil)

	_, err := f.uc.Execute(context.Background(), &Request{Draft: validDraft()})

	assert.ErrorIs(t, err, ErrInternal)
}
