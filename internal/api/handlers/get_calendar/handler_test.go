package get_calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/auth"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Calendar(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Order, error) {
	args := m.Called(ctx, filter)
	if o := args.Get(0); o != nil {
		return o.([]*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestParseFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/orders/calendar?start=2024-05-06&end=2024-05-13T00:00:00Z&masterId=4&status=in_progress", nil)

	filter, err := parseFilter(req)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), filter.Start)
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), filter.End)
	require.NotNil(t, filter.MasterID)
	assert.Equal(t, int64(4), *filter.MasterID)
	require.NotNil(t, filter.Status)
	assert.Equal(t, domain.StatusInProgress, *filter.Status)
}

func TestParseFilter_StatusAll(t *testing.T) {
	for _, status := range []string{"", "all", "ALL"} {
		req := httptest.NewRequest(http.MethodGet, "/orders/calendar?start=2024-05-06&end=2024-05-13&status="+status, nil)

		filter, err := parseFilter(req)
		require.NoError(t, err)
		assert.Nil(t, filter.Status, status)
		assert.Nil(t, filter.MasterID)
	}
}

func TestParseFilter_Errors(t *testing.T) {
	for _, query := range []string{
		"",
		"start=2024-05-06",
		"start=2024-05-06&end=bad",
		"start=2024-05-06&end=2024-05-13&masterId=x",
		"start=2024-05-06&end=2024-05-13&status=DONE",
	} {
		req := httptest.NewRequest(http.MethodGet, "/orders/calendar?"+query, nil)
		_, err := parseFilter(req)
		assert.Error(t, err, query)
	}
}

func TestHandle_MasterOnlySeesOwnCalendar(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("Calendar", mock.Anything, mock.MatchedBy(func(f domain.CalendarFilter) bool {
		return f.MasterID != nil && *f.MasterID == 3
	})).Return([]*domain.Order{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/calendar?start=2024-05-06&end=2024-05-13&masterId=9", nil)
	req = req.WithContext(middleware.WithPrincipal(req.Context(),
		&auth.Principal{UserID: 3, Roles: []domain.RoleName{domain.RoleMaster}}))

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Events(t *testing.T) {
	start := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	svc := new(MockOrderService)
	svc.On("Calendar", mock.Anything, mock.Anything).Return([]*domain.Order{{
		ID:            1,
		ClientName:    "Иван",
		CarBrand:      &domain.CarBrand{ID: 1, Name: "BMW"},
		ExecutionDate: start,
		Status:        domain.StatusNew,
	}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/calendar?start=2024-05-06&end=2024-05-13&format=events", nil)
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var events []models.CalendarEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "BMW - Иван", events[0].Title)
	assert.True(t, events[0].End.Equal(start.Add(time.Hour)))
}
