package export_masters_weekly

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/reports"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) WeeklyXLSX(ctx context.Context, period *domain.DateRange) ([]byte, error) {
	args := m.Called(ctx, period)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_WritesWorkbook(t *testing.T) {
	svc := new(MockReportService)
	svc.On("WeeklyXLSX", mock.Anything, (*domain.DateRange)(nil)).Return([]byte("PK\x03\x04"), nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/reports/masters-weekly.xlsx", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), fileName)
	assert.Equal(t, "PK\x03\x04", rec.Body.String())
}

func TestHandle_InvalidPeriod(t *testing.T) {
	svc := new(MockReportService)
	svc.On("WeeklyXLSX", mock.Anything, mock.Anything).Return(nil, reports.ErrInvalidPeriod)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec,
		httptest.NewRequest(http.MethodGet, "/reports/masters-weekly.xlsx?start=2024-05-06&end=2024-05-12", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
