package get_master_detail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/auth"
	"github.com/m04kA/SMC-DetailingService/internal/service/reports"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Detail(ctx context.Context, masterID int64, period *domain.DateRange) (*domain.MasterDetailReport, domain.DateRange, error) {
	args := m.Called(ctx, masterID, period)
	if r := args.Get(0); r != nil {
		return r.(*domain.MasterDetailReport), args.Get(1).(domain.DateRange), args.Error(2)
	}
	return nil, args.Get(1).(domain.DateRange), args.Error(2)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func request(id, query string, principal *auth.Principal) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/reports/master-detail/"+id+"?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	return req.WithContext(middleware.WithPrincipal(req.Context(), principal))
}

func TestHandle_MasterReadsOwnReport(t *testing.T) {
	master := &auth.Principal{UserID: 3, Roles: []domain.RoleName{domain.RoleMaster}}
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	svc := new(MockReportService)
	svc.On("Detail", mock.Anything, int64(3), mock.MatchedBy(func(p *domain.DateRange) bool {
		// дата конца включает весь день
		return p != nil && p.Start.Equal(start) && p.End.Equal(start.AddDate(0, 0, 7).Add(-time.Nanosecond))
	})).Return(&domain.MasterDetailReport{
		MasterID:        3,
		MasterFirstName: "Олег",
		ReportDetails: []domain.MasterDetailEarning{{
			WorkTypeID:      1,
			WorkTypeName:    "Мойка",
			EarningsByOrder: []domain.OrderEarning{{OrderID: 10, Earning: 300}},
		}},
	}, domain.DateRange{}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, request("3", "start=2024-05-06&end=2024-05-12", master))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.MasterDetailReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.MasterID)
	require.Len(t, got.ReportDetails, 1)
	assert.Equal(t, 300.0, got.ReportDetails[0].EarningsByOrder[0].Earning)
}

func TestHandle_MasterCannotReadForeignReport(t *testing.T) {
	master := &auth.Principal{UserID: 3, Roles: []domain.RoleName{domain.RoleMaster}}
	svc := new(MockReportService)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, request("4", "", master))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	svc.AssertNotCalled(t, "Detail", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_Errors(t *testing.T) {
	manager := &auth.Principal{UserID: 1, Roles: []domain.RoleName{domain.RoleManager}}

	tests := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{"only start", "start=2024-05-06", nil, http.StatusBadRequest},
		{"end before start", "start=2024-05-06&end=2024-05-01", nil, http.StatusBadRequest},
		{"master not found", "", reports.ErrMasterNotFound, http.StatusNotFound},
		{"not a master", "", reports.ErrNotMaster, http.StatusBadRequest},
		{"internal", "", reports.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)
			svc.On("Detail", mock.Anything, int64(4), (*domain.DateRange)(nil)).
				Return(nil, domain.DateRange{}, tt.err).Maybe()

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, request("4", tt.query, manager))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
