package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryReportPeriod(t *testing.T) {
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		query   string
		want    *time.Time
		wantEnd time.Time
		wantErr error
	}{
		{name: "absent", query: ""},
		{name: "dates", query: "start=2024-05-06&end=2024-05-12", want: &start,
			wantEnd: start.AddDate(0, 0, 7).Add(-time.Nanosecond)},
		{name: "rfc3339 end kept as is", query: "start=2024-05-06&end=2024-05-12T18:00:00Z", want: &start,
			wantEnd: time.Date(2024, 5, 12, 18, 0, 0, 0, time.UTC)},
		{name: "only end", query: "end=2024-05-12", wantErr: ErrMissingParam},
		{name: "garbage", query: "start=yesterday&end=2024-05-12", wantErr: ErrInvalidParam},
		{name: "reversed", query: "start=2024-05-12&end=2024-05-06", wantErr: ErrInvalidParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/reports?"+tt.query, nil)
			period, err := QueryReportPeriod(req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, period)
				return
			}
			require.NotNil(t, period)
			assert.True(t, period.Start.Equal(*tt.want))
			assert.True(t, period.End.Equal(tt.wantEnd))
		})
	}
}

func TestQueryInt64List(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/updateRoles/1?roleIds=1,%202&roleIds=3", nil)
	ids, err := QueryInt64List(req, "roleIds")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	req = httptest.NewRequest(http.MethodGet, "/users/updateRoles/1?roleIds=1,x", nil)
	_, err = QueryInt64List(req, "roleIds")
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestRespondValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)

	RespondValidation(rec, req, map[string]string{"vin": "VIN должен содержать 17 символов"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"`+MsgValidationError+`","fields":{"vin":"VIN должен содержать 17 символов"}}`, rec.Body.String())
}
