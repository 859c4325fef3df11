package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type staticToken string

func (t staticToken) Token() string { return string(t) }

const fetchedOrder = `{
	"id": 12,
	"clientName": "Иван Петров",
	"clientPhone": "+79991234567",
	"carBrand": {"id": 3, "name": "BMW"},
	"vin": "WBA00000000000001",
	"works": [
		{
			"id": 40,
			"workType": {"id": 1, "code": "WASH", "name": "Мойка", "active": true},
			"parts": [{"id": 11, "type": "WASH", "code": "FOAM", "name": "Пена", "active": true}],
			"comment": "аккуратно",
			"cost": 33.33,
			"assignments": [
				{
					"master": {"id": 7, "username": "oleg", "firstName": "Олег", "lastName": "Сидоров", "phone": "+7", "roles": [{"id": 3, "name": "MASTER"}]},
					"salaryPercent": 33
				}
			]
		},
		{
			"id": 41,
			"workType": {"id": 2, "code": "WAX", "name": "Воск", "active": false},
			"parts": [],
			"comment": "",
			"cost": 0,
			"assignments": []
		}
	],
	"infoSource": {"id": 5, "code": "FRIENDS", "name": "Друзья", "active": true},
	"executionDate": "2024-05-06T10:00:00Z",
	"orderCost": 1500.5,
	"executionTimeByMaster": "2 часа",
	"status": "IN_PROGRESS"
}`

func TestClient_OrderRoundTrip(t *testing.T) {
	var submitted []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, fetchedOrder)
		case http.MethodPut:
			submitted, _ = io.ReadAll(r.Body)
			_, _ = io.WriteString(w, fetchedOrder)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, nopLogger{})

	order, err := client.GetOrder(context.Background(), 12)
	require.NoError(t, err)

	// форма открыта на редактирование и отправлена без изменений
	draft := orderform.FromOrder(order)
	_, err = client.UpdateOrder(context.Background(), order.ID, draft)
	require.NoError(t, err)

	assert.JSONEq(t, fetchedOrder, string(submitted))
}

func TestClient_BearerToken(t *testing.T) {
	var header string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, staticToken("abc"), nopLogger{})
	_, err := client.CarBrands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", header)

	client.SetTokenSource(staticToken(""))
	_, err = client.CarBrands(context.Background())
	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: "ошибка"})
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second, nil, nopLogger{}).GetOrder(context.Background(), 1)

			assert.ErrorIs(t, err, tt.want)
			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "ошибка", apiErr.Message)
		})
	}
}

func TestClient_ValidationFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Message: "ошибка валидации формы",
			Fields:  map[string]string{"works": "Выберите хотя бы один тип работ"},
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, nil, nopLogger{}).CreateOrder(context.Background(), orderform.NewDraft())

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, map[string]string{"works": "Выберите хотя бы один тип работ"}, FieldErrors(err))
}

func TestClient_Calendar(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/calendar", r.URL.Path)
		query = r.URL.Query()
		_, _ = io.WriteString(w, `[`+fetchedOrder+`]`)
	}))
	defer srv.Close()

	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	master := int64(7)
	orders, err := NewClient(srv.URL, time.Second, nil, nopLogger{}).Calendar(context.Background(), domain.CalendarFilter{
		Start:    start,
		End:      start.AddDate(0, 0, 7),
		MasterID: &master,
	})
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.True(t, orders[0].HasMaster(7))
	assert.Equal(t, []string{"2024-05-06T00:00:00Z"}, query["start"])
	assert.Equal(t, []string{"2024-05-13T00:00:00Z"}, query["end"])
	assert.Equal(t, []string{"7"}, query["masterId"])
	assert.Equal(t, []string{domain.StatusFilterAll}, query["status"])
}

func TestClient_ValidateToken_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"isValid": false}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, nil, nopLogger{}).ValidateToken(context.Background(), "old")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_ChangeStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/change/12", r.URL.Path)
		assert.Equal(t, "COMPLETED", r.URL.Query().Get("code"))
		assert.Equal(t, "7", r.URL.Query().Get("master"))
		_, _ = io.WriteString(w, `{"orderId":12,"previousStatus":"IN_PROGRESS","status":"COMPLETED","availableTransitions":[]}`)
	}))
	defer srv.Close()

	master := int64(7)
	res, err := NewClient(srv.URL, time.Second, nil, nopLogger{}).
		ChangeStatus(context.Background(), 12, domain.StatusCompleted, &master)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, res.Previous)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	assert.Empty(t, res.Available)
}
