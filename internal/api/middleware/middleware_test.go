package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/auth"
	"github.com/m04kA/SMC-DetailingService/pkg/metrics"
)

type MockTokenParser struct {
	mock.Mock
}

func (m *MockTokenParser) ParseToken(token string) (*auth.Principal, error) {
	args := m.Called(token)
	if p := args.Get(0); p != nil {
		return p.(*auth.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	principal := &auth.Principal{UserID: 1, Username: "admin", Roles: []domain.RoleName{domain.RoleAdmin}}

	parser := new(MockTokenParser)
	parser.On("ParseToken", "good").Return(principal, nil)
	parser.On("ParseToken", "bad").Return(nil, auth.ErrInvalidToken)

	var seen *auth.Principal
	handler := Auth(parser, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetPrincipal(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer  ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, principal, seen)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	handler := RequireRoles(domain.RoleAdmin, domain.RoleManager)(okHandler())

	tests := []struct {
		name      string
		principal *auth.Principal
		want      int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"master", &auth.Principal{UserID: 3, Roles: []domain.RoleName{domain.RoleMaster}}, http.StatusForbidden},
		{"manager", &auth.Principal{UserID: 2, Roles: []domain.RoleName{domain.RoleManager}}, http.StatusOK},
		{"master and admin", &auth.Principal{UserID: 1, Roles: []domain.RoleName{domain.RoleMaster, domain.RoleAdmin}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), tt.principal))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	var seen string
	handler := RequestLogger(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestMetricsMiddleware_RouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("detailing_test", prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.Handle("/orders/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for _, path := range []string{"/orders/1", "/orders/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/orders/{id}", "404")))
}

func TestGetPrincipal_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetPrincipal(req.Context())
	assert.False(t, ok)
}
