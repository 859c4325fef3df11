package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/auth"
)

type contextKey string

const principalKey contextKey = "principal"

const (
	msgMissingToken = "отсутствует заголовок Authorization: Bearer <token>"
	msgInvalidToken = "невалидный или просроченный токен"
)

// TokenParser проверяет токен и возвращает владельца
type TokenParser interface {
	ParseToken(token string) (*auth.Principal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer-токен и кладет Principal в контекст запроса
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				logger.Warn("%s %s - missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, r, msgMissingToken)
				return
			}

			principal, err := parser.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Warn("%s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, r, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireRoles пропускает только пользователей с одной из ролей
func RequireRoles(roles ...domain.RoleName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, r, handlers.MsgUnauthorized)
				return
			}
			if !principal.HasAnyRole(roles...) {
				handlers.RespondForbidden(w, r, handlers.MsgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithPrincipal кладет Principal в контекст
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal извлекает Principal из контекста
func GetPrincipal(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*auth.Principal)
	return p, ok && p != nil
}
