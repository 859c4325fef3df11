package api

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// LoginResult токен и пользователь после входа
type LoginResult struct {
	Token string
	User  *domain.User
}

// Login POST /auth/login
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var resp models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		models.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: resp.Token, User: resp.User.ToDomain()}, nil
}

// ValidateToken POST /auth/validate-token.
// Отклоненный токен возвращается как ErrUnauthorized.
func (c *Client) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	var resp models.ValidateTokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/validate-token", nil,
		models.ValidateTokenRequest{Token: token}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.IsValid || resp.User == nil {
		return nil, &Error{Status: http.StatusUnauthorized, Message: "token rejected", kind: ErrUnauthorized}
	}
	return resp.User.ToDomain(), nil
}
