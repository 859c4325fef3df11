package models

import "time"

// LoginRequest учетные данные
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse токен и пользователь
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// ValidateTokenRequest проверка токена
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse результат проверки токена
type ValidateTokenResponse struct {
	IsValid bool  `json:"isValid"`
	User    *User `json:"user,omitempty"`
}

// ErrorResponse тело ответа с ошибкой. Fields заполняется для ошибок валидации формы.
type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
