package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized возвращается при 401: токена нет или он невалиден
	ErrUnauthorized = errors.New("api client: unauthorized")

	// ErrForbidden возвращается при 403
	ErrForbidden = errors.New("api client: forbidden")

	// ErrNotFound возвращается при 404
	ErrNotFound = errors.New("api client: not found")

	// ErrValidation возвращается при 400, в том числе с ошибками полей формы
	ErrValidation = errors.New("api client: validation failed")

	// ErrConflict возвращается при 409
	ErrConflict = errors.New("api client: conflict")

	// ErrInternal возвращается при ошибках транспорта и 5xx
	ErrInternal = errors.New("api client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервера
	ErrInvalidResponse = errors.New("api client: invalid response")
)

// Error ошибка, которую вернул сервер. Fields заполнены для ошибок валидации формы.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
	kind    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: status=%d, message=%s", e.kind, e.Status, e.Message)
}

// Unwrap позволяет сравнивать ошибку с сентинелами через errors.Is
func (e *Error) Unwrap() error {
	return e.kind
}
