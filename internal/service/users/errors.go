package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("users: user not found")

	// ErrUsernameTaken возвращается, когда логин уже занят
	ErrUsernameTaken = errors.New("users: username already taken")

	// ErrRoleNotFound возвращается, когда роль не найдена
	ErrRoleNotFound = errors.New("users: role not found")

	// ErrWrongPassword возвращается, когда старый пароль не совпал
	ErrWrongPassword = errors.New("users: wrong old password")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("users: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("users: internal error")
)
