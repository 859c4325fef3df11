package session

import "errors"

var (
	// ErrNoState в хранилище нет сохраненной сессии
	ErrNoState = errors.New("session: no stored state")

	// ErrStorage ошибка чтения или записи хранилища
	ErrStorage = errors.New("session: storage error")

	// ErrInvalidLogin пустой токен или пользователь при входе
	ErrInvalidLogin = errors.New("session: token and user are required")
)
