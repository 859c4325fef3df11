package calendar

import "errors"

var (
	// ErrMasterLocked мастер с единственной ролью MASTER видит только свои заказы
	ErrMasterLocked = errors.New("calendar: master filter is locked")

	// ErrReadOnly перенос заказов недоступен пользователю с единственной ролью MASTER
	ErrReadOnly = errors.New("calendar: calendar is read-only")

	// ErrEventNotFound заказа нет среди загруженных событий
	ErrEventNotFound = errors.New("calendar: event not found")

	// ErrInvalidRange конец периода не позже начала
	ErrInvalidRange = errors.New("calendar: invalid range")
)
