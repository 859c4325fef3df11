package reports

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("reports: master not found")

	// ErrNotMaster возвращается, когда пользователь не является мастером
	ErrNotMaster = errors.New("reports: user is not a master")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("reports: invalid period")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reports: internal error")
)
