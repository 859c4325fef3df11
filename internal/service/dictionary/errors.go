package dictionary

import "errors"

var (
	// ErrNotFound возвращается, когда запись справочника не найдена
	ErrNotFound = errors.New("dictionary: entry not found")

	// ErrNotWorkType возвращается, когда запись не является типом работ
	ErrNotWorkType = errors.New("dictionary: entry is not a work type")

	// ErrDuplicateCode возвращается, когда код уже занят
	ErrDuplicateCode = errors.New("dictionary: duplicate code")

	// ErrInUse возвращается при удалении типа работ, который используется в заказах
	ErrInUse = errors.New("dictionary: entry is in use")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("dictionary: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("dictionary: internal error")
)
