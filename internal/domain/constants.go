package domain

import (
	"errors"
	"time"
)

// DefaultOrderDuration длительность слота заказа в календаре
const DefaultOrderDuration = time.Hour

// Ограничения бизнес-валидации
const (
	MinSalaryPercent    = 0
	MaxSalaryPercent    = 100
	MinPasswordLength   = 6
	MaxClientNameLength = 255
	MaxCommentLength    = 1000
)

// Форматы даты и времени API
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = time.RFC3339
)

// StatusFilterAll значение фильтра статуса "все статусы"
const StatusFilterAll = "all"

var (
	// ErrInvalidStatus неизвестный статус заказа
	ErrInvalidStatus = errors.New("domain: invalid order status")

	// ErrWrongDictionaryKind запись справочника другого вида
	ErrWrongDictionaryKind = errors.New("domain: wrong dictionary entry kind")
)
