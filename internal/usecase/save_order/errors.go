package save_order

import "errors"

var (
	// ErrOrderNotFound возвращается, когда обновляемый заказ не найден
	ErrOrderNotFound = errors.New("save_order: order not found")

	// ErrValidation возвращается, когда форма заказа не прошла проверку.
	// Ошибки по полям доступны через errors.As в orderform.Errors.
	ErrValidation = errors.New("save_order: validation failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("save_order: internal error")
)
