package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("orders: order not found")

	// ErrInvalidPeriod возвращается при некорректном периоде календаря
	ErrInvalidPeriod = errors.New("orders: invalid calendar period")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders: internal error")
)
