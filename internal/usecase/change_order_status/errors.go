package change_order_status

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("change_order_status: order not found")

	// ErrInvalidStatus возвращается при неизвестном коде статуса
	ErrInvalidStatus = errors.New("change_order_status: invalid status")

	// ErrTransitionNotAllowed возвращается, когда переход из текущего статуса запрещен
	ErrTransitionNotAllowed = errors.New("change_order_status: transition not allowed")

	// ErrMasterNotFound возвращается, когда указанный мастер не найден
	ErrMasterNotFound = errors.New("change_order_status: master not found")

	// ErrNotMaster возвращается, когда указанный пользователь не является мастером
	ErrNotMaster = errors.New("change_order_status: user is not a master")

	// ErrForbidden возвращается, когда мастер не назначен ни на одну работу заказа
	ErrForbidden = errors.New("change_order_status: master is not assigned to order")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_order_status: internal error")
)
