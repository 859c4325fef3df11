package form

import "errors"

var (
	// ErrClosed форма закрыта, результат запроса отброшен
	ErrClosed = errors.New("form: session closed")

	// ErrLoading отправка невозможна, пока загружаются справочники или заказ
	ErrLoading = errors.New("form: still loading")

	// ErrLoadFailed не удалось загрузить справочники или заказ
	ErrLoadFailed = errors.New("form: load failed")

	// ErrSubmitFailed сервер отклонил заказ; черновик сохранен
	ErrSubmitFailed = errors.New("form: submit failed")

	// ErrWorkIndex нет работы с таким индексом
	ErrWorkIndex = errors.New("form: work index out of range")
)
