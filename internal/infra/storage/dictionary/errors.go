package dictionary

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись справочника не найдена
	ErrEntryNotFound = errors.New("dictionary.repository: entry not found")

	// ErrDuplicateCode возвращается при нарушении уникальности (type, code)
	ErrDuplicateCode = errors.New("dictionary.repository: duplicate code")

	// ErrEntryInUse возвращается при удалении записи, на которую ссылаются заказы
	ErrEntryInUse = errors.New("dictionary.repository: entry is in use")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dictionary.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dictionary.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("dictionary.repository: failed to scan row")
)
