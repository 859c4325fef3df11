package delete_work_type

import "context"

type DictionaryService interface {
	DeleteWorkType(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
