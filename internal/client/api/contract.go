package api

// TokenSource источник bearer-токена для запросов (сессия клиента)
type TokenSource interface {
	Token() string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
