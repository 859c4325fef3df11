package reports

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// ReportRepository источник плоских записей заработка
type ReportRepository interface {
	ListEarnings(ctx context.Context, period domain.DateRange, masterID *int64) ([]domain.EarningRecord, error)
}

// UserRepository нужен для шапки детального отчета мастера без заработка за период
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
