package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/order"
)

// Service чтение заказов и календаря
type Service struct {
	repo   OrderRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(repo OrderRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetByID возвращает заказ со всеми работами
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: failed to get order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return order, nil
}

// Calendar возвращает заказы с executionDate в [Start, End)
func (s *Service) Calendar(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Order, error) {
	if filter.Start.IsZero() || filter.End.IsZero() || !filter.End.After(filter.Start) {
		s.logger.Warn("Calendar: invalid period start=%s, end=%s",
			filter.Start.Format(domain.DateTimeFormat), filter.End.Format(domain.DateTimeFormat))
		return nil, ErrInvalidPeriod
	}

	orders, err := s.repo.ListByPeriod(ctx, filter)
	if err != nil {
		s.logger.Error("Calendar: repository error: %v", err)
		return nil, fmt.Errorf("%w: Calendar - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Calendar: found %d orders", len(orders))
	return orders, nil
}

// Events строит события календаря по заказам
func Events(orders []*domain.Order) []domain.CalendarEvent {
	events := make([]domain.CalendarEvent, 0, len(orders))
	for _, o := range orders {
		events = append(events, domain.EventFromOrder(o))
	}
	return events
}
