package reports

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	userRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-DetailingService/internal/pivot"
)

// Service отчеты по заработку мастеров
type Service struct {
	reportRepo   ReportRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(reportRepo ReportRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		reportRepo:   reportRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ResolvePeriod возвращает period или, если он не задан, неделю понедельник-воскресенье,
// содержащую текущий момент
func (s *Service) ResolvePeriod(period *domain.DateRange) (domain.DateRange, error) {
	if period == nil {
		return domain.WeekRange(s.timeProvider.Now()), nil
	}
	if !period.IsValid() {
		return domain.DateRange{}, ErrInvalidPeriod
	}
	return *period, nil
}

// Weekly сводный отчет по всем мастерам за период
func (s *Service) Weekly(ctx context.Context, period *domain.DateRange) ([]domain.MasterWeeklyReport, domain.DateRange, error) {
	// 1. Определяем период
	resolved, err := s.ResolvePeriod(period)
	if err != nil {
		s.logger.Warn("Weekly: invalid period")
		return nil, domain.DateRange{}, err
	}

	s.logger.Info("Weekly: start=%s, end=%s",
		resolved.Start.Format(domain.DateFormat), resolved.End.Format(domain.DateFormat))

	// 2. Загружаем записи заработка
	records, err := s.reportRepo.ListEarnings(ctx, resolved, nil)
	if err != nil {
		s.logger.Error("Weekly: repository error: %v", err)
		return nil, domain.DateRange{}, fmt.Errorf("%w: Weekly - repository error: %v", ErrInternal, err)
	}

	// 3. Сворачиваем по мастерам
	return AggregateWeekly(records), resolved, nil
}

// WeeklyXLSX сводный отчет в виде книги Excel
func (s *Service) WeeklyXLSX(ctx context.Context, period *domain.DateRange) ([]byte, error) {
	reports, resolved, err := s.Weekly(ctx, period)
	if err != nil {
		return nil, err
	}

	data, err := pivot.ExportXLSX(pivot.BuildWeekly(reports, resolved))
	if err != nil {
		s.logger.Error("WeeklyXLSX: export failed: %v", err)
		return nil, fmt.Errorf("%w: WeeklyXLSX - export: %v", ErrInternal, err)
	}
	return data, nil
}

// Detail детальный отчет одного мастера за период
func (s *Service) Detail(ctx context.Context, masterID int64, period *domain.DateRange) (*domain.MasterDetailReport, domain.DateRange, error) {
	// 1. Определяем период
	resolved, err := s.ResolvePeriod(period)
	if err != nil {
		s.logger.Warn("Detail: invalid period for master=%d", masterID)
		return nil, domain.DateRange{}, err
	}

	s.logger.Info("Detail: master=%d, start=%s, end=%s", masterID,
		resolved.Start.Format(domain.DateFormat), resolved.End.Format(domain.DateFormat))

	// 2. Параллельно загружаем мастера и его записи заработка
	var (
		master  *domain.User
		records []domain.EarningRecord
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.userRepo.GetByID(gCtx, masterID)
		if err != nil {
			return err
		}
		master = u
		return nil
	})
	g.Go(func() error {
		recs, err := s.reportRepo.ListEarnings(gCtx, resolved, &masterID)
		if err != nil {
			return err
		}
		records = recs
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Detail: master id=%d not found", masterID)
			return nil, domain.DateRange{}, ErrMasterNotFound
		}
		s.logger.Error("Detail: failed to load report for master=%d: %v", masterID, err)
		return nil, domain.DateRange{}, fmt.Errorf("%w: Detail - repository error: %v", ErrInternal, err)
	}

	// 3. Проверяем роль
	if !master.HasRole(domain.RoleMaster) {
		s.logger.Warn("Detail: user id=%d is not a master", masterID)
		return nil, domain.DateRange{}, ErrNotMaster
	}

	// 4. Сворачиваем по типам работ
	return AggregateDetail(master, records), resolved, nil
}
