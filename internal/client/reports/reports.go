// Package reports загрузка отчетов по мастерам и построение сводных таблиц
package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/pivot"
)

var (
	// ErrStaffOnly сводный отчет доступен только администратору и менеджеру
	ErrStaffOnly = errors.New("reports: weekly report is staff only")

	// ErrForeignMaster мастер может смотреть только свой детальный отчет
	ErrForeignMaster = errors.New("reports: cannot view another master")
)

// Gateway REST-вызовы отчетов
type Gateway interface {
	MastersWeekly(ctx context.Context, period *domain.DateRange) ([]domain.MasterWeeklyReport, error)
	MasterDetail(ctx context.Context, masterID int64, period *domain.DateRange) (*domain.MasterDetailReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Reports отчеты от имени текущего пользователя
type Reports struct {
	gw   Gateway
	user *domain.User
	log  Logger
}

func New(gw Gateway, user *domain.User, log Logger) *Reports {
	return &Reports{gw: gw, user: user, log: log}
}

// Period неделя понедельник-воскресенье, содержащая pivotDate, включая конец
func Period(pivotDate time.Time) domain.DateRange {
	return domain.WeekRange(pivotDate)
}

// Weekly сводная таблица мастер x тип работ за неделю pivotDate
func (r *Reports) Weekly(ctx context.Context, pivotDate time.Time) (*pivot.Table, error) {
	if r.masterOnly() {
		return nil, ErrStaffOnly
	}

	period := Period(pivotDate)
	reports, err := r.gw.MastersWeekly(ctx, &period)
	if err != nil {
		r.log.Error("Weekly: week of %s: %v", pivotDate.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("Weekly: %w", err)
	}
	return pivot.BuildWeekly(reports, period), nil
}

// Detail таблица тип работ x заказ по мастеру за неделю pivotDate.
// masterID == 0 - отчет текущего пользователя.
func (r *Reports) Detail(ctx context.Context, masterID int64, pivotDate time.Time) (*pivot.Table, error) {
	if masterID == 0 && r.user != nil {
		masterID = r.user.ID
	}
	if r.masterOnly() && masterID != r.user.ID {
		return nil, ErrForeignMaster
	}

	period := Period(pivotDate)
	report, err := r.gw.MasterDetail(ctx, masterID, &period)
	if err != nil {
		r.log.Error("Detail: master id=%d, week of %s: %v", masterID, pivotDate.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("Detail: %w", err)
	}
	return pivot.BuildDetail(report, period), nil
}

// ExportXLSX сохраняет построенную таблицу в .xlsx
func ExportXLSX(t *pivot.Table) ([]byte, error) {
	data, err := pivot.ExportXLSX(t)
	if err != nil {
		return nil, fmt.Errorf("ExportXLSX: %w", err)
	}
	return data, nil
}

func (r *Reports) masterOnly() bool {
	return r.user != nil && r.user.IsMasterOnly()
}
