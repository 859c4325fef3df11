package report

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingService/pkg/psqlbuilder"
)

// Repository источник данных для отчетов по заработку мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListEarnings возвращает плоские записи заработка (мастер, тип работ, заказ)
// по заказам с executionDate в [period.Start, period.End].
// Отмененные заказы не учитываются. masterID ограничивает выборку одним мастером.
func (r *Repository) ListEarnings(ctx context.Context, period domain.DateRange, masterID *int64) ([]domain.EarningRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"u.id",
		"u.first_name",
		"u.last_name",
		"wt.id",
		"wt.name",
		"o.id",
		"o.client_name",
		"o.execution_date",
		"w.cost",
		"a.salary_percent",
	).
		From("work_assignments a").
		Join("order_works w ON w.id = a.work_id").
		Join("orders o ON o.id = w.order_id").
		Join("users u ON u.id = a.master_id").
		Join("dictionary_entries wt ON wt.id = w.work_type_id").
		Where(squirrel.GtOrEq{"o.execution_date": period.Start}).
		Where(squirrel.LtOrEq{"o.execution_date": period.End}).
		Where(squirrel.NotEq{"o.status": domain.StatusCancelled}).
		OrderBy("u.last_name", "u.first_name", "u.id", "o.execution_date", "o.id", "w.position", "a.position")

	if masterID != nil {
		builder = builder.Where(squirrel.Eq{"a.master_id": *masterID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEarnings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEarnings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.EarningRecord, 0)
	for rows.Next() {
		var (
			rec     domain.EarningRecord
			cost    float64
			percent float64
		)
		if err := rows.Scan(
			&rec.MasterID,
			&rec.MasterFirstName,
			&rec.MasterLastName,
			&rec.WorkTypeID,
			&rec.WorkTypeName,
			&rec.OrderID,
			&rec.ClientName,
			&rec.ExecutionDate,
			&cost,
			&percent,
		); err != nil {
			return nil, fmt.Errorf("%w: ListEarnings - scan record: %v", ErrScanRow, err)
		}
		rec.Earning = domain.Earning(cost, percent)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEarnings - iterate rows: %v", ErrScanRow, err)
	}

	return records, nil
}
