package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"o.id",
	"o.client_name",
	"o.client_phone",
	"o.car_brand_id",
	"cb.name",
	"o.vin",
	"o.info_source_id",
	"src.code",
	"src.name",
	"src.active",
	"o.execution_date",
	"o.order_cost",
	"o.execution_time_by_master",
	"o.status",
	"o.created_at",
	"o.updated_at",
}

// Repository репозиторий заказов.
// Заказ хранится в orders, позиции в order_works, запчасти в order_work_parts,
// назначения мастеров в work_assignments.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заказ вместе с позициями.
// Вызывать внутри транзакции: заказ и позиции сохраняются атомарно.
func (r *Repository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"client_name",
			"client_phone",
			"car_brand_id",
			"vin",
			"info_source_id",
			"execution_date",
			"order_cost",
			"execution_time_by_master",
			"status",
		).
		Values(
			o.ClientName,
			o.ClientPhone,
			brandID(o),
			o.VIN,
			infoSourceID(o),
			o.ExecutionDate,
			o.OrderCost,
			o.ExecutionTimeByMaster,
			o.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertWorks(ctx, executor, o); err != nil {
		return nil, err
	}

	return o, nil
}

// Update перезаписывает заказ целиком, кроме статуса.
// Позиции удаляются и создаются заново. Вызывать внутри транзакции.
func (r *Repository) Update(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("client_name", o.ClientName).
		Set("client_phone", o.ClientPhone).
		Set("car_brand_id", brandID(o)).
		Set("vin", o.VIN).
		Set("info_source_id", infoSourceID(o)).
		Set("execution_date", o.ExecutionDate).
		Set("order_cost", o.OrderCost).
		Set("execution_time_by_master", o.ExecutionTimeByMaster).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": o.ID}).
		Suffix("RETURNING status, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("order_works").
		Where(squirrel.Eq{"order_id": o.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build delete works query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Update - delete works: %v", ErrExecQuery, err)
	}

	if err := r.insertWorks(ctx, executor, o); err != nil {
		return nil, err
	}

	return o, nil
}

// GetByID получает заказ со всеми позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query, args, err := selectOrders().
		Where(squirrel.Eq{"o.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	orders, err := r.queryOrders(ctx, "GetByID", query, args)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}

	return orders[0], nil
}

// ListByPeriod возвращает заказы с executionDate в [Start, End),
// опционально только с назначенным мастером и в указанном статусе
func (r *Repository) ListByPeriod(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Order, error) {
	builder := selectOrders().
		Where(squirrel.GtOrEq{"o.execution_date": filter.Start}).
		Where(squirrel.Lt{"o.execution_date": filter.End}).
		OrderBy("o.execution_date", "o.id")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"o.status": *filter.Status})
	}
	if filter.MasterID != nil {
		builder = builder.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM order_works w JOIN work_assignments a ON a.work_id = w.id WHERE w.order_id = o.id AND a.master_id = ?)",
			*filter.MasterID,
		))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryOrders(ctx, "ListByPeriod", query, args)
}

// GetStatusForUpdate возвращает статус заказа, блокируя строку до конца транзакции
func (r *Repository) GetStatusForUpdate(ctx context.Context, id int64) (domain.OrderStatus, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status").
		From("orders").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: GetStatusForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var status domain.OrderStatus
	err = executor.QueryRowContext(ctx, query, args...).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: GetStatusForUpdate - scan: %v", ErrScanRow, err)
	}

	return status, nil
}

// UpdateStatus меняет статус заказа и запоминает, кто его изменил
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, changedBy *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", status).
		Set("status_changed_by", changedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// IsAssigned проверяет, назначен ли мастер хотя бы на одну работу заказа
func (r *Repository) IsAssigned(ctx context.Context, orderID, masterID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("order_works w").
		Join("work_assignments a ON a.work_id = w.id").
		Where(squirrel.Eq{"w.order_id": orderID, "a.master_id": masterID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsAssigned - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsAssigned - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

func selectOrders() squirrel.SelectBuilder {
	return psqlbuilder.Select(orderColumns...).
		From("orders o").
		LeftJoin("car_brands cb ON cb.id = o.car_brand_id").
		LeftJoin("dictionary_entries src ON src.id = o.info_source_id")
}

func (r *Repository) queryOrders(ctx context.Context, op, query string, args []interface{}) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan order: %v", ErrScanRow, op, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}
	rows.Close()

	if err := r.attachWorks(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	var (
		o            domain.Order
		brandID      sql.NullInt64
		brandName    sql.NullString
		sourceID     sql.NullInt64
		sourceCode   sql.NullString
		sourceName   sql.NullString
		sourceActive sql.NullBool
		execTime     sql.NullString
	)

	err := rows.Scan(
		&o.ID,
		&o.ClientName,
		&o.ClientPhone,
		&brandID,
		&brandName,
		&o.VIN,
		&sourceID,
		&sourceCode,
		&sourceName,
		&sourceActive,
		&o.ExecutionDate,
		&o.OrderCost,
		&execTime,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if brandID.Valid {
		o.CarBrand = &domain.CarBrand{ID: brandID.Int64, Name: brandName.String}
	}
	if sourceID.Valid {
		o.InfoSource = &domain.InfoSource{
			ID:     sourceID.Int64,
			Code:   sourceCode.String,
			Name:   sourceName.String,
			Active: sourceActive.Bool,
		}
	}
	if execTime.Valid {
		v := execTime.String
		o.ExecutionTimeByMaster = &v
	}
	o.Works = make([]domain.Work, 0)

	return &o, nil
}

func brandID(o *domain.Order) *int64 {
	if o.CarBrand == nil {
		return nil
	}
	return &o.CarBrand.ID
}

func infoSourceID(o *domain.Order) *int64 {
	if o.InfoSource == nil {
		return nil
	}
	return &o.InfoSource.ID
}
