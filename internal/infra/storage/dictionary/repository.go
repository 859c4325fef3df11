package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var entryColumns = []string{"id", "type", "code", "name", "description", "active"}

// Repository репозиторий справочников: плоский справочник и марки автомобилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAll возвращает все записи справочника.
// Порядок: по type, затем активные первыми, затем по названию.
func (r *Repository) ListAll(ctx context.Context) ([]domain.DictionaryEntry, error) {
	query, args, err := psqlbuilder.Select(entryColumns...).
		From("dictionary_entries").
		OrderBy("type", "active DESC", "name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryEntries(ctx, "ListAll", query, args)
}

// ListByType возвращает записи с указанным type (WORK_TYPE, INFO или код типа работ)
func (r *Repository) ListByType(ctx context.Context, entryType string) ([]domain.DictionaryEntry, error) {
	query, args, err := psqlbuilder.Select(entryColumns...).
		From("dictionary_entries").
		Where(squirrel.Eq{"type": entryType}).
		OrderBy("active DESC", "name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByType - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryEntries(ctx, "ListByType", query, args)
}

// GetByID получает запись справочника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.DictionaryEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("dictionary_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.DictionaryEntry
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Type, &e.Code, &e.Name, &e.Description, &e.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	return &e, nil
}

// Create добавляет запись справочника и заполняет ее ID
func (r *Repository) Create(ctx context.Context, e *domain.DictionaryEntry) (*domain.DictionaryEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("dictionary_entries").
		Columns("type", "code", "name", "description", "active").
		Values(e.Type, e.Code, e.Name, e.Description, e.Active).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return e, nil
}

// Update обновляет запись справочника целиком (кроме ID)
func (r *Repository) Update(ctx context.Context, e *domain.DictionaryEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("dictionary_entries").
		Set("type", e.Type).
		Set("code", e.Code).
		Set("name", e.Name).
		Set("description", e.Description).
		Set("active", e.Active).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// Delete удаляет запись справочника
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("dictionary_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return ErrEntryInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

// DeleteByType удаляет все записи с указанным type (запчасти типа работ)
func (r *Repository) DeleteByType(ctx context.Context, entryType string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("dictionary_entries").
		Where(squirrel.Eq{"type": entryType}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByType - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return ErrEntryInUse
		}
		return fmt.Errorf("%w: DeleteByType - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// RenameType переносит записи с type = oldType на newType (смена кода типа работ)
func (r *Repository) RenameType(ctx context.Context, oldType, newType string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("dictionary_entries").
		Set("type", newType).
		Where(squirrel.Eq{"type": oldType}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RenameType - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RenameType - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ListCarBrands возвращает марки автомобилей, отсортированные по названию
func (r *Repository) ListCarBrands(ctx context.Context) ([]domain.CarBrand, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("car_brands").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCarBrands - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCarBrands - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	brands := make([]domain.CarBrand, 0)
	for rows.Next() {
		var b domain.CarBrand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("%w: ListCarBrands - scan brand: %v", ErrScanRow, err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCarBrands - iterate rows: %v", ErrScanRow, err)
	}

	return brands, nil
}

func (r *Repository) queryEntries(ctx context.Context, op, query string, args []interface{}) ([]domain.DictionaryEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	entries := make([]domain.DictionaryEntry, 0)
	for rows.Next() {
		var e domain.DictionaryEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Code, &e.Name, &e.Description, &e.Active); err != nil {
			return nil, fmt.Errorf("%w: %s - scan entry: %v", ErrScanRow, op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return entries, nil
}

func checkAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func isPgError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
