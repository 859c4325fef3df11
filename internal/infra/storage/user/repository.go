package user

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

const pgUniqueViolation = "23505"

var userColumns = []string{"u.id", "u.username", "u.first_name", "u.last_name", "u.phone"}

// Repository репозиторий пользователей и ролей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает всех пользователей с ролями, по фамилии и имени
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	query, args, err := psqlbuilder.Select(userColumns...).
		From("users u").
		OrderBy("u.last_name", "u.first_name", "u.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryUsers(ctx, "List", query, args)
}

// ListByRole возвращает пользователей, у которых есть роль role
func (r *Repository) ListByRole(ctx context.Context, role domain.RoleName) ([]*domain.User, error) {
	query, args, err := psqlbuilder.Select(userColumns...).
		From("users u").
		Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM user_roles ur JOIN roles r ON r.id = ur.role_id WHERE ur.user_id = u.id AND r.name = ?)",
			string(role),
		)).
		OrderBy("u.last_name", "u.first_name", "u.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRole - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryUsers(ctx, "ListByRole", query, args)
}

// GetByID получает пользователя с ролями по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query, args, err := psqlbuilder.Select(userColumns...).
		From("users u").
		Where(squirrel.Eq{"u.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	users, err := r.queryUsers(ctx, "GetByID", query, args)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

// GetCredentials получает пользователя и хэш пароля по логину
func (r *Repository) GetCredentials(ctx context.Context, username string) (*domain.User, string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(append(userColumns, "u.password_hash")...).
		From("users u").
		Where(squirrel.Eq{"u.username": username}).
		ToSql()
	if err != nil {
		return nil, "", fmt.Errorf("%w: GetCredentials - build select query: %v", ErrBuildQuery, err)
	}

	var (
		u    domain.User
		hash string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Phone, &hash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: GetCredentials - scan user: %v", ErrScanRow, err)
	}

	if err := r.attachRoles(ctx, []*domain.User{&u}); err != nil {
		return nil, "", err
	}

	return &u, hash, nil
}

// GetPasswordHash возвращает хэш пароля пользователя
func (r *Repository) GetPasswordHash(ctx context.Context, id int64) (string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("password_hash").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: GetPasswordHash - build select query: %v", ErrBuildQuery, err)
	}

	var hash string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: GetPasswordHash - scan: %v", ErrScanRow, err)
	}
	return hash, nil
}

// Create создает пользователя. Роли назначаются отдельно через SetRoles.
func (r *Repository) Create(ctx context.Context, u *domain.User, passwordHash string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("username", "first_name", "last_name", "phone", "password_hash").
		Values(u.Username, u.FirstName, u.LastName, u.Phone, passwordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&u.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return u, nil
}

// UpdateProfile обновляет имя, фамилию и телефон
func (r *Repository) UpdateProfile(ctx context.Context, u *domain.User) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("phone", u.Phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "UpdateProfile", query, args)
}

// UpdatePassword сохраняет новый хэш пароля
func (r *Repository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePassword - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "UpdatePassword", query, args)
}

// ListRoles возвращает все роли
func (r *Repository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return r.queryRoles(ctx, "ListRoles", nil)
}

// GetRolesByIDs возвращает роли с указанными ID.
// Если хотя бы одна роль не найдена, возвращает ErrRoleNotFound.
func (r *Repository) GetRolesByIDs(ctx context.Context, ids []int64) ([]domain.Role, error) {
	roles, err := r.queryRoles(ctx, "GetRolesByIDs", squirrel.Eq{"id": ids})
	if err != nil {
		return nil, err
	}
	if len(roles) != len(uniqueIDs(ids)) {
		return nil, ErrRoleNotFound
	}
	return roles, nil
}

// GetRolesByNames возвращает роли по названиям
func (r *Repository) GetRolesByNames(ctx context.Context, names []domain.RoleName) ([]domain.Role, error) {
	values := make([]string, 0, len(names))
	for _, n := range names {
		values = append(values, string(n))
	}
	roles, err := r.queryRoles(ctx, "GetRolesByNames", squirrel.Eq{"name": values})
	if err != nil {
		return nil, err
	}
	if len(roles) != len(names) {
		return nil, ErrRoleNotFound
	}
	return roles, nil
}

// SetRoles заменяет набор ролей пользователя. Вызывать внутри транзакции.
func (r *Repository) SetRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("user_roles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetRoles - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetRoles - execute delete: %v", ErrExecQuery, err)
	}

	if len(roleIDs) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("user_roles").Columns("user_id", "role_id")
	for _, id := range uniqueIDs(roleIDs) {
		insert = insert.Values(userID, id)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetRoles - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetRoles - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CountByRole количество пользователей с ролью
func (r *Repository) CountByRole(ctx context.Context, role domain.RoleName) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("user_roles ur").
		Join("roles r ON r.id = ur.role_id").
		Where(squirrel.Eq{"r.name": string(role)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByRole - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByRole - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

func (r *Repository) queryUsers(ctx context.Context, op, query string, args []interface{}) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Phone); err != nil {
			return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	if err := r.attachRoles(ctx, users); err != nil {
		return nil, err
	}

	return users, nil
}

// attachRoles загружает роли пользователей одним запросом
func (r *Repository) attachRoles(ctx context.Context, users []*domain.User) error {
	if len(users) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.User, len(users))
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		u.Roles = make([]domain.Role, 0, 1)
		byID[u.ID] = u
		ids = append(ids, u.ID)
	}

	query, args, err := psqlbuilder.Select("ur.user_id", "r.id", "r.name").
		From("user_roles ur").
		Join("roles r ON r.id = ur.role_id").
		Where("ur.user_id = ANY(?)", pq.Array(ids)).
		OrderBy("ur.user_id", "r.id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachRoles - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachRoles - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID int64
			role   domain.Role
		)
		if err := rows.Scan(&userID, &role.ID, &role.Name); err != nil {
			return fmt.Errorf("%w: attachRoles - scan role: %v", ErrScanRow, err)
		}
		if u, ok := byID[userID]; ok {
			u.Roles = append(u.Roles, role)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachRoles - iterate rows: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) queryRoles(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.Role, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "name").From("roles").OrderBy("id")
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("%w: %s - scan role: %v", ErrScanRow, op, err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return roles, nil
}

func (r *Repository) execAffecting(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
