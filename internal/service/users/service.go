package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	userRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-DetailingService/internal/service/auth"
)

// CreateRequest данные нового пользователя
type CreateRequest struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	RoleIDs   []int64
}

// UpdateProfileRequest изменение профиля. Phone nil - телефон не меняется.
type UpdateProfileRequest struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     *string
}

// Service администрирование пользователей и ролей
type Service struct {
	repo      UserRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(repo UserRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{repo: repo, txManager: txManager, logger: logger}
}

// List возвращает всех пользователей
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return users, nil
}

// ListByRole возвращает пользователей с ролью (например, мастеров для формы заказа)
func (s *Service) ListByRole(ctx context.Context, code string) ([]*domain.User, error) {
	role := domain.RoleName(strings.ToUpper(strings.TrimSpace(code)))
	switch role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleMaster:
	default:
		s.logger.Warn("ListByRole: unknown role=%s", code)
		return nil, ErrRoleNotFound
	}

	users, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		s.logger.Error("ListByRole: repository error for role=%s: %v", role, err)
		return nil, fmt.Errorf("%w: ListByRole - repository error: %v", ErrInternal, err)
	}
	return users, nil
}

// GetByID возвращает пользователя
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return user, nil
}

// ListRoles возвращает справочник ролей
func (s *Service) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		s.logger.Error("ListRoles: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRoles - repository error: %v", ErrInternal, err)
	}
	return roles, nil
}

// Create создает пользователя с ролями в одной транзакции
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*domain.User, error) {
	s.logger.Info("Create: username=%s, roles=%v", req.Username, req.RoleIDs)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Create: %v", err)
		return nil, fmt.Errorf("%w: Create - %v", ErrInternal, err)
	}

	user := &domain.User{
		Username:  strings.TrimSpace(req.Username),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		roles, err := s.repo.GetRolesByIDs(txCtx, req.RoleIDs)
		if err != nil {
			return err
		}
		if _, err := s.repo.Create(txCtx, user, hash); err != nil {
			return err
		}
		if err := s.repo.SetRoles(txCtx, user.ID, req.RoleIDs); err != nil {
			return err
		}
		user.Roles = roles
		return nil
	})
	if err != nil {
		return nil, s.mapRepoError("Create", 0, err)
	}

	s.logger.Info("Create: user=%d created", user.ID)
	return user, nil
}

// UpdateProfile меняет имя, фамилию и (опционально) телефон
func (s *Service) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*domain.User, error) {
	s.logger.Info("UpdateProfile: user=%d", req.ID)

	if err := validateProfile(req); err != nil {
		s.logger.Warn("UpdateProfile: validation failed: %v", err)
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, s.mapRepoError("UpdateProfile", req.ID, err)
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, s.mapRepoError("UpdateProfile", req.ID, err)
	}
	return user, nil
}

// UpdateRoles заменяет роли пользователя. Пустой набор ролей запрещен.
func (s *Service) UpdateRoles(ctx context.Context, userID int64, roleIDs []int64) (*domain.User, error) {
	s.logger.Info("UpdateRoles: user=%d, roles=%v", userID, roleIDs)

	if len(roleIDs) == 0 {
		s.logger.Warn("UpdateRoles: empty role set for user=%d", userID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, MsgUserRolesRequired)
	}

	var user *domain.User
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetRolesByIDs(txCtx, roleIDs); err != nil {
			return err
		}
		if _, err := s.repo.GetByID(txCtx, userID); err != nil {
			return err
		}
		if err := s.repo.SetRoles(txCtx, userID, roleIDs); err != nil {
			return err
		}
		var err error
		user, err = s.repo.GetByID(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, s.mapRepoError("UpdateRoles", userID, err)
	}

	return user, nil
}

// ChangePassword меняет пароль после проверки старого
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	s.logger.Info("ChangePassword: username=%s", username)

	if utf8.RuneCountInString(newPassword) < domain.MinPasswordLength {
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgPasswordTooShort)
	}

	user, hash, err := s.repo.GetCredentials(ctx, username)
	if err != nil {
		return s.mapRepoError("ChangePassword", 0, err)
	}

	if err := auth.CheckPassword(hash, oldPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("ChangePassword: wrong old password for user=%d", user.ID)
			return ErrWrongPassword
		}
		return fmt.Errorf("%w: ChangePassword - %v", ErrInternal, err)
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%w: ChangePassword - %v", ErrInternal, err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return s.mapRepoError("ChangePassword", user.ID, err)
	}

	s.logger.Info("ChangePassword: user=%d password changed", user.ID)
	return nil
}

// EnsureAdmin создает администратора, если в системе нет ни одного ADMIN.
// Пустой пароль отключает создание.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if password == "" {
		return nil
	}

	count, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - count admins: %v", ErrInternal, err)
	}
	if count > 0 {
		return nil
	}

	roles, err := s.repo.GetRolesByNames(ctx, []domain.RoleName{domain.RoleAdmin})
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - load role: %v", ErrInternal, err)
	}

	_, err = s.Create(ctx, &CreateRequest{
		Username:  username,
		Password:  password,
		FirstName: "Администратор",
		LastName:  "Системы",
		Phone:     "-",
		RoleIDs:   []int64{roles[0].ID},
	})
	if err != nil {
		return err
	}

	s.logger.Info("EnsureAdmin: bootstrap admin %s created", username)
	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, userRepo.ErrUserNotFound):
		s.logger.Warn("%s: user id=%d not found", op, id)
		return ErrUserNotFound
	case errors.Is(err, userRepo.ErrUsernameTaken):
		s.logger.Warn("%s: username taken", op)
		return ErrUsernameTaken
	case errors.Is(err, userRepo.ErrRoleNotFound):
		s.logger.Warn("%s: role not found", op)
		return ErrRoleNotFound
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
