package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	userRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/user"
)

// Config параметры выпуска токенов
type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Claims содержимое JWT: идентификатор и роли пользователя
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Principal аутентифицированный пользователь запроса
type Principal struct {
	UserID   int64
	Username string
	Roles    []domain.RoleName
}

// HasAnyRole проверяет наличие хотя бы одной из ролей
func (p *Principal) HasAnyRole(names ...domain.RoleName) bool {
	for _, have := range p.Roles {
		for _, want := range names {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsMasterOnly набор ролей ровно {MASTER}
func (p *Principal) IsMasterOnly() bool {
	u := domain.User{Roles: make([]domain.Role, 0, len(p.Roles))}
	for _, r := range p.Roles {
		u.Roles = append(u.Roles, domain.Role{Name: r})
	}
	return u.IsMasterOnly()
}

// LoginResult результат входа
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Service аутентификация: вход по паролю и проверка токенов
type Service struct {
	users        UserRepository
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(users UserRepository, cfg Config, logger Logger) *Service {
	return &Service{
		users:        users,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Login проверяет логин и пароль и выпускает токен
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	s.logger.Info("Login: username=%s", username)

	user, hash, err := s.users.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := CheckPassword(hash, password); err != nil {
		s.logger.Warn("Login: wrong password for username=%s", username)
		return nil, err
	}

	token, expiresAt, err := s.issue(user)
	if err != nil {
		s.logger.Error("Login: failed to sign token for user=%d: %v", user.ID, err)
		return nil, err
	}

	s.logger.Info("Login: user=%d logged in", user.ID)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ValidateToken проверяет токен и возвращает актуальные данные пользователя
func (s *Service) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	principal, err := s.ParseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("ValidateToken: user=%d no longer exists", principal.UserID)
			return nil, ErrInvalidToken
		}
		s.logger.Error("ValidateToken: repository error for user=%d: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: ValidateToken - repository error: %v", ErrInternal, err)
	}

	return user, nil
}

// ParseToken проверяет подпись, срок и издателя токена без обращения к БД
func (s *Service) ParseToken(token string) (*Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.timeProvider.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	roles := make([]domain.RoleName, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		roles = append(roles, domain.RoleName(r))
	}

	return &Principal{UserID: userID, Username: claims.Username, Roles: roles}, nil
}

func (s *Service) issue(user *domain.User) (string, time.Time, error) {
	now := s.timeProvider.Now()
	expiresAt := now.Add(s.cfg.TTL)

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r.Name))
	}

	claims := Claims{
		Username: user.Username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}
	return signed, expiresAt, nil
}
