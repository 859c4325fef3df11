// Package session хранит текущего пользователя клиента и его токен
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// Session текущий пользователь клиента. Безопасна для конкурентного использования.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *domain.User

	storage   Storage
	validator TokenValidator
	log       Logger
}

func NewSession(storage Storage, validator TokenValidator, log Logger) *Session {
	return &Session{
		storage:   storage,
		validator: validator,
		log:       log,
	}
}

// Login запоминает токен и пользователя в памяти и в хранилище
func (s *Session) Login(token string, user *domain.User) error {
	if token == "" || user == nil {
		return ErrInvalidLogin
	}

	if err := s.storage.Save(&State{Token: token, User: *models.FromUser(user)}); err != nil {
		return fmt.Errorf("Login: %w", err)
	}

	copied := *user
	s.mu.Lock()
	s.token = token
	s.user = &copied
	s.mu.Unlock()

	s.log.Info("Login: user=%s", user.Username)
	return nil
}

// Logout очищает сессию в памяти и в хранилище
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		s.log.Warn("Logout: failed to clear storage: %v", err)
	}
}

// Restore восстанавливает сессию из хранилища при запуске.
// Токен проверяется на сервере; при любой ошибке сессия сбрасывается как при Logout.
// Возвращает true, если пользователь восстановлен.
func (s *Session) Restore(ctx context.Context) bool {
	state, err := s.storage.Load()
	if err != nil {
		if !errors.Is(err, ErrNoState) {
			s.log.Warn("Restore: failed to load state: %v", err)
			s.Logout()
		}
		return false
	}

	user, err := s.validator.ValidateToken(ctx, state.Token)
	if err != nil {
		s.log.Info("Restore: stored token rejected: %v", err)
		s.Logout()
		return false
	}

	s.mu.Lock()
	s.token = state.Token
	s.user = user
	s.mu.Unlock()

	s.log.Info("Restore: user=%s", user.Username)
	return true
}

// IsAuthenticated true, если текущий пользователь установлен
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsMasterOnly true, если у текущего пользователя ровно одна роль MASTER
func (s *Session) IsMasterOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsMasterOnly()
}

// Token токен для заголовка Authorization (пустой, если сессии нет)
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User копия текущего пользователя или nil
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}
