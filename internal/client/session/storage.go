package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
)

// State сохраняемое состояние сессии
type State struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// FileStorage хранит сессию JSON-файлом
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load читает сессию из файла. Отсутствующий файл - ErrNoState.
func (s *FileStorage) Load() (*State, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("%w: Load - read %s: %v", ErrStorage, s.path, err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: Load - decode %s: %v", ErrStorage, s.path, err)
	}
	if state.Token == "" {
		return nil, ErrNoState
	}
	return &state, nil
}

// Save записывает сессию через временный файл, чтобы не оставить обрезанный JSON
func (s *FileStorage) Save(state *State) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: Save - encode: %v", ErrStorage, err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: Save - mkdir %s: %v", ErrStorage, dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("%w: Save - write %s: %v", ErrStorage, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: Save - rename %s: %v", ErrStorage, tmp, err)
	}
	return nil
}

// Clear удаляет файл сессии
func (s *FileStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: Clear - remove %s: %v", ErrStorage, s.path, err)
	}
	return nil
}

// MemoryStorage хранилище в памяти процесса
type MemoryStorage struct {
	mu    sync.Mutex
	state *State
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return nil, ErrNoState
	}
	state := *s.state
	return &state, nil
}

func (s *MemoryStorage) Save(state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *state
	s.state = &copied
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = nil
	return nil
}
