package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	dictRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/dictionary"
)

// Service справочники: марки, типы работ, запчасти, источники информации
type Service struct {
	repo      DictionaryRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(repo DictionaryRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{repo: repo, txManager: txManager, logger: logger}
}

// CarBrands возвращает марки автомобилей
func (s *Service) CarBrands(ctx context.Context) ([]domain.CarBrand, error) {
	brands, err := s.repo.ListCarBrands(ctx)
	if err != nil {
		s.logger.Error("CarBrands: repository error: %v", err)
		return nil, fmt.Errorf("%w: CarBrands - repository error: %v", ErrInternal, err)
	}
	return brands, nil
}

// ByType возвращает записи справочника с type = code
// (WORK_TYPE, INFO или код типа работ для его запчастей)
func (s *Service) ByType(ctx context.Context, code string) ([]domain.DictionaryEntry, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty type code", ErrInvalidInput)
	}

	entries, err := s.repo.ListByType(ctx, code)
	if err != nil {
		s.logger.Error("ByType: repository error for type=%s: %v", code, err)
		return nil, fmt.Errorf("%w: ByType - repository error: %v", ErrInternal, err)
	}
	return entries, nil
}

// All возвращает плоский список всех записей справочника
func (s *Service) All(ctx context.Context) ([]domain.DictionaryEntry, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("All: repository error: %v", err)
		return nil, fmt.Errorf("%w: All - repository error: %v", ErrInternal, err)
	}
	return entries, nil
}

// CreateWorkType добавляет тип работ без запчастей
func (s *Service) CreateWorkType(ctx context.Context, name, code string) (*domain.WorkTypeWithParts, error) {
	name, code = strings.TrimSpace(name), normalizeCode(code)
	s.logger.Info("CreateWorkType: code=%s, name=%s", code, name)

	if err := validateWorkType(name, code); err != nil {
		s.logger.Warn("CreateWorkType: validation failed: %v", err)
		return nil, err
	}

	entry := &domain.DictionaryEntry{Type: domain.DictionaryTypeWorkType, Code: code, Name: name, Active: true}
	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, s.mapRepoError("CreateWorkType", err)
	}

	wt, _ := created.ToWorkType()
	return &domain.WorkTypeWithParts{WorkType: wt, Parts: []domain.Part{}}, nil
}

// UpdateWorkType сохраняет тип работ вместе с запчастями.
// Новые запчасти (ID = 0) создаются, существующие обновляются,
// отсутствующие в запросе деактивируются. Смена кода переносит запчасти на новый код.
func (s *Service) UpdateWorkType(ctx context.Context, req *domain.WorkTypeWithParts) (*domain.WorkTypeWithParts, error) {
	name, code := strings.TrimSpace(req.Name), normalizeCode(req.Code)
	s.logger.Info("UpdateWorkType: id=%d, code=%s, parts=%d", req.ID, code, len(req.Parts))

	if err := validateWorkType(name, code); err != nil {
		s.logger.Warn("UpdateWorkType: validation failed: %v", err)
		return nil, err
	}
	for _, p := range req.Parts {
		if strings.TrimSpace(p.Name) == "" || normalizeCode(p.Code) == "" {
			return nil, fmt.Errorf("%w: part name and code are required", ErrInvalidInput)
		}
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.loadWorkType(txCtx, req.ID)
		if err != nil {
			return err
		}

		if current.Code != code {
			if err := s.repo.RenameType(txCtx, current.Code, code); err != nil {
				return err
			}
		}

		current.Code, current.Name, current.Description, current.Active = code, name, req.Description, req.Active
		if err := s.repo.Update(txCtx, current); err != nil {
			return err
		}

		existing, err := s.repo.ListByType(txCtx, code)
		if err != nil {
			return err
		}
		return s.syncParts(txCtx, code, existing, req.Parts)
	})
	if err != nil {
		return nil, s.mapRepoError("UpdateWorkType", err)
	}

	return s.workTypeTree(ctx, req.ID)
}

// DeleteWorkType удаляет тип работ и его запчасти
func (s *Service) DeleteWorkType(ctx context.Context, id int64) error {
	s.logger.Info("DeleteWorkType: id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.loadWorkType(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteByType(txCtx, current.Code); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return s.mapRepoError("DeleteWorkType", err)
	}
	return nil
}

// Tree строит иерархию: типы работ с их запчастями
func Tree(entries []domain.DictionaryEntry) []domain.WorkTypeWithParts {
	partsByCode := make(map[string][]domain.Part)
	for i := range entries {
		if p, err := entries[i].ToPart(); err == nil {
			partsByCode[p.WorkTypeCode] = append(partsByCode[p.WorkTypeCode], p)
		}
	}

	tree := make([]domain.WorkTypeWithParts, 0)
	for i := range entries {
		wt, err := entries[i].ToWorkType()
		if err != nil {
			continue
		}
		parts := partsByCode[wt.Code]
		if parts == nil {
			parts = []domain.Part{}
		}
		tree = append(tree, domain.WorkTypeWithParts{
			WorkType:    wt,
			Description: entries[i].Description,
			Parts:       parts,
		})
	}
	return tree
}

func (s *Service) syncParts(ctx context.Context, code string, existing []domain.DictionaryEntry, incoming []domain.Part) error {
	byID := make(map[int64]domain.DictionaryEntry, len(existing))
	for _, e := range existing {
		byID[e.ID] = e
	}

	kept := make(map[int64]struct{}, len(incoming))
	for _, p := range incoming {
		entry := domain.DictionaryEntry{
			ID:     p.ID,
			Type:   code,
			Code:   normalizeCode(p.Code),
			Name:   strings.TrimSpace(p.Name),
			Active: p.Active,
		}

		if p.ID == 0 {
			if _, err := s.repo.Create(ctx, &entry); err != nil {
				return err
			}
			continue
		}

		current, ok := byID[p.ID]
		if !ok {
			return fmt.Errorf("%w: part id=%d does not belong to %s", ErrInvalidInput, p.ID, code)
		}
		entry.Description = current.Description
		if err := s.repo.Update(ctx, &entry); err != nil {
			return err
		}
		kept[p.ID] = struct{}{}
	}

	for _, e := range existing {
		if _, ok := kept[e.ID]; ok || !e.Active {
			continue
		}
		e.Active = false
		if err := s.repo.Update(ctx, &e); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) loadWorkType(ctx context.Context, id int64) (*domain.DictionaryEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Kind() != domain.KindWorkType {
		return nil, ErrNotWorkType
	}
	return entry, nil
}

func (s *Service) workTypeTree(ctx context.Context, id int64) (*domain.WorkTypeWithParts, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("workTypeTree", err)
	}
	parts, err := s.repo.ListByType(ctx, entry.Code)
	if err != nil {
		return nil, s.mapRepoError("workTypeTree", err)
	}

	tree := Tree(append([]domain.DictionaryEntry{*entry}, parts...))
	if len(tree) == 0 {
		return nil, ErrNotWorkType
	}
	return &tree[0], nil
}

func (s *Service) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, ErrNotWorkType), errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: %v", op, err)
		return err
	case errors.Is(err, dictRepo.ErrEntryNotFound):
		s.logger.Warn("%s: entry not found", op)
		return ErrNotFound
	case errors.Is(err, dictRepo.ErrDuplicateCode):
		s.logger.Warn("%s: duplicate code", op)
		return ErrDuplicateCode
	case errors.Is(err, dictRepo.ErrEntryInUse):
		s.logger.Warn("%s: entry in use", op)
		return ErrInUse
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func validateWorkType(name, code string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case code == "":
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	case domain.IsReservedDictionaryType(code):
		return fmt.Errorf("%w: code %s is reserved", ErrInvalidInput, code)
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
