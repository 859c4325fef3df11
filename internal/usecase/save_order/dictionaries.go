package save_order

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

// loadDictionaries параллельно загружает справочники, по которым проверяется форма.
// Неактивные записи тоже загружаются: на них могут ссылаться существующие заказы.
func (uc *UseCase) loadDictionaries(ctx context.Context, workTypeCodes []string) (orderform.Dictionaries, error) {
	var (
		dicts       orderform.Dictionaries
		workTypes   []domain.DictionaryEntry
		infoSources []domain.DictionaryEntry
		masters     []*domain.User
		parts       = make([][]domain.DictionaryEntry, len(workTypeCodes))
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		dicts.CarBrands, err = uc.dictRepo.ListCarBrands(gCtx)
		return err
	})
	g.Go(func() (err error) {
		workTypes, err = uc.dictRepo.ListByType(gCtx, domain.DictionaryTypeWorkType)
		return err
	})
	g.Go(func() (err error) {
		infoSources, err = uc.dictRepo.ListByType(gCtx, domain.DictionaryTypeInfo)
		return err
	})
	g.Go(func() (err error) {
		masters, err = uc.userRepo.ListByRole(gCtx, domain.RoleMaster)
		return err
	})
	for i, code := range workTypeCodes {
		g.Go(func() (err error) {
			parts[i], err = uc.dictRepo.ListByType(gCtx, code)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return orderform.Dictionaries{}, err
	}

	dicts.WorkTypes = make([]domain.WorkType, 0, len(workTypes))
	for i := range workTypes {
		if wt, err := workTypes[i].ToWorkType(); err == nil {
			dicts.WorkTypes = append(dicts.WorkTypes, wt)
		}
	}

	dicts.InfoSources = make([]domain.InfoSource, 0, len(infoSources))
	for i := range infoSources {
		if src, err := infoSources[i].ToInfoSource(); err == nil {
			dicts.InfoSources = append(dicts.InfoSources, src)
		}
	}

	dicts.Masters = make([]domain.User, 0, len(masters))
	for _, m := range masters {
		dicts.Masters = append(dicts.Masters, *m)
	}

	dicts.PartsByCode = make(map[string][]domain.Part, len(workTypeCodes))
	for i, code := range workTypeCodes {
		list := make([]domain.Part, 0, len(parts[i]))
		for j := range parts[i] {
			if p, err := parts[i][j].ToPart(); err == nil {
				list = append(list, p)
			}
		}
		dicts.PartsByCode[code] = list
	}

	return dicts, nil
}
