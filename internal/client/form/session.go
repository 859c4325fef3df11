// Package form сессия редактирования заказа: загрузка справочников,
// ленивые запчасти, проверка и отправка черновика
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

// Loading флаги запросов в полете
type Loading struct {
	Dictionaries bool
	Order        bool
}

// Any true, если хотя бы одна группа запросов еще не завершена
func (l Loading) Any() bool {
	return l.Dictionaries || l.Order
}

// Session одна открытая форма заказа (создание или редактирование)
type Session struct {
	gw  Gateway
	log Logger

	ctx    context.Context
	cancel context.CancelFunc
	parts  *partsCache

	mu         sync.Mutex
	draft      orderform.Draft
	dicts      orderform.Dictionaries
	loading    Loading
	loadErr    error
	submitting bool
	closed     bool
}

// New создает форму нового заказа. Справочники загружаются вызовом Load.
func New(parent context.Context, gw Gateway, log Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		gw:     gw,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
		draft:  orderform.NewDraft(),
	}
	s.parts = newPartsCache(s.fetchParts, log)
	return s
}

// Open создает форму и загружает ее. orderID > 0 - режим редактирования.
func Open(parent context.Context, gw Gateway, orderID int64, log Logger) (*Session, error) {
	s := New(parent, gw, log)
	if err := s.Load(orderID); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Load загружает справочники, затем (в режиме редактирования) заказ,
// затем запчасти для типов работ заказа
func (s *Session) Load(orderID int64) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.loading = Loading{Dictionaries: true, Order: orderID > 0}
	s.loadErr = nil
	s.mu.Unlock()

	dicts, err := s.loadDictionaries(s.ctx)
	if err != nil {
		return s.failLoading("dictionaries", err)
	}
	if err := s.apply(func() {
		s.dicts = dicts
		s.dicts.PartsByCode = s.parts.Snapshot()
		s.loading.Dictionaries = false
	}); err != nil {
		return err
	}

	if orderID <= 0 {
		return nil
	}

	order, err := s.gw.GetOrder(s.ctx, orderID)
	if err != nil {
		return s.failLoading(fmt.Sprintf("order id=%d", orderID), err)
	}

	draft := orderform.FromOrder(order)
	if err := s.prefetchParts(draft.WorkTypeCodes()); err != nil {
		return s.failLoading("parts", err)
	}

	return s.apply(func() {
		s.draft = draft
		s.dicts.PartsByCode = s.parts.Snapshot()
		s.loading.Order = false
	})
}

func (s *Session) loadDictionaries(ctx context.Context) (orderform.Dictionaries, error) {
	var dicts orderform.Dictionaries
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		brands, err := s.gw.CarBrands(gctx)
		if err != nil {
			return fmt.Errorf("car brands: %w", err)
		}
		dicts.CarBrands = brands
		return nil
	})

	g.Go(func() error {
		entries, err := s.gw.DictionaryByType(gctx, domain.DictionaryTypeWorkType)
		if err != nil {
			return fmt.Errorf("work types: %w", err)
		}
		workTypes := make([]domain.WorkType, 0, len(entries))
		for i := range entries {
			if wt, err := entries[i].ToWorkType(); err == nil {
				workTypes = append(workTypes, wt)
			}
		}
		dicts.WorkTypes = workTypes
		return nil
	})

	g.Go(func() error {
		entries, err := s.gw.DictionaryByType(gctx, domain.DictionaryTypeInfo)
		if err != nil {
			return fmt.Errorf("info sources: %w", err)
		}
		sources := make([]domain.InfoSource, 0, len(entries))
		for i := range entries {
			if src, err := entries[i].ToInfoSource(); err == nil {
				sources = append(sources, src)
			}
		}
		dicts.InfoSources = sources
		return nil
	})

	g.Go(func() error {
		users, err := s.gw.UsersByRole(gctx, domain.RoleMaster)
		if err != nil {
			return fmt.Errorf("masters: %w", err)
		}
		masters := make([]domain.User, 0, len(users))
		for _, u := range users {
			masters = append(masters, *u)
		}
		dicts.Masters = masters
		return nil
	})

	if err := g.Wait(); err != nil {
		return orderform.Dictionaries{}, err
	}
	return dicts, nil
}

func (s *Session) prefetchParts(codes []string) error {
	g, gctx := errgroup.WithContext(s.ctx)
	for _, code := range codes {
		code := code
		g.Go(func() error {
			_, err := s.parts.Get(gctx, code)
			return err
		})
	}
	return g.Wait()
}

func (s *Session) fetchParts(ctx context.Context, code string) ([]domain.Part, error) {
	entries, err := s.gw.DictionaryByType(ctx, code)
	if err != nil {
		return nil, err
	}
	return partsFromEntries(entries), nil
}

// apply применяет результат запроса, если форма еще открыта
func (s *Session) apply(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	fn()
	return nil
}

// failLoading снимает флаги загрузки и запоминает ошибку: отправка
// формы без справочников или заказа запрещена до успешного Load
func (s *Session) failLoading(what string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = Loading{}
	if s.closed || (errors.Is(err, context.Canceled) && s.ctx.Err() != nil) {
		s.loadErr = ErrClosed
		return ErrClosed
	}

	s.log.Error("Load: %s: %v", what, err)
	s.loadErr = fmt.Errorf("%w: Load - %s: %v", ErrLoadFailed, what, err)
	return s.loadErr
}

// Loading текущие флаги загрузки
func (s *Session) Loading() Loading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Draft копия текущего черновика
func (s *Session) Draft() orderform.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDraft(s.draft)
}

// Dictionaries загруженные справочники (запчасти - только уже запрошенные коды)
func (s *Session) Dictionaries() orderform.Dictionaries {
	s.mu.Lock()
	defer s.mu.Unlock()

	dicts := s.dicts
	if s.dicts.PartsByCode != nil {
		dicts.PartsByCode = make(map[string][]domain.Part, len(s.dicts.PartsByCode))
		for code, parts := range s.dicts.PartsByCode {
			dicts.PartsByCode[code] = parts
		}
	}
	return dicts
}

// Update изменяет черновик. fn вызывается под блокировкой и не должна делать запросов.
func (s *Session) Update(fn func(d *orderform.Draft)) error {
	return s.apply(func() { fn(&s.draft) })
}

// AddWork добавляет пустую работу и возвращает ее индекс
func (s *Session) AddWork() (int, error) {
	idx := -1
	err := s.apply(func() {
		s.draft.Works = append(s.draft.Works, orderform.WorkDraft{})
		idx = len(s.draft.Works) - 1
	})
	return idx, err
}

// RemoveWork удаляет работу по индексу
func (s *Session) RemoveWork(i int) error {
	var err error
	applyErr := s.apply(func() {
		if i < 0 || i >= len(s.draft.Works) {
			err = ErrWorkIndex
			return
		}
		s.draft.Works = append(s.draft.Works[:i], s.draft.Works[i+1:]...)
	})
	if applyErr != nil {
		return applyErr
	}
	return err
}

// SelectWorkType выбирает тип работ и возвращает допустимые для него запчасти.
// При смене типа выбранные запчасти сбрасываются.
func (s *Session) SelectWorkType(i int, wt domain.WorkType) ([]domain.Part, error) {
	parts, err := s.parts.Get(s.ctx, wt.Code)
	if err != nil {
		if s.ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrClosed, err)
		}
		return nil, fmt.Errorf("SelectWorkType - parts for code=%s: %w", wt.Code, err)
	}

	var idxErr error
	applyErr := s.apply(func() {
		if i < 0 || i >= len(s.draft.Works) {
			idxErr = ErrWorkIndex
			return
		}
		work := &s.draft.Works[i]
		if prev, ok := work.WorkType.Get(); !ok || prev.Code != wt.Code {
			work.Parts = nil
		}
		work.WorkType = domain.Selected(wt)
		if s.dicts.PartsByCode == nil {
			s.dicts.PartsByCode = map[string][]domain.Part{}
		}
		s.dicts.PartsByCode[wt.Code] = parts
	})
	if applyErr != nil {
		return nil, applyErr
	}
	if idxErr != nil {
		return nil, idxErr
	}
	return parts, nil
}

// Validate проверяет черновик против загруженных справочников
func (s *Session) Validate() orderform.Errors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return orderform.Validate(s.draft, s.dicts)
}

// Submit проверяет и отправляет черновик: POST для нового заказа, PUT для сохраненного.
// Невалидный черновик возвращается как orderform.Errors без запроса.
// При ошибке сервера черновик не меняется и может быть отправлен повторно.
func (s *Session) Submit() (*domain.Order, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.loading.Any() || s.submitting {
		s.mu.Unlock()
		return nil, ErrLoading
	}
	if s.loadErr != nil {
		err := s.loadErr
		s.mu.Unlock()
		return nil, err
	}
	if errs := orderform.Validate(s.draft, s.dicts); !errs.Valid() {
		s.mu.Unlock()
		return nil, errs
	}
	draft := cloneDraft(s.draft)
	s.submitting = true
	s.mu.Unlock()

	var (
		saved *domain.Order
		err   error
	)
	if draft.ID > 0 {
		saved, err = s.gw.UpdateOrder(s.ctx, draft.ID, draft)
	} else {
		saved, err = s.gw.CreateOrder(s.ctx, draft)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if s.closed {
		return nil, ErrClosed
	}
	if err != nil {
		s.log.Warn("Submit: order id=%d: %v", draft.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	s.draft = orderform.FromOrder(saved)
	s.log.Info("Submit: order saved id=%d", saved.ID)
	return saved, nil
}

// Close отменяет запросы в полете; их результаты будут отброшены
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

// cloneDraft копия черновика, не разделяющая срезы с оригиналом (nil остается nil)
func cloneDraft(d orderform.Draft) orderform.Draft {
	if d.Works == nil {
		return d
	}
	works := make([]orderform.WorkDraft, len(d.Works))
	for i, w := range d.Works {
		if w.Parts != nil {
			w.Parts = append(make([]domain.Part, 0, len(w.Parts)), w.Parts...)
		}
		if w.Assignments != nil {
			w.Assignments = append(make([]orderform.AssignmentDraft, 0, len(w.Assignments)), w.Assignments...)
		}
		works[i] = w
	}
	d.Works = works
	return d
}
