package models

import "github.com/m04kA/SMC-DetailingService/internal/domain"

// CarBrand марка автомобиля
type CarBrand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// WorkType тип работ
type WorkType struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Part запчасть. Type - код родительского типа работ.
type Part struct {
	ID     int64  `json:"id"`
	Type   string `json:"type,omitempty"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// InfoSource источник информации о сервисе
type InfoSource struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// DictionaryEntry плоская запись справочника
type DictionaryEntry struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// WorkTypeWithParts тип работ вместе с запчастями
type WorkTypeWithParts struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	Description string `json:"description,omitempty"`
	Parts       []Part `json:"parts"`
}

// CreateWorkTypeRequest новый тип работ
type CreateWorkTypeRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Type string `json:"type,omitempty"`
}

func FromCarBrand(b domain.CarBrand) *CarBrand {
	return &CarBrand{ID: b.ID, Name: b.Name}
}

func (b *CarBrand) ToDomain() domain.CarBrand {
	return domain.CarBrand{ID: b.ID, Name: b.Name}
}

// FromCarBrands сериализует список марок
func FromCarBrands(brands []domain.CarBrand) []CarBrand {
	result := make([]CarBrand, 0, len(brands))
	for _, b := range brands {
		result = append(result, *FromCarBrand(b))
	}
	return result
}

func FromWorkType(wt domain.WorkType) *WorkType {
	return &WorkType{ID: wt.ID, Code: wt.Code, Name: wt.Name, Active: wt.Active}
}

func (wt *WorkType) ToDomain() domain.WorkType {
	return domain.WorkType{ID: wt.ID, Code: wt.Code, Name: wt.Name, Active: wt.Active}
}

func FromPart(p domain.Part) *Part {
	return &Part{ID: p.ID, Type: p.WorkTypeCode, Code: p.Code, Name: p.Name, Active: p.Active}
}

// ToDomain восстанавливает запчасть. workTypeCode используется, если Type не передан.
func (p *Part) ToDomain(workTypeCode string) domain.Part {
	code := p.Type
	if code == "" {
		code = workTypeCode
	}
	return domain.Part{ID: p.ID, WorkTypeCode: code, Code: p.Code, Name: p.Name, Active: p.Active}
}

func FromInfoSource(s domain.InfoSource) *InfoSource {
	return &InfoSource{ID: s.ID, Code: s.Code, Name: s.Name, Active: s.Active}
}

func (s *InfoSource) ToDomain() domain.InfoSource {
	return domain.InfoSource{ID: s.ID, Code: s.Code, Name: s.Name, Active: s.Active}
}

// FromEntries сериализует записи справочника
func FromEntries(entries []domain.DictionaryEntry) []DictionaryEntry {
	result := make([]DictionaryEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, DictionaryEntry{
			ID:          e.ID,
			Type:        e.Type,
			Code:        e.Code,
			Name:        e.Name,
			Description: e.Description,
			Active:      e.Active,
		})
	}
	return result
}

// ToDomain восстанавливает запись справочника
func (e *DictionaryEntry) ToDomain() domain.DictionaryEntry {
	return domain.DictionaryEntry{
		ID:          e.ID,
		Type:        e.Type,
		Code:        e.Code,
		Name:        e.Name,
		Description: e.Description,
		Active:      e.Active,
	}
}

// FromWorkTypeWithParts сериализует тип работ с запчастями
func FromWorkTypeWithParts(wt *domain.WorkTypeWithParts) *WorkTypeWithParts {
	result := &WorkTypeWithParts{
		ID:          wt.ID,
		Code:        wt.Code,
		Name:        wt.Name,
		Active:      wt.Active,
		Description: wt.Description,
		Parts:       make([]Part, 0, len(wt.Parts)),
	}
	for _, p := range wt.Parts {
		result.Parts = append(result.Parts, *FromPart(p))
	}
	return result
}

// ToDomain восстанавливает тип работ с запчастями
func (wt *WorkTypeWithParts) ToDomain() *domain.WorkTypeWithParts {
	result := &domain.WorkTypeWithParts{
		WorkType:    domain.WorkType{ID: wt.ID, Code: wt.Code, Name: wt.Name, Active: wt.Active},
		Description: wt.Description,
		Parts:       make([]domain.Part, 0, len(wt.Parts)),
	}
	for _, p := range wt.Parts {
		result.Parts = append(result.Parts, p.ToDomain(wt.Code))
	}
	return result
}
