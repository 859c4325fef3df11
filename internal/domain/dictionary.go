package domain

import "strings"

// DictionaryKind вид записи справочника
type DictionaryKind int

const (
	KindUnknown DictionaryKind = iota
	KindWorkType
	KindInfoSource
	KindPart
)

// Зарезервированные значения поля type в справочнике.
// Запчасти (материалы) хранятся с type = код родительского типа работ.
const (
	DictionaryTypeWorkType = "WORK_TYPE"
	DictionaryTypeInfo     = "INFO"
)

// DictionaryEntry запись плоского справочника в том виде, в каком она хранится
type DictionaryEntry struct {
	ID          int64
	Type        string
	Code        string
	Name        string
	Description string
	Active      bool
}

// Kind определяет вид записи по полю Type
func (e *DictionaryEntry) Kind() DictionaryKind {
	switch strings.TrimSpace(e.Type) {
	case "":
		return KindUnknown
	case DictionaryTypeWorkType:
		return KindWorkType
	case DictionaryTypeInfo:
		return KindInfoSource
	default:
		return KindPart
	}
}

// WorkType тип работ
type WorkType struct {
	ID     int64
	Code   string
	Name   string
	Active bool
}

// Part запчасть/материал, относящийся к типу работ с кодом WorkTypeCode
type Part struct {
	ID           int64
	WorkTypeCode string
	Code         string
	Name         string
	Active       bool
}

// InfoSource источник, из которого клиент узнал о сервисе
type InfoSource struct {
	ID     int64
	Code   string
	Name   string
	Active bool
}

// CarBrand марка автомобиля
type CarBrand struct {
	ID   int64
	Name string
}

// WorkTypeWithParts тип работ вместе с его запчастями (иерархическое представление справочника)
type WorkTypeWithParts struct {
	WorkType
	Description string
	Parts       []Part
}

// ToWorkType конвертирует запись справочника в тип работ
func (e *DictionaryEntry) ToWorkType() (WorkType, error) {
	if e.Kind() != KindWorkType {
		return WorkType{}, ErrWrongDictionaryKind
	}
	return WorkType{ID: e.ID, Code: e.Code, Name: e.Name, Active: e.Active}, nil
}

// ToPart конвертирует запись справочника в запчасть
func (e *DictionaryEntry) ToPart() (Part, error) {
	if e.Kind() != KindPart {
		return Part{}, ErrWrongDictionaryKind
	}
	return Part{ID: e.ID, WorkTypeCode: e.Type, Code: e.Code, Name: e.Name, Active: e.Active}, nil
}

// ToInfoSource конвертирует запись справочника в источник информации
func (e *DictionaryEntry) ToInfoSource() (InfoSource, error) {
	if e.Kind() != KindInfoSource {
		return InfoSource{}, ErrWrongDictionaryKind
	}
	return InfoSource{ID: e.ID, Code: e.Code, Name: e.Name, Active: e.Active}, nil
}

// IsReservedDictionaryType true для type, которые не могут быть кодом типа работ
func IsReservedDictionaryType(code string) bool {
	return code == DictionaryTypeWorkType || code == DictionaryTypeInfo
}
