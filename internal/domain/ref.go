package domain

import (
	"bytes"
	"encoding/json"
)

// Ref ссылка на выбранную сущность в форме: либо выбрано значение, либо ничего.
// Заменяет пустые строки-идентификаторы в состоянии формы.
type Ref[T any] struct {
	value    T
	selected bool
}

// Selected ссылка на выбранное значение
func Selected[T any](v T) Ref[T] {
	return Ref[T]{value: v, selected: true}
}

// Unselected пустая ссылка
func Unselected[T any]() Ref[T] {
	return Ref[T]{}
}

// RefFromPtr nil -> Unselected, иначе Selected(*p)
func RefFromPtr[T any](p *T) Ref[T] {
	if p == nil {
		return Unselected[T]()
	}
	return Selected(*p)
}

// Get возвращает значение и признак выбора
func (r Ref[T]) Get() (T, bool) {
	return r.value, r.selected
}

// IsSelected true, если значение выбрано
func (r Ref[T]) IsSelected() bool {
	return r.selected
}

// Ptr указатель на копию значения или nil
func (r Ref[T]) Ptr() *T {
	if !r.selected {
		return nil
	}
	v := r.value
	return &v
}

// MarshalJSON пустая ссылка сериализуется в null
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if !r.selected {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON null -> Unselected
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = Unselected[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Selected(v)
	return nil
}
