package models

import "github.com/m04kA/SMC-DetailingService/internal/domain"

// Role роль пользователя
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User пользователь
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Roles     []Role `json:"roles"`
}

// CreateUserRequest новый пользователь
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Roles     []Role `json:"roles"`
}

// UpdateUserRequest изменение профиля
type UpdateUserRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
}

// RoleIDs идентификаторы выбранных ролей
func (r *CreateUserRequest) RoleIDs() []int64 {
	ids := make([]int64, 0, len(r.Roles))
	for _, role := range r.Roles {
		ids = append(ids, role.ID)
	}
	return ids
}

func FromRoles(roles []domain.Role) []Role {
	result := make([]Role, 0, len(roles))
	for _, r := range roles {
		result = append(result, Role{ID: r.ID, Name: string(r.Name)})
	}
	return result
}

func FromUser(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Roles:     FromRoles(u.Roles),
	}
}

// FromUsers сериализует список пользователей
func FromUsers(users []*domain.User) []User {
	result := make([]User, 0, len(users))
	for _, u := range users {
		result = append(result, *FromUser(u))
	}
	return result
}

// ToDomain восстанавливает пользователя
func (u *User) ToDomain() *domain.User {
	roles := make([]domain.Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, domain.Role{ID: r.ID, Name: domain.RoleName(r.Name)})
	}
	return &domain.User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Roles:     roles,
	}
}
