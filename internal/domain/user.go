package domain

import "strings"

// RoleName название роли пользователя
type RoleName string

const (
	RoleManager RoleName = "MANAGER"
	RoleAdmin   RoleName = "ADMIN"
	RoleMaster  RoleName = "MASTER"
)

// Role роль пользователя
type Role struct {
	ID   int64
	Name RoleName
}

// User пользователь системы (менеджер, администратор, мастер)
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Roles     []Role
}

// FullName имя и фамилия через пробел
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole проверяет наличие роли
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// HasAnyRole проверяет наличие хотя бы одной из ролей
func (u *User) HasAnyRole(names ...RoleName) bool {
	for _, name := range names {
		if u.HasRole(name) {
			return true
		}
	}
	return false
}

// IsMasterOnly true, если набор ролей пользователя ровно {MASTER}.
// Мастер с любой дополнительной ролью получает обычный интерфейс.
func (u *User) IsMasterOnly() bool {
	if len(u.Roles) == 0 {
		return false
	}
	for _, r := range u.Roles {
		if r.Name != RoleMaster {
			return false
		}
	}
	return true
}

// RoleNames список названий ролей
func (u *User) RoleNames() []RoleName {
	names := make([]RoleName, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
