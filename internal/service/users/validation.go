package users

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// Сообщения валидации пользовательских форм
const (
	MsgFirstNameRequired = "Имя обязательно"
	MsgLastNameRequired  = "Фамилия обязательна"
	MsgPhoneRequired     = "Телефон обязателен"
	MsgUsernameRequired  = "Логин обязателен"
	MsgPasswordTooShort  = "Пароль должен быть не менее 6 символов"
	MsgRolesRequired     = "Выберите хотя бы одну роль"
	MsgUserRolesRequired = "Пользователю должна быть назначена хотя бы одна роль"
)

func validateCreate(req *CreateRequest) error {
	switch {
	case strings.TrimSpace(req.FirstName) == "":
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgFirstNameRequired)
	case strings.TrimSpace(req.LastName) == "":
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgLastNameRequired)
	case strings.TrimSpace(req.Phone) == "":
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgPhoneRequired)
	case strings.TrimSpace(req.Username) == "":
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgUsernameRequired)
	case utf8.RuneCountInString(req.Password) < domain.MinPasswordLength:
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgPasswordTooShort)
	case len(req.RoleIDs) == 0:
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgRolesRequired)
	}
	return nil
}

func validateProfile(req *UpdateProfileRequest) error {
	switch {
	case strings.TrimSpace(req.FirstName) == "":
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgFirstNameRequired)
	case strings.TrimSpace(req.LastName) == "":
		return fmt.Errorf("%w: %s", ErrInvalidInput, MsgLastNameRequired)
	}
	return nil
}
