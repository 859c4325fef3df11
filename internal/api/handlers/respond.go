package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// Общие сообщения об ошибках
const (
	MsgInternalError   = "внутренняя ошибка сервера"
	MsgInvalidBody     = "некорректное тело запроса"
	MsgUnauthorized    = "требуется авторизация"
	MsgForbidden       = "доступ запрещен"
	MsgInvalidPeriod   = "некорректный период, ожидается start и end в формате YYYY-MM-DD или RFC3339"
	MsgValidationError = "ошибка валидации формы"
)

var (
	// ErrMissingParam возвращается, когда обязательный параметр не передан
	ErrMissingParam = errors.New("handlers: missing parameter")

	// ErrInvalidParam возвращается, когда параметр не удалось разобрать
	ErrInvalidParam = errors.New("handlers: invalid parameter")
)

// DecodeJSON разбирает JSON-тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	return render.DecodeJSON(r.Body, v)
}

// RespondJSON отправляет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// RespondNoContent отправляет пустой ответ 204
func RespondNoContent(w http.ResponseWriter, r *http.Request) {
	render.NoContent(w, r)
}

// RespondError отправляет ошибку с сообщением
func RespondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondJSON(w, r, status, models.ErrorResponse{Message: message})
}

// RespondValidation отправляет 400 с ошибками полей формы
func RespondValidation(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	RespondJSON(w, r, http.StatusBadRequest, models.ErrorResponse{Message: MsgValidationError, Fields: fields})
}

func RespondBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	RespondError(w, r, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	RespondError(w, r, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, r *http.Request, message string) {
	RespondError(w, r, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, r *http.Request, message string) {
	RespondError(w, r, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, r *http.Request, message string) {
	RespondError(w, r, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter, r *http.Request) {
	RespondError(w, r, http.StatusInternalServerError, MsgInternalError)
}

// PathID разбирает int64 из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, ErrMissingParam
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidParam
	}
	return id, nil
}

// QueryInt64 разбирает необязательный int64 из query-параметра
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, ErrInvalidParam
	}
	return &v, nil
}

// QueryInt64List разбирает список через запятую: roleIds=1,2,3
func QueryInt64List(r *http.Request, name string) ([]int64, error) {
	result := make([]int64, 0)
	for _, value := range r.URL.Query()[name] {
		for _, raw := range strings.Split(value, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, ErrInvalidParam
			}
			result = append(result, v)
		}
	}
	return result, nil
}

// QueryTime разбирает момент времени: RFC3339 или дата YYYY-MM-DD (полночь UTC).
// Второй результат сообщает, была ли передана только дата.
func QueryTime(r *http.Request, name string) (*time.Time, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(domain.DateTimeFormat, raw); err == nil {
		return &t, false, nil
	}
	t, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, false, ErrInvalidParam
	}
	return &t, true, nil
}

// QueryReportPeriod период отчета [start, end] из query.
// Оба параметра отсутствуют - nil (период по умолчанию).
// Конец, переданный датой, включает весь день.
func QueryReportPeriod(r *http.Request) (*domain.DateRange, error) {
	start, _, err := QueryTime(r, "start")
	if err != nil {
		return nil, err
	}
	end, endIsDate, err := QueryTime(r, "end")
	if err != nil {
		return nil, err
	}

	switch {
	case start == nil && end == nil:
		return nil, nil
	case start == nil || end == nil:
		return nil, ErrMissingParam
	}

	if endIsDate {
		*end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	period := &domain.DateRange{Start: *start, End: *end}
	if !period.IsValid() {
		return nil, ErrInvalidParam
	}
	return period, nil
}

// Detail текст ошибки после префикса сентинела: "users: invalid input data: Имя обязательно" -> "Имя обязательно"
func Detail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
