package get_calendar

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// formatEvents значение параметра format, при котором возвращаются события календаря
const formatEvents = "events"

// parseFilter собирает фильтр календаря из query: start, end (обязательны), masterId, status
func parseFilter(r *http.Request) (domain.CalendarFilter, error) {
	var filter domain.CalendarFilter

	start, _, err := handlers.QueryTime(r, "start")
	if err != nil {
		return filter, err
	}
	end, _, err := handlers.QueryTime(r, "end")
	if err != nil {
		return filter, err
	}
	if start == nil || end == nil {
		return filter, handlers.ErrMissingParam
	}
	filter.Start, filter.End = *start, *end

	if filter.MasterID, err = handlers.QueryInt64(r, "masterId"); err != nil {
		return filter, err
	}

	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw != "" && !strings.EqualFold(raw, domain.StatusFilterAll) {
		status, err := domain.ParseOrderStatus(strings.ToUpper(raw))
		if err != nil {
			return filter, handlers.ErrInvalidParam
		}
		filter.Status = &status
	}

	return filter, nil
}
