package api

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// MastersWeekly GET /reports/masters-weekly?start=&end=.
// period == nil - текущая неделя по часам сервера.
func (c *Client) MastersWeekly(ctx context.Context, period *domain.DateRange) ([]domain.MasterWeeklyReport, error) {
	var resp []models.MasterWeeklyReport
	if err := c.do(ctx, http.MethodGet, "/reports/masters-weekly", periodQuery(period), nil, &resp); err != nil {
		return nil, err
	}
	return models.ToDomainWeekly(resp), nil
}

// MastersWeeklyXLSX GET /reports/masters-weekly.xlsx
func (c *Client) MastersWeeklyXLSX(ctx context.Context, period *domain.DateRange) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/reports/masters-weekly.xlsx", periodQuery(period), nil)
}

// MasterDetail GET /reports/master-detail/{id}?start=&end=
func (c *Client) MasterDetail(ctx context.Context, masterID int64, period *domain.DateRange) (*domain.MasterDetailReport, error) {
	var resp models.MasterDetailReport
	err := c.do(ctx, http.MethodGet, idPath("/reports/master-detail/%d", masterID), periodQuery(period), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}
