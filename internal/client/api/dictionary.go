package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// CarBrands GET /car/car-brands
func (c *Client) CarBrands(ctx context.Context) ([]domain.CarBrand, error) {
	var resp []models.CarBrand
	if err := c.do(ctx, http.MethodGet, "/car/car-brands", nil, nil, &resp); err != nil {
		return nil, err
	}
	result := make([]domain.CarBrand, 0, len(resp))
	for i := range resp {
		result = append(result, resp[i].ToDomain())
	}
	return result, nil
}

// DictionaryByType GET /dictionary/type/{code}
func (c *Client) DictionaryByType(ctx context.Context, code string) ([]domain.DictionaryEntry, error) {
	var resp []models.DictionaryEntry
	if err := c.do(ctx, http.MethodGet, "/dictionary/type/"+url.PathEscape(code), nil, nil, &resp); err != nil {
		return nil, err
	}
	return toEntries(resp), nil
}

// Dictionary GET /dictionary: плоский список всех записей
func (c *Client) Dictionary(ctx context.Context) ([]domain.DictionaryEntry, error) {
	var resp []models.DictionaryEntry
	if err := c.do(ctx, http.MethodGet, "/dictionary", nil, nil, &resp); err != nil {
		return nil, err
	}
	return toEntries(resp), nil
}

// WorkTypeTree GET /dictionary?view=tree: типы работ с запчастями
func (c *Client) WorkTypeTree(ctx context.Context) ([]domain.WorkTypeWithParts, error) {
	var resp []models.WorkTypeWithParts
	if err := c.do(ctx, http.MethodGet, "/dictionary", url.Values{"view": {"tree"}}, nil, &resp); err != nil {
		return nil, err
	}
	result := make([]domain.WorkTypeWithParts, 0, len(resp))
	for i := range resp {
		result = append(result, *resp[i].ToDomain())
	}
	return result, nil
}

// CreateWorkType POST /dictionary/work-types
func (c *Client) CreateWorkType(ctx context.Context, name, code string) (*domain.WorkTypeWithParts, error) {
	var resp models.WorkTypeWithParts
	err := c.do(ctx, http.MethodPost, "/dictionary/work-types", nil,
		models.CreateWorkTypeRequest{Name: name, Code: code}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// UpdateWorkType PUT /dictionary/work-types/{id}
func (c *Client) UpdateWorkType(ctx context.Context, wt *domain.WorkTypeWithParts) (*domain.WorkTypeWithParts, error) {
	var resp models.WorkTypeWithParts
	err := c.do(ctx, http.MethodPut, idPath("/dictionary/work-types/%d", wt.ID), nil,
		models.FromWorkTypeWithParts(wt), &resp)
	if err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// DeleteWorkType DELETE /dictionary/work-types/{id}
func (c *Client) DeleteWorkType(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/dictionary/work-types/%d", id), nil, nil, nil)
}

func toEntries(resp []models.DictionaryEntry) []domain.DictionaryEntry {
	result := make([]domain.DictionaryEntry, 0, len(resp))
	for i := range resp {
		result = append(result, resp[i].ToDomain())
	}
	return result
}
