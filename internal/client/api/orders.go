package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

// StatusChange результат смены статуса
type StatusChange struct {
	OrderID   int64
	Previous  domain.OrderStatus
	Status    domain.OrderStatus
	Available []domain.OrderStatus
}

// GetOrder GET /orders/{id}
func (c *Client) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var resp models.Order
	if err := c.do(ctx, http.MethodGet, idPath("/orders/%d", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// CreateOrder POST /orders
func (c *Client) CreateOrder(ctx context.Context, draft orderform.Draft) (*domain.Order, error) {
	var resp models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, models.FromDraft(draft), &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// UpdateOrder PUT /orders/{id}: заказ перезаписывается целиком
func (c *Client) UpdateOrder(ctx context.Context, id int64, draft orderform.Draft) (*domain.Order, error) {
	var resp models.Order
	if err := c.do(ctx, http.MethodPut, idPath("/orders/%d", id), nil, models.FromDraft(draft), &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// Calendar GET /orders/calendar: заказы с executionDate в [Start, End)
func (c *Client) Calendar(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Order, error) {
	query := url.Values{}
	query.Set("start", filter.Start.Format(time.RFC3339Nano))
	query.Set("end", filter.End.Format(time.RFC3339Nano))
	if filter.MasterID != nil {
		query.Set("masterId", strconv.FormatInt(*filter.MasterID, 10))
	}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	} else {
		query.Set("status", domain.StatusFilterAll)
	}

	var resp []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/calendar", query, nil, &resp); err != nil {
		return nil, err
	}

	result := make([]*domain.Order, 0, len(resp))
	for i := range resp {
		result = append(result, resp[i].ToDomain())
	}
	return result, nil
}

// ChangeStatus GET /orders/change/{id}?code=&master=
func (c *Client) ChangeStatus(ctx context.Context, id int64, status domain.OrderStatus, masterID *int64) (*StatusChange, error) {
	query := url.Values{}
	query.Set("code", string(status))
	if masterID != nil {
		query.Set("master", strconv.FormatInt(*masterID, 10))
	}

	var resp models.StatusChange
	if err := c.do(ctx, http.MethodGet, idPath("/orders/change/%d", id), query, nil, &resp); err != nil {
		return nil, err
	}

	result := &StatusChange{
		OrderID:   resp.OrderID,
		Previous:  domain.OrderStatus(resp.PreviousStatus),
		Status:    domain.OrderStatus(resp.Status),
		Available: make([]domain.OrderStatus, 0, len(resp.Available)),
	}
	for _, s := range resp.Available {
		result.Available = append(result.Available, domain.OrderStatus(strings.ToUpper(s)))
	}
	return result, nil
}
