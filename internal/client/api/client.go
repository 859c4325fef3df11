// Package api REST-клиент сервиса детейлинга
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// Client клиент REST API сервиса детейлинга
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        Logger
}

// NewClient создает новый экземпляр клиента. tokens может быть nil до входа в систему.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		log:    log,
	}
}

// SetTokenSource подключает источник токена (сессию) после создания клиента
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// do выполняет запрос и декодирует JSON-ответ в out (если out != nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s - failed to decode response: %v", ErrInvalidResponse, method, path, err)
	}
	return nil
}

// doRaw выполняет запрос и возвращает тело успешного ответа как есть
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Error("%s %s - request failed: %v", method, path, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return raw, nil
	}

	apiErr := decodeError(resp.StatusCode, raw)
	c.log.Warn("%s %s - status=%d: %s", method, path, resp.StatusCode, apiErr.Message)
	return nil, apiErr
}

// decodeError превращает ответ с ошибкой в *Error с соответствующим сентинелом
func decodeError(status int, raw []byte) *Error {
	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		body.Message = strings.TrimSpace(string(raw))
	}

	apiErr := &Error{Status: status, Message: body.Message, Fields: body.Fields}
	switch status {
	case http.StatusBadRequest:
		apiErr.kind = ErrValidation
	case http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
	case http.StatusForbidden:
		apiErr.kind = ErrForbidden
	case http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case http.StatusConflict:
		apiErr.kind = ErrConflict
	default:
		apiErr.kind = ErrInternal
	}
	return apiErr
}

// FieldErrors ошибки полей формы из ответа 400 (nil, если их нет)
func FieldErrors(err error) map[string]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

func periodQuery(period *domain.DateRange) url.Values {
	query := url.Values{}
	if period != nil {
		query.Set("start", period.Start.Format(time.RFC3339Nano))
		query.Set("end", period.End.Format(time.RFC3339Nano))
	}
	return query
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
