package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// UsersByRole GET /users/role/{code}
func (c *Client) UsersByRole(ctx context.Context, code domain.RoleName) ([]*domain.User, error) {
	var resp []models.User
	if err := c.do(ctx, http.MethodGet, "/users/role/"+url.PathEscape(string(code)), nil, nil, &resp); err != nil {
		return nil, err
	}
	return toUsers(resp), nil
}

// Users GET /users
func (c *Client) Users(ctx context.Context) ([]*domain.User, error) {
	var resp []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &resp); err != nil {
		return nil, err
	}
	return toUsers(resp), nil
}

// User GET /users/{id}
func (c *Client) User(ctx context.Context, id int64) (*domain.User, error) {
	var resp models.User
	if err := c.do(ctx, http.MethodGet, idPath("/users/%d", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// UpdateUser PUT /users/{id}
func (c *Client) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (*domain.User, error) {
	var resp models.User
	if err := c.do(ctx, http.MethodPut, idPath("/users/%d", id), nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// CreateUser POST /users
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (*domain.User, error) {
	var resp models.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// Roles GET /users/roles
func (c *Client) Roles(ctx context.Context) ([]domain.Role, error) {
	var resp []models.Role
	if err := c.do(ctx, http.MethodGet, "/users/roles", nil, nil, &resp); err != nil {
		return nil, err
	}
	result := make([]domain.Role, 0, len(resp))
	for _, r := range resp {
		result = append(result, domain.Role{ID: r.ID, Name: domain.RoleName(r.Name)})
	}
	return result, nil
}

// UpdateRoles GET /users/updateRoles/{id}?roleIds=
func (c *Client) UpdateRoles(ctx context.Context, userID int64, roleIDs []int64) (*domain.User, error) {
	ids := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	var resp models.User
	err := c.do(ctx, http.MethodGet, idPath("/users/updateRoles/%d", userID),
		url.Values{"roleIds": {strings.Join(ids, ",")}}, nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// ChangePassword GET /users/changePassword/{username}?oldPassword=&newPassword=
func (c *Client) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	query := url.Values{}
	query.Set("oldPassword", oldPassword)
	query.Set("newPassword", newPassword)
	return c.do(ctx, http.MethodGet, "/users/changePassword/"+url.PathEscape(username), query, nil, nil)
}

func toUsers(resp []models.User) []*domain.User {
	result := make([]*domain.User, 0, len(resp))
	for i := range resp {
		result = append(result, resp[i].ToDomain())
	}
	return result
}
