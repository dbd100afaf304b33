package apiclient

import (
	"context"
	"net/http"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
)

func userPath(id string) string {
	return "/users/" + id
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	if err := c.get(ctx, "/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) Me(ctx context.Context) (*user.User, error) {
	var u user.User
	if err := c.get(ctx, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := c.get(ctx, userPath(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser is the HR registration endpoint.
func (c *Client) CreateUser(ctx context.Context, payload user.Create) (*user.RegisterResponse, error) {
	var resp user.RegisterResponse
	if err := c.send(ctx, http.MethodPost, "/users/create", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, payload user.Update) (*user.User, error) {
	var u user.User
	if err := c.send(ctx, http.MethodPatch, userPath(id), payload, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, userPath(id), nil, nil)
}
