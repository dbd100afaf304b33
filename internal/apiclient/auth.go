package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
)

// Login exchanges credentials for a token. The backend expects an OAuth2 password form.
func (c *Client) Login(ctx context.Context, username, password string) (*user.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := request{
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}

	var token user.Token
	if err := c.do(ctx, req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *Client) Register(ctx context.Context, payload user.Create) (*user.RegisterResponse, error) {
	var resp user.RegisterResponse
	if err := c.send(ctx, http.MethodPost, "/auth/register", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
