package gateway

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access string `json:"access"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/login/", false,
		loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Access, nil
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The caller logs in afterwards.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/register/", false,
		registerRequest{Username: username, Email: email, Password: password}, nil)
}
