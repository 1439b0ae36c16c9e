package backendclient

import (
	"context"
	"net/http"

	"github.com/tablero-app/tablero-client/internal/dto"
)

// Login exchanges credentials for a token pair.
func (c *AuthClient) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := send(ctx, c.client, c.baseURL, request{
		method: http.MethodPost,
		path:   "/login",
		body:   dto.LoginRequest{Email: email, Password: password},
	}, &out)
	return out, err
}

// Register creates an account. The backend enforces the password policy and
// sends the verification mail.
func (c *AuthClient) Register(ctx context.Context, email, password string) (dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	err := send(ctx, c.client, c.baseURL, request{
		method: http.MethodPost,
		path:   "/register",
		body:   dto.RegisterRequest{Email: email, Password: password},
	}, &out)
	return out, err
}

// RefreshAccessToken trades the refresh token for a new access token. The
// refresh token itself is the bearer credential here.
func (c *AuthClient) RefreshAccessToken(ctx context.Context, refreshToken string) (dto.RefreshResponse, error) {
	var out dto.RefreshResponse
	err := send(ctx, c.client, c.baseURL, request{
		method: http.MethodPost,
		path:   "/refresh",
		bearer: refreshToken,
	}, &out)
	return out, err
}
