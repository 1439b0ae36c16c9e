package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero-client/internal/errs"
)

// TokenSource provides the bearer token for authenticated calls and a silent
// refresh when the backend rejects it.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// Adapter is the typed client for the data-platform backend. All calls carry
// a correlation id; authenticated calls retry once after a silent refresh on
// a 401.
type Adapter struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
}

func NewAdapter(baseURL string, timeout time.Duration, tokens TokenSource) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// AuthClient is the unauthenticated slice of the backend surface: login,
// registration and token refresh. It is separate from Adapter so the session
// layer can refresh tokens without depending on the authenticated client it
// feeds.
type AuthClient struct {
	baseURL string
	client  *http.Client
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// errorBody is the backend's uniform non-2xx payload.
type errorBody struct {
	Error string `json:"error"`
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// bearer overrides the token source, used by the refresh call which
	// authenticates with the refresh token itself.
	bearer string
	authed bool
}

func (a *Adapter) doJSON(ctx context.Context, req request, out any) error {
	err := a.send(ctx, req, out)
	if err == nil {
		return nil
	}
	re, ok := err.(*errs.RequestError)
	if !ok || !req.authed || re.Status != http.StatusUnauthorized {
		return err
	}
	// Token rejected: one silent refresh, then retry.
	if _, rerr := a.tokens.Refresh(ctx); rerr != nil {
		return rerr
	}
	return a.send(ctx, req, out)
}

func (a *Adapter) send(ctx context.Context, req request, out any) error {
	if req.authed && req.bearer == "" {
		token, err := a.tokens.AccessToken(ctx)
		if err != nil {
			return err
		}
		req.bearer = token
	}
	return send(ctx, a.client, a.baseURL, req, out)
}

func send(ctx context.Context, client *http.Client, baseURL string, req request, out any) error {
	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	u := baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return err
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("X-Request-ID", uuid.New().String())
	if req.bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.bearer)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return errs.NewRequestError(0, fmt.Sprintf("backend unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return errs.NewRequestError(resp.StatusCode, eb.Error)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeBody(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}
