package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"backend-wayfinder/internal/waypoint"
)

// Identity is the authenticated user as the client sees it.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// APIError carries the provider's error code (the response body) and status.
type APIError struct {
	Status int
	Code   string
}

func (e *APIError) Error() string {
	return e.Code
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	User   Identity      `json:"user"`
	Tokens tokenResponse `json:"tokens"`
}

// Client talks to the wayfinder backend. It owns the current identity and
// notifies subscribers whenever it changes (sign-in, sign-up, sign-out).
type Client struct {
	baseURL string
	http    *http.Client

	mu        sync.Mutex
	identity  *Identity
	tokens    tokenResponse
	subs      map[int]func(*Identity)
	nextSubID int
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		subs:    map[int]func(*Identity){},
	}
}

// OnStateChange registers a callback for identity changes and returns an
// unsubscribe handle. The caller owns the handle and must call it on teardown.
func (c *Client) OnStateChange(cb func(*Identity)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = cb
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Client) notify(identity *Identity) {
	c.mu.Lock()
	cbs := make([]func(*Identity), 0, len(c.subs))
	for _, cb := range c.subs {
		cbs = append(cbs, cb)
	}
	c.mu.Unlock()

	for _, cb := range cbs {
		cb(identity)
	}
}

func (c *Client) Register(ctx context.Context, email, password string) (*Identity, error) {
	return c.authenticate(ctx, "/auth/register", email, password)
}

func (c *Client) Login(ctx context.Context, email, password string) (*Identity, error) {
	return c.authenticate(ctx, "/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*Identity, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, path, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.identity = &resp.User
	c.tokens = resp.Tokens
	c.mu.Unlock()

	identity := resp.User
	c.notify(&identity)
	return &identity, nil
}

// Logout revokes the refresh token and clears the local identity. The local
// identity is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.tokens.RefreshToken
	c.identity = nil
	c.tokens = tokenResponse{}
	c.mu.Unlock()

	c.notify(nil)

	if refresh == "" {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/auth/logout", map[string]string{
		"refresh_token": refresh,
	}, nil)
}

func (c *Client) CurrentUser() *Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return nil
	}
	identity := *c.identity
	return &identity
}

func (c *Client) CurrentUserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return ""
	}
	return c.identity.ID
}

func (c *Client) ListWaypoints(ctx context.Context) ([]waypoint.Waypoint, error) {
	var waypoints []waypoint.Waypoint
	if err := c.do(ctx, http.MethodGet, "/waypoints/", nil, &waypoints); err != nil {
		return nil, err
	}
	return waypoints, nil
}

func (c *Client) CreateWaypoint(ctx context.Context, name string, lat, lng float64, description string) (waypoint.Waypoint, error) {
	var wp waypoint.Waypoint
	err := c.do(ctx, http.MethodPost, "/waypoints/", map[string]any{
		"name":        name,
		"latitude":    lat,
		"longitude":   lng,
		"description": description,
	}, &wp)
	return wp, err
}

func (c *Client) UpdateWaypoint(ctx context.Context, id string, patch waypoint.Patch) (waypoint.Result, error) {
	return c.doResult(ctx, http.MethodPut, "/waypoints/"+id, patch)
}

func (c *Client) DeleteWaypoint(ctx context.Context, id string) (waypoint.Result, error) {
	return c.doResult(ctx, http.MethodDelete, "/waypoints/"+id, nil)
}

// do performs a JSON request and decodes the response into out. Non-2xx
// responses become an *APIError whose code is the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Code: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// doResult is for the update/delete operations, which answer with a
// Result value on both success and business failure.
func (c *Client) doResult(ctx context.Context, method, path string, body any) (waypoint.Result, error) {
	resp, raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return waypoint.Result{}, err
	}

	var res waypoint.Result
	if jsonErr := json.Unmarshal(raw, &res); jsonErr == nil && res.Message != "" {
		return res, nil
	}
	if resp.StatusCode >= 400 {
		return waypoint.Result{}, &APIError{Status: resp.StatusCode, Code: strings.TrimSpace(string(raw))}
	}
	return res, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.Lock()
	access := c.tokens.AccessToken
	c.mu.Unlock()
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, raw, nil
}
