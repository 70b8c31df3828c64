// Package client is the HTTP client for the calculation API. Each call is a
// single request: there are no retries, and timeouts come from the caller's
// context.
package client

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

	"calculation-console/internal/calculation"
	"calculation-console/internal/observability"
)

// ErrUnauthenticated is returned when the API rejects the request as
// unauthenticated (401 or 403).
var ErrUnauthenticated = errors.New("not authenticated")

// StatusError is returned for non-2xx responses. Its message is the response
// body, or "<Op> failed (<status>)" when the body is empty.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("%s failed (%d)", e.Op, e.StatusCode)
}

// Summary mirrors the usage summary returned by /reports/summary.
type Summary struct {
	TotalCalculations int `json:"total_calculations"`
	PerOperation      []struct {
		Operator string `json:"operator"`
		Count    int    `json:"count"`
	} `json:"per_operation"`
	LastCalculationAt *time.Time `json:"last_calculation_at"`
}

// Client talks to the calculation API rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for baseURL. The default transport records client
// spans and forwards the request ID.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: observability.NewTransport(nil)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of c that authenticates with the bearer token.
// An empty token yields an anonymous copy.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// List fetches every calculation, normalised, in server order.
func (c *Client) List(ctx context.Context) ([]calculation.Calculation, error) {
	resp, err := c.do(ctx, http.MethodGet, "/calculations", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		drain(resp)
		return nil, &StatusError{Op: "Load", StatusCode: resp.StatusCode}
	}

	var raws []map[string]any
	if err := decode(resp.Body, &raws); err != nil {
		return nil, fmt.Errorf("decode calculations: %w", err)
	}
	return calculation.NormalizeAll(raws), nil
}

// Get fetches one calculation.
func (c *Client) Get(ctx context.Context, id string) (calculation.Calculation, error) {
	resp, err := c.do(ctx, http.MethodGet, "/calculations/"+url.PathEscape(id), nil)
	if err != nil {
		return calculation.Calculation{}, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		drain(resp)
		return calculation.Calculation{}, &StatusError{Op: "Read", StatusCode: resp.StatusCode}
	}
	return decodeRecord(resp.Body)
}

// Create posts a new calculation and returns the created record.
func (c *Client) Create(ctx context.Context, v calculation.Validated) (calculation.Calculation, error) {
	return c.save(ctx, "Create", http.MethodPost, "/calculations", v)
}

// Update replaces the calculation with the given ID.
func (c *Client) Update(ctx context.Context, id string, v calculation.Validated) (calculation.Calculation, error) {
	return c.save(ctx, "Update", http.MethodPut, "/calculations/"+url.PathEscape(id), v)
}

// Delete removes the calculation with the given ID. Any 2xx succeeds.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/calculations/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	drain(resp)

	if !ok(resp) {
		return &StatusError{Op: "Delete", StatusCode: resp.StatusCode}
	}
	return nil
}

// Summary fetches the usage report.
func (c *Client) Summary(ctx context.Context) (Summary, error) {
	resp, err := c.do(ctx, http.MethodGet, "/reports/summary", nil)
	if err != nil {
		return Summary{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		drain(resp)
		return Summary{}, ErrUnauthenticated
	}
	if !ok(resp) {
		drain(resp)
		return Summary{}, &StatusError{Op: "Report", StatusCode: resp.StatusCode}
	}

	var s Summary
	if err := decode(resp.Body, &s); err != nil {
		return Summary{}, fmt.Errorf("decode summary: %w", err)
	}
	return s, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", credentials(email, password))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		return "", ErrUnauthenticated
	}
	if !ok(resp) {
		return "", statusError("Login", resp)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := decode(resp.Body, &tok); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	return tok.AccessToken, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/register", credentials(email, password))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return statusError("Register", resp)
	}
	drain(resp)
	return nil
}

func (c *Client) save(ctx context.Context, op, method, path string, v calculation.Validated) (calculation.Calculation, error) {
	resp, err := c.do(ctx, method, path, calculation.NewPayload(v))
	if err != nil {
		return calculation.Calculation{}, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return calculation.Calculation{}, statusError(op, resp)
	}
	return decodeRecord(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func credentials(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

func ok(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// statusError reads the body so the server's explanation reaches the caller.
func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
}

func decode(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(dst)
}

func decodeRecord(r io.Reader) (calculation.Calculation, error) {
	var raw map[string]any
	if err := decode(r, &raw); err != nil {
		return calculation.Calculation{}, fmt.Errorf("decode calculation: %w", err)
	}
	return calculation.Normalize(raw), nil
}
