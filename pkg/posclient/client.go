// Package posclient cliente Go de la API del POS. La sesión (token + usuario) vive en un
// SessionStore; cualquier 401 del servidor la borra.
package posclient

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
)

// ErrRequestFailed fallo de transporte (red, timeout, cuerpo ilegible).
var ErrRequestFailed = errors.New("request failed")

// ErrNoSession el método requiere login previo.
var ErrNoSession = errors.New("no active session")

// APIError respuesta no-2xx del servidor. Message viene del campo "message" del cuerpo.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// IsStatus indica si err es un *APIError con ese status.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

// Config configuración del cliente.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Sessions   SessionStore // por defecto MemoryStore
	HTTPClient *http.Client
}

// Client cliente de la API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionStore
}

// New crea el cliente.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = NewMemoryStore()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		sessions:   sessions,
	}
}

// Session sesión actual (nil si no hay login).
func (c *Client) Session() (*Session, error) {
	return c.sessions.Load()
}

// Logout borra la sesión local.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// request describe una llamada; auth=false para endpoints públicos.
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	auth   bool
}

// send ejecuta la petición y devuelve el cuerpo crudo de una respuesta 2xx.
func (c *Client) send(ctx context.Context, r request) ([]byte, http.Header, error) {
	var rd io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, rd)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth {
		s, err := c.sessions.Load()
		if err != nil {
			return nil, nil, err
		}
		if s == nil {
			return nil, nil, ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.sessions.Clear()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, apiError(resp.StatusCode, respBody)
	}
	return respBody, resp.Header, nil
}

func apiError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Message: fmt.Sprintf("Request failed (%d)", status)}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Code = payload.Code
		if payload.Message != "" {
			e.Message = payload.Message
		}
	}
	return e
}

// do ejecuta la petición y decodifica el JSON en out (si no es nil).
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	raw, _, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}
	return nil
}

// call ejecuta r y decodifica la respuesta en un T nuevo.
func call[T any](ctx context.Context, c *Client, r request) (*T, error) {
	var out T
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
