// Package client is a small typed client for the safetylog REST API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client calls the establishment endpoints with a bearer token.
type Client struct {
	baseURL   *url.URL
	token     string
	userAgent string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url must be http or https, got %q", baseURL)
	}

	c := &Client{
		baseURL: u,
		token:   token,
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Establishment is the client-side view of an establishment.
type Establishment struct {
	ID                  uuid.UUID `json:"id"`
	UserID              string    `json:"userId"`
	Name                string    `json:"name"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	State               string    `json:"state"`
	Zip                 string    `json:"zip"`
	NAICSCode           *string   `json:"naicsCode"`
	IndustryDescription *string   `json:"industryDescription"`
	AverageEmployees    int       `json:"averageEmployees"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// APIError is a decoded error envelope. It unwraps to the matching domain
// sentinel so callers can use errors.Is(err, domain.ErrNotFound).
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  []domain.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch domain.Kind(e.Code) {
	case domain.KindUnauthenticated:
		return domain.ErrUnauthorized
	case domain.KindNotFound:
		return domain.ErrNotFound
	case domain.KindValidation:
		return domain.ErrValidation
	default:
		return domain.ErrInternal
	}
}

// ListEstablishments returns the caller's establishments.
func (c *Client) ListEstablishments(ctx context.Context) ([]Establishment, error) {
	var out []Establishment
	if err := c.do(ctx, http.MethodGet, "/api/v1/establishments", &out); err != nil {
		return nil, fmt.Errorf("list establishments: %w", err)
	}
	return out, nil
}

// GetEstablishment fetches one establishment. A missing or foreign id
// yields an error matching domain.ErrNotFound.
func (c *Client) GetEstablishment(ctx context.Context, id uuid.UUID) (*Establishment, error) {
	var out Establishment
	if err := c.do(ctx, http.MethodGet, "/api/v1/establishments/"+id.String(), &out); err != nil {
		return nil, fmt.Errorf("get establishment: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var envelope struct {
		Error struct {
			Code    string              `json:"code"`
			Message string              `json:"message"`
			Fields  []domain.FieldError `json:"fields"`
		} `json:"error"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Code == "" {
		apiErr.Code = kindForStatus(resp.StatusCode).String()
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}

	apiErr.Code = envelope.Error.Code
	apiErr.Message = envelope.Error.Message
	apiErr.Fields = envelope.Error.Fields
	return apiErr
}

func kindForStatus(status int) domain.Kind {
	switch status {
	case http.StatusUnauthorized:
		return domain.KindUnauthenticated
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusBadRequest:
		return domain.KindValidation
	default:
		return domain.KindInternal
	}
}

// IsNotFound reports whether err is a not-found answer from the API.
func IsNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
