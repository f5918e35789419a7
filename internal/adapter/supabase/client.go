// Package supabase implements the TinyWin repository over the Supabase
// PostgREST API using the service-role key.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/heartmarshall/tinywin-backend/internal/config"
	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

const restPrefix = "/rest/v1/"

// Client is a thin PostgREST client bound to one project.
type Client struct {
	http *resty.Client
}

// apiError is the PostgREST error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// NewClient builds a client from config. Every request carries the
// service-role key as both apikey and bearer token.
func NewClient(cfg config.SupabaseConfig) (*Client, error) {
	baseURL := strings.TrimRight(cfg.URL, "/")
	if baseURL == "" {
		return nil, errors.New("supabase: url is required")
	}
	if cfg.ServiceRoleKey == "" {
		return nil, errors.New("supabase: service role key is required")
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", cfg.ServiceRoleKey).
		SetAuthToken(cfg.ServiceRoleKey).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "tinywin-backend/1.0").
		SetTimeout(cfg.Timeout)

	return &Client{http: httpClient}, nil
}

// table starts a request against /rest/v1/<name>.
func (c *Client) table(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetError(&apiError{})
}

// checkResponse turns transport failures and non-2xx answers into storage errors.
func checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("supabase %s: %w", op, err)
		}
		return fmt.Errorf("supabase %s: %w: %w", op, domain.ErrStorage, err)
	}
	if !resp.IsError() {
		return nil
	}

	msg := http.StatusText(resp.StatusCode())
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
		msg = apiErr.Message
	}
	return fmt.Errorf("supabase %s: %w: %s (%d)", op, domain.ErrStorage, msg, resp.StatusCode())
}

// Ping checks that the table is reachable with the configured key.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.table(ctx).
		SetQueryParam("select", "id").
		SetQueryParam("limit", "1").
		Get(restPrefix + tableName)
	return checkResponse(resp, err, "ping")
}
