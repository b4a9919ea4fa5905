package cloudsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/boticaviva/backend/pkg/config"
)

const (
	defaultTimeout    = 10 * time.Second
	responseReadLimit = 1 << 20
)

// Client mirrors the store settings to a remote key-value service so a fresh
// deployment can pick them up. Every call is best-effort; callers log and
// move on when it fails.
type Client interface {
	Save(ctx context.Context, payload any) error
	Fetch(ctx context.Context, out any) error
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	storeID    string
}

// Option configures optional client behavior.
type Option func(*client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient builds the sync client from config. A missing base URL yields the
// disabled client, which reports not-configured on every call.
func NewClient(cfg config.CloudSyncConfig, opts ...Option) Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return disabled{}
	}

	c := &client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		storeID:    cfg.StoreID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *client) endpoint() string {
	return fmt.Sprintf("%s/v1/stores/%s/settings", c.baseURL, c.storeID)
}

func (c *client) Save(ctx context.Context, payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint(), bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("building sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("syncing settings: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, responseReadLimit))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sync service returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *client) Fetch(ctx context.Context, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(), nil)
	if err != nil {
		return fmt.Errorf("building fetch request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sync service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseReadLimit))
	if err != nil {
		return fmt.Errorf("reading fetch response: %w", err)
	}
	return json.Unmarshal(body, out)
}

type disabled struct{}

func (disabled) Save(context.Context, any) error  { return ErrNotConfigured }
func (disabled) Fetch(context.Context, any) error { return ErrNotConfigured }
