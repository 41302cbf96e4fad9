package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	httpTimeout  = 30 * time.Second
	maxErrorBody = 4096
)

// Client issues authenticated calls against the Amadeus REST API.
// All outbound traffic passes through a shared rate limiter, and a call
// rejected with 401 is retried exactly once after a forced token refresh.
type Client struct {
	baseURL string
	tokens  *TokenCache
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewClient constructs a Client for the given base URL and credential pair.
func NewClient(baseURL, apiKey, apiSecret string, limiter *rate.Limiter, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  NewTokenCache(baseURL, apiKey, apiSecret, log),
		client:  &http.Client{Timeout: httpTimeout},
		limiter: limiter,
		log:     log,
	}
}

// get performs an authenticated GET and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, dst any) error {
	resp, err := c.do(ctx, endpoint, query)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.log.Warn("amadeus rejected token, forcing refresh", "endpoint", endpoint)

		if err := c.tokens.Refresh(ctx); err != nil {
			return err
		}
		resp, err = c.do(ctx, endpoint, query)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding amadeus response from %s: %w", endpoint, err)
	}

	return nil
}

// do sends one rate-limited, bearer-authenticated request.
func (c *Client) do(ctx context.Context, endpoint string, query url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for amadeus rate limiter: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}

	return resp, nil
}
