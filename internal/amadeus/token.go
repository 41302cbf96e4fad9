package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	tokenEndpoint = "/v1/security/oauth2/token"

	// Tokens are considered expired 60 seconds early to absorb clock skew
	// and in-flight request latency.
	tokenValidityBuffer = 60 * time.Second

	// Amadeus tokens last ~30 minutes. Used when the response omits expires_in.
	defaultTokenTTL = 1799 * time.Second
)

// TokenCache holds the single OAuth bearer token for an Amadeus credential
// pair, refreshing it before expiry. One instance is shared by all requests.
type TokenCache struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client
	log          *slog.Logger

	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	now func() time.Time
}

// NewTokenCache constructs a TokenCache for the given credential pair.
func NewTokenCache(baseURL, clientID, clientSecret string, log *slog.Logger) *TokenCache {
	return &TokenCache{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: httpTimeout},
		log:          log,
		now:          time.Now,
	}
}

// NewTokenCacheWithClock constructs a TokenCache using a custom clock (for tests).
func NewTokenCacheWithClock(baseURL, clientID, clientSecret string, log *slog.Logger, now func() time.Time) *TokenCache {
	tc := NewTokenCache(baseURL, clientID, clientSecret, log)
	tc.now = now
	return tc
}

// Token returns a bearer token that is valid for at least the buffer window.
// Double-checked locking keeps concurrent callers off the exclusive lock
// while the cached token is still valid, and ensures at most one refresh
// reaches the upstream per invalidation.
func (tc *TokenCache) Token(ctx context.Context) (string, error) {
	tc.mu.RLock()
	token, valid := tc.token, tc.validLocked()
	tc.mu.RUnlock()
	if valid {
		return token, nil
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if tc.validLocked() {
		return tc.token, nil
	}

	if err := tc.refreshLocked(ctx); err != nil {
		return "", err
	}
	return tc.token, nil
}

// Refresh unconditionally exchanges credentials for a new token, bypassing
// the validity check. Used after the API rejects a token that still looked
// valid locally.
func (tc *TokenCache) Refresh(ctx context.Context) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.refreshLocked(ctx)
}

// validLocked reports whether the cached token is still usable.
// Callers must hold at least a read lock.
func (tc *TokenCache) validLocked() bool {
	return tc.token != "" && tc.now().Before(tc.expiresAt.Add(-tokenValidityBuffer))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// refreshLocked performs the client-credentials exchange.
// Callers must hold the write lock.
func (tc *TokenCache) refreshLocked(ctx context.Context) error {
	tc.log.Info("refreshing amadeus token")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", tc.clientID)
	form.Set("client_secret", tc.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.baseURL+tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("exchanging amadeus credentials: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		tc.log.Error("amadeus credential exchange rejected", "status", resp.StatusCode, "body", string(body))
		return &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}

	ttl := defaultTokenTTL
	if tr.ExpiresIn > 0 {
		ttl = time.Duration(tr.ExpiresIn) * time.Second
	}

	tc.token = tr.AccessToken
	tc.expiresAt = tc.now().Add(ttl)

	tc.log.Info("amadeus token refreshed", "expires_in", ttl.Seconds())
	return nil
}
