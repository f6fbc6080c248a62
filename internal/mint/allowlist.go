package mint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// AllowlistStatus is the per-address allowlist result. The zero value is
// "not yet checked".
type AllowlistStatus struct {
	Checked  bool `json:"checked"`
	Verified bool `json:"verified"`
}

// Checker verifies allowlist membership against {baseURL}/api/allowlist and
// remembers each answer for the rest of the session.
type Checker struct {
	client  *http.Client
	baseURL string

	mu    sync.Mutex
	cache map[string]AllowlistStatus
}

// NewChecker creates a Checker.
func NewChecker(client *http.Client, baseURL string) *Checker {
	return &Checker{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   make(map[string]AllowlistStatus),
	}
}

// Status returns the cached status for address without any network call.
func (c *Checker) Status(address string) AllowlistStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache[strings.ToLower(address)]
}

// Check issues one request per address per session. A failed request leaves
// the address unchecked so the user can retry.
func (c *Checker) Check(ctx context.Context, address string) (AllowlistStatus, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return AllowlistStatus{}, ErrNoWallet
	}
	key := strings.ToLower(address)

	c.mu.Lock()
	if s, ok := c.cache[key]; ok && s.Checked {
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	verified, err := c.fetch(ctx, address)
	if err != nil {
		return AllowlistStatus{}, fmt.Errorf("%w: %v", ErrAllowlistCheck, err)
	}

	s := AllowlistStatus{Checked: true, Verified: verified}
	c.mu.Lock()
	c.cache[key] = s
	c.mu.Unlock()
	slog.Debug("allowlist checked", "address", address, "verified", verified)
	return s, nil
}

func (c *Checker) fetch(ctx context.Context, address string) (bool, error) {
	if c.baseURL == "" {
		return false, fmt.Errorf("base URL not set")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/allowlist/"+address, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var body struct {
		Verified *bool  `json:"verified"`
		Error    string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("HTTP %d: decoding response: %w", resp.StatusCode, err)
	}
	if body.Error != "" {
		return false, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body.Error)
	}
	if resp.StatusCode != http.StatusOK || body.Verified == nil {
		return false, fmt.Errorf("HTTP %d: unexpected response", resp.StatusCode)
	}
	return *body.Verified, nil
}
