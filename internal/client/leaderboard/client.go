// Package leaderboard is the shop client's view of the optional remote
// leaderboard service. Everything here is best-effort: a missing or
// unreachable server degrades to local-only score tracking, never to a
// user-visible failure.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/atelier-filial/filial/internal/models"
)

const (
	apiRegister = "/api/register"
	apiLogin    = "/api/login"
	apiScores   = "/api/scores"
)

// Client talks to one leaderboard server on behalf of one player. A nil
// *Client is valid and reports itself unconfigured.
type Client struct {
	http    *http.Client
	baseURL string
	email   string
	token   string
}

// New creates a client for the given server and player email. An empty
// baseURL returns nil: the caller keeps a nil client and scores stay local.
func New(httpClient *http.Client, baseURL, email string) *Client {
	if baseURL == "" {
		return nil
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, baseURL: baseURL, email: email}
}

// Configured reports whether a server is set up.
func (c *Client) Configured() bool { return c != nil }

// Authenticate obtains an API token, registering the player first and
// falling back to login when the email is already known.
func (c *Client) Authenticate(ctx context.Context) error {
	if err := c.obtainToken(ctx, apiRegister); err == nil {
		return nil
	}
	return c.obtainToken(ctx, apiLogin)
}

func (c *Client) obtainToken(ctx context.Context, path string) error {
	body, _ := json.Marshal(map[string]string{"email": c.email})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("auth rejected: %s", resp.Status)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}
	if result.Token == "" {
		return fmt.Errorf("empty token")
	}
	c.token = result.Token
	return nil
}

// SubmitBest uploads a run result. The server keeps the maximum; a
// non-improving score is not an error.
func (c *Client) SubmitBest(ctx context.Context, eventID string, score int64, runID string) (models.SubmitResponse, error) {
	var out models.SubmitResponse
	if err := c.ensureToken(ctx); err != nil {
		return out, err
	}

	body, _ := json.Marshal(models.SubmitRequest{EventID: eventID, Score: score, RunID: runID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+apiScores, bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("submit rejected: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// Top fetches the event's best entries.
func (c *Client) Top(ctx context.Context, eventID string, n int) ([]models.Entry, error) {
	url := fmt.Sprintf("%s%s/%s/top?limit=%d", c.baseURL, apiScores, eventID, n)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("top: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("top rejected: %s", resp.Status)
	}

	var result struct {
		Entries []models.Entry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result.Entries, nil
}

// MyBest fetches the player's best entry for the event; nil when the server
// has none.
func (c *Client) MyBest(ctx context.Context, eventID string) (*models.Entry, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s%s/%s/me", c.baseURL, apiScores, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("my best: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("my best rejected: %s", resp.Status)
	}

	var entry models.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &entry, nil
}

func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != "" {
		return nil
	}
	return c.Authenticate(ctx)
}
