// Package assets resolves static resources that exist under several
// naming-convention candidates: model files, gallery images and the loader
// script. One reusable ordered-fallback probe replaces the per-feature
// retry loops of the page scripts.
package assets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// ErrNoCandidate is returned when every candidate URL failed to resolve.
var ErrNoCandidate = errors.New("no candidate resource available")

// Resolver probes candidate URLs for existence.
type Resolver struct {
	client *http.Client
	log    *zap.Logger
}

// NewResolver creates a Resolver. client and log may be nil.
func NewResolver(client *http.Client, log *zap.Logger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{client: client, log: log}
}

// First returns the first candidate that exists, probing in order. Probe
// failures move on to the next candidate; exhausting the list returns
// ErrNoCandidate. There is deliberately no retry or backoff.
func (r *Resolver) First(ctx context.Context, candidates []string) (string, error) {
	for _, candidate := range candidates {
		ok, err := r.exists(ctx, candidate)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			r.log.Debug("candidate probe failed",
				zap.String("url", candidate), zap.Error(err))
			continue
		}
		if ok {
			return candidate, nil
		}
	}
	return "", ErrNoCandidate
}

func (r *Resolver) exists(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, fmt.Errorf("build probe: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	// Some static hosts reject HEAD; retry with a one-byte ranged GET.
	if resp.StatusCode == http.StatusMethodNotAllowed ||
		resp.StatusCode == http.StatusNotImplemented {
		return r.existsByGet(ctx, url)
	}

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

func (r *Resolver) existsByGet(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("build probe: %w", err)
	}
	req.Header.Set("Range", "bytes=0-0")

	resp, err := r.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300 ||
		resp.StatusCode == http.StatusPartialContent, nil
}

// Cache memoizes a fetch per source URL so shared dependencies (the GLTF
// loader script) are fetched at most once, successes and failures alike.
type Cache struct {
	mu      sync.Mutex
	results map[string]error
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{results: map[string]error{}}
}

// LoadOnce runs fetch for src unless a previous call already settled it, and
// returns the settled result.
func (c *Cache) LoadOnce(ctx context.Context, src string, fetch func(ctx context.Context, src string) error) error {
	c.mu.Lock()
	if err, done := c.results[src]; done {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	err := fetch(ctx, src)

	c.mu.Lock()
	c.results[src] = err
	c.mu.Unlock()
	return err
}
