package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// staticHost serves 200 for the given paths and 404 otherwise.
func staticHost(t *testing.T, paths ...string) *httptest.Server {
	t.Helper()
	known := map[string]struct{}{}
	for _, p := range paths {
		known[p] = struct{}{}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := known[r.URL.Path]; !ok {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFirst_PicksFirstExisting(t *testing.T) {
	srv := staticHost(t, "/models/sweater1.glb")
	r := NewResolver(srv.Client(), nil)

	got, err := r.First(context.Background(), []string{
		srv.URL + "/models/sweater.glb",
		srv.URL + "/models/sweater1.glb",
	})
	if err != nil {
		t.Fatalf("First returned error: %v", err)
	}
	if want := srv.URL + "/models/sweater1.glb"; got != want {
		t.Errorf("First = %q; want %q", got, want)
	}
}

func TestFirst_RespectsOrder(t *testing.T) {
	srv := staticHost(t, "/a.glb", "/b.glb")
	r := NewResolver(srv.Client(), nil)

	got, err := r.First(context.Background(), []string{srv.URL + "/b.glb", srv.URL + "/a.glb"})
	if err != nil {
		t.Fatalf("First returned error: %v", err)
	}
	if want := srv.URL + "/b.glb"; got != want {
		t.Errorf("First = %q; want the earlier candidate %q", got, want)
	}
}

func TestFirst_Exhausted(t *testing.T) {
	srv := staticHost(t) // nothing exists
	r := NewResolver(srv.Client(), nil)

	_, err := r.First(context.Background(), []string{srv.URL + "/a.glb", srv.URL + "/b.glb"})
	if !errors.Is(err, ErrNoCandidate) {
		t.Errorf("First error = %v; want ErrNoCandidate", err)
	}
}

func TestFirst_EmptyCandidates(t *testing.T) {
	r := NewResolver(nil, nil)

	if _, err := r.First(context.Background(), nil); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("First(nil) error = %v; want ErrNoCandidate", err)
	}
}

func TestFirst_SkipsUnreachableHost(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	srv := staticHost(t, "/ok.glb")
	r := NewResolver(srv.Client(), nil)

	got, err := r.First(context.Background(), []string{deadURL + "/x.glb", srv.URL + "/ok.glb"})
	if err != nil {
		t.Fatalf("First returned error: %v", err)
	}
	if want := srv.URL + "/ok.glb"; got != want {
		t.Errorf("First = %q; want %q", got, want)
	}
}

func TestFirst_ContextCanceled(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewResolver(nil, nil)
	_, err := r.First(ctx, []string{deadURL + "/x.glb"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("First error = %v; want context.Canceled", err)
	}
}

func TestFirst_FallsBackToRangedGet(t *testing.T) {
	var sawRange atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			if r.Header.Get("Range") == "bytes=0-0" {
				sawRange.Store(true)
			}
			w.WriteHeader(http.StatusPartialContent)
		}
	}))
	t.Cleanup(srv.Close)

	r := NewResolver(srv.Client(), nil)
	got, err := r.First(context.Background(), []string{srv.URL + "/head-hostile.glb"})
	if err != nil {
		t.Fatalf("First returned error: %v", err)
	}
	if got != srv.URL+"/head-hostile.glb" {
		t.Errorf("First = %q; want the HEAD-hostile candidate", got)
	}
	if !sawRange.Load() {
		t.Errorf("fallback GET did not carry the one-byte range")
	}
}

func TestLoadOnce_MemoizesSuccess(t *testing.T) {
	c := NewCache()
	calls := 0
	fetch := func(ctx context.Context, src string) error {
		calls++
		return nil
	}

	for i := 0; i < 3; i++ {
		if err := c.LoadOnce(context.Background(), "loader.js", fetch); err != nil {
			t.Fatalf("LoadOnce returned error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("fetch ran %d times; want 1", calls)
	}
}

func TestLoadOnce_MemoizesFailure(t *testing.T) {
	c := NewCache()
	wantErr := errors.New("network down")
	calls := 0
	fetch := func(ctx context.Context, src string) error {
		calls++
		return wantErr
	}

	for i := 0; i < 3; i++ {
		if err := c.LoadOnce(context.Background(), "loader.js", fetch); !errors.Is(err, wantErr) {
			t.Fatalf("LoadOnce error = %v; want %v", err, wantErr)
		}
	}
	if calls != 1 {
		t.Errorf("fetch ran %d times; want failures settled too", calls)
	}
}

func TestLoadOnce_PerSource(t *testing.T) {
	c := NewCache()
	calls := map[string]int{}
	fetch := func(ctx context.Context, src string) error {
		calls[src]++
		return nil
	}

	c.LoadOnce(context.Background(), "a.js", fetch)
	c.LoadOnce(context.Background(), "b.js", fetch)
	c.LoadOnce(context.Background(), "a.js", fetch)

	if calls["a.js"] != 1 || calls["b.js"] != 1 {
		t.Errorf("fetch calls = %v; want one per source", calls)
	}
}
