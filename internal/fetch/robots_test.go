package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRobotsPolicy_AllowsWhenMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p := NewRobotsPolicy()
	assert.True(t, p.Allowed(context.Background(), "test-agent", srv.URL+"/anything"))
}

func TestRobotsPolicy_AllowsWhenUnreachable(t *testing.T) {
	p := NewRobotsPolicy()
	// Nothing listens here; the policy must degrade to permissive.
	assert.True(t, p.Allowed(context.Background(), "test-agent", "http://127.0.0.1:1/page"))
}

func TestRobotsPolicy_HonorsDisallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\nAllow: /\n"))
	}))
	defer srv.Close()

	p := NewRobotsPolicy()
	ctx := context.Background()
	assert.False(t, p.Allowed(ctx, "test-agent", srv.URL+"/private/data"))
	assert.True(t, p.Allowed(ctx, "test-agent", srv.URL+"/public"))
}

func TestRobotsPolicy_CachesPerHost(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
	}))
	defer srv.Close()

	p := NewRobotsPolicy()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		assert.True(t, p.Allowed(ctx, "test-agent", srv.URL+"/page"))
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestRobotsPolicy_InvalidURLAllowed(t *testing.T) {
	p := NewRobotsPolicy()
	assert.True(t, p.Allowed(context.Background(), "test-agent", "::not-a-url::"))
}
