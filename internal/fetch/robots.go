package fetch

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsTimeout bounds the robots.txt fetch itself so a slow host cannot
// stall the politeness check.
const robotsTimeout = 10 * time.Second

// RobotsPolicy caches per-host robots.txt rules and answers whether a path
// may be crawled. When robots.txt cannot be fetched or parsed the policy is
// permissive, matching the original crawler behavior.
type RobotsPolicy struct {
	client *http.Client

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData // nil entry means "allow everything"
}

// NewRobotsPolicy creates a policy with its own short-timeout HTTP client.
func NewRobotsPolicy() *RobotsPolicy {
	return &RobotsPolicy{
		client: &http.Client{Timeout: robotsTimeout},
		hosts:  make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether userAgent may fetch rawURL according to the
// target host's robots.txt. Unparseable URLs are allowed; the fetch itself
// will surface the real error.
func (p *RobotsPolicy) Allowed(ctx context.Context, userAgent, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true
	}

	data := p.robotsFor(ctx, parsed.Scheme, parsed.Host)
	if data == nil {
		return true
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, userAgent)
}

func (p *RobotsPolicy) robotsFor(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	p.mu.Lock()
	if data, ok := p.hosts[host]; ok {
		p.mu.Unlock()
		return data
	}
	p.mu.Unlock()

	data := p.fetchRobots(ctx, scheme, host)

	p.mu.Lock()
	p.hosts[host] = data
	p.mu.Unlock()
	return data
}

// fetchRobots retrieves and parses robots.txt for a host. Any failure is
// treated as permissive and cached so the host is not re-probed every call.
func (p *RobotsPolicy) fetchRobots(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	if scheme == "" {
		scheme = "https"
	}
	robotsURL := scheme + "://" + host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[robots] could not fetch %s: %v (allowing)", robotsURL, err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		log.Printf("[robots] could not parse %s: %v (allowing)", robotsURL, err)
		return nil
	}
	return data
}
