package fetch

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// rotateProbability is the chance of switching user agents before a request.
const rotateProbability = 0.3

// retryableStatus lists HTTP statuses retried with backoff.
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// defaultUserAgents is the rotation pool of desktop browser identifiers.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0",
}

// Options configures a Client.
type Options struct {
	Timeout    time.Duration
	MaxRetries int
	DelayMin   time.Duration
	DelayMax   time.Duration
	UserAgents []string
	Robots     *RobotsPolicy // may be shared across clients; created when nil
}

// DefaultOptions returns sensible defaults for scraping.
func DefaultOptions() *Options {
	return &Options{
		Timeout:    DefaultTimeout,
		MaxRetries: 3,
		DelayMin:   1 * time.Second,
		DelayMax:   5 * time.Second,
		UserAgents: defaultUserAgents,
	}
}

// Result holds the response from a fetch.
type Result struct {
	URL        string
	FinalURL   string
	Body       string
	StatusCode int
	Header     http.Header
}

// Client is the polite HTTP transport used by one scraper. Each scraper
// owns its own Client and therefore its own cookie jar; nothing
// authenticated is shared across platforms. The user-agent rotation state
// is mutex-guarded so concurrent fetches through one client stay safe.
type Client struct {
	http    *http.Client
	opts    Options
	robots  *RobotsPolicy
	limiter *rate.Limiter

	mu    sync.Mutex
	agent string
	rnd   *rand.Rand
}

// NewClient builds a Client with a fresh cookie jar.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if len(opts.UserAgents) == 0 {
		opts.UserAgents = defaultUserAgents
	}
	robots := opts.Robots
	if robots == nil {
		robots = NewRobotsPolicy()
	}

	jar, _ := cookiejar.New(nil)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	// The limiter enforces the minimum spacing; the randomized delay on
	// top of it provides the jitter.
	every := opts.DelayMin
	if every <= 0 {
		every = time.Second
	}

	return &Client{
		http:    &http.Client{Timeout: opts.Timeout, Jar: jar},
		opts:    *opts,
		robots:  robots,
		limiter: rate.NewLimiter(rate.Every(every), 1),
		agent:   opts.UserAgents[rnd.Intn(len(opts.UserAgents))],
		rnd:     rnd,
	}
}

// UserAgent returns the currently selected user agent.
func (c *Client) UserAgent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agent
}

// maybeRotateAgent switches the user agent with a small probability to
// reduce fingerprinting, independent of retries.
func (c *Client) maybeRotateAgent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rnd.Float64() < rotateProbability {
		c.agent = c.opts.UserAgents[c.rnd.Intn(len(c.opts.UserAgents))]
	}
	return c.agent
}

// Delay sleeps for a random duration within the configured politeness
// bounds. Scrapers call it between result pages; the client also applies
// it before every request.
func (c *Client) Delay(ctx context.Context) error {
	window := c.opts.DelayMax - c.opts.DelayMin
	d := c.opts.DelayMin
	if window > 0 {
		c.mu.Lock()
		d += time.Duration(c.rnd.Int63n(int64(window)))
		c.mu.Unlock()
	}
	return sleepCtx(ctx, d)
}

// Get fetches a URL with the full politeness pipeline.
func (c *Client) Get(ctx context.Context, rawURL string) (*Result, error) {
	return c.do(ctx, http.MethodGet, rawURL, "", "")
}

// PostForm submits a URL-encoded form, e.g. for platform logins.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*Result, error) {
	return c.do(ctx, http.MethodPost, rawURL, form.Encode(), "application/x-www-form-urlencoded")
}

func (c *Client) do(ctx context.Context, method, rawURL, body, contentType string) (*Result, error) {
	agent := c.maybeRotateAgent()

	// Robots check happens before any network activity and is never retried.
	if !c.robots.Allowed(ctx, agent, rawURL) {
		return nil, &PolicyError{URL: rawURL, UserAgent: agent}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{URL: rawURL, Message: "canceled while rate limited", Cause: err}
	}
	if err := c.Delay(ctx); err != nil {
		return nil, &NetworkError{URL: rawURL, Message: "canceled during politeness delay", Cause: err}
	}

	var lastErr error
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, backoff(attempt)); err != nil {
				return nil, &NetworkError{URL: rawURL, Message: "canceled during backoff", Cause: err}
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, strings.NewReader(body))
		if err != nil {
			return nil, &NetworkError{URL: rawURL, Message: "failed to create request", Cause: err}
		}
		req.Header.Set("User-Agent", agent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if retryableStatus[resp.StatusCode] {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			lastErr = &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		result := &Result{
			URL:        rawURL,
			FinalURL:   resp.Request.URL.String(),
			Body:       string(respBody),
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return result, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
		}
		return result, nil
	}

	if se, ok := lastErr.(*StatusError); ok {
		return nil, se
	}
	return nil, &NetworkError{URL: rawURL, Message: "request failed after retries", Cause: lastErr}
}

// backoff returns the exponential wait before the given retry attempt.
func backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
