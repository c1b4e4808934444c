package fetch

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser is a long-lived headless browser session. Unlike a one-shot
// render, the session keeps its cookies and logged-in state across
// navigations, which platforms behind an authentication wall require.
// Requires Chrome/Chromium to be installed on the system.
type Browser struct {
	ctx     context.Context
	cancels []context.CancelFunc
	timeout time.Duration
	verbose bool
}

// BrowserOptions configures a Browser session.
type BrowserOptions struct {
	Headless bool
	Timeout  time.Duration
	Verbose  bool
}

// NewBrowser starts a browser session. Close must be called to release
// the underlying Chrome process.
func NewBrowser(opts BrowserOptions) (*Browser, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
		)...,
	)

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser now so a missing Chrome fails fast instead of on
	// the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	if opts.Verbose {
		log.Printf("[BROWSER] session started (headless=%v)", opts.Headless)
	}

	return &Browser{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
		timeout: opts.Timeout,
		verbose: opts.Verbose,
	}, nil
}

// Run executes chromedp actions in the session with the configured
// timeout. The caller context only bounds the wait; the session itself
// survives for later calls.
func (b *Browser) Run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(b.ctx, b.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- chromedp.Run(runCtx, actions...) }()

	select {
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// HTML navigates to a URL, waits for the body plus a settle period for
// scripts, and returns the rendered document.
func (b *Browser) HTML(ctx context.Context, url string, settle time.Duration) (string, error) {
	if b.verbose {
		log.Printf("[BROWSER] rendering %s", url)
	}
	var html string
	err := b.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	if b.verbose {
		log.Printf("[BROWSER] rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

// Location returns the current page URL.
func (b *Browser) Location(ctx context.Context) (string, error) {
	var loc string
	err := b.Run(ctx, chromedp.Location(&loc))
	return loc, err
}

// Close tears down the session and the Chrome process.
func (b *Browser) Close() error {
	for _, cancel := range b.cancels {
		cancel()
	}
	return nil
}
