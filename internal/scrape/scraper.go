// Package scrape implements the per-platform acquisition layer: a common
// Scraper contract, the built-in platform variants (API, static HTML and
// browser-automated), a declarative generic variant, and the orchestrator
// that fans searches out across platforms.
package scrape

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nanotecnologista/jobradar/internal/config"
	"github.com/nanotecnologista/jobradar/internal/fetch"
	"github.com/nanotecnologista/jobradar/internal/types"
)

// Scraper is the contract every platform implements. Sources that require
// no authentication return true from Login unconditionally.
type Scraper interface {
	// Platform returns the registry name of the source.
	Platform() types.Platform

	// Login authenticates against the platform. Implementations that need
	// no auth succeed immediately.
	Login(ctx context.Context, creds types.Credentials) (bool, error)

	// Search runs a paginated keyword search and returns normalized
	// postings. The result is not yet deduplicated across platforms.
	Search(ctx context.Context, keywords []string) ([]types.JobPosting, error)

	// Details fetches a posting's detail page. Absence of individual
	// fields is not an error; only total failure to reach the page is.
	Details(ctx context.Context, jobURL string) (*types.JobDetails, error)

	// Close releases any resources held by the scraper (HTTP sessions,
	// browser handles).
	Close() error
}

// Factory builds a scraper for a platform from the shared configuration.
type Factory func(cfg *config.Config, robots *fetch.RobotsPolicy) (Scraper, error)

// Registry maps platform names to scraper factories. Adding a source means
// registering a factory (or a declarative config for the generic variant);
// the orchestrator needs no changes.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry pre-populated with the built-in platforms
// and any declarative configs found in cfg.PlatformConfigDir.
func NewRegistry(cfg *config.Config) (*Registry, error) {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register("gupy", func(cfg *config.Config, robots *fetch.RobotsPolicy) (Scraper, error) {
		return NewGupyScraper(cfg, robots), nil
	})
	r.Register("catho", func(cfg *config.Config, robots *fetch.RobotsPolicy) (Scraper, error) {
		return NewCathoScraper(cfg, robots), nil
	})
	r.Register("linkedin", func(cfg *config.Config, robots *fetch.RobotsPolicy) (Scraper, error) {
		return NewLinkedInScraper(cfg), nil
	})

	// Built-in declarative platforms plus any user-supplied config files.
	for name, pc := range BuiltinPlatformConfigs() {
		r.registerGeneric(name, pc)
	}
	if cfg != nil && cfg.PlatformConfigDir != "" {
		loaded, err := LoadPlatformConfigs(cfg.PlatformConfigDir)
		if err != nil {
			return nil, fmt.Errorf("loading platform configs: %w", err)
		}
		for name, pc := range loaded {
			r.registerGeneric(name, pc)
		}
	}

	return r, nil
}

func (r *Registry) registerGeneric(name string, pc PlatformConfig) {
	r.Register(name, func(cfg *config.Config, robots *fetch.RobotsPolicy) (Scraper, error) {
		return NewGenericScraper(name, pc, cfg, robots), nil
	})
}

// Register adds or replaces a factory under a platform name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New instantiates a scraper for the named platform.
func (r *Registry) New(name string, cfg *config.Config, robots *fetch.RobotsPolicy) (Scraper, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q", name)
	}
	return f(cfg, robots)
}

// Known reports whether a platform name is registered.
func (r *Registry) Known(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Platforms returns the sorted list of registered platform names.
func (r *Registry) Platforms() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// clientOptions translates config limits into fetch options. The robots
// policy is shared read-only across scrapers; cookie jars are not.
func clientOptions(cfg *config.Config, robots *fetch.RobotsPolicy) *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Robots = robots
	if cfg == nil {
		return opts
	}
	if cfg.TimeoutSeconds > 0 {
		opts.Timeout = secondsToDuration(cfg.TimeoutSeconds)
	}
	if cfg.MaxRetries > 0 {
		opts.MaxRetries = cfg.MaxRetries
	}
	if cfg.DelayMinSeconds > 0 {
		opts.DelayMin = secondsFloatToDuration(cfg.DelayMinSeconds)
	}
	if cfg.DelayMaxSeconds > 0 {
		opts.DelayMax = secondsFloatToDuration(cfg.DelayMaxSeconds)
	}
	return opts
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

func secondsFloatToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// dedupPostings collapses postings by their dedup key, first seen wins.
// Input order is preserved for the survivors.
func dedupPostings(jobs []types.JobPosting) ([]types.JobPosting, int) {
	seen := make(map[string]bool, len(jobs))
	out := make([]types.JobPosting, 0, len(jobs))
	removed := 0
	for _, job := range jobs {
		key := job.DedupKey()
		if key == "|" || seen[key] {
			if seen[key] {
				removed++
			}
			continue
		}
		seen[key] = true
		out = append(out, job)
	}
	return out, removed
}
