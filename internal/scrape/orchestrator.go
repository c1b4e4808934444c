package scrape

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nanotecnologista/jobradar/internal/config"
	"github.com/nanotecnologista/jobradar/internal/fetch"
	"github.com/nanotecnologista/jobradar/internal/filter"
	"github.com/nanotecnologista/jobradar/internal/types"
)

// Orchestrator fans one search out across every configured platform,
// applies the filter chain, deduplicates across platforms and tracks
// the run in a session. A platform failing at any stage is recorded and
// skipped; it never aborts the other platforms.
type Orchestrator struct {
	cfg      *config.Config
	registry *Registry
	robots   *fetch.RobotsPolicy
	chain    *filter.Chain

	session  *types.ScrapeSession
	scrapers map[string]Scraper // initialized platforms
	active   map[string]bool    // platforms that passed login

	mu sync.Mutex // guards session counters and error records
}

// NewOrchestrator wires an orchestrator for the configured platforms.
// The robots policy cache is shared across all scrapers in the run.
func NewOrchestrator(cfg *config.Config, registry *Registry) *Orchestrator {
	keywords := cfg.Keywords(cfg.JobType)
	return &Orchestrator{
		cfg:      cfg,
		registry: registry,
		robots:   fetch.NewRobotsPolicy(),
		chain:    filter.DefaultChain(keywords, cfg.BlacklistCompanies, cfg.BlacklistKeywords),
		scrapers: make(map[string]Scraper),
		active:   make(map[string]bool),
	}
}

// Session returns the current session state, nil before Initialize.
func (o *Orchestrator) Session() *types.ScrapeSession { return o.session }

// Initialize creates the session and instantiates one scraper per
// configured platform. Unknown platform names are recorded and skipped.
func (o *Orchestrator) Initialize(ctx context.Context) error {
	o.session = types.NewScrapeSession(o.cfg.Platforms, o.cfg.JobType)
	o.session.Status = types.SessionRunning
	o.session.StartedAt = time.Now()

	for _, name := range o.cfg.Platforms {
		if !o.registry.Known(name) {
			log.Printf("[ORCHESTRATOR] unknown platform %q, skipping", name)
			o.session.RecordError(name, "init", "platform not registered")
			continue
		}
		s, err := o.registry.New(name, o.cfg, o.robots)
		if err != nil {
			log.Printf("[ORCHESTRATOR] failed to build scraper for %s: %v", name, err)
			o.session.RecordError(name, "init", err.Error())
			continue
		}
		o.scrapers[name] = s
	}
	log.Printf("[ORCHESTRATOR] session %s started with %d of %d platforms",
		o.session.ID, len(o.scrapers), len(o.cfg.Platforms))
	return nil
}

// LoginAll authenticates every initialized scraper. Scrapers that need
// no credentials succeed immediately; a login failure deactivates only
// that platform.
func (o *Orchestrator) LoginAll(ctx context.Context) {
	for name, s := range o.scrapers {
		ok, err := s.Login(ctx, o.cfg.Credentials[name])
		if err != nil {
			log.Printf("[ORCHESTRATOR] login failed for %s: %v", name, err)
			o.session.RecordError(name, "login", err.Error())
			continue
		}
		if !ok {
			o.session.RecordError(name, "login", "login rejected")
			continue
		}
		o.active[name] = true
	}
}

// SearchAll runs the keyword search on every active platform with a
// bounded worker pool. The filter chain runs inside each platform task,
// so session counts reflect postings that survived filtering; the
// cross-platform dedup happens in the final merge, first seen wins.
func (o *Orchestrator) SearchAll(ctx context.Context) ([]types.JobPosting, error) {
	keywords := o.cfg.Keywords(o.cfg.JobType)

	g, gctx := errgroup.WithContext(ctx)
	if o.cfg.MaxConcurrency > 0 {
		g.SetLimit(o.cfg.MaxConcurrency)
	}

	var all []types.JobPosting
	for name, s := range o.scrapers {
		if !o.active[name] {
			continue
		}
		name, s := name, s
		g.Go(func() error {
			jobs, err := s.Search(gctx, keywords)
			if err != nil {
				o.mu.Lock()
				defer o.mu.Unlock()
				log.Printf("[ORCHESTRATOR] search failed for %s: %v", name, err)
				o.session.RecordError(name, "search", err.Error())
				return nil
			}
			kept := o.chain.Apply(jobs)
			o.mu.Lock()
			defer o.mu.Unlock()
			o.session.JobCounts[name] = len(kept)
			all = append(all, kept...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	unique, removed := dedupPostings(all)
	o.session.DedupRemoved = removed
	log.Printf("[ORCHESTRATOR] %d postings after filtering, %d duplicates removed",
		len(unique), removed)
	return unique, nil
}

// EnrichDetails fetches detail pages concurrently and merges them into
// the postings. A posting whose detail fetch fails (or that has no URL)
// passes through unchanged; enrichment is best effort.
func (o *Orchestrator) EnrichDetails(ctx context.Context, jobs []types.JobPosting) []types.JobPosting {
	g, gctx := errgroup.WithContext(ctx)
	if o.cfg.MaxConcurrency > 0 {
		g.SetLimit(o.cfg.MaxConcurrency)
	}

	enriched := make([]types.JobPosting, len(jobs))
	copy(enriched, jobs)

	for i := range enriched {
		i := i
		job := enriched[i]
		s, ok := o.scrapers[string(job.Platform)]
		if !ok || job.URL == "" {
			continue
		}
		g.Go(func() error {
			details, err := s.Details(gctx, job.URL)
			if err != nil {
				o.mu.Lock()
				o.session.RecordError(string(job.Platform), "details", err.Error())
				o.mu.Unlock()
				return nil
			}
			enriched[i] = job.Merged(details)
			return nil
		})
	}
	_ = g.Wait()
	return enriched
}

// Finalize stamps the session outcome: completed when every platform
// ran clean, failed when none produced anything, partial otherwise.
func (o *Orchestrator) Finalize() {
	failed := o.session.FailedPlatforms()
	switch {
	case len(o.session.Errors) == 0:
		o.session.Status = types.SessionCompleted
	case len(failed) >= len(o.cfg.Platforms) && totalJobs(o.session.JobCounts) == 0:
		o.session.Status = types.SessionFailed
	default:
		o.session.Status = types.SessionPartial
	}
	o.session.FinishedAt = time.Now()
	log.Printf("[ORCHESTRATOR] session %s finished: %s", o.session.ID, o.session.Status)
}

// CloseAll releases every scraper, tolerating individual close errors.
func (o *Orchestrator) CloseAll() {
	for name, s := range o.scrapers {
		if err := s.Close(); err != nil {
			log.Printf("[ORCHESTRATOR] close failed for %s: %v", name, err)
		}
	}
}

// Run drives the full acquisition flow and returns the filtered,
// deduplicated, detail-enriched postings together with the session.
func (o *Orchestrator) Run(ctx context.Context) ([]types.JobPosting, *types.ScrapeSession, error) {
	if err := o.Initialize(ctx); err != nil {
		return nil, o.session, err
	}
	defer o.CloseAll()

	o.LoginAll(ctx)
	jobs, err := o.SearchAll(ctx)
	if err != nil {
		o.session.Status = types.SessionFailed
		o.session.FinishedAt = time.Now()
		return nil, o.session, err
	}
	jobs = o.EnrichDetails(ctx, jobs)
	o.Finalize()
	return jobs, o.session, nil
}

// PlatformStatus reports each configured platform's condition after a
// run: ok, inactive (login failed), or the stage that broke it.
func (o *Orchestrator) PlatformStatus() map[string]string {
	status := make(map[string]string, len(o.cfg.Platforms))
	failedStage := make(map[string]string)
	for _, e := range o.session.Errors {
		if _, seen := failedStage[e.Platform]; !seen {
			failedStage[e.Platform] = e.Stage
		}
	}
	for _, name := range o.cfg.Platforms {
		switch {
		case failedStage[name] != "":
			status[name] = "failed at " + failedStage[name]
		case o.active[name]:
			status[name] = "ok"
		default:
			status[name] = "inactive"
		}
	}
	return status
}

func totalJobs(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
