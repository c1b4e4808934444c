// Package filter narrows raw scrape results down to postings worth
// analyzing. Filters only ever remove postings, never mutate them, so a
// chain's output is always a subsequence of its input.
package filter

import (
	"log"
	"strings"

	"github.com/nanotecnologista/jobradar/internal/types"
)

// Filter decides whether one posting survives.
type Filter interface {
	Name() string
	Keep(job types.JobPosting) bool
}

// Chain applies filters in order and logs how many postings each one
// removed.
type Chain struct {
	filters []Filter
}

// NewChain builds a chain from the given filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// DefaultChain is the standard pipeline: keyword relevance, then remote
// confirmation, then blacklists.
func DefaultChain(keywords, blacklistCompanies, blacklistKeywords []string) *Chain {
	return NewChain(
		&KeywordFilter{Keywords: keywords},
		&RemoteFilter{},
		&BlacklistFilter{Companies: blacklistCompanies, Keywords: blacklistKeywords},
	)
}

// Apply runs every filter over the postings and returns the survivors
// in their original order.
func (c *Chain) Apply(jobs []types.JobPosting) []types.JobPosting {
	for _, f := range c.filters {
		kept := jobs[:0:0]
		for _, job := range jobs {
			if f.Keep(job) {
				kept = append(kept, job)
			}
		}
		if removed := len(jobs) - len(kept); removed > 0 {
			log.Printf("[FILTER] %s removed %d of %d postings", f.Name(), removed, len(jobs))
		}
		jobs = kept
	}
	return jobs
}

// KeywordFilter keeps postings that mention at least one search keyword
// in the title or description. An empty keyword list keeps everything.
type KeywordFilter struct {
	Keywords []string
}

func (f *KeywordFilter) Name() string { return "keyword" }

func (f *KeywordFilter) Keep(job types.JobPosting) bool {
	if len(f.Keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(job.Title + " " + job.Description + " " + job.Requirements)
	for _, keyword := range f.Keywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// remoteIndicators mark a posting as remote-friendly in either language.
var remoteIndicators = []string{
	"remoto", "remota", "remote", "home office", "home-office",
	"anywhere", "trabalho remoto", "100% remoto", "fully remote",
}

// RemoteFilter keeps postings whose text confirms remote work. Postings
// with no location at all get the benefit of the doubt since most
// platforms are already queried with a remote-only filter.
type RemoteFilter struct{}

func (f *RemoteFilter) Name() string { return "remote" }

func (f *RemoteFilter) Keep(job types.JobPosting) bool {
	if strings.TrimSpace(job.Location) == "" {
		return true
	}
	haystack := strings.ToLower(job.Location + " " + job.Title + " " + job.Description)
	for _, indicator := range remoteIndicators {
		if strings.Contains(haystack, indicator) {
			return true
		}
	}
	return false
}

// BlacklistFilter drops postings from unwanted companies or containing
// unwanted terms.
type BlacklistFilter struct {
	Companies []string
	Keywords  []string
}

func (f *BlacklistFilter) Name() string { return "blacklist" }

func (f *BlacklistFilter) Keep(job types.JobPosting) bool {
	company := strings.ToLower(job.Company)
	for _, blocked := range f.Companies {
		if blocked != "" && strings.Contains(company, strings.ToLower(blocked)) {
			return false
		}
	}
	haystack := strings.ToLower(job.Title + " " + job.Description)
	for _, blocked := range f.Keywords {
		if blocked != "" && strings.Contains(haystack, strings.ToLower(blocked)) {
			return false
		}
	}
	return true
}
