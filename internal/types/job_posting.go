// Package types provides type definitions for structured data used throughout the jobradar system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// Platform identifies a supported job source.
type Platform string

// Supported platforms. Generic declarative scrapers register additional
// names at runtime; these are the built-in ones.
const (
	PlatformGupy     Platform = "gupy"
	PlatformCatho    Platform = "catho"
	PlatformLinkedIn Platform = "linkedin"
)

// SourceKind records how a posting was acquired.
type SourceKind string

const (
	SourceAPI         SourceKind = "api"
	SourceHTMLListing SourceKind = "html-listing"
	SourceHTMLPost    SourceKind = "html-post"
)

// JobPosting is the canonical normalized unit emitted by every scraper.
// A posting is immutable once scraped; detail enrichment produces a new
// merged record via Merged rather than mutating in place.
type JobPosting struct {
	Platform   Platform `json:"platform"`
	ExternalID string   `json:"external_id,omitempty"`
	URL        string   `json:"url"`

	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements,omitempty"`
	Benefits     string     `json:"benefits,omitempty"`
	SalaryText   string     `json:"salary_text,omitempty"`
	ContractType string     `json:"contract_type,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ScrapedAt    time.Time  `json:"scraped_at"`

	SourceKind SourceKind        `json:"source_kind"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// DedupKey returns the identity key used when collapsing postings across
// platforms: the URL when present, otherwise a (title, company) composite.
func (j *JobPosting) DedupKey() string {
	if j.URL != "" {
		return j.URL
	}
	return strings.ToLower(strings.TrimSpace(j.Title)) + "|" + strings.ToLower(strings.TrimSpace(j.Company))
}

// IdentityKey returns the natural persistence key: (platform, external_id)
// when an external ID exists, otherwise (platform, url).
func (j *JobPosting) IdentityKey() string {
	if j.ExternalID != "" {
		return string(j.Platform) + ":" + j.ExternalID
	}
	return string(j.Platform) + ":" + j.URL
}

// JobDetails holds fields fetched from a posting's detail page.
// All fields are optional; empty fields leave the original record unchanged.
type JobDetails struct {
	Description  string            `json:"description,omitempty"`
	Requirements string            `json:"requirements,omitempty"`
	Benefits     string            `json:"benefits,omitempty"`
	ContractType string            `json:"contract_type,omitempty"`
	SalaryText   string            `json:"salary_text,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// Merged returns a copy of the posting with detail fields merged in.
// Identity fields (platform, external ID, URL) are never overwritten.
func (j JobPosting) Merged(d *JobDetails) JobPosting {
	if d == nil {
		return j
	}
	if d.Description != "" {
		j.Description = d.Description
	}
	if d.Requirements != "" {
		j.Requirements = d.Requirements
	}
	if d.Benefits != "" {
		j.Benefits = d.Benefits
	}
	if d.ContractType != "" {
		j.ContractType = d.ContractType
	}
	if d.SalaryText != "" {
		j.SalaryText = d.SalaryText
	}
	if len(d.Extra) > 0 {
		merged := make(map[string]string, len(j.Extra)+len(d.Extra))
		for k, v := range j.Extra {
			merged[k] = v
		}
		for k, v := range d.Extra {
			merged[k] = v
		}
		j.Extra = merged
	}
	return j
}

// Credentials holds login information for a platform.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IsZero reports whether no credentials were configured.
func (c Credentials) IsZero() bool {
	return c.Email == "" || c.Password == ""
}
