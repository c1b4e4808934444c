package types

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus tracks the lifecycle of one orchestrator run.
type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionPartial   SessionStatus = "partial"
	SessionFailed    SessionStatus = "failed"
)

// PlatformError records a failure scoped to a single platform within a session.
type PlatformError struct {
	Platform string `json:"platform"`
	Stage    string `json:"stage"` // init, login, search, details
	Message  string `json:"message"`
}

// ScrapeSession captures one orchestrator invocation across a set of
// platforms for a job type. Individual platform failures never fail the
// session as a whole; they are recorded here instead.
type ScrapeSession struct {
	ID           uuid.UUID       `json:"id"`
	Platforms    []string        `json:"platforms"`
	JobType      string          `json:"job_type"`
	Status       SessionStatus   `json:"status"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at,omitempty"`
	// JobCounts records per-platform postings that survived filtering.
	JobCounts    map[string]int  `json:"job_counts"`
	Errors       []PlatformError `json:"errors,omitempty"`
	DedupRemoved int             `json:"dedup_removed"`
}

// NewScrapeSession creates a pending session for the given platforms.
func NewScrapeSession(platforms []string, jobType string) *ScrapeSession {
	return &ScrapeSession{
		ID:        uuid.New(),
		Platforms: platforms,
		JobType:   jobType,
		Status:    SessionPending,
		JobCounts: make(map[string]int),
	}
}

// RecordError appends a platform-scoped error to the session.
func (s *ScrapeSession) RecordError(platform, stage, message string) {
	s.Errors = append(s.Errors, PlatformError{Platform: platform, Stage: stage, Message: message})
}

// FailedPlatforms returns the set of platforms that recorded at least one error.
func (s *ScrapeSession) FailedPlatforms() map[string]bool {
	failed := make(map[string]bool)
	for _, e := range s.Errors {
		failed[e.Platform] = true
	}
	return failed
}
