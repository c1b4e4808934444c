package types

import "time"

// Priority tiers for application recommendations.
type Priority string

const (
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityLow     Priority = "low"
	PriorityVeryLow Priority = "very_low"
)

// AnalysisResult is attached 1:1 to a JobPosting after classification.
// For fixed input text and rubric configuration the result is bit-identical
// across runs; there is no randomness anywhere in the analysis path.
type AnalysisResult struct {
	JobType            string               `json:"job_type"`
	Language           string               `json:"language"`
	CompatibilityScore float64              `json:"compatibility_score"`
	Keywords           []string             `json:"keywords"`
	Requirements       RequirementsAnalysis `json:"requirements_analysis"`
	KeyInformation     KeyInformation       `json:"key_information"`
	Recommendations    Recommendations      `json:"recommendations"`
	AnalyzedAt         time.Time            `json:"analyzed_at"`

	// Error is set when analysis failed; the result then carries
	// job_type "unknown" and a zero score instead of aborting the batch.
	Error string `json:"error,omitempty"`
}

// RequirementsAnalysis holds structured requirements extracted from free text.
type RequirementsAnalysis struct {
	Mandatory            []string `json:"mandatory_requirements"`
	Desired              []string `json:"desired_requirements"`
	ExperienceYears      []int    `json:"experience_years"`
	Technologies         []string `json:"technologies"`
	HasClearRequirements bool     `json:"has_clear_requirements"`
}

// KeyInformation holds salary, benefit and schedule mentions pulled from a posting.
type KeyInformation struct {
	SalaryMentions   []string `json:"salary_info"`
	Benefits         []string `json:"benefits"`
	WorkMode         string   `json:"work_mode"`
	ScheduleMentions []string `json:"schedule_info"`
}

// Recommendations summarizes whether and how to act on a posting.
type Recommendations struct {
	ShouldApply bool     `json:"should_apply"`
	Priority    Priority `json:"priority"`
	ActionItems []string `json:"action_items"`
	Concerns    []string `json:"concerns"`
	Strengths   []string `json:"strengths"`
}

// ScoredJob pairs a posting with its analysis for handoff to persistence
// and notification collaborators.
type ScoredJob struct {
	Job    JobPosting     `json:"job"`
	Result AnalysisResult `json:"analysis"`
}

// BatchSummary is the aggregate produced for notification formatters:
// counts by compatibility tier, the top postings and the average score.
type BatchSummary struct {
	Total        int              `json:"total"`
	TierCounts   map[Priority]int `json:"tier_counts"`
	AverageScore float64          `json:"average_score"`
	ShouldApply  int              `json:"should_apply"`
	Top          []ScoredJob      `json:"top"`
}
