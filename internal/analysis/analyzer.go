package analysis

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nanotecnologista/jobradar/internal/config"
	"github.com/nanotecnologista/jobradar/internal/types"
)

// maxKeywords bounds the frequent-token list attached to each result.
const maxKeywords = 10

// Analyzer runs the full analysis pipeline over postings: language
// detection, classification, requirements and key-information
// extraction, scoring and recommendations.
type Analyzer struct {
	rubric             Rubric
	profiles           map[string]SkillProfile
	blacklistCompanies []string
	blacklistKeywords  []string
}

// NewAnalyzer builds an analyzer with the default rubric and profiles,
// taking blacklists from the configuration.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	a := &Analyzer{
		rubric:   DefaultRubric(),
		profiles: DefaultProfiles(),
	}
	if cfg != nil {
		a.blacklistCompanies = cfg.BlacklistCompanies
		a.blacklistKeywords = cfg.BlacklistKeywords
	}
	return a
}

// WithRubric overrides the scoring weights, e.g. from a tuning file.
func (a *Analyzer) WithRubric(r Rubric) *Analyzer {
	a.rubric = r
	return a
}

// Rubric exposes the active scoring weights.
func (a *Analyzer) Rubric() Rubric { return a.rubric }

// Analyze produces the full result for one posting. A panic anywhere in
// the extraction path is converted into an error-marked result so one
// malformed posting never takes the batch down.
func (a *Analyzer) Analyze(job types.JobPosting) (result types.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ANALYSIS] panic analyzing %q: %v", job.Title, r)
			result = types.AnalysisResult{
				JobType:    "unknown",
				AnalyzedAt: time.Now(),
				Error:      fmt.Sprintf("analysis panic: %v", r),
			}
		}
	}()

	body := CleanText(strings.Join([]string{
		job.Description, job.Requirements, job.Benefits,
	}, " "))
	fullText := strings.ToLower(CleanText(job.Title + " " + job.Company + " " + body + " " + job.Location))

	jobType := Classify(job.Title, body, a.profiles)
	profile := a.profiles[jobType]

	reqs := ExtractRequirements(body, profile)
	info := ExtractKeyInformation(job)

	matchedTech, missingTech := matchSkills(fullText, lowerAll(profile.TechSkills))
	matchedSoft, _ := matchSkills(fullText, lowerAll(profile.SoftSkills))
	entryLevel := hasAnyMarker(fullText, profile.ExperienceLevels)

	score := a.rubric.Score(scoreInput{
		Text:            fullText,
		MatchedTech:     matchedTech,
		MatchedSoft:     matchedSoft,
		EntryLevelMatch: entryLevel,
		// The remote weight keys on any remote-work mention; a hybrid
		// arrangement only shows up in KeyInformation.WorkMode.
		RemoteConfirmed:  remoteRe.MatchString(fullText),
		BlacklistCompany: matchesBlacklist(job.Company, a.blacklistCompanies),
		BlacklistKeyword: matchesBlacklist(fullText, a.blacklistKeywords),
	})

	return types.AnalysisResult{
		JobType:            jobType,
		Language:           DetectLanguage(body),
		CompatibilityScore: score,
		Keywords:           ExtractKeywords(body, maxKeywords),
		Requirements:       reqs,
		KeyInformation:     info,
		Recommendations:    a.buildRecommendations(job, score, matchedTech, missingTech, entryLevel, reqs, info),
		AnalyzedAt:         time.Now(),
	}
}

// AnalyzeBatch scores a slice of postings, preserving input order.
func (a *Analyzer) AnalyzeBatch(jobs []types.JobPosting) []types.ScoredJob {
	scored := make([]types.ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		scored = append(scored, types.ScoredJob{Job: job, Result: a.Analyze(job)})
	}
	return scored
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func matchesBlacklist(text string, blacklist []string) bool {
	lower := strings.ToLower(text)
	for _, entry := range blacklist {
		if entry != "" && strings.Contains(lower, strings.ToLower(entry)) {
			return true
		}
	}
	return false
}
