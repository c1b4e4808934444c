package analysis

import (
	"fmt"
	"strings"

	"github.com/nanotecnologista/jobradar/internal/types"
)

// PriorityFor maps a score to its application tier.
func PriorityFor(score float64) types.Priority {
	switch {
	case score >= 80:
		return types.PriorityHigh
	case score >= 60:
		return types.PriorityMedium
	case score >= 40:
		return types.PriorityLow
	default:
		return types.PriorityVeryLow
	}
}

// buildRecommendations turns the score and extraction results into
// concrete guidance.
func (a *Analyzer) buildRecommendations(job types.JobPosting, score float64,
	matched, missing []string, entryLevel bool,
	reqs types.RequirementsAnalysis, info types.KeyInformation) types.Recommendations {

	rec := types.Recommendations{
		ShouldApply: score >= a.rubric.ApplyThreshold,
		Priority:    PriorityFor(score),
		ActionItems: []string{},
		Concerns:    []string{},
		Strengths:   []string{},
	}

	switch rec.Priority {
	case types.PriorityHigh:
		rec.ActionItems = append(rec.ActionItems, "strong match, apply as soon as possible")
	case types.PriorityMedium:
		rec.ActionItems = append(rec.ActionItems, "good match, tailor the application before sending")
	case types.PriorityLow:
		rec.ActionItems = append(rec.ActionItems, "partial match, apply only if volume is low this week")
	default:
		rec.ActionItems = append(rec.ActionItems, "weak match, skip unless something else stands out")
	}

	if len(missing) > 0 {
		top := missing
		if len(top) > 3 {
			top = top[:3]
		}
		rec.ActionItems = append(rec.ActionItems,
			fmt.Sprintf("skills to brush up on: %s", strings.Join(top, ", ")))
	}

	if len(matched) > 0 {
		top := matched
		if len(top) > 5 {
			top = top[:5]
		}
		rec.Strengths = append(rec.Strengths,
			fmt.Sprintf("matches your stack: %s", strings.Join(top, ", ")))
	}
	if entryLevel {
		rec.Strengths = append(rec.Strengths, "mentions entry-level terms")
	}
	if info.WorkMode == WorkModeRemote {
		rec.Strengths = append(rec.Strengths, "confirmed remote position")
	}
	if len(info.SalaryMentions) > 0 {
		rec.Strengths = append(rec.Strengths, "salary information disclosed")
	}

	if isSeniorTitle(job.Title) {
		rec.Concerns = append(rec.Concerns, "title suggests a senior-level role")
	}
	if !reqs.HasClearRequirements {
		rec.Concerns = append(rec.Concerns, "posting has no clear requirements section")
	}
	if info.WorkMode == WorkModeHybrid || info.WorkMode == WorkModeOnsite {
		rec.Concerns = append(rec.Concerns, "work mode may not be fully remote")
	}
	if len(reqs.ExperienceYears) > 0 && maxInt(reqs.ExperienceYears) >= 5 {
		rec.Concerns = append(rec.Concerns,
			fmt.Sprintf("asks for up to %d years of experience", maxInt(reqs.ExperienceYears)))
	}

	return rec
}

func maxInt(values []int) int {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
