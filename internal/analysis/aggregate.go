package analysis

import (
	"sort"

	"github.com/nanotecnologista/jobradar/internal/types"
)

// Summarize aggregates a scored batch for reporting: counts per tier,
// the average score, how many clear the apply threshold and the topN
// postings. Ordering is score descending with title as the tiebreaker,
// so equal batches summarize identically.
func Summarize(scored []types.ScoredJob, topN int) types.BatchSummary {
	summary := types.BatchSummary{
		Total: len(scored),
		TierCounts: map[types.Priority]int{
			types.PriorityHigh:    0,
			types.PriorityMedium:  0,
			types.PriorityLow:     0,
			types.PriorityVeryLow: 0,
		},
		Top: []types.ScoredJob{},
	}
	if len(scored) == 0 {
		return summary
	}

	total := 0.0
	for _, s := range scored {
		summary.TierCounts[s.Result.Recommendations.Priority]++
		if s.Result.Recommendations.ShouldApply {
			summary.ShouldApply++
		}
		total += s.Result.CompatibilityScore
	}
	summary.AverageScore = total / float64(len(scored))

	ranked := make([]types.ScoredJob, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Result.CompatibilityScore != ranked[j].Result.CompatibilityScore {
			return ranked[i].Result.CompatibilityScore > ranked[j].Result.CompatibilityScore
		}
		return ranked[i].Job.Title < ranked[j].Job.Title
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	summary.Top = ranked

	return summary
}
