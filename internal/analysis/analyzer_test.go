package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanotecnologista/jobradar/internal/config"
	"github.com/nanotecnologista/jobradar/internal/types"
)

func strongDevPosting() types.JobPosting {
	return types.JobPosting{
		Platform: types.PlatformGupy,
		URL:      "https://portal.gupy.io/job/1",
		Title:    "Desenvolvedor Backend Júnior",
		Company:  "Acme Tech",
		Location: "Remoto",
		Description: "Vaga 100% remota para trabalhar com python, django, sql, docker, aws e git. " +
			"Buscamos comunicação clara, trabalho em equipe e inglês intermediário. " +
			"Requisito: 2 anos de experiência com backend.",
	}
}

func TestAnalyzer_FullResult(t *testing.T) {
	cfg := config.DefaultConfig()
	a := NewAnalyzer(&cfg)

	result := a.Analyze(strongDevPosting())

	assert.Equal(t, "dev", result.JobType)
	assert.Equal(t, "pt", result.Language)
	// 6 tech and 3 soft matches plus the entry-level and remote weights
	// cover everything the posting could award.
	assert.InDelta(t, 100.0, result.CompatibilityScore, 0.001)
	assert.True(t, result.Recommendations.ShouldApply)
	assert.Equal(t, types.PriorityHigh, result.Recommendations.Priority)
	assert.Contains(t, result.Keywords, "django")
	assert.Empty(t, result.Error)
	assert.True(t, result.Requirements.HasClearRequirements)
	assert.Contains(t, result.Requirements.Technologies, "python")
	assert.Contains(t, result.Requirements.ExperienceYears, 2)
	assert.Equal(t, WorkModeRemote, result.KeyInformation.WorkMode)
	assert.NotEmpty(t, result.Recommendations.ActionItems)
	assert.False(t, result.AnalyzedAt.IsZero())
}

func TestAnalyzer_Deterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	a := NewAnalyzer(&cfg)
	job := strongDevPosting()

	first := a.Analyze(job)
	for i := 0; i < 5; i++ {
		again := a.Analyze(job)
		assert.Equal(t, first.CompatibilityScore, again.CompatibilityScore)
		assert.Equal(t, first.JobType, again.JobType)
		assert.Equal(t, first.Requirements, again.Requirements)
		assert.Equal(t, first.Recommendations, again.Recommendations)
	}
}

func TestAnalyzer_JuniorRemotePostingScoresHigh(t *testing.T) {
	cfg := config.DefaultConfig()
	a := NewAnalyzer(&cfg)

	result := a.Analyze(types.JobPosting{
		Title:       "Desenvolvedor Python Júnior",
		Company:     "Boa Empresa",
		Description: "Trabalho remoto com Django",
	})

	assert.Equal(t, "dev", result.JobType)
	assert.GreaterOrEqual(t, result.CompatibilityScore, 60.0)
	assert.True(t, result.Recommendations.ShouldApply)
	assert.Contains(t,
		[]types.Priority{types.PriorityHigh, types.PriorityMedium},
		result.Recommendations.Priority)
}

func TestAnalyzer_BlacklistedCompanyScoresLower(t *testing.T) {
	cfg := config.DefaultConfig()
	clean := NewAnalyzer(&cfg)

	dirty := config.DefaultConfig()
	dirty.BlacklistCompanies = []string{"Acme Tech"}
	flagged := NewAnalyzer(&dirty)

	job := strongDevPosting()
	cleanScore := clean.Analyze(job).CompatibilityScore
	flaggedScore := flagged.Analyze(job).CompatibilityScore
	assert.InDelta(t, cleanScore*0.3, flaggedScore, 0.001)
}

func TestAnalyzer_SeniorTitleScoresLower(t *testing.T) {
	cfg := config.DefaultConfig()
	a := NewAnalyzer(&cfg)

	junior := strongDevPosting()
	senior := strongDevPosting()
	senior.Title = "Desenvolvedor Backend Sênior"

	assert.Less(t,
		a.Analyze(senior).CompatibilityScore,
		a.Analyze(junior).CompatibilityScore)
}

func TestAnalyzer_SeniorTermInBodyScoresLower(t *testing.T) {
	cfg := config.DefaultConfig()
	a := NewAnalyzer(&cfg)

	plain := strongDevPosting()
	body := strongDevPosting()
	body.Description += " Você reportará a um engenheiro especialista."

	plainScore := a.Analyze(plain).CompatibilityScore
	bodyScore := a.Analyze(body).CompatibilityScore
	assert.InDelta(t, plainScore*0.7, bodyScore, 0.001)
}

func TestAnalyzer_RemoteMentionScoresDespiteHybridMode(t *testing.T) {
	cfg := config.DefaultConfig()
	a := NewAnalyzer(&cfg)

	hybrid := types.JobPosting{
		Title:       "Developer",
		Description: "modelo híbrido com python",
	}
	hybridRemote := hybrid
	hybridRemote.Description = "modelo híbrido e home office com python"

	first := a.Analyze(hybrid)
	second := a.Analyze(hybridRemote)

	assert.Equal(t, WorkModeHybrid, first.KeyInformation.WorkMode)
	assert.Equal(t, WorkModeHybrid, second.KeyInformation.WorkMode)
	assert.InDelta(t, 50.0, first.CompatibilityScore, 0.001)
	assert.InDelta(t, 62.5, second.CompatibilityScore, 0.001)
}

func TestAnalyzer_WithRubricChangesThreshold(t *testing.T) {
	cfg := config.DefaultConfig()
	rubric := DefaultRubric()
	rubric.ApplyThreshold = 101
	a := NewAnalyzer(&cfg).WithRubric(rubric)

	result := a.Analyze(strongDevPosting())
	assert.False(t, result.Recommendations.ShouldApply)
}

func TestAnalyzer_NilConfig(t *testing.T) {
	a := NewAnalyzer(nil)
	result := a.Analyze(strongDevPosting())
	assert.Equal(t, "dev", result.JobType)
}

func TestAnalyzeBatch_PreservesOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	a := NewAnalyzer(&cfg)

	jobs := []types.JobPosting{
		{Title: "Desenvolvedor Python", Location: "Remoto"},
		{Title: "Assistente Administrativo", Location: "Remoto", Description: "excel, crm e atendimento"},
	}
	scored := a.AnalyzeBatch(jobs)

	require.Len(t, scored, 2)
	assert.Equal(t, "Desenvolvedor Python", scored[0].Job.Title)
	assert.Equal(t, "dev", scored[0].Result.JobType)
	assert.Equal(t, "admin", scored[1].Result.JobType)
}

func TestSummarize(t *testing.T) {
	scored := []types.ScoredJob{
		{Job: types.JobPosting{Title: "A"}, Result: types.AnalysisResult{
			CompatibilityScore: 90,
			Recommendations:    types.Recommendations{ShouldApply: true, Priority: types.PriorityHigh}}},
		{Job: types.JobPosting{Title: "B"}, Result: types.AnalysisResult{
			CompatibilityScore: 65,
			Recommendations:    types.Recommendations{ShouldApply: true, Priority: types.PriorityMedium}}},
		{Job: types.JobPosting{Title: "C"}, Result: types.AnalysisResult{
			CompatibilityScore: 10,
			Recommendations:    types.Recommendations{Priority: types.PriorityVeryLow}}},
	}

	summary := Summarize(scored, 2)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.ShouldApply)
	assert.Equal(t, 1, summary.TierCounts[types.PriorityHigh])
	assert.Equal(t, 1, summary.TierCounts[types.PriorityMedium])
	assert.Equal(t, 1, summary.TierCounts[types.PriorityVeryLow])
	assert.InDelta(t, 55.0, summary.AverageScore, 0.001)
	require.Len(t, summary.Top, 2)
	assert.Equal(t, "A", summary.Top[0].Job.Title)
	assert.Equal(t, "B", summary.Top[1].Job.Title)
}

func TestSummarize_TiesBreakByTitle(t *testing.T) {
	scored := []types.ScoredJob{
		{Job: types.JobPosting{Title: "Zeta"}, Result: types.AnalysisResult{CompatibilityScore: 50}},
		{Job: types.JobPosting{Title: "Alpha"}, Result: types.AnalysisResult{CompatibilityScore: 50}},
	}
	summary := Summarize(scored, 2)
	assert.Equal(t, "Alpha", summary.Top[0].Job.Title)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, 5)
	assert.Equal(t, 0, summary.Total)
	assert.Zero(t, summary.AverageScore)
	assert.Empty(t, summary.Top)
}
