package analysis

import "strings"

// Rubric holds every tunable number in the compatibility score. The
// defaults target early-career candidates: senior titles are penalized
// and inclusion programs boosted.
type Rubric struct {
	TechSkillPoints  float64 `json:"tech_skill_points"`
	SoftSkillPoints  float64 `json:"soft_skill_points"`
	ExperiencePoints float64 `json:"experience_points"` // granted once when an entry-level term appears
	RemotePoints     float64 `json:"remote_points"`     // granted once when remote work is confirmed

	SeniorPenalty           float64 `json:"senior_penalty"`
	InclusionBoost          float64 `json:"inclusion_boost"`
	BlacklistCompanyPenalty float64 `json:"blacklist_company_penalty"`
	BlacklistKeywordPenalty float64 `json:"blacklist_keyword_penalty"`

	ApplyThreshold float64 `json:"apply_threshold"`
}

// DefaultRubric returns the standard scoring weights.
func DefaultRubric() Rubric {
	return Rubric{
		TechSkillPoints:         4,
		SoftSkillPoints:         2,
		ExperiencePoints:        3,
		RemotePoints:            1,
		SeniorPenalty:           0.7,
		InclusionBoost:          1.2,
		BlacklistCompanyPenalty: 0.3,
		BlacklistKeywordPenalty: 0.2,
		ApplyThreshold:          60,
	}
}

var seniorIndicators = []string{
	"sênior", "senior", " sr", "sr.", "pleno", "especialista",
	"lead", "staff", "principal", "coordenador", "gerente", "manager",
	"head of", "arquiteto",
}

var inclusionIndicators = []string{
	"pcd", "pessoa com deficiência", "pessoas com deficiência",
	"vaga afirmativa", "diversidade", "exclusiva para mulheres",
	"grupos minorizados", "affirmative", "underrepresented",
}

// scoreInput gathers everything the rubric consumes for one posting.
type scoreInput struct {
	Text             string // full posting text, title included
	MatchedTech      []string
	MatchedSoft      []string
	EntryLevelMatch  bool
	RemoteConfirmed  bool
	BlacklistCompany bool
	BlacklistKeyword bool
}

// Score computes the compatibility score: the fraction of attainable
// rubric weight the posting earned, scaled to 0..100, then adjusted
// multiplicatively and clamped to [0, 100]. Attainable weight counts
// each matched skill at full value plus the one-shot entry-level and
// remote components, so a posting that matches skills but confirms
// neither entry-level fit nor remote work cannot reach 100.
func (r Rubric) Score(in scoreInput) float64 {
	awarded := float64(len(in.MatchedTech))*r.TechSkillPoints +
		float64(len(in.MatchedSoft))*r.SoftSkillPoints
	possible := awarded + r.ExperiencePoints + r.RemotePoints
	if in.EntryLevelMatch {
		awarded += r.ExperiencePoints
	}
	if in.RemoteConfirmed {
		awarded += r.RemotePoints
	}

	score := 0.0
	if possible > 0 {
		score = awarded / possible * 100
	}

	text := strings.ToLower(in.Text)
	if hasAnyMarker(text, seniorIndicators) {
		score *= r.SeniorPenalty
	}
	if hasAnyMarker(text, inclusionIndicators) {
		score *= r.InclusionBoost
	}
	if in.BlacklistCompany {
		score *= r.BlacklistCompanyPenalty
	}
	if in.BlacklistKeyword {
		score *= r.BlacklistKeywordPenalty
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func isSeniorTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, indicator := range seniorIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// matchSkills returns the profile skills present in the text, in
// profile order, along with the ones that are not.
func matchSkills(text string, skills []string) (matched, missing []string) {
	for _, skill := range skills {
		if containsWord(text, strings.ToLower(skill)) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}
