package analysis

import (
	"regexp"
	"strings"

	"github.com/nanotecnologista/jobradar/internal/types"
)

// Work modes reported in key information.
const (
	WorkModeRemote      = "remote"
	WorkModeHybrid      = "hybrid"
	WorkModeOnsite      = "onsite"
	WorkModeUnspecified = "unspecified"
)

var salaryRes = []*regexp.Regexp{
	regexp.MustCompile(`R\$\s?[\d.]+(?:,\d{2})?(?:\s*(?:a|à|-|até)\s*R\$\s?[\d.]+(?:,\d{2})?)?`),
	regexp.MustCompile(`(?i)(?:USD|US\$|\$)\s?[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)salário\s+a\s+combinar`),
	regexp.MustCompile(`(?i)competitive\s+salary`),
}

var knownBenefits = []string{
	"vale refeição", "vale alimentação", "vale transporte",
	"plano de saúde", "plano odontológico", "gympass", "wellhub",
	"auxílio home office", "auxílio creche", "seguro de vida",
	"day off", "participação nos lucros", "plr",
	"health insurance", "dental", "stock options", "401k",
	"paid time off", "flexible hours", "horário flexível",
}

var scheduleRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)segunda\s+(?:a|à)\s+(?:sexta|sábado)`),
	regexp.MustCompile(`(?i)\d{1,2}h(?:\d{2})?\s*(?:às|as|até|-)\s*\d{1,2}h(?:\d{2})?`),
	regexp.MustCompile(`(?i)escala\s+\d+x\d+`),
	regexp.MustCompile(`(?i)(?:full[- ]time|part[- ]time|meio período|período integral)`),
}

var hybridRe = regexp.MustCompile(`(?i)híbrid|hybrid`)
var onsiteRe = regexp.MustCompile(`(?i)presencial|on[- ]?site|in[- ]office`)
var remoteRe = regexp.MustCompile(`(?i)remot|home[- ]office|anywhere`)

// ExtractKeyInformation pulls salary, benefit, work-mode and schedule
// mentions out of a posting. All lists are deduplicated in first-seen
// order.
func ExtractKeyInformation(job types.JobPosting) types.KeyInformation {
	text := CleanText(strings.Join([]string{
		job.Title, job.Location, job.Description, job.Requirements,
		job.Benefits, job.SalaryText, job.ContractType,
	}, " "))
	lower := strings.ToLower(text)

	info := types.KeyInformation{
		SalaryMentions:   []string{},
		Benefits:         []string{},
		ScheduleMentions: []string{},
		WorkMode:         WorkModeUnspecified,
	}

	seen := make(map[string]bool)
	for _, re := range salaryRes {
		for _, match := range re.FindAllString(text, -1) {
			match = strings.TrimSpace(match)
			if !seen[match] {
				seen[match] = true
				info.SalaryMentions = append(info.SalaryMentions, match)
			}
		}
	}

	for _, benefit := range knownBenefits {
		if strings.Contains(lower, benefit) {
			info.Benefits = append(info.Benefits, benefit)
		}
	}

	seen = make(map[string]bool)
	for _, re := range scheduleRes {
		for _, match := range re.FindAllString(text, -1) {
			match = strings.TrimSpace(match)
			if !seen[match] {
				seen[match] = true
				info.ScheduleMentions = append(info.ScheduleMentions, match)
			}
		}
	}

	// Hybrid and onsite mentions outrank remote: postings often say
	// "remoto" loosely while describing a hybrid arrangement.
	switch {
	case hybridRe.MatchString(lower):
		info.WorkMode = WorkModeHybrid
	case onsiteRe.MatchString(lower):
		info.WorkMode = WorkModeOnsite
	case remoteRe.MatchString(lower):
		info.WorkMode = WorkModeRemote
	}

	return info
}
