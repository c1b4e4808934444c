package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nanotecnologista/jobradar/internal/types"
)

// maxRequirementItems caps each extracted requirement list.
const maxRequirementItems = 5

// Markers that flag a sentence as a hard requirement or a nice-to-have,
// in both posting languages.
var (
	mandatoryMarkers = []string{
		"obrigatório", "obrigatória", "imprescindível", "necessário",
		"necessária", "requisito", "exigido", "exige-se",
		"required", "must have", "must-have", "requirement", "essential",
	}
	desiredMarkers = []string{
		"desejável", "diferencial", "será um plus", "é um plus",
		"nice to have", "nice-to-have", "desirable", "preferred", "bonus",
	}
)

// experienceRes match "3 anos", "5+ years", "experiência de 2 anos".
var experienceRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:anos?|years?)\b`),
	regexp.MustCompile(`(?i)(?:experiência|experience)\D{0,20}?(\d{1,2})`),
}

// ExtractRequirements pulls structured requirements out of free-form
// posting text. Sentences mentioning a marker land in the matching
// bucket, capped so one verbose posting cannot flood the result.
func ExtractRequirements(text string, profile SkillProfile) types.RequirementsAnalysis {
	cleaned := CleanText(text)
	lower := strings.ToLower(cleaned)

	result := types.RequirementsAnalysis{
		Mandatory:       []string{},
		Desired:         []string{},
		ExperienceYears: []int{},
		Technologies:    []string{},
	}

	for _, sentence := range splitSentences(cleaned) {
		lowerSentence := strings.ToLower(sentence)
		switch {
		case hasAnyMarker(lowerSentence, desiredMarkers):
			if len(result.Desired) < maxRequirementItems {
				result.Desired = append(result.Desired, sentence)
			}
		case hasAnyMarker(lowerSentence, mandatoryMarkers):
			if len(result.Mandatory) < maxRequirementItems {
				result.Mandatory = append(result.Mandatory, sentence)
			}
		}
	}

	seenYears := make(map[int]bool)
	for _, re := range experienceRes {
		for _, match := range re.FindAllStringSubmatch(cleaned, -1) {
			years, err := strconv.Atoi(match[1])
			if err != nil || years == 0 || years > 30 || seenYears[years] {
				continue
			}
			seenYears[years] = true
			result.ExperienceYears = append(result.ExperienceYears, years)
		}
	}

	for _, skill := range profile.TechSkills {
		if containsWord(lower, strings.ToLower(skill)) {
			result.Technologies = append(result.Technologies, skill)
		}
	}

	result.HasClearRequirements = len(result.Mandatory) > 0 || len(result.Desired) > 0
	return result
}

func hasAnyMarker(sentence string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(sentence, marker) {
			return true
		}
	}
	return false
}

var sentenceSplitRe = regexp.MustCompile(`[.;!\n•·]+`)

func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(strings.TrimLeft(part, "-– "))
		if len(part) >= 10 {
			sentences = append(sentences, part)
		}
	}
	return sentences
}
