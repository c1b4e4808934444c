package analysis

import (
	"sort"
	"strings"
)

// titleWeight makes a title keyword hit count as much as three body hits.
const titleWeight = 3

// Classify assigns a posting to the best-matching profile. Title
// keyword hits weigh triple; on a tied score the profile with a direct
// title match wins, and with nothing to go on the result defaults to
// "dev" so the posting still flows through scoring.
func Classify(title, body string, profiles map[string]SkillProfile) string {
	lowerTitle := strings.ToLower(title)
	lowerBody := strings.ToLower(body)

	bestType, bestScore := "", -1
	bestTitleHit := false
	for _, name := range profileNames(profiles) {
		profile := profiles[name]
		score := 0
		titleHit := false

		for _, keyword := range profile.TitleKeywords {
			kw := strings.ToLower(keyword)
			if strings.Contains(lowerTitle, kw) {
				score += titleWeight
				titleHit = true
			} else if strings.Contains(lowerBody, kw) {
				score++
			}
		}
		for _, skill := range profile.TechSkills {
			if containsWord(lowerBody, strings.ToLower(skill)) {
				score++
			}
		}

		if score > bestScore || (score == bestScore && titleHit && !bestTitleHit) {
			bestType, bestScore, bestTitleHit = name, score, titleHit
		}
	}

	if bestScore <= 0 {
		return "dev"
	}
	return bestType
}

// profileNames returns profile keys in deterministic order.
func profileNames(profiles map[string]SkillProfile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// containsWord matches a term on loose word boundaries so "go" does not
// match inside "google" but "ci/cd" still matches literally.
func containsWord(haystack, term string) bool {
	idx := 0
	for {
		pos := strings.Index(haystack[idx:], term)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(term)
		beforeOK := start == 0 || !isWordByte(haystack[start-1])
		afterOK := end == len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
