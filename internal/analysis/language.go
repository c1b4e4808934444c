package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// Stopword sets for the two languages job postings arrive in. They
// drive both language detection and keyword extraction.
var (
	ptStopwords = map[string]bool{
		"para": true, "com": true, "uma": true, "por": true, "mais": true,
		"dos": true, "das": true, "que": true, "não": true, "nos": true,
		"nas": true, "ser": true, "está": true, "são": true, "como": true,
		"mas": true, "foi": true, "ele": true, "ela": true, "seu": true,
		"sua": true, "ter": true, "muito": true, "nossa": true, "nosso": true,
		"você": true, "vaga": true, "área": true, "sobre": true, "entre": true,
		"também": true, "será": true, "pelo": true, "pela": true, "este": true,
		"esta": true, "esse": true, "essa": true, "nós": true, "suas": true,
		"seus": true, "aos": true, "quando": true, "onde": true, "trabalho": true,
	}
	enStopwords = map[string]bool{
		"the": true, "and": true, "for": true, "with": true, "you": true,
		"are": true, "our": true, "will": true, "this": true, "that": true,
		"have": true, "from": true, "your": true, "all": true, "can": true,
		"not": true, "but": true, "they": true, "their": true, "what": true,
		"about": true, "who": true, "work": true, "job": true, "role": true,
		"team": true, "were": true, "been": true, "has": true, "had": true,
		"more": true, "when": true, "where": true, "would": true, "should": true,
	}
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText normalizes posting text for analysis: control characters
// out, whitespace runs collapsed, edges trimmed.
func CleanText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= ' ' {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(sb.String(), " "))
}

// DetectLanguage votes Portuguese vs English by stopword hits. Ties and
// empty text resolve to Portuguese, the dominant posting language.
func DetectLanguage(text string) string {
	ptVotes, enVotes := 0, 0
	for _, word := range tokenize(text) {
		if ptStopwords[word] {
			ptVotes++
		}
		if enStopwords[word] {
			enVotes++
		}
	}
	if enVotes > ptVotes {
		return "en"
	}
	return "pt"
}

// ExtractKeywords returns the topK most frequent meaningful words in
// the text. Words must be longer than three characters and not be
// stopwords in either language. Equal counts order lexicographically so
// the output is stable.
func ExtractKeywords(text string, topK int) []string {
	if topK <= 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, word := range tokenize(text) {
		if len([]rune(word)) <= 3 || ptStopwords[word] || enStopwords[word] {
			continue
		}
		counts[word]++
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > topK {
		words = words[:topK]
	}
	return words
}

var wordRe = regexp.MustCompile(`[\p{L}\d+#/.-]+`)

func tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}
