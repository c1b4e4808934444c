package scrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var daysAgoRe = regexp.MustCompile(`(\d+)\s*(dias?|days?)`)

// ParseRelativeDate converts relative date phrases found on listing pages
// ("hoje", "ontem", "3 dias atrás", "2 days ago") into absolute timestamps
// anchored at now. Unparseable phrases yield nil, never a fabricated date.
func ParseRelativeDate(text string, now time.Time) *time.Time {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	for _, word := range []string{"hoje", "today", "agora", "now"} {
		if strings.Contains(text, word) {
			t := now
			return &t
		}
	}
	for _, word := range []string{"ontem", "yesterday"} {
		if strings.Contains(text, word) {
			t := now.AddDate(0, 0, -1)
			return &t
		}
	}
	if m := daysAgoRe.FindStringSubmatch(text); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		t := now.AddDate(0, 0, -days)
		return &t
	}

	return nil
}
