package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FieldRule is one candidate extraction rule for a field: a CSS selector
// plus an optional attribute name. With no attribute the element text is
// used. Rules are tried in order and the first non-empty value wins, so
// markup drift degrades extraction instead of breaking it.
type FieldRule struct {
	Selector string `json:"selector"`
	Attr     string `json:"attr,omitempty"`
}

// extractField applies an ordered rule list against a selection and
// returns the first non-empty value, or "" when nothing matched.
func extractField(s *goquery.Selection, rules []FieldRule) string {
	for _, rule := range rules {
		el := s.Find(rule.Selector).First()
		if el.Length() == 0 {
			continue
		}
		var value string
		if rule.Attr != "" {
			value, _ = el.Attr(rule.Attr)
		} else {
			value = el.Text()
		}
		value = strings.TrimSpace(value)
		if value != "" {
			return value
		}
	}
	return ""
}

// extractFieldOr is extractField with a sentinel fallback.
func extractFieldOr(s *goquery.Selection, rules []FieldRule, fallback string) string {
	if v := extractField(s, rules); v != "" {
		return v
	}
	return fallback
}

// findCards locates listing containers using an ordered selector fallback
// list. The first selector with any matches wins.
func findCards(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if cards := doc.Find(selector); cards.Length() > 0 {
			return cards
		}
	}
	return nil
}

// absoluteURL resolves href against base when it is relative.
func absoluteURL(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
