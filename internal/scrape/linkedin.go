package scrape

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/nanotecnologista/jobradar/internal/config"
	"github.com/nanotecnologista/jobradar/internal/fetch"
	"github.com/nanotecnologista/jobradar/internal/types"
)

const (
	linkedinBaseURL  = "https://www.linkedin.com"
	linkedinSettle   = 3 * time.Second
	linkedinScrolls  = 3
	feedScrolls      = 5
	seeMoreSelectors = "button.infinite-scroller__show-more-button, button[aria-label='See more jobs']"
)

// linkedinCardSelectors locate job cards in the rendered search results.
var linkedinCardSelectors = []string{
	"div.base-card",
	"li.jobs-search-results__list-item",
	"div.job-search-card",
}

var (
	linkedinTitleRules = []FieldRule{
		{Selector: "h3.base-search-card__title"},
		{Selector: "a.job-card-list__title"},
		{Selector: "h3"},
	}
	linkedinCompanyRules = []FieldRule{
		{Selector: "h4.base-search-card__subtitle"},
		{Selector: "a.hidden-nested-link"},
		{Selector: "h4"},
	}
	linkedinLinkRules = []FieldRule{
		{Selector: "a.base-card__full-link", Attr: "href"},
		{Selector: "a", Attr: "href"},
	}
	linkedinLocationRules = []FieldRule{
		{Selector: "span.job-search-card__location"},
		{Selector: ".job-card-container__metadata-item"},
	}
	linkedinDateRules = []FieldRule{
		{Selector: "time", Attr: "datetime"},
		{Selector: "time"},
	}
)

// jobPostIndicators mark a feed post as job-related.
var jobPostIndicators = []string{
	"vaga", "vagas", "contratando", "oportunidade",
	"hiring", "job opening", "we're looking for", "estamos buscando",
}

// feedTitlePatterns lift a role name out of free-form post text.
var feedTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)vagas?\s+(?:de|para|:)\s*([^\n.,;!]+)`),
	regexp.MustCompile(`(?i)oportunidade\s+(?:de|para)\s*([^\n.,;!]+)`),
	regexp.MustCompile(`(?i)hiring\s+(?:an?\s+)?([^\n.,;!]+)`),
	regexp.MustCompile(`(?i)looking for\s+(?:an?\s+)?([^\n.,;!]+)`),
}

// LinkedInScraper drives a real browser session because the site renders
// everything client-side and gates searches behind login. The browser is
// started lazily on first use so runs that skip this platform never pay
// the Chrome startup cost.
type LinkedInScraper struct {
	browser  *fetch.Browser
	headless bool
	timeout  time.Duration
	maxPages int
	verbose  bool
	loggedIn bool
}

// NewLinkedInScraper builds the browser-automated scraper. With Debug
// enabled the browser runs headful so login challenges can be solved by
// hand.
func NewLinkedInScraper(cfg *config.Config) *LinkedInScraper {
	s := &LinkedInScraper{
		headless: true,
		timeout:  60 * time.Second,
		maxPages: 2,
	}
	if cfg != nil {
		s.headless = !cfg.Debug
		s.verbose = cfg.Verbose
		if cfg.MaxPages > 0 {
			s.maxPages = cfg.MaxPages
		}
		if cfg.TimeoutSeconds > 0 {
			s.timeout = secondsToDuration(cfg.TimeoutSeconds) * 2
		}
	}
	return s
}

// Platform implements Scraper.
func (l *LinkedInScraper) Platform() types.Platform { return types.PlatformLinkedIn }

func (l *LinkedInScraper) ensureBrowser() error {
	if l.browser != nil {
		return nil
	}
	b, err := fetch.NewBrowser(fetch.BrowserOptions{
		Headless: l.headless,
		Timeout:  l.timeout,
		Verbose:  l.verbose,
	})
	if err != nil {
		return &ExtractionError{Platform: "linkedin", Message: "failed to start browser", Cause: err}
	}
	l.browser = b
	return nil
}

// Login implements Scraper by filling the login form and checking that
// the session landed on an authenticated page.
func (l *LinkedInScraper) Login(ctx context.Context, creds types.Credentials) (bool, error) {
	if creds.IsZero() {
		return false, &AuthError{Platform: "linkedin", Message: "credentials are required"}
	}
	if err := l.ensureBrowser(); err != nil {
		return false, err
	}

	err := l.browser.Run(ctx,
		chromedp.Navigate(linkedinBaseURL+"/login"),
		chromedp.WaitVisible("#username"),
		chromedp.SendKeys("#username", creds.Email),
		chromedp.SendKeys("#password", creds.Password),
		chromedp.Click("button[type='submit']"),
		chromedp.Sleep(5*time.Second),
	)
	if err != nil {
		return false, &AuthError{Platform: "linkedin", Message: "login flow failed", Cause: err}
	}

	loc, err := l.browser.Location(ctx)
	if err != nil {
		return false, &AuthError{Platform: "linkedin", Message: "failed to read location after login", Cause: err}
	}
	if strings.Contains(loc, "/feed") || strings.Contains(loc, "/mynetwork") {
		l.loggedIn = true
		log.Printf("[linkedin] logged in as %s", creds.Email)
		return true, nil
	}
	if strings.Contains(loc, "checkpoint") || strings.Contains(loc, "challenge") {
		return false, &AuthError{Platform: "linkedin", Message: "login challenged, rerun with debug for a visible browser"}
	}
	return false, &AuthError{Platform: "linkedin", Message: "login did not reach the feed"}
}

// Search implements Scraper against the jobs search page, filtered to
// remote positions posted in the last week, then mines the personal
// feed for announcements that never reach the jobs board. Feed failures
// are logged, not fatal; the board results still count.
func (l *LinkedInScraper) Search(ctx context.Context, keywords []string) ([]types.JobPosting, error) {
	if !l.loggedIn {
		return nil, &AuthError{Platform: "linkedin", Message: "search requires login"}
	}

	var jobs []types.JobPosting
	for _, keyword := range keywords {
		keywordJobs, err := l.searchKeyword(ctx, keyword)
		if err != nil {
			log.Printf("[linkedin] search for %q failed: %v", keyword, err)
			continue
		}
		jobs = append(jobs, keywordJobs...)
	}

	feedJobs, err := l.SearchFeedPosts(ctx, keywords)
	if err != nil {
		log.Printf("[linkedin] feed mining failed: %v", err)
	} else {
		jobs = append(jobs, feedJobs...)
	}

	unique, _ := dedupPostings(jobs)
	if l.verbose {
		log.Printf("[linkedin] %d unique postings found", len(unique))
	}
	return unique, nil
}

func (l *LinkedInScraper) searchKeyword(ctx context.Context, keyword string) ([]types.JobPosting, error) {
	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("f_WT", "2")        // remote only
	params.Set("f_TPR", "r604800") // past week
	searchURL := linkedinBaseURL + "/jobs/search/?" + params.Encode()

	actions := []chromedp.Action{
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(linkedinSettle),
	}
	// Scroll to trigger lazy loading; the "see more" button replaces the
	// infinite scroll after a few batches. Both are best-effort.
	for i := 0; i < linkedinScrolls*l.maxPages; i++ {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.ActionFunc(func(ctx context.Context) error {
				_ = chromedp.Click(seeMoreSelectors, chromedp.NodeVisible).Do(ctx)
				return nil
			}),
		)
	}
	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html))

	if err := l.browser.Run(ctx, actions...); err != nil {
		return nil, &ExtractionError{Platform: "linkedin", Message: "search page render failed", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{Platform: "linkedin", Message: "failed to parse search results", Cause: err}
	}

	cards := findCards(doc, linkedinCardSelectors)
	if cards == nil {
		return nil, nil
	}

	now := time.Now()
	var jobs []types.JobPosting
	cards.Each(func(_ int, card *goquery.Selection) {
		title := extractField(card, linkedinTitleRules)
		if title == "" {
			return
		}
		jobs = append(jobs, types.JobPosting{
			Platform:    types.PlatformLinkedIn,
			URL:         stripTracking(extractField(card, linkedinLinkRules)),
			Title:       title,
			Company:     extractFieldOr(card, linkedinCompanyRules, "N/A"),
			Location:    extractFieldOr(card, linkedinLocationRules, "Remoto"),
			PublishedAt: parseLinkedInDate(extractField(card, linkedinDateRules), now),
			ScrapedAt:   now,
			SourceKind:  types.SourceHTMLListing,
		})
	})
	return jobs, nil
}

// SearchFeedPosts mines the personal feed for job announcements that
// never reach the jobs board, a common pattern for Brazilian recruiters.
func (l *LinkedInScraper) SearchFeedPosts(ctx context.Context, keywords []string) ([]types.JobPosting, error) {
	if !l.loggedIn {
		return nil, &AuthError{Platform: "linkedin", Message: "feed mining requires login"}
	}

	actions := []chromedp.Action{
		chromedp.Navigate(linkedinBaseURL + "/feed/"),
		chromedp.WaitReady("body"),
		chromedp.Sleep(linkedinSettle),
	}
	for i := 0; i < feedScrolls; i++ {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
		)
	}
	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html))

	if err := l.browser.Run(ctx, actions...); err != nil {
		return nil, &ExtractionError{Platform: "linkedin", Message: "feed render failed", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{Platform: "linkedin", Message: "failed to parse feed", Cause: err}
	}

	now := time.Now()
	var jobs []types.JobPosting
	doc.Find("div.feed-shared-update-v2").Each(func(_ int, post *goquery.Selection) {
		text := strings.TrimSpace(post.Find("div.feed-shared-update-v2__description, span.break-words").First().Text())
		if text == "" || !isJobPost(text) || !matchesAnyKeyword(text, keywords) {
			return
		}

		author := strings.TrimSpace(post.Find("span.feed-shared-actor__name, span.update-components-actor__name").First().Text())
		if author == "" {
			author = "N/A"
		}
		link, _ := post.Find("a[href*='/feed/update/']").First().Attr("href")

		jobs = append(jobs, types.JobPosting{
			Platform:    types.PlatformLinkedIn,
			URL:         absoluteURL(linkedinBaseURL, link),
			Title:       feedPostTitle(text),
			Company:     author,
			Location:    "Remoto",
			Description: text,
			ScrapedAt:   now,
			SourceKind:  types.SourceHTMLPost,
		})
	})

	unique, _ := dedupPostings(jobs)
	if l.verbose {
		log.Printf("[linkedin] %d job posts mined from feed", len(unique))
	}
	return unique, nil
}

// Details implements Scraper by rendering the posting page and expanding
// the description section.
func (l *LinkedInScraper) Details(ctx context.Context, jobURL string) (*types.JobDetails, error) {
	if err := l.ensureBrowser(); err != nil {
		return nil, err
	}

	var html string
	err := l.browser.Run(ctx,
		chromedp.Navigate(jobURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(linkedinSettle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_ = chromedp.Click("button.show-more-less-html__button--more", chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &ExtractionError{Platform: "linkedin", Message: "job page render failed", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{Platform: "linkedin", Message: "failed to parse job page", Cause: err}
	}

	return &types.JobDetails{
		Description: extractField(doc.Selection, []FieldRule{
			{Selector: "div.show-more-less-html__markup"},
			{Selector: "div.description__text"},
			{Selector: "div.jobs-description-content__text"},
		}),
		ContractType: extractField(doc.Selection, []FieldRule{
			{Selector: "span.description__job-criteria-text"},
		}),
	}, nil
}

// Close implements Scraper and shuts the browser down if one started.
func (l *LinkedInScraper) Close() error {
	if l.browser == nil {
		return nil
	}
	err := l.browser.Close()
	l.browser = nil
	l.loggedIn = false
	return err
}

// stripTracking removes LinkedIn's query-string tracking so identical
// postings dedup by URL.
func stripTracking(rawURL string) string {
	if idx := strings.IndexByte(rawURL, '?'); idx >= 0 {
		return rawURL[:idx]
	}
	return rawURL
}

// parseLinkedInDate handles the datetime attribute (ISO date) and falls
// back to relative text.
func parseLinkedInDate(text string, now time.Time) *time.Time {
	if t, err := time.Parse("2006-01-02", text); err == nil {
		return &t
	}
	return ParseRelativeDate(text, now)
}

func isJobPost(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range jobPostIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

func matchesAnyKeyword(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// feedPostTitle derives a short title from post text, preferring the
// role name after a "vaga de" / "hiring" style phrase.
func feedPostTitle(text string) string {
	for _, pattern := range feedTitlePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			title := strings.TrimSpace(m[1])
			if len(title) > 80 {
				title = title[:80]
			}
			return title
		}
	}
	words := strings.Fields(text)
	if len(words) > 5 {
		return fmt.Sprintf("%s...", strings.Join(words[:5], " "))
	}
	return strings.Join(words, " ")
}
