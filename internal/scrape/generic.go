package scrape

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nanotecnologista/jobradar/internal/config"
	"github.com/nanotecnologista/jobradar/internal/fetch"
	"github.com/nanotecnologista/jobradar/internal/types"
)

// GenericScraper runs any job board described by a PlatformConfig. It is
// the zero-code path for adding platforms: build the search URL from the
// config, page through listings, extract fields by the configured rules.
type GenericScraper struct {
	name     string
	pc       PlatformConfig
	client   *fetch.Client
	maxPages int
	verbose  bool
}

// NewGenericScraper builds a declarative scraper for the named platform.
func NewGenericScraper(name string, pc PlatformConfig, cfg *config.Config, robots *fetch.RobotsPolicy) *GenericScraper {
	maxPages := 3
	verbose := false
	if cfg != nil {
		if cfg.MaxPages > 0 {
			maxPages = cfg.MaxPages
		}
		verbose = cfg.Verbose
	}
	return &GenericScraper{
		name:     name,
		pc:       pc,
		client:   fetch.NewClient(clientOptions(cfg, robots)),
		maxPages: maxPages,
		verbose:  verbose,
	}
}

// Platform implements Scraper.
func (g *GenericScraper) Platform() types.Platform { return types.Platform(g.name) }

// Login implements Scraper. Platforms that declare no login flow succeed
// immediately; those that do get a form post with any hidden inputs the
// login page carries (CSRF tokens and the like) passed through.
func (g *GenericScraper) Login(ctx context.Context, creds types.Credentials) (bool, error) {
	if !g.pc.LoginRequired || g.pc.Login == nil {
		return true, nil
	}
	if creds.IsZero() {
		return false, &AuthError{Platform: g.name, Message: "login required but no credentials configured"}
	}

	loginURL := g.pc.BaseURL + g.pc.Login.Path
	page, err := g.client.Get(ctx, loginURL)
	if err != nil {
		return false, &AuthError{Platform: g.name, Message: "failed to load login page", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return false, &AuthError{Platform: g.name, Message: "failed to parse login page", Cause: err}
	}

	form := url.Values{}
	doc.Find("form input[type='hidden']").Each(func(_ int, input *goquery.Selection) {
		name, _ := input.Attr("name")
		value, _ := input.Attr("value")
		if name != "" {
			form.Set(name, value)
		}
	})

	emailField := g.pc.Login.EmailField
	if emailField == "" {
		emailField = "email"
	}
	passwordField := g.pc.Login.PasswordField
	if passwordField == "" {
		passwordField = "password"
	}
	form.Set(emailField, creds.Email)
	form.Set(passwordField, creds.Password)

	resp, err := g.client.PostForm(ctx, loginURL, form)
	if err != nil {
		return false, &AuthError{Platform: g.name, Message: "login request failed", Cause: err}
	}

	if len(g.pc.Login.SuccessIndicators) > 0 {
		for _, indicator := range g.pc.Login.SuccessIndicators {
			if strings.Contains(resp.Body, indicator) || strings.Contains(resp.FinalURL, indicator) {
				return true, nil
			}
		}
		return false, &AuthError{Platform: g.name, Message: "no success indicator found after login"}
	}

	// Without indicators, moving away from the login form counts.
	if strings.Contains(resp.FinalURL, g.pc.Login.Path) {
		return false, &AuthError{Platform: g.name, Message: "still on login page after submit"}
	}
	return true, nil
}

// Search implements Scraper.
func (g *GenericScraper) Search(ctx context.Context, keywords []string) ([]types.JobPosting, error) {
	var jobs []types.JobPosting

	for _, keyword := range keywords {
		keywordJobs, err := g.searchKeyword(ctx, keyword)
		if err != nil {
			log.Printf("[%s] search for %q failed: %v", g.name, keyword, err)
			continue
		}
		jobs = append(jobs, keywordJobs...)
	}

	unique, _ := dedupPostings(jobs)
	if g.verbose {
		log.Printf("[%s] %d unique postings found", g.name, len(unique))
	}
	return unique, nil
}

func (g *GenericScraper) searchKeyword(ctx context.Context, keyword string) ([]types.JobPosting, error) {
	var jobs []types.JobPosting

	for page := 1; page <= g.maxPages; page++ {
		result, err := g.client.Get(ctx, g.searchURL(keyword, page))
		if err != nil {
			return jobs, err
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.Body))
		if err != nil {
			return jobs, &ExtractionError{Platform: g.name, Message: "failed to parse results page", Cause: err}
		}

		cards := findCards(doc, g.pc.Search.CardSelectors)
		if cards == nil || cards.Length() == 0 {
			break
		}

		now := time.Now()
		cards.Each(func(_ int, card *goquery.Selection) {
			if job, ok := g.parseCard(card, now); ok {
				jobs = append(jobs, job)
			}
		})
	}

	return jobs, nil
}

// searchURL assembles the listing URL for one keyword and page. Fixed
// params may reference the keyword via a {keyword} placeholder.
func (g *GenericScraper) searchURL(keyword string, page int) string {
	params := url.Values{}
	for name, value := range g.pc.Search.Params {
		params.Set(name, strings.ReplaceAll(value, "{keyword}", keyword))
	}
	params.Set(g.pc.Search.QueryParam, keyword)
	params.Set(g.pc.Search.PageParam, fmt.Sprintf("%d", page))
	return g.pc.BaseURL + g.pc.Search.Path + "?" + params.Encode()
}

func (g *GenericScraper) parseCard(card *goquery.Selection, now time.Time) (types.JobPosting, bool) {
	fields := g.pc.Search.Fields
	title := extractField(card, fields.Title)
	if title == "" {
		return types.JobPosting{}, false
	}

	return types.JobPosting{
		Platform:    types.Platform(g.name),
		URL:         absoluteURL(g.pc.BaseURL, extractField(card, fields.Link)),
		Title:       title,
		Company:     extractFieldOr(card, fields.Company, "N/A"),
		Location:    extractFieldOr(card, fields.Location, "Remoto"),
		Description: extractField(card, fields.Description),
		SalaryText:  extractField(card, fields.Salary),
		PublishedAt: ParseRelativeDate(extractField(card, fields.Date), now),
		ScrapedAt:   now,
		SourceKind:  types.SourceHTMLListing,
	}, true
}

// Details implements Scraper. Platforms without detail rules return an
// empty details struct rather than an error; there is nothing to add.
func (g *GenericScraper) Details(ctx context.Context, jobURL string) (*types.JobDetails, error) {
	if len(g.pc.Details) == 0 {
		return &types.JobDetails{}, nil
	}

	result, err := g.client.Get(ctx, jobURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.Body))
	if err != nil {
		return nil, &ExtractionError{Platform: g.name, Message: "failed to parse job page", Cause: err}
	}

	details := &types.JobDetails{}
	extra := make(map[string]string)
	for field, rules := range g.pc.Details {
		value := extractField(doc.Selection, rules)
		if value == "" {
			continue
		}
		switch field {
		case "description":
			details.Description = value
		case "requirements":
			details.Requirements = value
		case "benefits":
			details.Benefits = value
		case "contract_type":
			details.ContractType = value
		case "salary":
			details.SalaryText = value
		default:
			extra[field] = value
		}
	}
	if len(extra) > 0 {
		details.Extra = extra
	}
	return details, nil
}

// Close implements Scraper.
func (g *GenericScraper) Close() error { return nil }
