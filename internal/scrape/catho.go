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

const cathoBaseURL = "https://www.catho.com.br"

// cathoCardSelectors are tried in order against the listing page.
var cathoCardSelectors = []string{
	"article.job-card",
	"div[data-testid='job-card']",
	"li.search-result-item",
	"div.sc-job-card",
}

var (
	cathoTitleRules = []FieldRule{
		{Selector: "h2 a"},
		{Selector: "h2.job-title"},
		{Selector: "a[data-testid='job-title']"},
		{Selector: "h2"},
	}
	cathoCompanyRules = []FieldRule{
		{Selector: "p.company-name"},
		{Selector: "span[data-testid='company']"},
		{Selector: ".company"},
	}
	cathoLinkRules = []FieldRule{
		{Selector: "h2 a", Attr: "href"},
		{Selector: "a[data-testid='job-title']", Attr: "href"},
		{Selector: "a", Attr: "href"},
	}
	cathoLocationRules = []FieldRule{
		{Selector: "span.location"},
		{Selector: "span[data-testid='location']"},
		{Selector: ".job-location"},
	}
	cathoSalaryRules = []FieldRule{
		{Selector: "span.salary"},
		{Selector: "div[data-testid='salary']"},
	}
	cathoDateRules = []FieldRule{
		{Selector: "time"},
		{Selector: "span.posted-date"},
		{Selector: ".date"},
	}
	cathoDescriptionRules = []FieldRule{
		{Selector: "p.job-description"},
		{Selector: "div.description"},
	}
)

// CathoScraper extracts postings from Catho's server-rendered search
// pages. Login is optional; the search works anonymously with fewer
// details exposed.
type CathoScraper struct {
	client   *fetch.Client
	baseURL  string
	maxPages int
	verbose  bool
	loggedIn bool
}

// NewCathoScraper builds the static HTML scraper.
func NewCathoScraper(cfg *config.Config, robots *fetch.RobotsPolicy) *CathoScraper {
	maxPages := 3
	verbose := false
	if cfg != nil {
		if cfg.MaxPages > 0 {
			maxPages = cfg.MaxPages
		}
		verbose = cfg.Verbose
	}
	return &CathoScraper{
		client:   fetch.NewClient(clientOptions(cfg, robots)),
		baseURL:  cathoBaseURL,
		maxPages: maxPages,
		verbose:  verbose,
	}
}

// Platform implements Scraper.
func (c *CathoScraper) Platform() types.Platform { return types.PlatformCatho }

// Login implements Scraper with a form-based flow: fetch the login page,
// lift the CSRF token from the form, post credentials and check the
// redirect target. A missing credential set degrades to anonymous mode.
func (c *CathoScraper) Login(ctx context.Context, creds types.Credentials) (bool, error) {
	if creds.IsZero() {
		log.Printf("[catho] no credentials, searching anonymously")
		return true, nil
	}

	loginURL := c.baseURL + "/login"
	page, err := c.client.Get(ctx, loginURL)
	if err != nil {
		return false, &AuthError{Platform: "catho", Message: "failed to load login page", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return false, &AuthError{Platform: "catho", Message: "failed to parse login page", Cause: err}
	}

	form := url.Values{}
	form.Set("email", creds.Email)
	form.Set("password", creds.Password)
	if token, ok := doc.Find("input[name='_csrf']").First().Attr("value"); ok {
		form.Set("_csrf", token)
	}

	resp, err := c.client.PostForm(ctx, loginURL, form)
	if err != nil {
		return false, &AuthError{Platform: "catho", Message: "login request failed", Cause: err}
	}

	// A successful login redirects away from the login form.
	if strings.Contains(resp.FinalURL, "/login") {
		return false, &AuthError{Platform: "catho", Message: "credentials rejected"}
	}
	c.loggedIn = true
	log.Printf("[catho] logged in as %s", creds.Email)
	return true, nil
}

// Search implements Scraper, paging through the server-rendered results
// for each keyword until a page yields no cards.
func (c *CathoScraper) Search(ctx context.Context, keywords []string) ([]types.JobPosting, error) {
	var jobs []types.JobPosting

	for _, keyword := range keywords {
		keywordJobs, err := c.searchKeyword(ctx, keyword)
		if err != nil {
			log.Printf("[catho] search for %q failed: %v", keyword, err)
			continue
		}
		jobs = append(jobs, keywordJobs...)
	}

	unique, _ := dedupPostings(jobs)
	if c.verbose {
		log.Printf("[catho] %d unique postings found", len(unique))
	}
	return unique, nil
}

func (c *CathoScraper) searchKeyword(ctx context.Context, keyword string) ([]types.JobPosting, error) {
	var jobs []types.JobPosting

	for page := 1; page <= c.maxPages; page++ {
		searchURL := fmt.Sprintf("%s/vagas/home-office/?q=%s&page=%d",
			c.baseURL, url.QueryEscape(keyword), page)

		result, err := c.client.Get(ctx, searchURL)
		if err != nil {
			return jobs, err
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.Body))
		if err != nil {
			return jobs, &ExtractionError{Platform: "catho", Message: "failed to parse results page", Cause: err}
		}

		cards := findCards(doc, cathoCardSelectors)
		if cards == nil || cards.Length() == 0 {
			break
		}

		now := time.Now()
		cards.Each(func(_ int, card *goquery.Selection) {
			if job, ok := c.parseCard(card, now); ok {
				jobs = append(jobs, job)
			}
		})
	}

	return jobs, nil
}

// parseCard builds a posting from one listing card. Cards without a
// title carry no usable identity and are dropped.
func (c *CathoScraper) parseCard(card *goquery.Selection, now time.Time) (types.JobPosting, bool) {
	title := extractField(card, cathoTitleRules)
	if title == "" {
		return types.JobPosting{}, false
	}

	return types.JobPosting{
		Platform:    types.PlatformCatho,
		URL:         absoluteURL(c.baseURL, extractField(card, cathoLinkRules)),
		Title:       title,
		Company:     extractFieldOr(card, cathoCompanyRules, "N/A"),
		Location:    extractFieldOr(card, cathoLocationRules, "Remoto"),
		Description: extractField(card, cathoDescriptionRules),
		SalaryText:  extractField(card, cathoSalaryRules),
		PublishedAt: ParseRelativeDate(extractField(card, cathoDateRules), now),
		ScrapedAt:   now,
		SourceKind:  types.SourceHTMLListing,
	}, true
}

// Details implements Scraper by fetching the posting page and extracting
// the long-form sections.
func (c *CathoScraper) Details(ctx context.Context, jobURL string) (*types.JobDetails, error) {
	result, err := c.client.Get(ctx, jobURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.Body))
	if err != nil {
		return nil, &ExtractionError{Platform: "catho", Message: "failed to parse job page", Cause: err}
	}

	root := doc.Selection
	return &types.JobDetails{
		Description: extractField(root, []FieldRule{
			{Selector: "div.job-description"},
			{Selector: "section[data-testid='description']"},
			{Selector: "div.description"},
		}),
		Requirements: extractField(root, []FieldRule{
			{Selector: "div.job-requirements"},
			{Selector: "section[data-testid='requirements']"},
		}),
		Benefits: extractField(root, []FieldRule{
			{Selector: "div.job-benefits"},
			{Selector: "section[data-testid='benefits']"},
		}),
		ContractType: extractField(root, []FieldRule{
			{Selector: "span.contract-type"},
			{Selector: "span[data-testid='contract']"},
		}),
	}, nil
}

// Close implements Scraper.
func (c *CathoScraper) Close() error { return nil }
