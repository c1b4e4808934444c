package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/nanotecnologista/jobradar/internal/config"
	"github.com/nanotecnologista/jobradar/internal/fetch"
	"github.com/nanotecnologista/jobradar/internal/types"
)

const (
	gupyAPIBase  = "https://portal.api.gupy.io/api"
	gupyPageSize = 50
	// gupyDateWindow restricts searches to recently published postings.
	gupyDateWindow = 7 * 24 * time.Hour
)

// GupyScraper acquires postings through Gupy's public JSON API. No HTML
// parsing and no login are involved.
type GupyScraper struct {
	client   *fetch.Client
	apiBase  string
	maxPages int
	verbose  bool
}

// NewGupyScraper builds the API-based scraper.
func NewGupyScraper(cfg *config.Config, robots *fetch.RobotsPolicy) *GupyScraper {
	maxPages := 3
	verbose := false
	if cfg != nil {
		if cfg.MaxPages > 0 {
			maxPages = cfg.MaxPages
		}
		verbose = cfg.Verbose
	}
	return &GupyScraper{
		client:   fetch.NewClient(clientOptions(cfg, robots)),
		apiBase:  gupyAPIBase,
		maxPages: maxPages,
		verbose:  verbose,
	}
}

// Platform implements Scraper.
func (g *GupyScraper) Platform() types.Platform { return types.PlatformGupy }

// Login implements Scraper. The public API requires no authentication.
func (g *GupyScraper) Login(ctx context.Context, creds types.Credentials) (bool, error) {
	return true, nil
}

// gupyResponse mirrors the top-level API search response.
type gupyResponse struct {
	Data []gupyJob `json:"data"`
}

type gupyJob struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	Company       gupyCompany `json:"company"`
	Description   string      `json:"description"`
	Requirements  string      `json:"requirements"`
	Benefits      string      `json:"benefits"`
	ContractType  string      `json:"contractType"`
	PublishedDate string      `json:"publishedDate"`
	Salary        gupySalary  `json:"salary"`
}

type gupyCompany struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type gupySalary struct {
	Min json.Number `json:"min"`
	Max json.Number `json:"max"`
}

// Search implements Scraper. Each keyword is queried with a remote-only
// and date-window filter, paging until an empty page or the page bound.
func (g *GupyScraper) Search(ctx context.Context, keywords []string) ([]types.JobPosting, error) {
	var jobs []types.JobPosting

	for _, keyword := range keywords {
		keywordJobs, err := g.searchKeyword(ctx, keyword)
		if err != nil {
			// A failed keyword must not abort the remaining ones.
			log.Printf("[gupy] search for %q failed: %v", keyword, err)
			continue
		}
		jobs = append(jobs, keywordJobs...)
	}

	unique, _ := dedupPostings(jobs)
	if g.verbose {
		log.Printf("[gupy] %d unique postings found", len(unique))
	}
	return unique, nil
}

func (g *GupyScraper) searchKeyword(ctx context.Context, keyword string) ([]types.JobPosting, error) {
	var jobs []types.JobPosting
	publishedAfter := time.Now().Add(-gupyDateWindow).Format("2006-01-02")

	for page := 0; page < g.maxPages; page++ {
		params := url.Values{}
		params.Set("name", keyword)
		params.Set("workplaceType", "remote")
		params.Set("publishedDate", publishedAfter)
		params.Set("limit", fmt.Sprintf("%d", gupyPageSize))
		params.Set("offset", fmt.Sprintf("%d", page*gupyPageSize))

		result, err := g.client.Get(ctx, g.apiBase+"/job?"+params.Encode())
		if err != nil {
			return jobs, err
		}

		var resp gupyResponse
		if err := json.Unmarshal([]byte(result.Body), &resp); err != nil {
			return jobs, &ExtractionError{Platform: "gupy", Message: "failed to decode search response", Cause: err}
		}
		if len(resp.Data) == 0 {
			break
		}

		for _, item := range resp.Data {
			if job, ok := g.parseJob(item); ok {
				jobs = append(jobs, job)
			}
		}
		if len(resp.Data) < gupyPageSize {
			break
		}
	}

	return jobs, nil
}

// parseJob converts one API item into the canonical posting. Items
// without a title are discarded.
func (g *GupyScraper) parseJob(item gupyJob) (types.JobPosting, bool) {
	title := strings.TrimSpace(item.Name)
	if title == "" {
		return types.JobPosting{}, false
	}

	id := item.ID.String()
	jobURL := ""
	if id != "" {
		jobURL = "https://portal.gupy.io/job/" + id
	}

	company := strings.TrimSpace(item.Company.Name)
	if company == "" {
		company = "N/A"
	}

	var publishedAt *time.Time
	if item.PublishedDate != "" {
		if t, err := time.Parse(time.RFC3339, item.PublishedDate); err == nil {
			publishedAt = &t
		}
	}

	salaryText := ""
	if min := item.Salary.Min.String(); min != "" && min != "0" {
		salaryText = min
		if max := item.Salary.Max.String(); max != "" && max != "0" {
			salaryText += " - " + max
		}
	}

	return types.JobPosting{
		Platform:     types.PlatformGupy,
		ExternalID:   id,
		URL:          jobURL,
		Title:        title,
		Company:      company,
		Location:     "Remoto",
		Description:  item.Description,
		Requirements: item.Requirements,
		Benefits:     item.Benefits,
		ContractType: item.ContractType,
		SalaryText:   salaryText,
		PublishedAt:  publishedAt,
		ScrapedAt:    time.Now(),
		SourceKind:   types.SourceAPI,
	}, true
}

// Details implements Scraper using the job detail API endpoint.
func (g *GupyScraper) Details(ctx context.Context, jobURL string) (*types.JobDetails, error) {
	id := gupyJobID(jobURL)
	if id == "" {
		return nil, &ExtractionError{Platform: "gupy", Message: "no job ID in URL " + jobURL}
	}

	result, err := g.client.Get(ctx, g.apiBase+"/job/"+id)
	if err != nil {
		return nil, err
	}

	var item struct {
		Description    string `json:"description"`
		Requirements   string `json:"requirements"`
		Benefits       string `json:"benefits"`
		AdditionalInfo string `json:"additionalInformation"`
	}
	if err := json.Unmarshal([]byte(result.Body), &item); err != nil {
		return nil, &ExtractionError{Platform: "gupy", Message: "failed to decode detail response", Cause: err}
	}

	details := &types.JobDetails{
		Description:  item.Description,
		Requirements: item.Requirements,
		Benefits:     item.Benefits,
	}
	if item.AdditionalInfo != "" {
		details.Extra = map[string]string{"additional_info": item.AdditionalInfo}
	}
	return details, nil
}

// SearchCompanies looks up postings published by specific companies.
// This goes beyond the Scraper contract and is used for targeted runs.
func (g *GupyScraper) SearchCompanies(ctx context.Context, companyNames []string) ([]types.JobPosting, error) {
	var jobs []types.JobPosting

	for _, name := range companyNames {
		params := url.Values{}
		params.Set("name", name)
		result, err := g.client.Get(ctx, g.apiBase+"/company?"+params.Encode())
		if err != nil {
			log.Printf("[gupy] company lookup for %q failed: %v", name, err)
			continue
		}

		var resp struct {
			Data []gupyCompany `json:"data"`
		}
		if err := json.Unmarshal([]byte(result.Body), &resp); err != nil {
			continue
		}

		for _, company := range resp.Data {
			companyJobs, err := g.companyJobs(ctx, company.ID.String())
			if err != nil {
				log.Printf("[gupy] jobs for company %s failed: %v", company.Name, err)
				continue
			}
			jobs = append(jobs, companyJobs...)
		}
	}

	unique, _ := dedupPostings(jobs)
	return unique, nil
}

func (g *GupyScraper) companyJobs(ctx context.Context, companyID string) ([]types.JobPosting, error) {
	if companyID == "" {
		return nil, nil
	}
	params := url.Values{}
	params.Set("companyId", companyID)
	params.Set("workplaceType", "remote")
	params.Set("limit", fmt.Sprintf("%d", gupyPageSize))

	result, err := g.client.Get(ctx, g.apiBase+"/job?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp gupyResponse
	if err := json.Unmarshal([]byte(result.Body), &resp); err != nil {
		return nil, &ExtractionError{Platform: "gupy", Message: "failed to decode company jobs", Cause: err}
	}

	var jobs []types.JobPosting
	for _, item := range resp.Data {
		if job, ok := g.parseJob(item); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

// Close implements Scraper. The HTTP client needs no explicit teardown.
func (g *GupyScraper) Close() error { return nil }

// gupyJobID extracts the numeric job ID from a portal URL.
func gupyJobID(jobURL string) string {
	const marker = "/job/"
	idx := strings.Index(jobURL, marker)
	if idx < 0 {
		return ""
	}
	id := jobURL[idx+len(marker):]
	if q := strings.IndexByte(id, '?'); q >= 0 {
		id = id[:q]
	}
	return strings.Trim(id, "/")
}
