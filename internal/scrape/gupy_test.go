package scrape

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanotecnologista/jobradar/internal/fetch"
	"github.com/nanotecnologista/jobradar/internal/types"
)

func testGupyScraper(apiBase string) *GupyScraper {
	return &GupyScraper{
		client: fetch.NewClient(&fetch.Options{
			Timeout:    5 * time.Second,
			MaxRetries: 1,
			DelayMin:   time.Millisecond,
			DelayMax:   2 * time.Millisecond,
		}),
		apiBase:  apiBase,
		maxPages: 2,
	}
}

func gupyHandler(t *testing.T, jobsByOffset map[string][]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "/job", r.URL.Path)
		offset := r.URL.Query().Get("offset")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": jobsByOffset[offset]})
	}
}

func TestGupyScraper_SearchParsesPostings(t *testing.T) {
	srv := httptest.NewServer(gupyHandler(t, map[string][]map[string]any{
		"0": {
			{
				"id":   101,
				"name": "Desenvolvedor Python",
				"company": map[string]any{"id": 7, "name": "Acme"},
				"description":   "APIs em Django",
				"publishedDate": "2025-06-10T12:00:00Z",
			},
			{"id": 102, "name": "   "}, // no title, must be dropped
		},
	}))
	defer srv.Close()

	g := testGupyScraper(srv.URL)
	jobs, err := g.Search(context.Background(), []string{"python"})

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	job := jobs[0]
	assert.Equal(t, types.PlatformGupy, job.Platform)
	assert.Equal(t, "101", job.ExternalID)
	assert.Equal(t, "https://portal.gupy.io/job/101", job.URL)
	assert.Equal(t, "Desenvolvedor Python", job.Title)
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, "Remoto", job.Location)
	assert.Equal(t, types.SourceAPI, job.SourceKind)
	require.NotNil(t, job.PublishedAt)
	assert.Equal(t, 2025, job.PublishedAt.Year())
}

func TestGupyScraper_SearchDedupsAcrossKeywords(t *testing.T) {
	srv := httptest.NewServer(gupyHandler(t, map[string][]map[string]any{
		"0": {{"id": 5, "name": "Backend Dev", "company": map[string]any{"name": "Acme"}}},
	}))
	defer srv.Close()

	g := testGupyScraper(srv.URL)
	jobs, err := g.Search(context.Background(), []string{"python", "backend"})

	require.NoError(t, err)
	assert.Len(t, jobs, 1, "same posting from two keywords must collapse")
}

func TestGupyScraper_MissingCompanyBecomesSentinel(t *testing.T) {
	srv := httptest.NewServer(gupyHandler(t, map[string][]map[string]any{
		"0": {{"id": 9, "name": "Dev"}},
	}))
	defer srv.Close()

	g := testGupyScraper(srv.URL)
	jobs, err := g.Search(context.Background(), []string{"dev"})

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "N/A", jobs[0].Company)
}

func TestGupyScraper_SearchSurvivesPlatformFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	g := testGupyScraper(srv.URL)
	jobs, err := g.Search(context.Background(), []string{"python"})

	// a failed keyword is logged, not fatal
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestGupyScraper_SearchCompanies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			http.NotFound(w, r)
		case "/company":
			assert.Equal(t, "Acme", r.URL.Query().Get("name"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{"id": 7, "name": "Acme"}},
			})
		case "/job":
			assert.Equal(t, "7", r.URL.Query().Get("companyId"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{
					"id":      31,
					"name":    "Dev Pleno",
					"company": map[string]any{"id": 7, "name": "Acme"},
				}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	g := testGupyScraper(srv.URL)
	jobs, err := g.SearchCompanies(context.Background(), []string{"Acme"})

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Dev Pleno", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "31", jobs[0].ExternalID)
}

func TestGupyScraper_Details(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "/job/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"description": "long text", "benefits": "VR e VA"}`))
	}))
	defer srv.Close()

	g := testGupyScraper(srv.URL)
	details, err := g.Details(context.Background(), "https://portal.gupy.io/job/42")

	require.NoError(t, err)
	assert.Equal(t, "long text", details.Description)
	assert.Equal(t, "VR e VA", details.Benefits)
}

func TestGupyScraper_DetailsRejectsURLWithoutID(t *testing.T) {
	g := testGupyScraper("http://unused")
	_, err := g.Details(context.Background(), "https://portal.gupy.io/about")
	assert.Error(t, err)
}

func TestGupyScraper_LoginIsNoop(t *testing.T) {
	g := testGupyScraper("http://unused")
	ok, err := g.Login(context.Background(), types.Credentials{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, g.Close())
}

func TestGupyJobID(t *testing.T) {
	assert.Equal(t, "42", gupyJobID("https://portal.gupy.io/job/42"))
	assert.Equal(t, "42", gupyJobID("https://portal.gupy.io/job/42?utm=x"))
	assert.Equal(t, "", gupyJobID("https://portal.gupy.io/companies"))
}
