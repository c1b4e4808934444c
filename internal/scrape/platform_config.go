package scrape

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nanotecnologista/jobradar/internal/schemas"
)

//go:embed platform_config.schema.json
var platformConfigSchema string

// PlatformConfig declaratively describes a job board for the generic
// scraper: where to search, how to paginate, and which selectors extract
// each field. New platforms are added by dropping a JSON file into the
// platform config directory; no code changes are needed.
type PlatformConfig struct {
	BaseURL       string                 `json:"base_url"`
	LoginRequired bool                   `json:"login_required,omitempty"`
	Login         *LoginConfig           `json:"login,omitempty"`
	Search        SearchConfig           `json:"search"`
	Details       map[string][]FieldRule `json:"details,omitempty"`
}

// LoginConfig describes a form-based login flow for declarative platforms.
type LoginConfig struct {
	Path              string   `json:"path"`
	EmailField        string   `json:"email_field,omitempty"`
	PasswordField     string   `json:"password_field,omitempty"`
	SuccessIndicators []string `json:"success_indicators,omitempty"`
}

// SearchConfig describes the search URL shape and listing extraction rules.
type SearchConfig struct {
	Path          string            `json:"path"`
	Params        map[string]string `json:"params,omitempty"`
	QueryParam    string            `json:"query_param"`
	PageParam     string            `json:"page_param"`
	CardSelectors []string          `json:"card_selectors"`
	Fields        CardFields        `json:"fields"`
}

// CardFields holds the per-field extraction rule lists for a listing card.
type CardFields struct {
	Title       []FieldRule `json:"title"`
	Company     []FieldRule `json:"company,omitempty"`
	Link        []FieldRule `json:"link,omitempty"`
	Location    []FieldRule `json:"location,omitempty"`
	Description []FieldRule `json:"description,omitempty"`
	Date        []FieldRule `json:"date,omitempty"`
	Salary      []FieldRule `json:"salary,omitempty"`
}

// LoadPlatformConfigs reads every *.json file in dir, validates it against
// the platform config schema and returns configs keyed by platform name
// (the file name without extension). An invalid file fails the whole load:
// a misconfigured platform should be caught at startup, not mid-session.
func LoadPlatformConfigs(dir string) (map[string]PlatformConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read platform config dir: %w", err)
	}

	configs := make(map[string]PlatformConfig)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if err := schemas.ValidateJSONString(platformConfigSchema, string(data)); err != nil {
			return nil, fmt.Errorf("invalid platform config %s: %w", path, err)
		}

		var pc PlatformConfig
		if err := json.Unmarshal(data, &pc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		configs[name] = pc
	}

	return configs, nil
}

// BuiltinPlatformConfigs returns the declarative configs shipped with the
// binary for the remote-work boards that need no custom code.
func BuiltinPlatformConfigs() map[string]PlatformConfig {
	return map[string]PlatformConfig{
		"himalayas": {
			BaseURL: "https://himalayas.app",
			Search: SearchConfig{
				Path:          "/jobs",
				Params:        map[string]string{"remote": "true", "date": "week"},
				QueryParam:    "q",
				PageParam:     "page",
				CardSelectors: []string{"div.job-card", "article.job-card"},
				Fields: CardFields{
					Title:       []FieldRule{{Selector: "h3.job-title"}, {Selector: "h3"}},
					Company:     []FieldRule{{Selector: "span.company-name"}, {Selector: ".company"}},
					Link:        []FieldRule{{Selector: "a.job-link", Attr: "href"}, {Selector: "a", Attr: "href"}},
					Location:    []FieldRule{{Selector: "span.location"}},
					Description: []FieldRule{{Selector: "p.job-description"}},
					Date:        []FieldRule{{Selector: "time"}, {Selector: "span.date"}},
				},
			},
		},
		"remotar": {
			BaseURL: "https://remotar.com.br",
			Search: SearchConfig{
				Path:          "/vagas",
				Params:        map[string]string{"tipo": "remoto"},
				QueryParam:    "busca",
				PageParam:     "pagina",
				CardSelectors: []string{"div.vaga-item", "article.vaga"},
				Fields: CardFields{
					Title:    []FieldRule{{Selector: "h2.vaga-titulo"}, {Selector: "h2"}},
					Company:  []FieldRule{{Selector: "span.empresa"}},
					Link:     []FieldRule{{Selector: "a.vaga-link", Attr: "href"}, {Selector: "a", Attr: "href"}},
					Location: []FieldRule{{Selector: "span.localizacao"}},
					Date:     []FieldRule{{Selector: "span.data"}, {Selector: "time"}},
				},
			},
		},
		"querohome": {
			BaseURL: "https://querohome.com.br",
			Search: SearchConfig{
				Path:          "/vagas",
				Params:        map[string]string{"modalidade": "home-office"},
				QueryParam:    "q",
				PageParam:     "page",
				CardSelectors: []string{"article.job-card", "div.job-card"},
				Fields: CardFields{
					Title:    []FieldRule{{Selector: "h3.job-title"}, {Selector: "h3"}},
					Company:  []FieldRule{{Selector: "span.company"}},
					Link:     []FieldRule{{Selector: "a.job-link", Attr: "href"}, {Selector: "a", Attr: "href"}},
					Location: []FieldRule{{Selector: "span.location"}},
				},
			},
		},
	}
}
