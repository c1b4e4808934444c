package scrape

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanotecnologista/jobradar/internal/schemas"
)

const validPlatformJSON = `{
	"base_url": "https://board.example.com",
	"search": {
		"path": "/jobs",
		"params": {"remote": "true"},
		"query_param": "q",
		"page_param": "page",
		"card_selectors": ["div.card"],
		"fields": {
			"title": [{"selector": "h3"}],
			"link": [{"selector": "a", "attr": "href"}]
		}
	}
}`

func TestLoadPlatformConfigs_Valid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exampleboard.json"), []byte(validPlatformJSON), 0o644))

	configs, err := LoadPlatformConfigs(dir)
	require.NoError(t, err)
	require.Contains(t, configs, "exampleboard")

	pc := configs["exampleboard"]
	assert.Equal(t, "https://board.example.com", pc.BaseURL)
	assert.Equal(t, "q", pc.Search.QueryParam)
	assert.Equal(t, []string{"div.card"}, pc.Search.CardSelectors)
	require.Len(t, pc.Search.Fields.Title, 1)
	assert.Equal(t, "h3", pc.Search.Fields.Title[0].Selector)
}

func TestLoadPlatformConfigs_InvalidFileFailsLoad(t *testing.T) {
	dir := t.TempDir()
	// missing required search.fields.title
	bad := `{"base_url": "https://x.com", "search": {"path": "/jobs", "query_param": "q", "page_param": "p", "card_selectors": ["a"], "fields": {}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(bad), 0o644))

	_, err := LoadPlatformConfigs(dir)
	assert.Error(t, err)
}

func TestLoadPlatformConfigs_RejectsNonHTTPBaseURL(t *testing.T) {
	dir := t.TempDir()
	bad := `{"base_url": "ftp://x.com", "search": {"path": "/jobs", "query_param": "q", "page_param": "p", "card_selectors": ["a"], "fields": {"title": [{"selector": "h3"}]}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(bad), 0o644))

	_, err := LoadPlatformConfigs(dir)
	assert.Error(t, err)
}

func TestLoadPlatformConfigs_IgnoresNonJSONFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	configs, err := LoadPlatformConfigs(dir)
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestBuiltinPlatformConfigs_ConformToSchema(t *testing.T) {
	for name, pc := range BuiltinPlatformConfigs() {
		data, err := json.Marshal(pc)
		require.NoError(t, err, name)
		assert.NoError(t, schemas.ValidateJSONString(platformConfigSchema, string(data)), name)
	}
}
