package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  port: 39000
search:
  search_terms: [golang developer]
  sites: [indeed, linkedin]
filters:
  job_titles:
    - [engineer, developer]
    - [senior]
scraper:
  service_url: "http://127.0.0.1:8787"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 39000, cfg.App.Port)
	assert.Equal(t, []string{"golang developer"}, cfg.Search.Terms)
	assert.Equal(t, GroupList{{"engineer", "developer"}, {"senior"}}, cfg.Filters.JobTitles)

	// Unset fields pick up defaults.
	assert.Equal(t, DefaultResultsWanted, cfg.Search.ResultsWanted)
	assert.Equal(t, DefaultHoursOld, cfg.Search.HoursOld)
	assert.Equal(t, DefaultCountry, cfg.Search.Country)
	assert.Equal(t, DefaultWorkerReserve, cfg.Scraper.WorkerReserve)
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.Search.Terms = append(cfg.Search.Terms, "sre")
	require.NoError(t, SaveAtomic(path, cfg))

	// Previous content survives as a backup.
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Search.Terms, reloaded.Search.Terms)
	assert.Equal(t, cfg.Filters.JobTitles, reloaded.Filters.JobTitles)
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	var cfg Config // no service_url
	assert.Error(t, SaveAtomic(path, cfg))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "invalid config must not be written")
}

func TestEnsureUserConfigCopiesDefault(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := writeConfig(t, sampleYAML)

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), userPath)

	cfg, err := Load(userPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang developer"}, cfg.Search.Terms)

	// Second call leaves the existing user copy alone.
	require.NoError(t, os.WriteFile(userPath, []byte("app:\n  port: 1\n"), 0o644))
	again, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	cfg2, err := Load(again)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg2.App.Port)
}
