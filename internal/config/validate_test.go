package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.Search.Terms = []string{"golang"}
	cfg.Search.Sites = []string{"indeed"}
	cfg.Scraper.ServiceURL = "http://127.0.0.1:8787"
	ApplyDefaults(&cfg)
	return cfg
}

func TestNormalizeAndValidateOK(t *testing.T) {
	_, res := NormalizeAndValidate(validConfig())
	assert.True(t, res.OK())
	assert.Empty(t, res.Warnings)
}

func TestNormalizeTrimsAndDedupes(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Terms = []string{" golang ", "Golang", "", "sre"}
	cfg.Filters.JobTitles = GroupList{{" engineer ", ""}}

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	assert.Equal(t, []string{"golang", "sre"}, out.Search.Terms)
	assert.Equal(t, GroupList{{"engineer"}}, out.Filters.JobTitles)
}

func TestValidateMissingServiceURL(t *testing.T) {
	cfg := validConfig()
	cfg.Scraper.ServiceURL = "  "
	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
	assert.Contains(t, res.Errors[0], "service_url")
}

func TestValidateBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.App.Port = 70000
	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
}

func TestValidateWarnings(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Terms = nil
	cfg.Search.Sites = []string{"indeed", "monster"}
	cfg.Filters.JobTitles = GroupList{{}}

	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), "warnings never make the config unusable")
	assert.Len(t, res.Warnings, 3)
}

func TestIsSupportedSite(t *testing.T) {
	for _, s := range SupportedSites {
		assert.True(t, IsSupportedSite(s))
	}
	assert.False(t, IsSupportedSite("monster"))
	assert.False(t, IsSupportedSite("Indeed"))
}
