package config

import (
	"fmt"
	"strings"
)

// SupportedSites lists the site identifiers the scrape service understands.
var SupportedSites = []string{"indeed", "linkedin", "glassdoor", "zip_recruiter", "google"}

func IsSupportedSite(site string) bool {
	for _, s := range SupportedSites {
		if s == site {
			return true
		}
	}
	return false
}

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it. Errors make the config unusable; warnings do not.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	trimGroups := func(gs GroupList) GroupList {
		var out GroupList
		for _, g := range gs {
			var kept []string
			for _, p := range g {
				p = strings.TrimSpace(p)
				if p == "" {
					continue
				}
				kept = append(kept, p)
			}
			out = append(out, kept)
		}
		return out
	}

	out.Search.Terms = trimList(out.Search.Terms)
	out.Search.Sites = trimList(out.Search.Sites)
	out.Filters.JobTitles = trimGroups(out.Filters.JobTitles)
	out.Filters.DescriptionKeywords = trimGroups(out.Filters.DescriptionKeywords)

	// ---- Validation rules ----

	if out.App.Port != 0 && (out.App.Port < 1 || out.App.Port > 65535) {
		res.addErr("app.port must be 1..65535")
	}

	if len(out.Search.Terms) == 0 {
		res.addWarn("search.search_terms is empty; scrape runs will produce nothing until terms are configured.")
	}

	for _, s := range out.Search.Sites {
		if !IsSupportedSite(s) {
			res.addWarn("search.sites contains unsupported site %q (supported: %s)", s, strings.Join(SupportedSites, ", "))
		}
	}

	if out.Search.ResultsWanted < 0 {
		res.addErr("search.results_wanted must be >= 0")
	}
	if out.Search.HoursOld < 0 {
		res.addErr("search.hours_old must be >= 0")
	}
	if out.Search.ResultsWanted > 200 {
		res.addWarn("search.results_wanted is very high (%d) and may trigger rate limits.", out.Search.ResultsWanted)
	}

	if out.Scraper.MaxWorkers < 0 {
		res.addErr("scraper.max_workers must be >= 0 (0 = auto)")
	}
	if out.Scraper.WorkerReserve < 0 {
		res.addErr("scraper.worker_reserve must be >= 0")
	}
	if strings.TrimSpace(out.Scraper.ServiceURL) == "" {
		res.addErr("scraper.service_url is required")
	}

	// Groups with zero patterns match everything; flag them so a typo in
	// the config doesn't silently disable a filter.
	checkGroups := func(name string, gs GroupList) {
		for i, g := range gs {
			if len(g) == 0 {
				res.addWarn("%s[%d] is an empty group and will match every job", name, i)
			}
		}
	}
	checkGroups("filters.job_titles", out.Filters.JobTitles)
	checkGroups("filters.description_keywords", out.Filters.DescriptionKeywords)

	return out, res
}
