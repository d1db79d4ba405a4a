package scrape

import (
	"log"
	"strings"

	"jobscout-engine/internal/config"
)

// Task is one unit of scraping work: a single search term fanned across a
// fixed ordered list of sites. Immutable once created; consumed exactly
// once by the pool.
type Task struct {
	ID            string
	SearchTerm    string
	Sites         []string
	ResultsWanted int
	HoursOld      int
	Country       string
	Location      string
}

type TaskOptions struct {
	ResultsWanted int
	HoursOld      int
	Country       string
	Location      string
}

// GenerateTasks builds one task per search term. Unsupported sites are
// dropped with a warning; zero terms or zero valid sites yields no tasks.
func GenerateTasks(terms []string, sites []string, opt TaskOptions) []Task {
	if opt.ResultsWanted <= 0 {
		opt.ResultsWanted = config.DefaultResultsWanted
	}
	if opt.HoursOld <= 0 {
		opt.HoursOld = config.DefaultHoursOld
	}
	if opt.Country == "" {
		opt.Country = config.DefaultCountry
	}
	if len(sites) == 0 {
		sites = append([]string(nil), config.SupportedSites...)
	}

	var valid []string
	for _, s := range sites {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !config.IsSupportedSite(s) {
			log.Printf("[tasks] ignoring unsupported site %q", s)
			continue
		}
		valid = append(valid, s)
	}

	if len(terms) == 0 {
		log.Printf("[tasks] no search terms provided; no tasks generated")
		return nil
	}
	if len(valid) == 0 {
		log.Printf("[tasks] no valid sites provided; no tasks generated")
		return nil
	}

	tasks := make([]Task, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		tasks = append(tasks, Task{
			ID:            taskID(term),
			SearchTerm:    term,
			Sites:         append([]string(nil), valid...),
			ResultsWanted: opt.ResultsWanted,
			HoursOld:      opt.HoursOld,
			Country:       opt.Country,
			Location:      opt.Location,
		})
	}

	log.Printf("[tasks] generated %d tasks across %d sites each", len(tasks), len(valid))
	return tasks
}

// TotalFetchCount is the number of individual site fetches the tasks will
// perform (one per task/site pair).
func TotalFetchCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		n += len(t.Sites)
	}
	return n
}

func taskID(term string) string {
	s := strings.ToLower(term)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return "task_" + s
}
