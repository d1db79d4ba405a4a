package workflow

import (
	"jobscout-engine/internal/process"
	"jobscout-engine/internal/scrape"
)

// Result is the structured outcome of one run. Success means the run made
// it through every stage; Errors can still be non-empty (per-record storage
// failures, for example).
type Result struct {
	Success bool     `json:"success"`
	Steps   Steps    `json:"steps"`
	Errors  []string `json:"errors"`
}

type Steps struct {
	Config  *ConfigStep  `json:"config,omitempty"`
	Scrape  *ScrapeStep  `json:"scraping,omitempty"`
	Process *ProcessStep `json:"processing,omitempty"`
	Storage *StorageStep `json:"storage,omitempty"`
	Filter  *FilterStep  `json:"filtering,omitempty"`
}

type ConfigStep struct {
	SearchTerms   []string `json:"search_terms"`
	Sites         []string `json:"sites"`
	ResultsWanted int      `json:"results_wanted"`
	HoursOld      int      `json:"hours_old"`
}

type TaskSummary struct {
	SearchTerm string            `json:"search_term"`
	TotalJobs  int               `json:"total_jobs"`
	SiteCounts map[string]int    `json:"site_counts"`
	SiteErrors map[string]string `json:"site_errors,omitempty"`
	Failure    string            `json:"failure,omitempty"`
}

type ScrapeStep struct {
	RawCount       int           `json:"raw_jobs_count"`
	TasksTotal     int           `json:"tasks_total"`
	TasksCompleted int           `json:"tasks_completed"`
	TasksFailed    int           `json:"tasks_failed"`
	Tasks          []TaskSummary `json:"tasks"`
}

type ProcessStep struct {
	ProcessedCount int                `json:"processed_count"`
	Pipeline       process.Stats      `json:"pipeline"`
	Statistics     process.Statistics `json:"statistics"`
}

type StorageStep struct {
	Skipped      bool    `json:"skipped,omitempty"`
	StoredCount  int     `json:"stored_count"`
	SkippedCount int     `json:"skipped_count"`
	JobIDs       []int64 `json:"job_ids,omitempty"`
}

type FilterStep struct {
	Kept    int  `json:"kept"`
	Ignored int  `json:"ignored"`
	Marked  bool `json:"marked"` // true when persisted flags were updated
}

func newScrapeStep(tasksTotal int, results []scrape.TaskResult, rawCount int) *ScrapeStep {
	step := &ScrapeStep{
		RawCount:   rawCount,
		TasksTotal: tasksTotal,
	}
	for _, r := range results {
		if r.Failed() {
			step.TasksFailed++
		} else {
			step.TasksCompleted++
		}
		step.Tasks = append(step.Tasks, TaskSummary{
			SearchTerm: r.SearchTerm,
			TotalJobs:  r.TotalJobs(),
			SiteCounts: r.SiteCounts,
			SiteErrors: r.SiteErrors,
			Failure:    r.Failure,
		})
	}
	return step
}
