package workflow

import (
	"context"
	"fmt"
	"log"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/filter"
	"jobscout-engine/internal/process"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/source"
)

// Store is what the orchestrator needs from persistence. *store.DB
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	InsertJob(ctx context.Context, rec domain.Record) (int64, error)
	FindJobBy(ctx context.Context, title, company, location string) (int64, bool, error)
	filter.Store
}

// ProgressFunc receives coarse stage updates while a run executes.
type ProgressFunc func(stage string, percent int)

type Deps struct {
	Cfg    config.Config
	Source source.Source
	Store  Store // may be nil when SaveToDatabase is false
	Pool   scrape.Pool
}

type Options struct {
	SearchTerms    []string // nil = take from config
	Sites          []string // nil = take from config, empty = all supported
	ResultsWanted  int
	HoursOld       int
	SaveToDatabase bool
	OnProgress     ProgressFunc
}

// Execute runs the whole pipeline once: config -> scrape -> process ->
// store -> filter. Every stage lands in the Result even on partial
// failure, and nothing escapes as a panic or raw error; callers always get
// a Result describing what happened.
func Execute(ctx context.Context, deps Deps, opts Options) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res.Success = false
			res.Errors = append(res.Errors, fmt.Sprintf("workflow panic: %v", rec))
			log.Printf("[workflow] panic recovered: %v", rec)
		}
	}()

	progress := opts.OnProgress
	if progress == nil {
		progress = func(string, int) {}
	}

	log.Printf("[workflow] starting run")

	// Stage 1: configuration.
	progress("config", 5)

	terms := opts.SearchTerms
	if terms == nil {
		terms = deps.Cfg.Search.Terms
	}
	if len(terms) == 0 {
		res.Errors = append(res.Errors, "no search terms provided")
		log.Printf("[workflow] aborted: no search terms")
		return res
	}

	sites := opts.Sites
	if sites == nil {
		sites = deps.Cfg.Search.Sites
	}
	if len(sites) == 0 {
		sites = append([]string(nil), config.SupportedSites...)
	}

	resultsWanted := opts.ResultsWanted
	if resultsWanted <= 0 {
		resultsWanted = deps.Cfg.Search.ResultsWanted
	}
	hoursOld := opts.HoursOld
	if hoursOld <= 0 {
		hoursOld = deps.Cfg.Search.HoursOld
	}

	res.Steps.Config = &ConfigStep{
		SearchTerms:   terms,
		Sites:         sites,
		ResultsWanted: resultsWanted,
		HoursOld:      hoursOld,
	}

	// Stage 2: concurrent scraping.
	progress("scraping", 10)

	tasks := scrape.GenerateTasks(terms, sites, scrape.TaskOptions{
		ResultsWanted: resultsWanted,
		HoursOld:      hoursOld,
		Country:       deps.Cfg.Search.Country,
		Location:      deps.Cfg.Search.Location,
	})
	if len(tasks) == 0 {
		res.Errors = append(res.Errors, "no scraping tasks could be generated")
		return res
	}

	taskResults := deps.Pool.Run(ctx, deps.Source, tasks)
	raw := scrape.Flatten(taskResults)

	res.Steps.Scrape = newScrapeStep(len(tasks), taskResults, len(raw))
	log.Printf("[workflow] scraped %d raw postings", len(raw))

	if len(raw) == 0 {
		log.Printf("[workflow] nothing scraped; run complete")
		res.Success = true
		progress("completed", 100)
		return res
	}

	// Stage 3: process and deduplicate.
	progress("processing", 50)

	records, pstats := process.Process(raw)
	res.Steps.Process = &ProcessStep{
		ProcessedCount: len(records),
		Pipeline:       pstats,
		Statistics:     process.ComputeStatistics(records),
	}

	// Stage 4: storage, skipping records already stored by earlier runs.
	var jobIDs []int64
	if opts.SaveToDatabase && deps.Store != nil {
		progress("storing", 70)

		step := &StorageStep{}
		for _, rec := range records {
			_, exists, err := deps.Store.FindJobBy(ctx, rec.Title, rec.Company, rec.Location)
			if err != nil {
				res.Errors = append(res.Errors, "store lookup: "+err.Error())
				continue
			}
			if exists {
				step.SkippedCount++
				continue
			}
			id, err := deps.Store.InsertJob(ctx, rec)
			if err != nil {
				res.Errors = append(res.Errors, "store error: "+err.Error())
				continue
			}
			jobIDs = append(jobIDs, id)
			step.StoredCount++
		}
		step.JobIDs = jobIDs
		res.Steps.Storage = step
		log.Printf("[workflow] stored %d jobs, skipped %d duplicates", step.StoredCount, step.SkippedCount)
	} else {
		res.Steps.Storage = &StorageStep{Skipped: true}
		log.Printf("[workflow] storage disabled; skipping")
	}

	// Stage 5: relevance filtering.
	progress("filtering", 90)

	fcfg := filter.Config{
		TitleGroups:   deps.Cfg.Filters.JobTitles.Groups(),
		KeywordGroups: deps.Cfg.Filters.DescriptionKeywords.Groups(),
	}

	if len(jobIDs) > 0 {
		sum, err := filter.MarkIgnored(ctx, deps.Store, jobIDs, fcfg)
		if err != nil {
			res.Errors = append(res.Errors, "filter error: "+err.Error())
			return res
		}
		res.Steps.Filter = &FilterStep{Kept: sum.Kept, Ignored: sum.Ignored, Marked: true}
	} else {
		kept, ignored := filter.Partition(records, fcfg)
		res.Steps.Filter = &FilterStep{Kept: len(kept), Ignored: len(ignored)}
	}

	res.Success = true
	progress("completed", 100)
	log.Printf("[workflow] run complete")
	return res
}
