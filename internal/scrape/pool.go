package scrape

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/source"
)

// TaskResult is everything one task produced. Workers build a TaskResult
// privately and hand it back over a channel; nothing here is ever shared
// between goroutines while being written.
type TaskResult struct {
	TaskID     string
	SearchTerm string
	Postings   []domain.Posting
	SiteCounts map[string]int
	SiteErrors map[string]string
	Failure    string // set when the whole task died unexpectedly
}

func (r TaskResult) Failed() bool   { return r.Failure != "" }
func (r TaskResult) TotalJobs() int { return len(r.Postings) }

// Pool runs tasks across a bounded set of workers. Each task is owned by
// exactly one worker end-to-end; sites within a task run sequentially so
// any single external target only ever sees one in-flight request per task.
type Pool struct {
	Workers int // explicit worker count; 0 = derive from CPU count
	Reserve int // cores to leave for the rest of the process; 0 = default
}

func (p Pool) WorkerCount() int {
	if p.Workers > 0 {
		return p.Workers
	}
	reserve := p.Reserve
	if reserve <= 0 {
		reserve = config.DefaultWorkerReserve
	}
	return workerCount(runtime.NumCPU(), reserve)
}

func workerCount(parallelism, reserve int) int {
	n := parallelism - reserve
	if n < 1 {
		return 1
	}
	return n
}

// Run executes all tasks and returns one TaskResult per task, in completion
// order. Callers must not depend on ordering. Tasks are never retried.
func (p Pool) Run(ctx context.Context, src source.Source, tasks []Task) []TaskResult {
	if len(tasks) == 0 {
		return nil
	}

	workers := p.WorkerCount()
	log.Printf("[pool] running %d tasks workers=%d source=%s", len(tasks), workers, src.Name())

	results := make(chan TaskResult, len(tasks))

	var g errgroup.Group
	g.SetLimit(workers)

	for _, t := range tasks {
		t := t
		g.Go(func() error {
			results <- runTask(ctx, src, t)
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	out := make([]TaskResult, 0, len(tasks))
	for res := range results {
		if res.Failed() {
			log.Printf("[pool] task failed term=%q err=%s", res.SearchTerm, res.Failure)
		} else {
			log.Printf("[pool] completed term=%q jobs=%d errors=%d",
				res.SearchTerm, res.TotalJobs(), len(res.SiteErrors))
		}
		out = append(out, res)
	}
	return out
}

// runTask visits the task's sites in configured order. A *source.Error on
// one site is recorded and the remaining sites are still attempted; a panic
// is caught here so a single bad task cannot take down the pool.
func runTask(ctx context.Context, src source.Source, t Task) (res TaskResult) {
	res = TaskResult{
		TaskID:     t.ID,
		SearchTerm: t.SearchTerm,
		SiteCounts: make(map[string]int, len(t.Sites)),
		SiteErrors: make(map[string]string),
	}

	defer func() {
		if rec := recover(); rec != nil {
			res.Failure = fmt.Sprintf("panic: %v", rec)
		}
	}()

	for _, site := range t.Sites {
		postings, err := src.Fetch(ctx, source.Query{
			Term:     t.SearchTerm,
			Site:     site,
			Limit:    t.ResultsWanted,
			HoursOld: t.HoursOld,
			Country:  t.Country,
			Location: t.Location,
		})
		if err != nil {
			res.SiteCounts[site] = 0
			if se, ok := source.AsError(err); ok {
				res.SiteErrors[site] = se.Msg
			} else {
				res.SiteErrors[site] = err.Error()
			}
			log.Printf("[pool] [%s] %q error: %v", site, t.SearchTerm, err)
			continue
		}

		res.Postings = append(res.Postings, postings...)
		res.SiteCounts[site] = len(postings)
		log.Printf("[pool] [%s] %q found %d jobs", site, t.SearchTerm, len(postings))
	}

	return res
}

// Flatten concatenates the postings of all task results, preserving the
// aggregation order the pool produced.
func Flatten(results []TaskResult) []domain.Posting {
	var out []domain.Posting
	for _, r := range results {
		out = append(out, r.Postings...)
	}
	return out
}
