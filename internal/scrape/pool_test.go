package scrape

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/source"
)

type fakeSource struct {
	mu    sync.Mutex
	calls []string
	fetch func(q source.Query) ([]domain.Posting, error)
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(_ context.Context, q source.Query) ([]domain.Posting, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q.Site+":"+q.Term)
	f.mu.Unlock()
	return f.fetch(q)
}

func posting(term, site, title string) domain.Posting {
	return domain.Posting{Title: title, Company: "Acme", Location: "Remote", Site: site, SearchTerm: term}
}

func TestWorkerCountFloor(t *testing.T) {
	assert.Equal(t, 1, workerCount(1, 2))
	assert.Equal(t, 1, workerCount(2, 2))
	assert.Equal(t, 1, workerCount(3, 2))
	assert.Equal(t, 6, workerCount(8, 2))
}

func TestWorkerCountExplicitOverride(t *testing.T) {
	assert.Equal(t, 3, Pool{Workers: 3}.WorkerCount())
	assert.GreaterOrEqual(t, Pool{}.WorkerCount(), 1)
}

func TestPoolFaultIsolation(t *testing.T) {
	src := &fakeSource{fetch: func(q source.Query) ([]domain.Posting, error) {
		if q.Term == "boom" {
			panic("worker exploded")
		}
		return []domain.Posting{posting(q.Term, q.Site, "Engineer")}, nil
	}}

	terms := []string{"alpha", "beta", "boom", "gamma", "delta"}
	tasks := GenerateTasks(terms, []string{"indeed"}, TaskOptions{})
	require.Len(t, tasks, 5)

	results := Pool{Workers: 4}.Run(context.Background(), src, tasks)
	require.Len(t, results, 5)

	var failed, ok int
	for _, r := range results {
		if r.Failed() {
			failed++
			assert.Equal(t, "boom", r.SearchTerm)
			assert.Contains(t, r.Failure, "panic:")
			assert.Zero(t, r.TotalJobs())
		} else {
			ok++
			assert.Equal(t, 1, r.TotalJobs())
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 4, ok)
}

func TestRunTaskSiteErrorIsolation(t *testing.T) {
	src := &fakeSource{fetch: func(q source.Query) ([]domain.Posting, error) {
		if q.Site == "linkedin" {
			return nil, &source.Error{Site: q.Site, Term: q.Term, Msg: "status 429: slow down"}
		}
		return []domain.Posting{posting(q.Term, q.Site, "Engineer")}, nil
	}}

	tasks := GenerateTasks([]string{"golang"}, []string{"indeed", "linkedin", "google"}, TaskOptions{})
	require.Len(t, tasks, 1)

	res := runTask(context.Background(), src, tasks[0])
	require.False(t, res.Failed())

	assert.Equal(t, 2, res.TotalJobs())
	assert.Equal(t, map[string]int{"indeed": 1, "linkedin": 0, "google": 1}, res.SiteCounts)
	assert.Equal(t, map[string]string{"linkedin": "status 429: slow down"}, res.SiteErrors)

	// Sites within a task run sequentially in configured order.
	assert.Equal(t, []string{"indeed:golang", "linkedin:golang", "google:golang"}, src.calls)
}

func TestPoolCompletesAllTasksWithOneWorker(t *testing.T) {
	src := &fakeSource{fetch: func(q source.Query) ([]domain.Posting, error) {
		return []domain.Posting{posting(q.Term, q.Site, "Engineer")}, nil
	}}

	var terms []string
	for i := 0; i < 10; i++ {
		terms = append(terms, fmt.Sprintf("term %d", i))
	}
	tasks := GenerateTasks(terms, []string{"indeed"}, TaskOptions{})

	results := Pool{Workers: 1}.Run(context.Background(), src, tasks)
	require.Len(t, results, 10)
	assert.Len(t, Flatten(results), 10)
}

func TestFlattenPreservesTaskOrder(t *testing.T) {
	results := []TaskResult{
		{Postings: []domain.Posting{posting("a", "indeed", "One"), posting("a", "indeed", "Two")}},
		{Postings: []domain.Posting{posting("b", "indeed", "Three")}},
		{},
	}
	flat := Flatten(results)
	require.Len(t, flat, 3)
	assert.Equal(t, "One", flat[0].Title)
	assert.Equal(t, "Three", flat[2].Title)
}
