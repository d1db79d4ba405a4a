package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/progress"
	"jobscout-engine/internal/workflow"
)

type ScrapeHandler struct {
	CfgVal      *atomic.Value // config.Config
	Progress    *progress.Store
	Hub         *events.Hub
	RunWorkflow func(ctx context.Context, cfg config.Config, opts workflow.Options) workflow.Result
}

// startScrapeRequest overrides config values for a single run. All fields
// are optional; zero values fall back to the loaded config.
type startScrapeRequest struct {
	SearchTerms    []string `json:"search_terms"`
	Sites          []string `json:"sites"`
	ResultsWanted  int      `json:"results_wanted"`
	HoursOld       int      `json:"hours_old"`
	SaveToDatabase *bool    `json:"save_to_database"`
}

// Start kicks off a run in the background and returns its id immediately.
// Callers poll /scrape/status/{id} or watch /events for completion.
func (h ScrapeHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startScrapeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
			return
		}
	}

	save := true
	if req.SaveToDatabase != nil {
		save = *req.SaveToDatabase
	}

	id := h.Progress.Begin()
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypeRunStarted, map[string]any{"run_id": id}))

	go h.run(id, reqID, req, save)

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true, "run_id": id})
}

func (h ScrapeHandler) run(id, reqID string, req startScrapeRequest, save bool) {
	h.Progress.Update(id, func(run *progress.Run) {
		run.Status = progress.StatusRunning
		run.Stage = "starting"
	})

	cfg := h.CfgVal.Load().(config.Config)
	res := h.RunWorkflow(context.Background(), cfg, workflow.Options{
		SearchTerms:    req.SearchTerms,
		Sites:          req.Sites,
		ResultsWanted:  req.ResultsWanted,
		HoursOld:       req.HoursOld,
		SaveToDatabase: save,
		OnProgress: func(stage string, percent int) {
			h.Progress.Update(id, func(run *progress.Run) {
				run.Stage = stage
				run.Percent = percent
			})
		},
	})

	if res.Success {
		h.Progress.Finish(id, progress.StatusCompleted, res, "")
		h.Hub.Publish(events.Make(reqID, events.TypeRunCompleted, map[string]any{"run_id": id}))
		return
	}
	h.Progress.Finish(id, progress.StatusFailed, res, strings.Join(res.Errors, "; "))
	h.Hub.Publish(events.Make(reqID, events.TypeRunFailed, map[string]any{"run_id": id}))
}

// StatusByPath serves /scrape/status/{id}.
func (h ScrapeHandler) StatusByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/scrape/status/")
	run, ok := h.Progress.Get(id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown run id")
		return
	}
	writeJSON(w, run)
}
