package httpapi

import "net/http"

// NewMux wires every route. main() wraps the mux in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Scrape runs
	sch := ScrapeHandler{
		CfgVal:      d.CfgVal,
		Progress:    d.Progress,
		Hub:         d.Hub,
		RunWorkflow: d.RunWorkflow,
	}
	mux.HandleFunc("/scrape/start", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Start,
	}))
	mux.HandleFunc("/scrape/status/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.StatusByPath,
	}))

	// Jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/", jh.ByPath) // /jobs/{id}, /jobs/{id}/ignore, /jobs/{id}/statuses

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (keyring-backed, never persisted to disk)
	sh := SecretsHandler{}
	mux.HandleFunc("/secrets/scrape-token", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetScrapeToken,
		http.MethodDelete: sh.DeleteScrapeToken,
	}))

	// Events + health
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))
	hh := HealthHandler{DB: d.DB}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
