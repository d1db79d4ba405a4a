package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/httpapi"
	"jobscout-engine/internal/progress"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/source"
	"jobscout-engine/internal/secrets"
	"jobscout-engine/internal/store"
	"jobscout-engine/internal/workflow"
)

const defaultPort = 38471

func main() {
	// Engine data dir: env wins, else the working directory.
	dataDir := os.Getenv("JOBSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; two processes sharing the SQLite file would
	// fight over it.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance holds %s", lock.Path())
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it hot-swappable for PUT /config.
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobscout.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()
	runs := progress.NewStore(progress.DefaultTTL)

	// Each run builds its source from the config snapshot it was started
	// with, so a config edit mid-run can't change that run's behavior.
	runWorkflow := func(ctx context.Context, cfg config.Config, opts workflow.Options) workflow.Result {
		src := source.NewClient(source.ClientConfig{
			BaseURL:        cfg.Scraper.ServiceURL,
			RequestsPerSec: cfg.Scraper.RequestsPerSec,
			Burst:          cfg.Scraper.Burst,
		})
		src.Token = secrets.GetServiceToken
		return workflow.Execute(ctx, workflow.Deps{
			Cfg:    cfg,
			Source: src,
			Store:  db,
			Pool: scrape.Pool{
				Workers: cfg.Scraper.MaxWorkers,
				Reserve: cfg.Scraper.WorkerReserve,
			},
		}, opts)
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db,
		Hub:         hub,
		Progress:    runs,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		RunWorkflow: runWorkflow,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	port := cfg.App.Port
	if port <= 0 {
		port = defaultPort
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[engine] listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
