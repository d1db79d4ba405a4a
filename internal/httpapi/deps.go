package httpapi

import (
	"context"
	"sync/atomic"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/progress"
	"jobscout-engine/internal/store"
	"jobscout-engine/internal/workflow"
)

// Deps carries everything the handlers need; main() builds one.
type Deps struct {
	DB          *store.DB
	Hub         *events.Hub
	Progress    *progress.Store
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// RunWorkflow executes one scrape run; tests swap it out.
	RunWorkflow func(ctx context.Context, cfg config.Config, opts workflow.Options) workflow.Result
}
