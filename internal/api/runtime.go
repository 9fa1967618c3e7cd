package api

import (
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/kitelabs/kite/internal/config"
	"github.com/kitelabs/kite/internal/infrastructure"
	"github.com/kitelabs/kite/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Agent:      cfg.Agent,
		Pagination: cfg.API.Pagination,
	}
}
