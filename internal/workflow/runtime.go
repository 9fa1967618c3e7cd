package workflow

import (
	"log/slog"

	"github.com/kitelabs/kite/internal/cheques"
	"github.com/kitelabs/kite/internal/payers"
	"github.com/kitelabs/kite/internal/prompts"
	"github.com/kitelabs/kite/pkg/storage"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Agent   gaconfig.AgentConfig
	Storage storage.System
	Cheques cheques.System
	Payers  payers.System
	Prompts prompts.System
	Logger  *slog.Logger
}
