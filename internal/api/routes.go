package api

import (
	"net/http"

	"github.com/kitelabs/kite/internal/config"
	"github.com/kitelabs/kite/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	maxUploadSize := cfg.API.MaxUploadSizeBytes()

	storageRoutes := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)

	routes.Register(
		mux,
		domain.Cheques.Handler(maxUploadSize).Routes(),
		domain.Payers.Handler(maxUploadSize).Routes(),
		domain.Prompts.Handler().Routes(),
		domain.Decisions.Handler().Routes(),
		storageRoutes.routes(),
	)
}
