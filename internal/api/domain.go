package api

import (
	"github.com/kitelabs/kite/internal/cheques"
	"github.com/kitelabs/kite/internal/decisions"
	"github.com/kitelabs/kite/internal/payers"
	"github.com/kitelabs/kite/internal/prompts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Cheques   cheques.System
	Payers    payers.System
	Prompts   prompts.System
	Decisions decisions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	chequeSystem := cheques.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	payerSystem := payers.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	promptSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	decisionSystem := decisions.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Logger,
		runtime.Pagination,
		runtime.Storage,
		chequeSystem,
		payerSystem,
		promptSystem,
	)

	return &Domain{
		Cheques:   chequeSystem,
		Payers:    payerSystem,
		Prompts:   promptSystem,
		Decisions: decisionSystem,
	}
}
