package decisions

import (
	"context"

	"github.com/google/uuid"

	"github.com/kitelabs/kite/pkg/pagination"
)

// System defines the public contract for decision domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Decision], error)

	Find(ctx context.Context, id uuid.UUID) (*Decision, error)
	FindByCheque(ctx context.Context, chequeID uuid.UUID) (*Decision, error)
	Process(ctx context.Context, chequeID uuid.UUID) (*Decision, error)
	Validate(ctx context.Context, id uuid.UUID, cmd ValidateCommand) (*Decision, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Decision, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
