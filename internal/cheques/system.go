package cheques

import (
	"context"

	"github.com/google/uuid"

	"github.com/kitelabs/kite/pkg/pagination"
	"github.com/kitelabs/kite/pkg/storage"
)

// System defines the public contract for cheque domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Cheque], error)

	Find(ctx context.Context, id uuid.UUID) (*Cheque, error)
	Create(ctx context.Context, cmd CreateCommand) (*Cheque, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*Cheque, error)
	Download(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
