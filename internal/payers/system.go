package payers

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/kitelabs/kite/pkg/pagination"
	"github.com/kitelabs/kite/pkg/storage"
)

// System defines the public contract for payer registry operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Payer], error)

	Find(ctx context.Context, id uuid.UUID) (*Payer, error)
	FindByAccount(ctx context.Context, accountNumber string) (*Payer, error)
	Create(ctx context.Context, cmd CreateCommand) (*Payer, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Payer, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UploadSignature(ctx context.Context, id uuid.UUID, data io.Reader, contentType string) (*Payer, error)
	DownloadSignature(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error)
}
