package cheques

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kitelabs/kite/pkg/pagination"
	"github.com/kitelabs/kite/pkg/query"
	"github.com/kitelabs/kite/pkg/repository"
	"github.com/kitelabs/kite/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a cheque repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "cheques"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Cheque], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "Status")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count cheques: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCheque)
	if err != nil {
		return nil, fmt.Errorf("query cheques: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Cheque, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCheque)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Cheque, error) {
	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload cheque blob: %w", err)
	}

	q := `
		INSERT INTO cheques(id, filename, content_type, size_bytes, page_count, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, filename, content_type, size_bytes, page_count, storage_key, status, uploaded_at, updated_at`

	insertArgs := []any{
		id,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Cheque, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanCheque)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("cheque created", "id", c.ID, "filename", c.Filename)
	return &c, nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Cheque, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	q := `
		UPDATE cheques
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, filename, content_type, size_bytes, page_count, storage_key, status, uploaded_at, updated_at`

	c, err := repository.QueryOne(ctx, r.db, q, []any{id, status}, scanCheque)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("cheque status updated", "id", id, "status", status)
	return &c, nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := r.storage.Download(ctx, c.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("download cheque blob: %w", err)
	}

	return result, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM cheques WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, c.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", c.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("cheque deleted", "id", id)
	return nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("cheques/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "cheque"
	}
	return url.PathEscape(name)
}
