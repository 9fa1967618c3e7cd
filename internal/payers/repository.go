package payers

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kitelabs/kite/pkg/pagination"
	"github.com/kitelabs/kite/pkg/query"
	"github.com/kitelabs/kite/pkg/repository"
	"github.com/kitelabs/kite/pkg/storage"
)

const payerColumns = "id, account_number, name, signature_key, avg_amount, max_amount, typical_payees, created_at, updated_at"

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a payer repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "payers"),
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
) (*pagination.PageResult[Payer], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "AccountNumber")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count payers: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPayer)
	if err != nil {
		return nil, fmt.Errorf("query payers: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Payer, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPayer)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) FindByAccount(ctx context.Context, accountNumber string) (*Payer, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return nil, ErrInvalid
	}

	q, args := query.NewBuilder(projection).BuildSingle("AccountNumber", accountNumber)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPayer)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Payer, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	payees, err := marshalPayees(cmd.TypicalPayees)
	if err != nil {
		return nil, fmt.Errorf("marshal typical payees: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO payers(id, account_number, name, avg_amount, max_amount, typical_payees)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, payerColumns)

	insertArgs := []any{
		uuid.New(),
		strings.TrimSpace(cmd.AccountNumber),
		strings.TrimSpace(cmd.Name),
		cmd.AvgAmount,
		cmd.MaxAmount,
		payees,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Payer, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanPayer)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("payer created", "id", p.ID, "account", p.AccountNumber)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Payer, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		current.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.AvgAmount != nil {
		current.AvgAmount = *cmd.AvgAmount
	}
	if cmd.MaxAmount != nil {
		current.MaxAmount = *cmd.MaxAmount
	}
	if cmd.TypicalPayees != nil {
		current.TypicalPayees = cmd.TypicalPayees
	}

	if current.Name == "" {
		return nil, ErrInvalid
	}

	payees, err := marshalPayees(current.TypicalPayees)
	if err != nil {
		return nil, fmt.Errorf("marshal typical payees: %w", err)
	}

	q := fmt.Sprintf(`
		UPDATE payers
		SET name = $2, avg_amount = $3, max_amount = $4, typical_payees = $5, updated_at = now()
		WHERE id = $1
		RETURNING %s`, payerColumns)

	p, err := repository.QueryOne(
		ctx, r.db, q,
		[]any{id, current.Name, current.AvgAmount, current.MaxAmount, payees},
		scanPayer,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("payer updated", "id", id)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM payers WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if p.SignatureKey != nil {
		if delErr := r.storage.Delete(ctx, *p.SignatureKey); delErr != nil {
			r.logger.Warn(
				"signature blob delete failed after DB delete",
				"key", *p.SignatureKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("payer deleted", "id", id)
	return nil
}

func (r *repo) UploadSignature(ctx context.Context, id uuid.UUID, data io.Reader, contentType string) (*Payer, error) {
	p, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	key := buildSignatureKey(id)
	if err := r.storage.Upload(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("upload signature blob: %w", err)
	}

	q := fmt.Sprintf(`
		UPDATE payers
		SET signature_key = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s`, payerColumns)

	updated, err := repository.QueryOne(ctx, r.db, q, []any{id, key}, scanPayer)
	if err != nil {
		if p.SignatureKey == nil {
			if delErr := r.storage.Delete(ctx, key); delErr != nil {
				r.logger.Warn("compensating signature delete failed", "key", key, "error", delErr)
			}
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("payer signature uploaded", "id", id, "key", key)
	return &updated, nil
}

func (r *repo) DownloadSignature(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error) {
	p, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.SignatureKey == nil {
		return nil, ErrNoSignature
	}

	result, err := r.storage.Download(ctx, *p.SignatureKey)
	if err != nil {
		return nil, fmt.Errorf("download signature blob: %w", err)
	}

	return result, nil
}

func validateCreate(cmd CreateCommand) error {
	if strings.TrimSpace(cmd.AccountNumber) == "" {
		return ErrInvalid
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return ErrInvalid
	}
	if cmd.AvgAmount < 0 || cmd.MaxAmount < 0 {
		return ErrInvalid
	}
	return nil
}

func buildSignatureKey(id uuid.UUID) string {
	return fmt.Sprintf("payers/%s/signature.png", id)
}
