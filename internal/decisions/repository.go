package decisions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/kitelabs/kite/internal/cheques"
	"github.com/kitelabs/kite/internal/payers"
	"github.com/kitelabs/kite/internal/prompts"
	"github.com/kitelabs/kite/internal/workflow"
	"github.com/kitelabs/kite/pkg/pagination"
	"github.com/kitelabs/kite/pkg/query"
	"github.com/kitelabs/kite/pkg/repository"
	"github.com/kitelabs/kite/pkg/storage"
)

const decisionColumns = `id, cheque_id, outcome, readable, fraud_detected,
	payee, amount, cheque_date, account_number, payer_name,
	lien_likely, lien_probability, anomalies, summary,
	model_name, provider_name, processed_at, validated_by, validated_at`

type repo struct {
	db         *sql.DB
	runtime    *workflow.Runtime
	cheques    cheques.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a decision repository implementing the System interface.
// It assembles the workflow runtime from the provided dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	logger *slog.Logger,
	pagination pagination.Config,
	store storage.System,
	chequeSys cheques.System,
	payerSys payers.System,
	promptSys prompts.System,
) System {
	scoped := logger.With("system", "decisions")

	return &repo{
		db: db,
		runtime: &workflow.Runtime{
			Agent:   agent,
			Storage: store,
			Cheques: chequeSys,
			Payers:  payerSys,
			Prompts: promptSys,
			Logger:  scoped,
		},
		cheques:    chequeSys,
		logger:     scoped,
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Decision], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Payee", "AccountNumber", "PayerName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count decisions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDecision)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Decision, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDecision)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) FindByCheque(ctx context.Context, chequeID uuid.UUID) (*Decision, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ChequeID", chequeID)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDecision)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

// Process runs the cheque workflow and persists the resulting decision.
// Reprocessing a cheque replaces the previous decision and clears any
// prior validation. The cheque moves to review status in the same
// transaction so the decision and status never diverge.
func (r *repo) Process(ctx context.Context, chequeID uuid.UUID) (*Decision, error) {
	if _, err := r.cheques.Find(ctx, chequeID); err != nil {
		return nil, err
	}

	result, err := workflow.Execute(ctx, r.runtime, chequeID)
	if err != nil {
		return nil, fmt.Errorf("process cheque %s: %w", chequeID, err)
	}

	anomalies, err := marshalAnomalies(result.Trail.Anomalies)
	if err != nil {
		return nil, fmt.Errorf("marshal anomalies: %w", err)
	}

	cs := result.State

	var (
		payee, chequeDate, accountNumber *string
		amount                           *float64
	)
	if cs.Fields != nil {
		payee = &cs.Fields.Payee
		amount = &cs.Fields.Amount
		chequeDate = &cs.Fields.Date
		accountNumber = &cs.Fields.AccountNumber
	}

	var payerName *string
	if cs.PayerName != "" {
		payerName = &cs.PayerName
	}

	q := fmt.Sprintf(`
		INSERT INTO decisions(
			id, cheque_id, outcome, readable, fraud_detected,
			payee, amount, cheque_date, account_number, payer_name,
			lien_likely, lien_probability, anomalies, summary,
			model_name, provider_name, processed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (cheque_id) DO UPDATE SET
			outcome = EXCLUDED.outcome,
			readable = EXCLUDED.readable,
			fraud_detected = EXCLUDED.fraud_detected,
			payee = EXCLUDED.payee,
			amount = EXCLUDED.amount,
			cheque_date = EXCLUDED.cheque_date,
			account_number = EXCLUDED.account_number,
			payer_name = EXCLUDED.payer_name,
			lien_likely = EXCLUDED.lien_likely,
			lien_probability = EXCLUDED.lien_probability,
			anomalies = EXCLUDED.anomalies,
			summary = EXCLUDED.summary,
			model_name = EXCLUDED.model_name,
			provider_name = EXCLUDED.provider_name,
			processed_at = EXCLUDED.processed_at,
			validated_by = NULL,
			validated_at = NULL
		RETURNING %s`, decisionColumns)

	insertArgs := []any{
		uuid.New(),
		chequeID,
		string(cs.Outcome),
		cs.Readable,
		cs.FraudDetected(),
		payee,
		amount,
		chequeDate,
		accountNumber,
		payerName,
		cs.LienLikely,
		cs.LienProbability,
		anomalies,
		cs.Summary,
		r.modelName(),
		r.providerName(),
		result.CompletedAt,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Decision, error) {
		decision, err := repository.QueryOne(ctx, tx, q, insertArgs, scanDecision)
		if err != nil {
			return decision, err
		}

		_, err = tx.ExecContext(
			ctx,
			"UPDATE cheques SET status = $2, updated_at = now() WHERE id = $1",
			chequeID, cheques.StatusReview,
		)
		if err != nil {
			return decision, fmt.Errorf("set cheque status: %w", err)
		}

		return decision, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"cheque processed",
		"cheque_id", chequeID,
		"decision_id", d.ID,
		"outcome", d.Outcome,
	)

	return &d, nil
}

// Validate confirms an automated decision. The cheque must be in review
// status; it transitions to complete for approvals and manual reviews,
// or rejected when the outcome is REJECT or UNREADABLE.
func (r *repo) Validate(ctx context.Context, id uuid.UUID, cmd ValidateCommand) (*Decision, error) {
	validatedBy := strings.TrimSpace(cmd.ValidatedBy)
	if validatedBy == "" {
		return nil, fmt.Errorf("%w: validated_by is required", ErrInvalid)
	}

	q := fmt.Sprintf(`
		UPDATE decisions
		SET validated_by = $2, validated_at = now()
		WHERE id = $1
		RETURNING %s`, decisionColumns)

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Decision, error) {
		decision, err := repository.QueryOne(ctx, tx, q, []any{id, validatedBy}, scanDecision)
		if err != nil {
			return decision, err
		}

		if err := r.settleCheque(ctx, tx, decision.ChequeID, decision.Outcome); err != nil {
			return decision, err
		}

		return decision, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"decision validated",
		"id", id,
		"cheque_id", d.ChequeID,
		"validated_by", validatedBy,
	)

	return &d, nil
}

// Update manually overturns a decision with a corrected outcome and
// summary, recording the updater as the validator. The cheque must be
// in review status.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Decision, error) {
	outcome := workflow.Outcome(strings.TrimSpace(cmd.Outcome))
	switch outcome {
	case workflow.OutcomeApprove, workflow.OutcomeReject,
		workflow.OutcomeManualReview, workflow.OutcomeUnreadable:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOutcome, cmd.Outcome)
	}

	updatedBy := strings.TrimSpace(cmd.UpdatedBy)
	if updatedBy == "" {
		return nil, fmt.Errorf("%w: updated_by is required", ErrInvalid)
	}

	summary := strings.TrimSpace(cmd.Summary)

	q := fmt.Sprintf(`
		UPDATE decisions
		SET outcome = $2, summary = $3, validated_by = $4, validated_at = now()
		WHERE id = $1
		RETURNING %s`, decisionColumns)

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Decision, error) {
		decision, err := repository.QueryOne(
			ctx, tx, q,
			[]any{id, string(outcome), summary, updatedBy},
			scanDecision,
		)
		if err != nil {
			return decision, err
		}

		if err := r.settleCheque(ctx, tx, decision.ChequeID, decision.Outcome); err != nil {
			return decision, err
		}

		return decision, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"decision updated",
		"id", id,
		"outcome", d.Outcome,
		"updated_by", updatedBy,
	)

	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM decisions WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("decision deleted", "id", id)
	return nil
}

// settleCheque moves a reviewed cheque to its terminal status. The
// status guard rejects cheques that were never processed or were
// already settled.
func (r *repo) settleCheque(ctx context.Context, tx *sql.Tx, chequeID uuid.UUID, outcome string) error {
	target := cheques.StatusComplete
	switch workflow.Outcome(outcome) {
	case workflow.OutcomeReject, workflow.OutcomeUnreadable:
		target = cheques.StatusRejected
	}

	err := repository.ExecExpectOne(
		ctx, tx,
		"UPDATE cheques SET status = $2, updated_at = now() WHERE id = $1 AND status = $3",
		chequeID, target, cheques.StatusReview,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidStatus
		}
		return err
	}

	return nil
}

func (r *repo) modelName() string {
	if r.runtime.Agent.Model != nil {
		return r.runtime.Agent.Model.Name
	}
	return ""
}

func (r *repo) providerName() string {
	if r.runtime.Agent.Provider != nil {
		return r.runtime.Agent.Provider.Name
	}
	return ""
}
