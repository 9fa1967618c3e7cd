package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/kitelabs/kite/internal/payers"
	"github.com/kitelabs/kite/internal/prompts"
	"github.com/kitelabs/kite/pkg/formatting"
)

type validateResponse struct {
	Consistent bool     `json:"consistent"`
	Issues     []string `json:"issues"`
}

// ExtractNode returns a state node that pulls structured fields from the
// cheque image, then runs the deterministic validations: date rules,
// payer registry lookup, and a model cross-check of the legal and courtesy
// amounts. Extraction failure is recorded in state rather than aborting
// the graph, so the resolve node can route the cheque to manual review.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		cs, trail, err := extractChequeState(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		fields, err := extractFields(ctx, rt, cs.ImagePath)
		if err != nil {
			cs.ExtractFailed = true
			trail.Anomaly("extract", fmt.Sprintf("field extraction failed: %v", err))

			s = s.Set(KeyChequeState, *cs)
			return s, nil
		}

		if fields.AccountNumber == "" {
			if acct := AccountFromMICR(fields.MICRLine); acct != "" {
				fields.AccountNumber = acct
				trail.Record("extract", "account number recovered from MICR line")
			}
		}

		if missing := MissingFields(fields); len(missing) > 0 {
			cs.ExtractFailed = true
			trail.Anomaly("extract", fmt.Sprintf(
				"required fields missing: %s", strings.Join(missing, ", "),
			))

			s = s.Set(KeyChequeState, *cs)
			return s, nil
		}

		cs.Fields = fields
		trail.Record("extract", fmt.Sprintf(
			"extracted fields: payee %q, amount %.2f, date %s, account %s",
			fields.Payee, fields.Amount, fields.Date, fields.AccountNumber,
		))

		validateDate(cs, trail)
		payer := resolvePayer(ctx, rt, cs, trail)
		validateAmounts(ctx, rt, cs, trail)

		rt.Logger.InfoContext(
			ctx, "extract node complete",
			"payer_known", cs.PayerKnown,
			"date_valid", cs.DateValid,
			"amounts_consistent", cs.AmountsConsistent,
		)

		s = s.Set(KeyChequeState, *cs)
		if payer != nil {
			s = s.Set(KeyPayer, payer)
		}

		return s, nil
	})
}

func extractFields(ctx context.Context, rt *Runtime, imagePath string) (*ChequeFields, error) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageExtract, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrExtractFailed, err)
	}

	dataURI, err := encodeChequeImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	resp, err := a.Vision(ctx, prompt, []string{dataURI})
	if err != nil {
		return nil, fmt.Errorf("%w: vision call: %w", ErrExtractFailed, err)
	}

	fields, err := formatting.Parse[ChequeFields](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrExtractFailed, err)
	}

	return &fields, nil
}

// MissingFields returns the names of required cheque fields the model
// did not report. Payee, amount, date, and account number must all be
// present before validation can proceed.
func MissingFields(f *ChequeFields) []string {
	var missing []string
	if strings.TrimSpace(f.Payee) == "" {
		missing = append(missing, "payee")
	}
	if f.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(f.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(f.AccountNumber) == "" {
		missing = append(missing, "account_number")
	}
	return missing
}

// AccountFromMICR recovers the account number from a raw MICR line when
// the model did not report one. MICR symbols and spacing vary across
// scans, so the line is reduced to digit runs and the longest run is
// taken as the account field. Returns "" when no digits are present.
func AccountFromMICR(micr string) string {
	var (
		runs    []string
		current strings.Builder
	)

	for _, r := range micr {
		if r >= '0' && r <= '9' {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			runs = append(runs, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		runs = append(runs, current.String())
	}

	account := ""
	for _, run := range runs {
		if len(run) >= len(account) {
			account = run
		}
	}
	return account
}

func validateDate(cs *ChequeState, trail *Trail) {
	_, err := ValidateChequeDate(cs.Fields.Date, time.Now())
	if err != nil {
		cs.DateValid = false
		trail.Anomaly("validate", fmt.Sprintf("date %q rejected: %v", cs.Fields.Date, err))
		return
	}

	cs.DateValid = true
	trail.Record("validate", "cheque date within acceptance window")
}

func resolvePayer(ctx context.Context, rt *Runtime, cs *ChequeState, trail *Trail) *payers.Payer {
	payer, err := rt.Payers.FindByAccount(ctx, cs.Fields.AccountNumber)
	if err != nil {
		cs.PayerKnown = false
		if errors.Is(err, payers.ErrNotFound) || errors.Is(err, payers.ErrInvalid) {
			trail.Anomaly("validate", fmt.Sprintf(
				"account %q not present in payer registry", cs.Fields.AccountNumber,
			))
		} else {
			trail.Anomaly("validate", fmt.Sprintf("payer lookup failed: %v", err))
		}
		return nil
	}

	cs.PayerKnown = true
	cs.PayerName = payer.Name
	trail.Record("validate", fmt.Sprintf("account resolved to payer %q", payer.Name))
	return payer
}

func validateAmounts(ctx context.Context, rt *Runtime, cs *ChequeState, trail *Trail) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageValidate, cs.Fields)
	if err != nil {
		cs.AmountsConsistent = false
		trail.Anomaly("validate", fmt.Sprintf("amount cross-check failed: %v", err))
		return
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		cs.AmountsConsistent = false
		trail.Anomaly("validate", fmt.Sprintf("amount cross-check failed: %v", err))
		return
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		cs.AmountsConsistent = false
		trail.Anomaly("validate", fmt.Sprintf("amount cross-check failed: %v", err))
		return
	}

	parsed, err := formatting.Parse[validateResponse](resp.Content())
	if err != nil {
		cs.AmountsConsistent = false
		trail.Anomaly("validate", fmt.Sprintf("amount cross-check failed: %v", err))
		return
	}

	cs.AmountsConsistent = parsed.Consistent
	cs.ValidationIssues = parsed.Issues

	if parsed.Consistent {
		trail.Record("validate", "legal and courtesy amounts agree")
	} else {
		trail.Anomaly("validate", fmt.Sprintf(
			"field inconsistencies: %s", strings.Join(parsed.Issues, "; "),
		))
	}
}
