// Package payers implements the payer registry for kite.
// A payer record ties a bank account number to the account holder's
// name, a reference signature image in blob storage, and a spending
// profile used during fraud analysis.
package payers

import (
	"time"

	"github.com/google/uuid"
)

// Payer represents a registered account holder.
type Payer struct {
	ID            uuid.UUID `json:"id"`
	AccountNumber string    `json:"account_number"`
	Name          string    `json:"name"`
	SignatureKey  *string   `json:"signature_key"`
	AvgAmount     float64   `json:"avg_amount"`
	MaxAmount     float64   `json:"max_amount"`
	TypicalPayees []string  `json:"typical_payees"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new payer.
type CreateCommand struct {
	AccountNumber string   `json:"account_number"`
	Name          string   `json:"name"`
	AvgAmount     float64  `json:"avg_amount"`
	MaxAmount     float64  `json:"max_amount"`
	TypicalPayees []string `json:"typical_payees"`
}

// UpdateCommand carries updatable payer fields. Nil fields are left unchanged.
type UpdateCommand struct {
	Name          *string  `json:"name,omitempty"`
	AvgAmount     *float64 `json:"avg_amount,omitempty"`
	MaxAmount     *float64 `json:"max_amount,omitempty"`
	TypicalPayees []string `json:"typical_payees,omitempty"`
}

// BehaviorSummary renders the payer's spending profile as prompt context
// for transaction behavior analysis.
type BehaviorSummary struct {
	AccountHolder string   `json:"account_holder"`
	AvgAmount     float64  `json:"avg_amount"`
	MaxAmount     float64  `json:"max_amount"`
	TypicalPayees []string `json:"typical_payees"`
}

// Behavior returns the payer's spending profile.
func (p *Payer) Behavior() BehaviorSummary {
	return BehaviorSummary{
		AccountHolder: p.Name,
		AvgAmount:     p.AvgAmount,
		MaxAmount:     p.MaxAmount,
		TypicalPayees: p.TypicalPayees,
	}
}
