// Package decisions implements the decision domain for kite. It provides
// types, data access, and business logic for storing, querying, validating,
// and updating the processing outcomes produced by the cheque workflow.
package decisions

import (
	"time"

	"github.com/google/uuid"
)

// Decision represents a stored processing outcome for a cheque.
// It mirrors the decisions table schema with flattened workflow metadata.
// Extracted field columns are nullable because extraction may fail.
type Decision struct {
	ID              uuid.UUID  `json:"id"`
	ChequeID        uuid.UUID  `json:"cheque_id"`
	Outcome         string     `json:"outcome"`
	Readable        bool       `json:"readable"`
	FraudDetected   bool       `json:"fraud_detected"`
	Payee           *string    `json:"payee"`
	Amount          *float64   `json:"amount"`
	ChequeDate      *string    `json:"cheque_date"`
	AccountNumber   *string    `json:"account_number"`
	PayerName       *string    `json:"payer_name"`
	LienLikely      bool       `json:"lien_likely"`
	LienProbability float64    `json:"lien_probability"`
	Anomalies       []string   `json:"anomalies"`
	Summary         string     `json:"summary"`
	ModelName       string     `json:"model_name"`
	ProviderName    string     `json:"provider_name"`
	ProcessedAt     time.Time  `json:"processed_at"`
	ValidatedBy     *string    `json:"validated_by"`
	ValidatedAt     *time.Time `json:"validated_at"`
}

// ValidateCommand carries the data needed to validate a decision.
// ValidatedBy identifies the human who confirmed the automated outcome.
type ValidateCommand struct {
	ValidatedBy string `json:"validated_by"`
}

// UpdateCommand carries the data needed to manually overturn a decision.
// Outcome and Summary overwrite the workflow-produced values.
// UpdatedBy identifies the human who made the update (stored as validated_by).
type UpdateCommand struct {
	Outcome   string `json:"outcome"`
	Summary   string `json:"summary"`
	UpdatedBy string `json:"updated_by"`
}
