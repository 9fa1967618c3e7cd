// Package workflow implements the cheque processing pipeline as a state
// graph: init renders the cheque image, quality gates readability, extract
// pulls structured fields, fraud runs concurrent tampering, behavior, and
// signature checks, lien estimates hold likelihood, resolve applies the
// decision rules, and audit produces the final report.
package workflow

import (
	"time"

	"github.com/google/uuid"
)

// State bag keys shared across workflow nodes.
const (
	KeyChequeID    = "cheque_id"
	KeyTempDir     = "temp_dir"
	KeyChequeState = "cheque_state"
	KeyTrail       = "trail"
	KeyPayer       = "payer"
)

// Confidence represents a categorical assessment of model certainty.
type Confidence string

// Confidence levels reported by analysis stages.
const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Outcome is the final disposition of a processed cheque.
type Outcome string

// Valid outcomes.
const (
	OutcomeApprove      Outcome = "APPROVE"
	OutcomeReject       Outcome = "REJECT"
	OutcomeManualReview Outcome = "MANUAL_REVIEW"
	OutcomeUnreadable   Outcome = "UNREADABLE"
)

// ChequeFields holds the structured data extracted from a cheque image.
// Date is normalized to DDMMYYYY digits by the extraction stage.
type ChequeFields struct {
	Payee         string  `json:"payee"`
	Amount        float64 `json:"amount"`
	AmountInWords string  `json:"amount_in_words"`
	Date          string  `json:"date"`
	AccountNumber string  `json:"account_number"`
	ChequeNumber  string  `json:"cheque_number"`
	BankName      string  `json:"bank_name"`
	MICRLine      string  `json:"micr_line"`
}

// ChequeState is the running pipeline state accumulated across nodes.
// Nodes write disjoint field groups: quality fields in the quality node,
// extraction and validation fields in the extract node, fraud fields in
// the fraud node, and so on.
type ChequeState struct {
	ImagePath string `json:"image_path"`

	Readable          bool       `json:"readable"`
	QualityIssues     []string   `json:"quality_issues,omitempty"`
	QualityConfidence Confidence `json:"quality_confidence,omitempty"`

	Fields        *ChequeFields `json:"fields,omitempty"`
	ExtractFailed bool          `json:"extract_failed,omitempty"`

	DateValid         bool     `json:"date_valid"`
	PayerKnown        bool     `json:"payer_known"`
	PayerName         string   `json:"payer_name,omitempty"`
	AmountsConsistent bool     `json:"amounts_consistent"`
	ValidationIssues  []string `json:"validation_issues,omitempty"`

	TamperingDetected   bool       `json:"tampering_detected"`
	TamperFindings      []string   `json:"tamper_findings,omitempty"`
	BehaviorAnomalies   []string   `json:"behavior_anomalies,omitempty"`
	SignatureMatch      *bool      `json:"signature_match,omitempty"`
	SignatureConfidence Confidence `json:"signature_confidence,omitempty"`

	LienAssessed    bool    `json:"lien_assessed"`
	LienLikely      bool    `json:"lien_likely"`
	LienProbability float64 `json:"lien_probability"`
	LienRationale   string  `json:"lien_rationale,omitempty"`

	Outcome Outcome `json:"outcome,omitempty"`
	Summary string  `json:"summary,omitempty"`
}

// FraudDetected reports whether any fraud indicator flagged the cheque:
// visual tampering, behavioral anomalies, a signature mismatch, or a
// failed date or amount validation from extraction. Validation flags are
// consulted only once fields have been extracted; their zero values do
// not count before then.
func (s *ChequeState) FraudDetected() bool {
	if s.TamperingDetected {
		return true
	}
	if len(s.BehaviorAnomalies) > 0 {
		return true
	}
	if s.SignatureMatch != nil && !*s.SignatureMatch {
		return true
	}
	if s.Fields != nil && (!s.DateValid || !s.AmountsConsistent) {
		return true
	}
	return false
}

// Result is the final output from a cheque workflow execution.
type Result struct {
	ChequeID    uuid.UUID     `json:"cheque_id"`
	State       ChequeState   `json:"state"`
	Trail       TrailSnapshot `json:"trail"`
	CompletedAt time.Time     `json:"completed_at"`
}
