package workflow

import "errors"

// Sentinel errors identifying the pipeline stage that failed.
var (
	ErrChequeNotFound = errors.New("cheque not found")
	ErrRenderFailed   = errors.New("cheque image rendering failed")
	ErrQualityFailed  = errors.New("quality assessment failed")
	ErrExtractFailed  = errors.New("field extraction failed")
	ErrFraudFailed    = errors.New("fraud analysis failed")
	ErrLienFailed     = errors.New("lien prediction failed")
	ErrAuditFailed    = errors.New("audit report generation failed")
)
