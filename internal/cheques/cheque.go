// Package cheques implements the cheque domain for kite.
// It provides types, data access, and business logic for cheque image
// upload, registration, status tracking, and blob storage integration.
package cheques

import (
	"time"

	"github.com/google/uuid"
)

// Processing statuses for a cheque. A cheque moves from StatusReceived
// through the pipeline to StatusReview, and settles at StatusComplete
// or StatusRejected once a decision is validated.
const (
	StatusReceived = "received"
	StatusReview   = "review"
	StatusComplete = "complete"
	StatusRejected = "rejected"
)

// Cheque represents a registered cheque image with its metadata and
// blob storage reference.
type Cheque struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new cheque.
// Data holds the raw file bytes. PageCount is optional and only applies to
// PDF uploads; nil values are stored as NULL.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}

// ValidStatus reports whether s is a recognized cheque status.
func ValidStatus(s string) bool {
	switch s {
	case StatusReceived, StatusReview, StatusComplete, StatusRejected:
		return true
	}
	return false
}
