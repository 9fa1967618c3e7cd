package cheques

import (
	"net/url"

	"github.com/kitelabs/kite/pkg/query"
	"github.com/kitelabs/kite/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "cheques", "c").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for cheque queries.
// Nil fields are ignored. Status and ContentType use exact matching.
// Filename and StorageKey use case-insensitive contains matching.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	Filename    *string `json:"filename,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
	StorageKey  *string `json:"storage_key,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType).
		WhereContains("StorageKey", f.StorageKey)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if sk := values.Get("storage_key"); sk != "" {
		f.StorageKey = &sk
	}

	return f
}

func scanCheque(s repository.Scanner) (Cheque, error) {
	var c Cheque
	err := s.Scan(
		&c.ID,
		&c.Filename,
		&c.ContentType,
		&c.SizeBytes,
		&c.PageCount,
		&c.StorageKey,
		&c.Status,
		&c.UploadedAt,
		&c.UpdatedAt,
	)
	return c, err
}
