package payers

import (
	"encoding/json"
	"net/url"

	"github.com/kitelabs/kite/pkg/query"
	"github.com/kitelabs/kite/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "payers", "p").
	Project("id", "ID").
	Project("account_number", "AccountNumber").
	Project("name", "Name").
	Project("signature_key", "SignatureKey").
	Project("avg_amount", "AvgAmount").
	Project("max_amount", "MaxAmount").
	Project("typical_payees", "TypicalPayees").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for payer queries.
// Nil fields are ignored. AccountNumber uses exact matching,
// Name uses case-insensitive contains matching.
type Filters struct {
	AccountNumber *string `json:"account_number,omitempty"`
	Name          *string `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("AccountNumber", f.AccountNumber).
		WhereContains("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if an := values.Get("account_number"); an != "" {
		f.AccountNumber = &an
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

func scanPayer(s repository.Scanner) (Payer, error) {
	var (
		p      Payer
		payees []byte
	)

	err := s.Scan(
		&p.ID,
		&p.AccountNumber,
		&p.Name,
		&p.SignatureKey,
		&p.AvgAmount,
		&p.MaxAmount,
		&payees,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	if len(payees) > 0 {
		if err := json.Unmarshal(payees, &p.TypicalPayees); err != nil {
			return p, err
		}
	}

	return p, nil
}

func marshalPayees(payees []string) ([]byte, error) {
	if payees == nil {
		payees = []string{}
	}
	return json.Marshal(payees)
}
