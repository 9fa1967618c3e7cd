package decisions

import (
	"encoding/json"
	"net/url"

	"github.com/kitelabs/kite/pkg/query"
	"github.com/kitelabs/kite/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "decisions", "d").
	Project("id", "ID").
	Project("cheque_id", "ChequeID").
	Project("outcome", "Outcome").
	Project("readable", "Readable").
	Project("fraud_detected", "FraudDetected").
	Project("payee", "Payee").
	Project("amount", "Amount").
	Project("cheque_date", "ChequeDate").
	Project("account_number", "AccountNumber").
	Project("payer_name", "PayerName").
	Project("lien_likely", "LienLikely").
	Project("lien_probability", "LienProbability").
	Project("anomalies", "Anomalies").
	Project("summary", "Summary").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("processed_at", "ProcessedAt").
	Project("validated_by", "ValidatedBy").
	Project("validated_at", "ValidatedAt")

var defaultSort = query.SortField{
	Field:      "ProcessedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for decision queries.
// Nil fields are ignored. Outcome and AccountNumber use exact matching,
// Payee uses case-insensitive contains matching. Validated filters on
// whether validated_by is set.
type Filters struct {
	Outcome       *string `json:"outcome,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	Payee         *string `json:"payee,omitempty"`
	FraudDetected *bool   `json:"fraud_detected,omitempty"`
	Validated     *bool   `json:"validated,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("Outcome", f.Outcome).
		WhereEquals("AccountNumber", f.AccountNumber).
		WhereContains("Payee", f.Payee).
		WhereEquals("FraudDetected", f.FraudDetected)

	if f.Validated != nil {
		if *f.Validated {
			b.WhereNotNull("ValidatedBy")
		} else {
			b.WhereNullable("ValidatedBy", nil)
		}
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if o := values.Get("outcome"); o != "" {
		f.Outcome = &o
	}

	if an := values.Get("account_number"); an != "" {
		f.AccountNumber = &an
	}

	if p := values.Get("payee"); p != "" {
		f.Payee = &p
	}

	if fd := values.Get("fraud_detected"); fd != "" {
		v := fd == "true"
		f.FraudDetected = &v
	}

	if val := values.Get("validated"); val != "" {
		v := val == "true"
		f.Validated = &v
	}

	return f
}

func scanDecision(s repository.Scanner) (Decision, error) {
	var (
		d         Decision
		anomalies []byte
	)

	err := s.Scan(
		&d.ID,
		&d.ChequeID,
		&d.Outcome,
		&d.Readable,
		&d.FraudDetected,
		&d.Payee,
		&d.Amount,
		&d.ChequeDate,
		&d.AccountNumber,
		&d.PayerName,
		&d.LienLikely,
		&d.LienProbability,
		&anomalies,
		&d.Summary,
		&d.ModelName,
		&d.ProviderName,
		&d.ProcessedAt,
		&d.ValidatedBy,
		&d.ValidatedAt,
	)
	if err != nil {
		return d, err
	}

	if len(anomalies) > 0 {
		if err := json.Unmarshal(anomalies, &d.Anomalies); err != nil {
			return d, err
		}
	}

	return d, nil
}

func marshalAnomalies(anomalies []string) ([]byte, error) {
	if anomalies == nil {
		anomalies = []string{}
	}
	return json.Marshal(anomalies)
}
