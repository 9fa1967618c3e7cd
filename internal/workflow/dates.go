package workflow

import (
	"errors"
	"fmt"
	"time"
)

// Cheques older than this are considered stale and rejected.
const staleDateLimit = 180 * 24 * time.Hour

// Date validation errors.
var (
	ErrDateFormat    = errors.New("date must be DDMMYYYY digits")
	ErrDateInvalid   = errors.New("date is not a valid calendar date")
	ErrDatePostDated = errors.New("cheque is post-dated")
	ErrDateStale     = errors.New("cheque date exceeds the stale limit")
)

// ValidateChequeDate parses and validates a cheque date in DDMMYYYY form.
// A 6-digit DDMMYY value gets its century inferred: a 2-digit year at or
// below the current 2-digit year resolves to 20yy, otherwise 19yy. The
// date must be a real calendar date, not in the future, and no older than
// 180 days relative to now.
func ValidateChequeDate(raw string, now time.Time) (time.Time, error) {
	for _, r := range raw {
		if r < '0' || r > '9' {
			return time.Time{}, ErrDateFormat
		}
	}

	if len(raw) == 6 {
		raw = expandCentury(raw, now)
	}

	if len(raw) != 8 {
		return time.Time{}, ErrDateFormat
	}

	parsed, err := time.ParseInLocation("02012006", raw, now.Location())
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}

	// time.Parse normalizes overflow dates (e.g. 31 Feb becomes 2-3 Mar),
	// so re-format to catch values that did not round-trip
	if parsed.Format("02012006") != raw {
		return time.Time{}, ErrDateInvalid
	}

	if parsed.After(now) {
		return parsed, ErrDatePostDated
	}

	if now.Sub(parsed) > staleDateLimit {
		return parsed, ErrDateStale
	}

	return parsed, nil
}

func expandCentury(ddmmyy string, now time.Time) string {
	yy := ddmmyy[4:]
	century := "19"
	if yy <= fmt.Sprintf("%02d", now.Year()%100) {
		century = "20"
	}
	return ddmmyy[:4] + century + yy
}
