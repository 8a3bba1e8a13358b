package availability

import "time"

// Defaults substituted when an optional or invalid field is normalized
// rather than rejected.
const (
	DefaultLanguage     = "en"
	DefaultCurrency     = "EUR"
	DefaultNationality  = "US"
	DefaultOptionsQuota = 20
	MaxOptionsQuota     = 50
)

// Credentials identifies the caller. Only attribute presence is validated;
// the password attribute is checked but never retained.
type Credentials struct {
	Username  string
	CompanyID string
}

// NormalizedRequest is the validated, defaulted view of a search request.
// Every enum field is guaranteed to be in its valid set and every numeric
// field in range. Built once per inbound request and never mutated.
type NormalizedRequest struct {
	Language     string
	OptionsQuota int
	Currency     string
	Nationality  string
	StartDate    time.Time
	EndDate      time.Time
	Credentials  Credentials
}

// Nights returns the stay length in whole days.
func (r *NormalizedRequest) Nights() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}
