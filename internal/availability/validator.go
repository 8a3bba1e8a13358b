package availability

import (
	"strconv"
	"strings"
	"time"
)

// FieldReader is the narrow document-navigation capability the validator
// consumes, keeping it independent of any concrete tree representation.
// Paths are slash separated and resolved as descendant searches.
type FieldReader interface {
	// ReadText returns the text content of the first node at path. The
	// boolean reports node existence; an existing node may carry an
	// empty string.
	ReadText(path string) (string, bool)
	// ReadAttributes returns the attribute map of the first node at path.
	ReadAttributes(path string) (map[string]string, bool)
}

// Field paths of the inbound availability request document.
const (
	pathTimeout     = "timeoutMilliseconds"
	pathLanguage    = "source/languageCode"
	pathQuota       = "optionsQuota"
	pathCredentials = "Configuration/Parameters/Parameter"
	pathStartDate   = "StartDate"
	pathEndDate     = "EndDate"
	pathCurrency    = "Currency"
	pathNationality = "Nationality"
)

const dateLayout = "02/01/2006"

// requiredFields must be present in every request. Presence only; an
// empty text value is allowed at this stage.
var requiredFields = []string{"SearchType", pathStartDate, pathEndDate, pathCurrency, pathNationality}

var credentialAttrs = []string{"password", "username", "CompanyID"}

// Rules holds the fixed validation policy: which values each enum field
// accepts, what is substituted when a soft check fails, and the hard
// numeric/date thresholds. Built once at startup and treated as read-only.
type Rules struct {
	ValidLanguages     map[string]bool
	ValidCurrencies    map[string]bool
	ValidNationalities map[string]bool

	DefaultLanguage    string
	DefaultCurrency    string
	DefaultNationality string

	DefaultOptionsQuota int
	MaxOptionsQuota     int

	MinTimeoutMillis int
	LeadTimeDays     int
	MinStayNights    int
}

// DefaultRules returns the production validation policy.
func DefaultRules() Rules {
	return Rules{
		ValidLanguages:     map[string]bool{"en": true, "fr": true, "de": true, "es": true},
		ValidCurrencies:    map[string]bool{"EUR": true, "USD": true, "GBP": true},
		ValidNationalities: map[string]bool{"US": true, "GB": true, "CA": true},

		DefaultLanguage:    DefaultLanguage,
		DefaultCurrency:    DefaultCurrency,
		DefaultNationality: DefaultNationality,

		DefaultOptionsQuota: DefaultOptionsQuota,
		MaxOptionsQuota:     MaxOptionsQuota,

		MinTimeoutMillis: 1000,
		LeadTimeDays:     2,
		MinStayNights:    3,
	}
}

// Validator checks inbound availability requests against a fixed rule set.
// It is a pure function of the document and the wall clock; the clock is
// injectable for tests.
type Validator struct {
	rules   Rules
	nowFunc func() time.Time
}

// NewValidator returns a Validator bound to the given rules.
func NewValidator(rules Rules) *Validator {
	return &Validator{
		rules:   rules,
		nowFunc: time.Now,
	}
}

// WithNow overrides the wall clock and returns the validator.
func (v *Validator) WithNow(now func() time.Time) *Validator {
	v.nowFunc = now
	return v
}

// Validate runs every check in order and short-circuits on the first
// failure. Soft cases (invalid enum values, over-quota counts) are defined
// substitutions, not errors.
func (v *Validator) Validate(doc FieldReader) (*NormalizedRequest, error) {
	if err := v.checkTimeout(doc); err != nil {
		return nil, err
	}

	for _, name := range requiredFields {
		if _, ok := doc.ReadText(name); !ok {
			return nil, &MissingFieldError{Name: name}
		}
	}

	language := readEnum(doc, pathLanguage, v.rules.ValidLanguages, v.rules.DefaultLanguage)

	quota, err := v.readQuota(doc)
	if err != nil {
		return nil, err
	}

	creds, err := readCredentials(doc)
	if err != nil {
		return nil, err
	}

	start, end, err := readDates(doc)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(v.nowFunc())
	if !start.After(today.AddDate(0, 0, v.rules.LeadTimeDays)) {
		return nil, ErrLeadTimeViolation
	}
	if nights := int(end.Sub(start).Hours() / 24); nights < v.rules.MinStayNights {
		return nil, ErrMinimumStayViolation
	}

	currency := readEnum(doc, pathCurrency, v.rules.ValidCurrencies, v.rules.DefaultCurrency)
	nationality := readEnum(doc, pathNationality, v.rules.ValidNationalities, v.rules.DefaultNationality)

	return &NormalizedRequest{
		Language:     language,
		OptionsQuota: quota,
		Currency:     currency,
		Nationality:  nationality,
		StartDate:    start,
		EndDate:      end,
		Credentials:  creds,
	}, nil
}

func (v *Validator) checkTimeout(doc FieldReader) error {
	text, ok := doc.ReadText(pathTimeout)
	if !ok || !allDigits(text) {
		return ErrInvalidTimeout
	}
	ms, err := strconv.Atoi(text)
	if err != nil || ms < v.rules.MinTimeoutMillis {
		return ErrInvalidTimeout
	}
	return nil
}

// readQuota substitutes the default for an absent or empty node, clamps
// values over the maximum, and rejects anything that is not a positive
// integer.
func (v *Validator) readQuota(doc FieldReader) (int, error) {
	text, ok := doc.ReadText(pathQuota)
	if !ok || strings.TrimSpace(text) == "" {
		return v.rules.DefaultOptionsQuota, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 0, ErrInvalidQuota
	}
	if n > v.rules.MaxOptionsQuota {
		n = v.rules.MaxOptionsQuota
	}
	return n, nil
}

func readCredentials(doc FieldReader) (Credentials, error) {
	attrs, ok := doc.ReadAttributes(pathCredentials)
	if !ok {
		return Credentials{}, ErrMissingCredentials
	}
	for _, name := range credentialAttrs {
		if _, ok := attrs[name]; !ok {
			return Credentials{}, ErrMissingCredentials
		}
	}
	return Credentials{
		Username:  attrs["username"],
		CompanyID: attrs["CompanyID"],
	}, nil
}

func readDates(doc FieldReader) (start, end time.Time, err error) {
	startText, _ := doc.ReadText(pathStartDate)
	endText, _ := doc.ReadText(pathEndDate)

	start, err = time.Parse(dateLayout, startText)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	end, err = time.Parse(dateLayout, endText)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	return start, end, nil
}

func readEnum(doc FieldReader, path string, valid map[string]bool, def string) string {
	text, ok := doc.ReadText(path)
	if !ok || !valid[text] {
		return def
	}
	return text
}

// allDigits matches the timeout contract: a plain non-negative integer
// literal, no sign, no whitespace.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// truncateToDay drops the time component, keeping dates comparable with
// the parsed request dates (which carry no time of day).
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
