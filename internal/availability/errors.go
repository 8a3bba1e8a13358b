package availability

import (
	"errors"
	"fmt"
)

// Validation failures are expected, terminal and non-retryable. The first
// violated rule short-circuits the rest of the pipeline.
var (
	ErrInvalidTimeout       = errors.New("invalid or missing timeoutMilliseconds (must be an integer of at least 1000)")
	ErrInvalidQuota         = errors.New("optionsQuota must be a positive integer")
	ErrMissingCredentials   = errors.New("missing required parameters: password, username, or CompanyID")
	ErrInvalidDateFormat    = errors.New("dates must use the DD/MM/YYYY format")
	ErrLeadTimeViolation    = errors.New("StartDate must be more than 2 days after today")
	ErrMinimumStayViolation = errors.New("stay duration must be at least 3 nights")
)

// MissingFieldError reports an absent required field.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Name)
}
