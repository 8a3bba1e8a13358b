package audit

import "time"

// Event is the SQS message body published after each successful search.
type Event struct {
	SearchID      string `json:"search_id"`
	Fingerprint   string `json:"fingerprint,omitempty"`
	CompanyID     string `json:"company_id,omitempty"`
	Username      string `json:"username,omitempty"`
	Currency      string `json:"currency"`
	Nationality   string `json:"nationality"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	OfferCount    int    `json:"offer_count"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// Record is one search-audit row. SearchID is the partition key; writes
// are conditional on it, so redelivered events never produce duplicates.
type Record struct {
	SearchID    string    `dynamodbav:"search_id"` // PK
	Fingerprint string    `dynamodbav:"fingerprint,omitempty"`
	CompanyID   string    `dynamodbav:"company_id,omitempty"`
	Username    string    `dynamodbav:"username,omitempty"`
	Currency    string    `dynamodbav:"currency"`
	Nationality string    `dynamodbav:"nationality"`
	StartDate   string    `dynamodbav:"start_date"`
	EndDate     string    `dynamodbav:"end_date"`
	OfferCount  int       `dynamodbav:"offer_count"`
	RecordedAt  time.Time `dynamodbav:"recorded_at"`
}
