package quotecache

import "time"

// CachedResponse is one rendered availability response, keyed by the
// request fingerprint. expires_at drives the DynamoDB TTL; readers also
// check it because TTL deletion is lazy.
type CachedResponse struct {
	Fingerprint    string    `dynamodbav:"fingerprint"` // PK
	SearchID       string    `dynamodbav:"search_id,omitempty"`
	ResponseBody   string    `dynamodbav:"response_body"`
	ResponseStatus int       `dynamodbav:"response_status"`
	CreatedAt      time.Time `dynamodbav:"created_at"`
	ExpiresAt      int64     `dynamodbav:"expires_at"` // TTL epoch seconds
}
