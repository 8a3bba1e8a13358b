package quotecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-avail-gateway/internal/availability"
	"github.com/imrishuroy/go-avail-gateway/internal/aws"
)

// Store caches rendered availability responses in DynamoDB.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	ttl       time.Duration
	nowFunc   func() time.Time
}

// NewStore returns a configured Store.
// ttl: how long a cached response stays servable (e.g. 15*time.Minute).
func NewStore(client aws.DynamoDBAPI, tableName string, ttl time.Duration) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		ttl:       ttl,
		nowFunc:   time.Now,
	}
}

// Fingerprint derives the cache key for a normalized request. Credentials
// are excluded: pricing does not depend on the caller, so identical
// searches share an entry across companies. The markup is part of the key
// because it is part of the rendered prices.
func Fingerprint(req *availability.NormalizedRequest, markupPercent decimal.Decimal) string {
	canonical := strings.Join([]string{
		req.Language,
		strconv.Itoa(req.OptionsQuota),
		req.Currency,
		req.Nationality,
		req.StartDate.Format("2006-01-02"),
		req.EndDate.Format("2006-01-02"),
		markupPercent.String(),
	}, "|")

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for fingerprint, or (nil, nil) when no
// live entry exists.
func (s *Store) Get(ctx context.Context, fingerprint string) (*CachedResponse, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"fingerprint": &types.AttributeValueMemberS{Value: fingerprint},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var rec CachedResponse
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	if rec.ExpiresAt <= s.nowFunc().Unix() {
		return nil, nil
	}
	return &rec, nil
}

// Save stores a rendered response, overwriting any previous entry for the
// same fingerprint.
func (s *Store) Save(ctx context.Context, rec CachedResponse) error {
	now := s.nowFunc()
	rec.CreatedAt = now
	rec.ExpiresAt = now.Add(s.ttl).Unix()

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}
