package rates

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-avail-gateway/internal/aws"
	"github.com/imrishuroy/go-avail-gateway/internal/pricing"
)

// Record is one exchange-rate row. Rates are stored as decimal strings so
// the table never holds binary-float drift.
type Record struct {
	QuotedCurrency    string `dynamodbav:"quoted_currency"`    // PK
	RequestedCurrency string `dynamodbav:"requested_currency"` // SK
	Rate              string `dynamodbav:"rate"`
}

// Store loads the exchange-rate table from DynamoDB. The table is read
// once at startup; the result is immutable afterwards.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore returns a Store bound to a table name.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// Load scans the whole table into a pricing.RateTable. Callers run
// RateTable.Validate before using the result.
func (s *Store) Load(ctx context.Context) (pricing.RateTable, error) {
	table := pricing.RateTable{}

	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.tableName,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan rates table: %w", err)
		}

		var records []Record
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
			return nil, fmt.Errorf("unmarshal rate records: %w", err)
		}
		for _, rec := range records {
			rate, err := decimal.NewFromString(rec.Rate)
			if err != nil {
				return nil, fmt.Errorf("rate %s->%s: %w", rec.QuotedCurrency, rec.RequestedCurrency, err)
			}
			row, ok := table[rec.QuotedCurrency]
			if !ok {
				row = map[string]decimal.Decimal{}
				table[rec.QuotedCurrency] = row
			}
			row[rec.RequestedCurrency] = rate
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("rates table %s is empty", s.tableName)
	}
	return table, nil
}
