package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsEmitter publishes search outcome counters to CloudWatch.
// Emission is best-effort; callers log and continue on failure.
type MetricsEmitter struct {
	client    CloudWatchAPI
	namespace string
}

// NewMetricsEmitter returns an emitter publishing under the namespace.
func NewMetricsEmitter(client CloudWatchAPI, namespace string) *MetricsEmitter {
	return &MetricsEmitter{
		client:    client,
		namespace: namespace,
	}
}

// CountSearch bumps the Searches counter with an Outcome dimension.
func (m *MetricsEmitter) CountSearch(ctx context.Context, outcome string) error {
	input := &cloudwatch.PutMetricDataInput{
		Namespace: awsString(m.namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("Searches"),
				Value:      awsFloat(1),
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: []cwtypes.Dimension{
					{Name: awsString("Outcome"), Value: awsString(outcome)},
				},
			},
		},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
