package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

type mockCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.inputs = append(m.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestCountSearch(t *testing.T) {
	mock := &mockCloudWatch{}
	em := NewMetricsEmitter(mock, "AvailGateway")

	if err := em.CountSearch(context.Background(), "ok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.inputs) != 1 {
		t.Fatalf("expected 1 put, got %d", len(mock.inputs))
	}
	in := mock.inputs[0]
	if *in.Namespace != "AvailGateway" {
		t.Fatalf("namespace: %s", *in.Namespace)
	}
	if len(in.MetricData) != 1 || *in.MetricData[0].MetricName != "Searches" {
		t.Fatalf("metric data: %+v", in.MetricData)
	}
	dims := in.MetricData[0].Dimensions
	if len(dims) != 1 || *dims[0].Name != "Outcome" || *dims[0].Value != "ok" {
		t.Fatalf("dimensions: %+v", dims)
	}
}
