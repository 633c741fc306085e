package metrics

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

type mockCloudWatch struct {
	input *cloudwatch.PutMetricDataInput
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.input = params
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestEmitRun(t *testing.T) {
	client := &mockCloudWatch{}
	emitter := NewEmitterWithClient(client, "TestNamespace")

	stats := RunStats{
		MembersSelected: 12,
		SourceErrors:    1,
		CacheHits:       3,
		CacheMisses:     2,
		DurationMs:      450,
		SnapshotSaved:   true,
	}

	err := emitter.EmitRun(context.Background(), stats)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if client.input == nil {
		t.Fatalf("expected metric input to be sent")
	}
	if *client.input.Namespace != "TestNamespace" {
		t.Fatalf("expected namespace TestNamespace, got %s", aws.ToString(client.input.Namespace))
	}
	if len(client.input.MetricData) != 6 {
		t.Fatalf("expected 6 metrics, got %d", len(client.input.MetricData))
	}

	byName := map[string]types.MetricDatum{}
	for _, d := range client.input.MetricData {
		byName[aws.ToString(d.MetricName)] = d
	}
	if datum, ok := byName["ReportDuration"]; !ok || datum.Unit != types.StandardUnitMilliseconds {
		t.Fatalf("expected ReportDuration in milliseconds, got %+v", datum)
	}
	if datum, ok := byName["SnapshotsSaved"]; !ok || aws.ToFloat64(datum.Value) != 1 {
		t.Fatalf("expected SnapshotsSaved = 1, got %+v", datum)
	}
	if datum, ok := byName["MembersSelected"]; !ok || aws.ToFloat64(datum.Value) != 12 {
		t.Fatalf("expected MembersSelected = 12, got %+v", datum)
	}
}
