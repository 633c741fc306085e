package metrics

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// CloudWatchAPI defines the CloudWatch client interface used for metrics.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// RunStats aggregates the counters published after a report run.
type RunStats struct {
	MembersSelected int
	SourceErrors    int
	CacheHits       int
	CacheMisses     int
	DurationMs      int64
	SnapshotSaved   bool
}

// Emitter sends report-run metrics to CloudWatch.
type Emitter struct {
	client    CloudWatchAPI
	namespace string
}

// NewEmitter creates a CloudWatch metrics emitter.
func NewEmitter(cfg aws.Config, namespace string) *Emitter {
	return &Emitter{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
	}
}

// NewEmitterWithClient creates an emitter around an existing client.
func NewEmitterWithClient(client CloudWatchAPI, namespace string) *Emitter {
	return &Emitter{client: client, namespace: namespace}
}

// EmitRun publishes report-run metrics to CloudWatch.
func (e *Emitter) EmitRun(ctx context.Context, stats RunStats) error {
	snapshotSaved := 0
	if stats.SnapshotSaved {
		snapshotSaved = 1
	}

	data := []types.MetricDatum{
		metricDatum("MembersSelected", float64(stats.MembersSelected), types.StandardUnitCount),
		metricDatum("SourceErrors", float64(stats.SourceErrors), types.StandardUnitCount),
		metricDatum("DirectoryCacheHits", float64(stats.CacheHits), types.StandardUnitCount),
		metricDatum("DirectoryCacheMisses", float64(stats.CacheMisses), types.StandardUnitCount),
		metricDatum("ReportDuration", float64(stats.DurationMs), types.StandardUnitMilliseconds),
		metricDatum("SnapshotsSaved", float64(snapshotSaved), types.StandardUnitCount),
	}

	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(e.namespace),
		MetricData: data,
	})
	return err
}

func metricDatum(name string, value float64, unit types.StandardUnit) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Unit:       unit,
		Value:      aws.Float64(value),
	}
}
