package main

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/internal-tools/org-activity-reports/internal/config"
	"github.com/internal-tools/org-activity-reports/internal/models"
)

func setSnapshotEnv(t *testing.T) {
	t.Helper()
	os.Setenv("DIRECTORY_ENDPOINT", "https://directory.internal/v1")
	os.Setenv("DIRECTORY_TOKEN", "test-token")
	os.Unsetenv("AWS_LAMBDA_FUNCTION_NAME")
}

func stubSnapshotRun(t *testing.T, fn func(ctx context.Context, cfg *config.Config, rangeDays int) (*models.ActivityReport, error)) {
	t.Helper()
	original := runSnapshot
	t.Cleanup(func() { runSnapshot = original })
	runSnapshot = fn
}

func TestHandleRequestScheduledEvent(t *testing.T) {
	setSnapshotEnv(t)

	var gotRangeDays int
	stubSnapshotRun(t, func(ctx context.Context, cfg *config.Config, rangeDays int) (*models.ActivityReport, error) {
		gotRangeDays = rangeDays
		return &models.ActivityReport{
			GeneratedAt: time.Now().UTC(),
			Members:     []models.MemberActivity{{Member: models.Member{ID: "ali", LDAP: "ali"}}},
		}, nil
	})

	event := models.LambdaEvent{Source: "aws.events", DetailType: "Scheduled Event"}
	resp, err := HandleRequest(context.Background(), event)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d (%s)", resp.StatusCode, resp.Message)
	}
	if resp.Report == nil || len(resp.Report.Members) != 1 {
		t.Fatalf("expected report with 1 member, got %#v", resp.Report)
	}
	if gotRangeDays != 7 {
		t.Fatalf("expected default range of 7 days, got %d", gotRangeDays)
	}
}

func TestHandleRequestRangeOverride(t *testing.T) {
	setSnapshotEnv(t)

	var gotRangeDays int
	stubSnapshotRun(t, func(ctx context.Context, cfg *config.Config, rangeDays int) (*models.ActivityReport, error) {
		gotRangeDays = rangeDays
		return &models.ActivityReport{GeneratedAt: time.Now().UTC()}, nil
	})

	days := 30
	event := models.LambdaEvent{RangeDays: &days}
	resp, err := HandleRequest(context.Background(), event)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d (%s)", resp.StatusCode, resp.Message)
	}
	if gotRangeDays != 30 {
		t.Fatalf("expected range override of 30 days, got %d", gotRangeDays)
	}
}

func TestHandleRequestUnsupportedEvent(t *testing.T) {
	setSnapshotEnv(t)

	called := false
	stubSnapshotRun(t, func(ctx context.Context, cfg *config.Config, rangeDays int) (*models.ActivityReport, error) {
		called = true
		return nil, nil
	})

	event := models.LambdaEvent{Source: "aws.s3", DetailType: "Object Created"}
	resp, err := HandleRequest(context.Background(), event)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
	if called {
		t.Fatal("snapshot run must not fire for unsupported events")
	}
}

func TestHandleRequestSnapshotFailure(t *testing.T) {
	setSnapshotEnv(t)

	stubSnapshotRun(t, func(ctx context.Context, cfg *config.Config, rangeDays int) (*models.ActivityReport, error) {
		return nil, fmt.Errorf("directory unreachable")
	})

	resp, err := HandleRequest(context.Background(), models.LambdaEvent{})
	if err != nil {
		t.Fatalf("expected handler-level error to be wrapped, got %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}
