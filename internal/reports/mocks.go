package reports

import (
	"context"

	"github.com/internal-tools/org-activity-reports/internal/models"
)

// MockChatSource is a simple mock implementation of the chat source.
type MockChatSource struct {
	MessageCountsFunc func(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error)
}

func (m *MockChatSource) MessageCounts(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error) {
	if m.MessageCountsFunc == nil {
		return map[string]int{}, nil
	}
	return m.MessageCountsFunc(ctx, ldaps, r)
}

// MockIssueSource is a simple mock implementation of the issue source.
type MockIssueSource struct {
	ResolvedCountsFunc func(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error)
}

func (m *MockIssueSource) ResolvedCounts(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error) {
	if m.ResolvedCountsFunc == nil {
		return map[string]int{}, nil
	}
	return m.ResolvedCountsFunc(ctx, ldaps, r)
}

// MockReviewSource is a simple mock implementation of the review source.
type MockReviewSource struct {
	ReviewCountsFunc func(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error)
}

func (m *MockReviewSource) ReviewCounts(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error) {
	if m.ReviewCountsFunc == nil {
		return map[string]int{}, nil
	}
	return m.ReviewCountsFunc(ctx, ldaps, r)
}

// MockCalendarSource is a simple mock implementation of the calendar source.
type MockCalendarSource struct {
	MeetingHoursFunc func(ctx context.Context, ldaps []string, r models.DateRange) (map[string]float64, error)
}

func (m *MockCalendarSource) MeetingHours(ctx context.Context, ldaps []string, r models.DateRange) (map[string]float64, error) {
	if m.MeetingHoursFunc == nil {
		return map[string]float64{}, nil
	}
	return m.MeetingHoursFunc(ctx, ldaps, r)
}
