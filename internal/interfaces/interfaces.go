package interfaces

import (
	"context"

	"github.com/internal-tools/org-activity-reports/internal/models"
)

// DirectoryClient defines operations needed from the directory-lookup service.
type DirectoryClient interface {
	FetchMembers(ctx context.Context, groups []models.GroupTag, includeTerminated bool) ([]models.Member, error)
}

// ChatSource reports chat message counts per ldap over a date range.
type ChatSource interface {
	MessageCounts(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error)
}

// IssueSource reports resolved issue counts per ldap over a date range.
type IssueSource interface {
	ResolvedCounts(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error)
}

// ReviewSource reports submitted code review counts per ldap over a date range.
type ReviewSource interface {
	ReviewCounts(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error)
}

// CalendarSource reports meeting hours per ldap over a date range.
type CalendarSource interface {
	MeetingHours(ctx context.Context, ldaps []string, r models.DateRange) (map[string]float64, error)
}

// SnapshotStore defines operations for persisted report snapshots.
type SnapshotStore interface {
	// SaveSnapshot stores a generated report snapshot.
	SaveSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error

	// GetSnapshot retrieves a snapshot by scope key and sort key.
	GetSnapshot(ctx context.Context, groupsKey string, sk string) (*models.ReportSnapshot, error)

	// ListSnapshots returns the most recent snapshots for a scope, newest first.
	ListSnapshots(ctx context.Context, groupsKey string, limit int) ([]models.ReportSnapshot, error)
}
