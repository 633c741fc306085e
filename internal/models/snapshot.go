package models

import "time"

// ReportSnapshot is a stored report run in DynamoDB.
type ReportSnapshot struct {
	PK          string         `dynamodbav:"pk"` // SCOPE#<groupsKey>
	SK          string         `dynamodbav:"sk"` // REPORT#<RFC3339 timestamp>
	GroupsKey   string         `dynamodbav:"groups_key"`
	GeneratedAt time.Time      `dynamodbav:"generated_at"`
	MemberCount int            `dynamodbav:"member_count"`
	Report      ActivityReport `dynamodbav:"report"`
	TTL         int64          `dynamodbav:"ttl"`
}

// NewReportSnapshot creates a snapshot with all key attributes set.
func NewReportSnapshot(groupsKey string, report ActivityReport, ttlDays int) ReportSnapshot {
	now := time.Now().UTC()
	return ReportSnapshot{
		PK:          "SCOPE#" + groupsKey,
		SK:          SnapshotSK(report.GeneratedAt),
		GroupsKey:   groupsKey,
		GeneratedAt: report.GeneratedAt,
		MemberCount: len(report.Members),
		Report:      report,
		TTL:         now.AddDate(0, 0, ttlDays).Unix(),
	}
}

// SnapshotSK builds the sort key for a snapshot generated at the given time.
func SnapshotSK(generatedAt time.Time) string {
	return "REPORT#" + generatedAt.UTC().Format(time.RFC3339)
}
