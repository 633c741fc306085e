package models

import (
	"fmt"
	"time"
)

// DateRange bounds a report window. From is inclusive, To exclusive.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Validate checks the range is well-formed.
func (r DateRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return fmt.Errorf("date range requires both from and to")
	}
	if !r.To.After(r.From) {
		return fmt.Errorf("date range to must be after from")
	}
	return nil
}

// MemberActivity aggregates one member's activity across all sources.
type MemberActivity struct {
	Member           Member  `json:"member"`
	ChatMessages     int     `json:"chat_messages"`
	IssuesResolved   int     `json:"issues_resolved"`
	ReviewsSubmitted int     `json:"reviews_submitted"`
	MeetingHours     float64 `json:"meeting_hours"`
}

// ActivityTotals sums activity over every member in a report.
type ActivityTotals struct {
	ChatMessages     int     `json:"chat_messages"`
	IssuesResolved   int     `json:"issues_resolved"`
	ReviewsSubmitted int     `json:"reviews_submitted"`
	MeetingHours     float64 `json:"meeting_hours"`
}

// ActivityReport is the outcome of one report build.
type ActivityReport struct {
	Range        DateRange        `json:"range"`
	GeneratedAt  time.Time        `json:"generated_at"`
	DurationMs   int64            `json:"duration_ms"`
	Members      []MemberActivity `json:"members"`
	Totals       ActivityTotals   `json:"totals"`
	SourceErrors []string         `json:"source_errors,omitempty"`
}

// IsComplete returns true if every source contributed without error.
func (r *ActivityReport) IsComplete() bool {
	return len(r.SourceErrors) == 0
}

// String returns a human-readable summary line.
func (r *ActivityReport) String() string {
	return fmt.Sprintf(
		"report for %d members: messages=%d issues_resolved=%d reviews=%d meeting_hours=%.1f source_errors=%d",
		len(r.Members), r.Totals.ChatMessages, r.Totals.IssuesResolved,
		r.Totals.ReviewsSubmitted, r.Totals.MeetingHours, len(r.SourceErrors),
	)
}
