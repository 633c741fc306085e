package reports

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/internal-tools/org-activity-reports/internal/interfaces"
	"github.com/internal-tools/org-activity-reports/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Engine assembles activity reports across the configured sources. A nil
// source is disabled; a failing source degrades to zero counts with a
// recorded error, so a partial report is still produced.
type Engine struct {
	chat     interfaces.ChatSource
	issues   interfaces.IssueSource
	reviews  interfaces.ReviewSource
	calendar interfaces.CalendarSource
}

// NewEngine creates a report engine. Any source may be nil.
func NewEngine(chat interfaces.ChatSource, issues interfaces.IssueSource, reviews interfaces.ReviewSource, calendar interfaces.CalendarSource) *Engine {
	return &Engine{chat: chat, issues: issues, reviews: reviews, calendar: calendar}
}

// Build generates an activity report for the given members over the range.
func (e *Engine) Build(ctx context.Context, members []models.Member, r models.DateRange) (*models.ActivityReport, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	ldaps := make([]string, 0, len(members))
	for _, m := range members {
		ldaps = append(ldaps, m.LDAP)
	}

	var (
		mu           sync.Mutex
		chatCounts   map[string]int
		issueCounts  map[string]int
		reviewCounts map[string]int
		meetingHours map[string]float64
		sourceErrors []string
	)

	recordErr := func(source string, err error) {
		logrus.WithError(err).WithField("source", source).Warn("report source failed, continuing with zero counts")
		mu.Lock()
		sourceErrors = append(sourceErrors, fmt.Sprintf("%s: %v", source, err))
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	if e.chat != nil {
		g.Go(func() error {
			counts, err := e.chat.MessageCounts(gctx, ldaps, r)
			if err != nil {
				recordErr("chat", err)
				return nil
			}
			mu.Lock()
			chatCounts = counts
			mu.Unlock()
			return nil
		})
	}
	if e.issues != nil {
		g.Go(func() error {
			counts, err := e.issues.ResolvedCounts(gctx, ldaps, r)
			if err != nil {
				recordErr("issues", err)
				return nil
			}
			mu.Lock()
			issueCounts = counts
			mu.Unlock()
			return nil
		})
	}
	if e.reviews != nil {
		g.Go(func() error {
			counts, err := e.reviews.ReviewCounts(gctx, ldaps, r)
			if err != nil {
				recordErr("reviews", err)
				return nil
			}
			mu.Lock()
			reviewCounts = counts
			mu.Unlock()
			return nil
		})
	}
	if e.calendar != nil {
		g.Go(func() error {
			hours, err := e.calendar.MeetingHours(gctx, ldaps, r)
			if err != nil {
				recordErr("calendar", err)
				return nil
			}
			mu.Lock()
			meetingHours = hours
			mu.Unlock()
			return nil
		})
	}
	// Source failures are recorded, not returned, so Wait only surfaces
	// context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &models.ActivityReport{
		Range:        r,
		GeneratedAt:  time.Now().UTC(),
		Members:      make([]models.MemberActivity, 0, len(members)),
		SourceErrors: sourceErrors,
	}
	for _, m := range members {
		activity := models.MemberActivity{
			Member:           m,
			ChatMessages:     chatCounts[m.LDAP],
			IssuesResolved:   issueCounts[m.LDAP],
			ReviewsSubmitted: reviewCounts[m.LDAP],
			MeetingHours:     meetingHours[m.LDAP],
		}
		report.Members = append(report.Members, activity)
		report.Totals.ChatMessages += activity.ChatMessages
		report.Totals.IssuesResolved += activity.IssuesResolved
		report.Totals.ReviewsSubmitted += activity.ReviewsSubmitted
		report.Totals.MeetingHours += activity.MeetingHours
	}
	report.DurationMs = time.Since(start).Milliseconds()

	logrus.WithFields(logrus.Fields{
		"members":       len(members),
		"source_errors": len(sourceErrors),
		"duration_ms":   report.DurationMs,
	}).Info(report.String())

	return report, nil
}
