package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/internal-tools/org-activity-reports/internal/models"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const calendarScope = "https://www.googleapis.com/auth/calendar.readonly"

type freeBusyQuerier interface {
	QueryFreeBusy(ctx context.Context, request *calendar.FreeBusyRequest) (*calendar.FreeBusyResponse, error)
}

// CalendarClient sums meeting hours per member from Google Calendar free/busy
// data. Directory ldaps map to calendar ids as ldap@domain.
type CalendarClient struct {
	querier freeBusyQuerier
	domain  string
}

// NewCalendarClient creates a Google Calendar source using domain-wide
// delegation, impersonating the given admin account.
func NewCalendarClient(ctx context.Context, credentialsJSON []byte, impersonateEmail string, domain string) (*CalendarClient, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("credentials JSON is required")
	}
	if impersonateEmail == "" {
		return nil, fmt.Errorf("impersonation email is required")
	}
	if domain == "" {
		return nil, fmt.Errorf("email domain is required")
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, calendarScope)
	if err != nil {
		return nil, err
	}
	config.Subject = impersonateEmail

	svc, err := calendar.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
	if err != nil {
		return nil, err
	}

	return &CalendarClient{querier: &calendarService{svc: svc}, domain: domain}, nil
}

// MeetingHours returns the busy hours each ldap spent in meetings.
func (c *CalendarClient) MeetingHours(ctx context.Context, ldaps []string, r models.DateRange) (map[string]float64, error) {
	items := make([]*calendar.FreeBusyRequestItem, 0, len(ldaps))
	idToLdap := make(map[string]string, len(ldaps))
	for _, ldap := range ldaps {
		id := ldap + "@" + c.domain
		items = append(items, &calendar.FreeBusyRequestItem{Id: id})
		idToLdap[id] = ldap
	}

	resp, err := c.querier.QueryFreeBusy(ctx, &calendar.FreeBusyRequest{
		TimeMin: r.From.Format(time.RFC3339),
		TimeMax: r.To.Format(time.RFC3339),
		Items:   items,
	})
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	hours := make(map[string]float64, len(ldaps))
	for id, cal := range resp.Calendars {
		ldap, ok := idToLdap[id]
		if !ok {
			continue
		}
		var total time.Duration
		for _, period := range cal.Busy {
			start, startErr := time.Parse(time.RFC3339, period.Start)
			end, endErr := time.Parse(time.RFC3339, period.End)
			if startErr != nil || endErr != nil || !end.After(start) {
				continue
			}
			total += end.Sub(start)
		}
		hours[ldap] = total.Hours()
	}
	return hours, nil
}

type calendarService struct {
	svc *calendar.Service
}

func (s *calendarService) QueryFreeBusy(ctx context.Context, request *calendar.FreeBusyRequest) (*calendar.FreeBusyResponse, error) {
	return s.svc.Freebusy.Query(request).Context(ctx).Do()
}
