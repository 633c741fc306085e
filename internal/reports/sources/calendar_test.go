package sources

import (
	"context"
	"fmt"
	"testing"

	calendar "google.golang.org/api/calendar/v3"
)

type mockFreeBusyQuerier struct {
	request  *calendar.FreeBusyRequest
	response *calendar.FreeBusyResponse
	err      error
}

func (m *mockFreeBusyQuerier) QueryFreeBusy(ctx context.Context, request *calendar.FreeBusyRequest) (*calendar.FreeBusyResponse, error) {
	m.request = request
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func TestMeetingHours(t *testing.T) {
	querier := &mockFreeBusyQuerier{
		response: &calendar.FreeBusyResponse{
			Calendars: map[string]calendar.FreeBusyCalendar{
				"ali@example.com": {
					Busy: []*calendar.TimePeriod{
						{Start: "2026-08-03T09:00:00Z", End: "2026-08-03T10:30:00Z"},
						{Start: "2026-08-04T14:00:00Z", End: "2026-08-04T15:00:00Z"},
					},
				},
				"bob@example.com": {},
			},
		},
	}
	client := &CalendarClient{querier: querier, domain: "example.com"}

	hours, err := client.MeetingHours(context.Background(), []string{"ali", "bob"}, sourceRange())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hours["ali"] != 2.5 {
		t.Fatalf("expected 2.5 busy hours for ali, got %v", hours["ali"])
	}
	if hours["bob"] != 0 {
		t.Fatalf("expected 0 busy hours for bob, got %v", hours["bob"])
	}

	if querier.request == nil || len(querier.request.Items) != 2 {
		t.Fatalf("expected a freebusy item per ldap, got %+v", querier.request)
	}
	if querier.request.Items[0].Id != "ali@example.com" {
		t.Fatalf("expected ldap mapped to calendar id, got %q", querier.request.Items[0].Id)
	}
	if querier.request.TimeMin != "2026-08-01T00:00:00Z" {
		t.Fatalf("unexpected TimeMin %q", querier.request.TimeMin)
	}
}

func TestMeetingHoursSkipsMalformedPeriods(t *testing.T) {
	querier := &mockFreeBusyQuerier{
		response: &calendar.FreeBusyResponse{
			Calendars: map[string]calendar.FreeBusyCalendar{
				"ali@example.com": {
					Busy: []*calendar.TimePeriod{
						{Start: "not-a-time", End: "2026-08-03T10:00:00Z"},
						{Start: "2026-08-03T11:00:00Z", End: "2026-08-03T10:00:00Z"},
						{Start: "2026-08-03T12:00:00Z", End: "2026-08-03T13:00:00Z"},
					},
				},
			},
		},
	}
	client := &CalendarClient{querier: querier, domain: "example.com"}

	hours, err := client.MeetingHours(context.Background(), []string{"ali"}, sourceRange())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hours["ali"] != 1 {
		t.Fatalf("expected only the valid period counted, got %v", hours["ali"])
	}
}

func TestMeetingHoursQueryError(t *testing.T) {
	querier := &mockFreeBusyQuerier{err: fmt.Errorf("delegation denied")}
	client := &CalendarClient{querier: querier, domain: "example.com"}

	if _, err := client.MeetingHours(context.Background(), []string{"ali"}, sourceRange()); err == nil {
		t.Fatal("expected query error to propagate")
	}
}

func TestNewCalendarClientValidation(t *testing.T) {
	if _, err := NewCalendarClient(context.Background(), nil, "admin@example.com", "example.com"); err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if _, err := NewCalendarClient(context.Background(), []byte("{}"), "", "example.com"); err == nil {
		t.Fatal("expected error for missing impersonation email")
	}
	if _, err := NewCalendarClient(context.Background(), []byte("{}"), "admin@example.com", ""); err == nil {
		t.Fatal("expected error for missing domain")
	}
}
