package sources

import (
	"context"
	"fmt"
	"testing"

	jira "github.com/andygrunwald/go-jira"
)

type mockIssueSearcher struct {
	jqls  []string
	total int
	err   error
}

func (m *mockIssueSearcher) SearchWithContext(ctx context.Context, jql string, options *jira.SearchOptions) ([]jira.Issue, *jira.Response, error) {
	m.jqls = append(m.jqls, jql)
	if m.err != nil {
		return nil, nil, m.err
	}
	resp := &jira.Response{}
	resp.Total = m.total
	return nil, resp, nil
}

func TestResolvedCounts(t *testing.T) {
	searcher := &mockIssueSearcher{total: 5}
	client := &IssueClient{searcher: searcher}

	counts, err := client.ResolvedCounts(context.Background(), []string{"ali"}, sourceRange())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if counts["ali"] != 5 {
		t.Fatalf("expected 5 resolved issues, got %d", counts["ali"])
	}
	want := `assignee = "ali" AND resolved >= "2026-08-01" AND resolved < "2026-08-08"`
	if len(searcher.jqls) != 1 || searcher.jqls[0] != want {
		t.Fatalf("unexpected JQL %q", searcher.jqls)
	}
}

func TestResolvedCountsSearchError(t *testing.T) {
	searcher := &mockIssueSearcher{err: fmt.Errorf("unauthorized")}
	client := &IssueClient{searcher: searcher}

	if _, err := client.ResolvedCounts(context.Background(), []string{"ali"}, sourceRange()); err == nil {
		t.Fatal("expected search error to propagate")
	}
}

func TestNewIssueClientRequiresBaseURL(t *testing.T) {
	if _, err := NewIssueClient("", "user", "token"); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
