package sources

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-github/v60/github"
)

type mockIssueSearchAPI struct {
	queries []string
	total   int
	err     error
}

func (m *mockIssueSearchAPI) Issues(ctx context.Context, query string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, nil, m.err
	}
	return &github.IssuesSearchResult{Total: github.Int(m.total)}, nil, nil
}

func TestReviewCounts(t *testing.T) {
	search := &mockIssueSearchAPI{total: 9}
	client := &ReviewClient{search: search, org: "example-org"}

	counts, err := client.ReviewCounts(context.Background(), []string{"ali"}, sourceRange())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if counts["ali"] != 9 {
		t.Fatalf("expected 9 reviews, got %d", counts["ali"])
	}
	want := "type:pr org:example-org reviewed-by:ali updated:2026-08-01..2026-08-08"
	if len(search.queries) != 1 || search.queries[0] != want {
		t.Fatalf("unexpected query %q", search.queries)
	}
}

func TestReviewCountsSearchError(t *testing.T) {
	search := &mockIssueSearchAPI{err: fmt.Errorf("rate limited")}
	client := &ReviewClient{search: search, org: "example-org"}

	if _, err := client.ReviewCounts(context.Background(), []string{"ali"}, sourceRange()); err == nil {
		t.Fatal("expected search error to propagate")
	}
}

func TestNewReviewClientRequiresOrganization(t *testing.T) {
	if _, err := NewReviewClient("token", ""); err == nil {
		t.Fatal("expected error for empty organization")
	}
}
