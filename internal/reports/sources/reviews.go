package sources

import (
	"context"
	"fmt"

	"github.com/google/go-github/v60/github"
	"github.com/internal-tools/org-activity-reports/internal/models"
)

type issueSearchAPI interface {
	Issues(ctx context.Context, query string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error)
}

// ReviewClient counts submitted pull request reviews per member via the
// GitHub search API.
type ReviewClient struct {
	search issueSearchAPI
	org    string
}

// NewReviewClient creates a GitHub-backed review source.
func NewReviewClient(token string, org string) (*ReviewClient, error) {
	if org == "" {
		return nil, fmt.Errorf("github organization is required")
	}
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &ReviewClient{search: client.Search, org: org}, nil
}

// ReviewCounts returns how many pull requests each ldap reviewed in the range.
func (c *ReviewClient) ReviewCounts(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error) {
	counts := make(map[string]int, len(ldaps))
	for _, ldap := range ldaps {
		query := fmt.Sprintf("type:pr org:%s reviewed-by:%s updated:%s..%s",
			c.org, ldap, r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))

		result, _, err := c.search.Issues(ctx, query, &github.SearchOptions{
			ListOptions: github.ListOptions{PerPage: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("github search for %s: %w", ldap, err)
		}
		counts[ldap] = result.GetTotal()
	}
	return counts, nil
}
