package sources

import (
	"context"
	"fmt"

	jira "github.com/andygrunwald/go-jira"
	"github.com/internal-tools/org-activity-reports/internal/models"
)

type issueSearcher interface {
	SearchWithContext(ctx context.Context, jql string, options *jira.SearchOptions) ([]jira.Issue, *jira.Response, error)
}

// IssueClient counts resolved Jira issues per member.
type IssueClient struct {
	searcher issueSearcher
}

// NewIssueClient creates a Jira-backed issue source using basic auth.
func NewIssueClient(baseURL string, username string, token string) (*IssueClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("jira base URL is required")
	}
	tp := jira.BasicAuthTransport{Username: username, Password: token}
	client, err := jira.NewClient(tp.Client(), baseURL)
	if err != nil {
		return nil, fmt.Errorf("creating jira client: %w", err)
	}
	return &IssueClient{searcher: client.Issue}, nil
}

// ResolvedCounts returns how many issues each ldap resolved in the range.
func (c *IssueClient) ResolvedCounts(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error) {
	counts := make(map[string]int, len(ldaps))
	for _, ldap := range ldaps {
		jql := fmt.Sprintf(`assignee = %q AND resolved >= %q AND resolved < %q`,
			ldap, r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))

		// MaxResults 1: only the total matters.
		_, resp, err := c.searcher.SearchWithContext(ctx, jql, &jira.SearchOptions{MaxResults: 1})
		if err != nil {
			return nil, fmt.Errorf("jira search for %s: %w", ldap, err)
		}
		counts[ldap] = resp.Total
	}
	return counts, nil
}
