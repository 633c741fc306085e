package sources

import (
	"context"
	"fmt"

	"github.com/internal-tools/org-activity-reports/internal/models"
	"github.com/slack-go/slack"
)

type messageSearcher interface {
	SearchMessagesContext(ctx context.Context, query string, params slack.SearchParameters) (*slack.SearchMessages, error)
}

// ChatClient counts Slack messages per member via the search API.
type ChatClient struct {
	api messageSearcher
}

// NewChatClient creates a Slack-backed chat source.
func NewChatClient(token string) (*ChatClient, error) {
	if token == "" {
		return nil, fmt.Errorf("slack token is required")
	}
	return &ChatClient{api: slack.New(token)}, nil
}

// MessageCounts returns the number of messages each ldap sent in the range.
func (c *ChatClient) MessageCounts(ctx context.Context, ldaps []string, r models.DateRange) (map[string]int, error) {
	counts := make(map[string]int, len(ldaps))
	for _, ldap := range ldaps {
		query := fmt.Sprintf("from:@%s after:%s before:%s",
			ldap, r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))

		params := slack.NewSearchParameters()
		params.Count = 1

		result, err := c.api.SearchMessagesContext(ctx, query, params)
		if err != nil {
			return nil, fmt.Errorf("slack search for %s: %w", ldap, err)
		}
		counts[ldap] = result.Total
	}
	return counts, nil
}
