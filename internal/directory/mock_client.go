package directory

import (
	"context"

	"github.com/internal-tools/org-activity-reports/internal/models"
)

// MockClient is a simple mock implementation of the directory client.
type MockClient struct {
	FetchMembersFunc func(ctx context.Context, groups []models.GroupTag, includeTerminated bool) ([]models.Member, error)

	// FetchCalls records every FetchMembers invocation for assertions.
	FetchCalls []FetchCall
}

// FetchCall records a call to FetchMembers.
type FetchCall struct {
	Groups            []models.GroupTag
	IncludeTerminated bool
}

func (m *MockClient) FetchMembers(ctx context.Context, groups []models.GroupTag, includeTerminated bool) ([]models.Member, error) {
	m.FetchCalls = append(m.FetchCalls, FetchCall{Groups: groups, IncludeTerminated: includeTerminated})
	if m.FetchMembersFunc == nil {
		return nil, nil
	}
	return m.FetchMembersFunc(ctx, groups, includeTerminated)
}
