package snapshots

import (
	"context"

	"github.com/internal-tools/org-activity-reports/internal/models"
)

// MockStore implements SnapshotStore for testing.
type MockStore struct {
	SaveSnapshotFunc  func(ctx context.Context, snapshot models.ReportSnapshot) error
	GetSnapshotFunc   func(ctx context.Context, groupsKey string, sk string) (*models.ReportSnapshot, error)
	ListSnapshotsFunc func(ctx context.Context, groupsKey string, limit int) ([]models.ReportSnapshot, error)

	// SavedSnapshots tracks calls for assertions.
	SavedSnapshots []models.ReportSnapshot
}

func (m *MockStore) SaveSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error {
	m.SavedSnapshots = append(m.SavedSnapshots, snapshot)
	if m.SaveSnapshotFunc == nil {
		return nil
	}
	return m.SaveSnapshotFunc(ctx, snapshot)
}

func (m *MockStore) GetSnapshot(ctx context.Context, groupsKey string, sk string) (*models.ReportSnapshot, error) {
	if m.GetSnapshotFunc == nil {
		return nil, nil
	}
	return m.GetSnapshotFunc(ctx, groupsKey, sk)
}

func (m *MockStore) ListSnapshots(ctx context.Context, groupsKey string, limit int) ([]models.ReportSnapshot, error) {
	if m.ListSnapshotsFunc == nil {
		return nil, nil
	}
	return m.ListSnapshotsFunc(ctx, groupsKey, limit)
}
