package repository

import (
	"testing"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepository_QueryNewestFirst(t *testing.T) {
	repo := NewAuditRepository(setupRepoTest(t))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []*model.AuditLog{
		{ActorID: "admin-1", ActorName: "Admin", ActionType: model.AuditActionApprove, EntityType: "rider", EntityID: "r-1", CreatedAt: base},
		{ActorID: "admin-1", ActorName: "Admin", ActionType: model.AuditActionReject, EntityType: "rider", EntityID: "r-2", CreatedAt: base.Add(time.Minute)},
		{ActorID: "admin-2", ActorName: "Ops", ActionType: model.AuditActionApprove, EntityType: "merchant", EntityID: "m-1", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, entry := range entries {
		require.NoError(t, repo.Create(entry))
	}

	all, total, err := repo.Query(AuditFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, "m-1", all[0].EntityID)
	assert.Equal(t, "r-1", all[2].EntityID)

	tests := []struct {
		name   string
		filter AuditFilter
		want   []string
	}{
		{name: "By entity type", filter: AuditFilter{EntityType: "rider"}, want: []string{"r-2", "r-1"}},
		{name: "By action", filter: AuditFilter{Action: model.AuditActionApprove}, want: []string{"m-1", "r-1"}},
		{name: "By actor", filter: AuditFilter{ActorID: "admin-2"}, want: []string{"m-1"}},
		{name: "By entity id", filter: AuditFilter{EntityID: "r-2"}, want: []string{"r-2"}},
		{name: "Paged", filter: AuditFilter{Page: 2, Limit: 2}, want: []string{"r-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, _, err := repo.Query(tt.filter)
			require.NoError(t, err)
			ids := make([]string, len(found))
			for i, entry := range found {
				ids[i] = entry.EntityID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestAuditRepository_FindBetween(t *testing.T) {
	repo := NewAuditRepository(setupRepoTest(t))

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&model.AuditLog{ActorID: "a", ActorName: "A", ActionType: model.AuditActionUpdate, EntityType: "rider", EntityID: "in", CreatedAt: day.Add(time.Hour)}))
	require.NoError(t, repo.Create(&model.AuditLog{ActorID: "a", ActorName: "A", ActionType: model.AuditActionUpdate, EntityType: "rider", EntityID: "out", CreatedAt: day.Add(25 * time.Hour)}))

	found, err := repo.FindBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "in", found[0].EntityID)
}

func TestAuditLog_Immutable(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewAuditRepository(testDB)

	entry := &model.AuditLog{ActorID: "a", ActorName: "A", ActionType: model.AuditActionApprove, EntityType: "rider", EntityID: "r-1"}
	require.NoError(t, repo.Create(entry))

	entry.ChangesSummary = "tampered"
	assert.ErrorIs(t, testDB.Save(entry).Error, model.ErrAuditLogImmutable)
	assert.ErrorIs(t, testDB.Delete(entry).Error, model.ErrAuditLogImmutable)

	found, _, err := repo.Query(AuditFilter{EntityID: "r-1"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Empty(t, found[0].ChangesSummary)
}
