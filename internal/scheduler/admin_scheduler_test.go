package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/app/service"
	"github.com/ikkim/hubline-admin/internal/app/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboard struct {
	refreshed int
	err       error
}

func (f *fakeDashboard) GetStatistics(ctx context.Context) (*service.DashboardReport, error) {
	return f.RefreshStatistics(ctx)
}

func (f *fakeDashboard) RefreshStatistics(ctx context.Context) (*service.DashboardReport, error) {
	f.refreshed++
	if f.err != nil {
		return nil, f.err
	}
	return &service.DashboardReport{}, nil
}

func (f *fakeDashboard) GetRevenue(stats.RevenuePeriod, time.Time) ([]stats.RevenueBucket, error) {
	return nil, nil
}

func (f *fakeDashboard) PublishAudit(*model.AuditLog) {}

type fakeArchive struct {
	days []time.Time
}

func (f *fakeArchive) Export(repository.AuditFilter) ([]byte, error) { return nil, nil }

func (f *fakeArchive) ArchiveDay(ctx context.Context, day time.Time) (*service.ArchiveResult, error) {
	f.days = append(f.days, day)
	return &service.ArchiveResult{Key: "audit/2026/03/01-x.xlsx", Entries: 3}, nil
}

func TestAdminScheduler_Start(t *testing.T) {
	s := NewAdminScheduler(&fakeDashboard{}, &fakeArchive{})
	require.NoError(t, s.Start("*/10 * * * *", "0 3 * * *"))
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 2)
}

func TestAdminScheduler_StartWithoutArchive(t *testing.T) {
	s := NewAdminScheduler(&fakeDashboard{}, nil)
	require.NoError(t, s.Start("*/10 * * * *", "0 3 * * *"))
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1)
}

func TestAdminScheduler_InvalidSpec(t *testing.T) {
	s := NewAdminScheduler(&fakeDashboard{}, nil)
	assert.Error(t, s.Start("every ten minutes", "0 3 * * *"))
}

func TestAdminScheduler_Jobs(t *testing.T) {
	dashboard := &fakeDashboard{err: errors.New("db down")}
	archive := &fakeArchive{}
	s := NewAdminScheduler(dashboard, archive)
	s.now = func() time.Time { return time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC) }

	s.refreshStatistics()
	assert.Equal(t, 1, dashboard.refreshed)

	s.archivePreviousDay()
	require.Len(t, archive.days, 1)
	assert.Equal(t, 1, archive.days[0].Day())
}
