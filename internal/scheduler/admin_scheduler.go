package scheduler

import (
	"context"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/service"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 5 * time.Minute

// AdminScheduler 관리자 백그라운드 작업 스케줄러 (통계 캐시 갱신, 감사 로그 보관)
type AdminScheduler struct {
	cron      *cron.Cron
	dashboard service.DashboardService
	archive   service.AuditArchiveService
	now       func() time.Time
}

// NewAdminScheduler archive may be nil when no bucket is configured
func NewAdminScheduler(dashboard service.DashboardService, archive service.AuditArchiveService) *AdminScheduler {
	return &AdminScheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		dashboard: dashboard,
		archive:   archive,
		now:       time.Now,
	}
}

// Start 스케줄러 시작
func (s *AdminScheduler) Start(statsSpec, archiveSpec string) error {
	if _, err := s.cron.AddFunc(statsSpec, s.refreshStatistics); err != nil {
		logger.Error("Failed to add cron job for statistics refresh", err, map[string]interface{}{
			"spec": statsSpec,
		})
		return err
	}

	if s.archive != nil {
		if _, err := s.cron.AddFunc(archiveSpec, s.archivePreviousDay); err != nil {
			logger.Error("Failed to add cron job for audit archive", err, map[string]interface{}{
				"spec": archiveSpec,
			})
			return err
		}
	}

	s.cron.Start()
	logger.Info("Admin scheduler started", map[string]interface{}{
		"stats_spec":   statsSpec,
		"archive_spec": archiveSpec,
		"jobs":         len(s.cron.Entries()),
	})
	return nil
}

// Stop 스케줄러 중지, 실행 중인 작업이 끝날 때까지 대기
func (s *AdminScheduler) Stop() {
	logger.Info("Stopping admin scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Admin scheduler stopped", nil)
}

func (s *AdminScheduler) refreshStatistics() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.dashboard.RefreshStatistics(ctx); err != nil {
		logger.Error("Scheduled statistics refresh failed", err)
		return
	}
	logger.Debug("Scheduled statistics refresh completed", nil)
}

func (s *AdminScheduler) archivePreviousDay() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	day := s.now().UTC().AddDate(0, 0, -1)
	result, err := s.archive.ArchiveDay(ctx, day)
	if err != nil {
		logger.Error("Scheduled audit archive failed", err, map[string]interface{}{
			"day": day.Format("2006-01-02"),
		})
		return
	}
	if result != nil {
		logger.Info("Scheduled audit archive completed", map[string]interface{}{
			"key":     result.Key,
			"entries": result.Entries,
		})
	}
}
