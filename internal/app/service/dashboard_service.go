package service

import (
	"context"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/app/stats"
	"github.com/ikkim/hubline-admin/pkg/logger"
)

const dashboardCacheKey = "dashboard:statistics"

const invalidateTimeout = 2 * time.Second

// StatsCache stores JSON-encodable values. Load reports false on a miss.
type StatsCache interface {
	Load(ctx context.Context, key string, dest interface{}) (bool, error)
	Store(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type DashboardReport struct {
	stats.DashboardStatistics
	GeneratedAt time.Time `json:"generated_at"`
	Cached      bool      `json:"cached"`
}

type DashboardService interface {
	GetStatistics(ctx context.Context) (*DashboardReport, error)
	RefreshStatistics(ctx context.Context) (*DashboardReport, error)
	GetRevenue(period stats.RevenuePeriod, asOf time.Time) ([]stats.RevenueBucket, error)
	// PublishAudit drops the cached statistics after any audited change
	PublishAudit(entry *model.AuditLog)
}

type dashboardService struct {
	users       repository.UserRepository
	entities    repository.EntityRepository
	commissions repository.CommissionRepository
	deliveries  repository.DeliveryRepository
	cache       StatsCache
	ttl         time.Duration
	now         func() time.Time
}

// NewDashboardService builds the reporter. cache may be nil.
func NewDashboardService(
	users repository.UserRepository,
	entities repository.EntityRepository,
	commissions repository.CommissionRepository,
	deliveries repository.DeliveryRepository,
	cache StatsCache,
	ttl time.Duration,
) DashboardService {
	return &dashboardService{
		users:       users,
		entities:    entities,
		commissions: commissions,
		deliveries:  deliveries,
		cache:       cache,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (s *dashboardService) GetStatistics(ctx context.Context) (*DashboardReport, error) {
	if s.cache != nil {
		var cached DashboardReport
		hit, err := s.cache.Load(ctx, dashboardCacheKey, &cached)
		if err != nil {
			logger.Warn("Dashboard cache read failed, computing directly", map[string]interface{}{
				"error": err.Error(),
			})
		} else if hit {
			cached.Cached = true
			return &cached, nil
		}
	}
	return s.RefreshStatistics(ctx)
}

// RefreshStatistics recomputes the statistics and overwrites the cache.
func (s *dashboardService) RefreshStatistics(ctx context.Context) (*DashboardReport, error) {
	snapshot, err := s.loadSnapshot()
	if err != nil {
		return nil, err
	}

	report := &DashboardReport{
		DashboardStatistics: stats.ComputeDashboard(snapshot),
		GeneratedAt:         s.now(),
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, dashboardCacheKey, report, s.ttl); err != nil {
			logger.Warn("Dashboard cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	logger.Info("Dashboard statistics computed", map[string]interface{}{
		"total_users":   report.TotalUsers,
		"total_revenue": report.TotalRevenue,
	})
	return report, nil
}

func (s *dashboardService) PublishAudit(entry *model.AuditLog) {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()

	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		logger.Warn("Dashboard cache invalidation failed", map[string]interface{}{
			"audit_id":    entry.ID,
			"action_type": entry.ActionType,
			"error":       err.Error(),
		})
		return
	}
	logger.Debug("Dashboard cache invalidated", map[string]interface{}{
		"audit_id":    entry.ID,
		"action_type": entry.ActionType,
	})
}

func (s *dashboardService) loadSnapshot() (stats.Snapshot, error) {
	users, err := s.users.ListAll()
	if err != nil {
		return stats.Snapshot{}, err
	}

	entities := make(map[model.EntityKind][]model.Entity, len(model.EntityKinds))
	for _, kind := range model.EntityKinds {
		rows, err := s.entities.ListAll(kind)
		if err != nil {
			return stats.Snapshot{}, err
		}
		entities[kind] = rows
	}

	distributions, err := s.commissions.FindAll()
	if err != nil {
		return stats.Snapshot{}, err
	}

	return stats.Snapshot{
		Users:         users,
		Entities:      entities,
		Distributions: distributions,
	}, nil
}

func (s *dashboardService) GetRevenue(period stats.RevenuePeriod, asOf time.Time) ([]stats.RevenueBucket, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}

	// empty pass gives the window bounds for the query
	window := stats.Revenue(period, nil, asOf)
	since := window[0].Start

	deliveries, err := s.deliveries.FindDelivered(since)
	if err != nil {
		return nil, err
	}

	buckets := stats.Revenue(period, deliveries, asOf)
	logger.Debug("Revenue computed", map[string]interface{}{
		"period":     period,
		"buckets":    len(buckets),
		"deliveries": len(deliveries),
	})
	return buckets, nil
}
