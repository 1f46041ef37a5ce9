package repository

import (
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"gorm.io/gorm"
)

type AuditFilter struct {
	EntityType string
	EntityID   string
	Action     model.AuditAction
	ActorID    string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

// AuditRepository only appends and reads; there is no update or delete.
type AuditRepository interface {
	Create(entry *model.AuditLog) error
	Query(filter AuditFilter) ([]model.AuditLog, int64, error)
	FindBetween(from, to time.Time) ([]model.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(entry *model.AuditLog) error {
	logger.Debug("Appending audit log entry", map[string]interface{}{
		"action_type": entry.ActionType,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
		"actor_id":    entry.ActorID,
	})

	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to append audit log entry", err, map[string]interface{}{
			"action_type": entry.ActionType,
			"entity_id":   entry.EntityID,
		})
		return err
	}

	logger.Debug("Audit log entry appended", map[string]interface{}{
		"audit_id":  entry.ID,
		"entity_id": entry.EntityID,
	})
	return nil
}

func (r *auditRepository) Query(filter AuditFilter) ([]model.AuditLog, int64, error) {
	logger.Debug("Querying audit log", map[string]interface{}{
		"entity_type": filter.EntityType,
		"entity_id":   filter.EntityID,
		"action":      filter.Action,
		"actor_id":    filter.ActorID,
	})

	query := r.db.Model(&model.AuditLog{})
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Action != "" {
		query = query.Where("action_type = ?", filter.Action)
	}
	if filter.ActorID != "" {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count audit log entries", err)
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	var entries []model.AuditLog
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&entries).Error; err != nil {
		logger.Error("Failed to query audit log", err)
		return nil, 0, err
	}

	logger.Debug("Audit log queried", map[string]interface{}{
		"count": len(entries),
		"total": total,
	})
	return entries, total, nil
}

// FindBetween returns entries in [from, to) oldest first for archiving
func (r *auditRepository) FindBetween(from, to time.Time) ([]model.AuditLog, error) {
	logger.Debug("Loading audit log window", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	var entries []model.AuditLog
	if err := r.db.
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Order("id ASC").
		Find(&entries).Error; err != nil {
		logger.Error("Failed to load audit log window", err)
		return nil, err
	}
	return entries, nil
}
