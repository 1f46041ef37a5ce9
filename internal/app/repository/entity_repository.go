package repository

import (
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"gorm.io/gorm"
)

type EntityFilter struct {
	Status model.EntityStatus
	Search string
	Page   int
	Limit  int
}

// StatusChange describes an approval workflow write.
type StatusChange struct {
	From    model.EntityStatus
	To      model.EntityStatus
	ActorID string
	Reason  string
	At      time.Time
}

type EntityRepository interface {
	Create(entity model.Entity) error
	FindByID(kind model.EntityKind, id string) (model.Entity, error)
	List(kind model.EntityKind, filter EntityFilter) ([]model.Entity, int64, error)
	ListAll(kind model.EntityKind) ([]model.Entity, error)
	Transition(kind model.EntityKind, id string, change StatusChange) error
	UpdateFields(kind model.EntityKind, id string, fields map[string]interface{}) error
	Delete(kind model.EntityKind, id string) error
}

type entityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) EntityRepository {
	return &entityRepository{db: db}
}

func (r *entityRepository) Create(entity model.Entity) error {
	logger.Debug("Creating entity in database", map[string]interface{}{
		"entity_kind":   entity.Kind(),
		"owner_user_id": entity.Base().OwnerUserID,
		"name":          entity.DisplayName(),
	})

	if err := r.db.Create(entity).Error; err != nil {
		logger.Error("Failed to create entity in database", err, map[string]interface{}{
			"entity_kind":   entity.Kind(),
			"owner_user_id": entity.Base().OwnerUserID,
		})
		return err
	}

	logger.Debug("Entity created in database", map[string]interface{}{
		"entity_kind": entity.Kind(),
		"entity_id":   entity.Base().ID,
	})
	return nil
}

func (r *entityRepository) FindByID(kind model.EntityKind, id string) (model.Entity, error) {
	logger.Debug("Finding entity by ID", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
	})

	record := kind.NewRecord()
	if record == nil {
		return nil, ErrUnknownKind
	}

	if err := r.db.First(record, "id = ?", id).Error; err != nil {
		logger.Error("Failed to find entity", err, map[string]interface{}{
			"entity_kind": kind,
			"entity_id":   id,
		})
		return nil, err
	}

	logger.Debug("Entity found", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
		"status":      record.Base().Status,
	})
	return record, nil
}

func (r *entityRepository) List(kind model.EntityKind, filter EntityFilter) ([]model.Entity, int64, error) {
	logger.Debug("Listing entities", map[string]interface{}{
		"entity_kind": kind,
		"status":      filter.Status,
		"search":      filter.Search,
		"page":        filter.Page,
		"limit":       filter.Limit,
	})

	record := kind.NewRecord()
	if record == nil {
		return nil, 0, ErrUnknownKind
	}

	query := r.db.Model(record)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count entities", err, map[string]interface{}{
			"entity_kind": kind,
		})
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	query = query.Order("created_at DESC").Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)

	entities, err := findAll(kind, query)
	if err != nil {
		logger.Error("Failed to list entities", err, map[string]interface{}{
			"entity_kind": kind,
		})
		return nil, 0, err
	}

	logger.Debug("Entities listed", map[string]interface{}{
		"entity_kind": kind,
		"count":       len(entities),
		"total":       total,
	})
	return entities, total, nil
}

func (r *entityRepository) ListAll(kind model.EntityKind) ([]model.Entity, error) {
	logger.Debug("Listing all entities", map[string]interface{}{
		"entity_kind": kind,
	})

	record := kind.NewRecord()
	if record == nil {
		return nil, ErrUnknownKind
	}

	entities, err := findAll(kind, r.db.Model(record))
	if err != nil {
		logger.Error("Failed to list all entities", err, map[string]interface{}{
			"entity_kind": kind,
		})
		return nil, err
	}
	return entities, nil
}

// Transition writes the new status only while the row still has change.From,
// returning ErrStatusChanged when another writer got there first.
func (r *entityRepository) Transition(kind model.EntityKind, id string, change StatusChange) error {
	logger.Debug("Transitioning entity status", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
		"from":        change.From,
		"to":          change.To,
		"actor_id":    change.ActorID,
	})

	record := kind.NewRecord()
	if record == nil {
		return ErrUnknownKind
	}

	updates := map[string]interface{}{
		"status":     change.To,
		"updated_at": change.At,
	}
	switch change.To {
	case model.StatusActive:
		updates["approved_by"] = change.ActorID
		updates["approved_at"] = change.At
		updates["rejection_reason"] = nil
	case model.StatusRejected:
		updates["rejected_by"] = change.ActorID
		updates["rejected_at"] = change.At
		updates["rejection_reason"] = change.Reason
	}

	result := r.db.Model(record).
		Where("id = ? AND status = ?", id, change.From).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to transition entity status", result.Error, map[string]interface{}{
			"entity_kind": kind,
			"entity_id":   id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		logger.Warn("Entity status changed before transition was applied", map[string]interface{}{
			"entity_kind": kind,
			"entity_id":   id,
			"expected":    change.From,
		})
		return ErrStatusChanged
	}

	logger.Debug("Entity status transitioned", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
		"status":      change.To,
	})
	return nil
}

func (r *entityRepository) UpdateFields(kind model.EntityKind, id string, fields map[string]interface{}) error {
	logger.Debug("Updating entity fields", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
		"fields":      len(fields),
	})

	record := kind.NewRecord()
	if record == nil {
		return ErrUnknownKind
	}

	result := r.db.Model(record).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		logger.Error("Failed to update entity fields", result.Error, map[string]interface{}{
			"entity_kind": kind,
			"entity_id":   id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *entityRepository) Delete(kind model.EntityKind, id string) error {
	logger.Debug("Deleting entity from database", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
	})

	record := kind.NewRecord()
	if record == nil {
		return ErrUnknownKind
	}

	result := r.db.Where("id = ?", id).Delete(record)
	if result.Error != nil {
		logger.Error("Failed to delete entity from database", result.Error, map[string]interface{}{
			"entity_kind": kind,
			"entity_id":   id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Entity deleted from database", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
	})
	return nil
}

func findAll(kind model.EntityKind, query *gorm.DB) ([]model.Entity, error) {
	switch kind {
	case model.KindBusinessHub:
		return findRows[model.BusinessHub](query)
	case model.KindLoadingStation:
		return findRows[model.LoadingStation](query)
	case model.KindRider:
		return findRows[model.Rider](query)
	case model.KindMerchant:
		return findRows[model.Merchant](query)
	case model.KindShareholder:
		return findRows[model.Shareholder](query)
	}
	return nil, ErrUnknownKind
}

func findRows[T any, PT interface {
	*T
	model.Entity
}](query *gorm.DB) ([]model.Entity, error) {
	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	entities := make([]model.Entity, len(rows))
	for i := range rows {
		entities[i] = PT(&rows[i])
	}
	return entities, nil
}
