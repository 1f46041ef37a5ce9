package repository

import (
	"errors"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"gorm.io/gorm"
)

type IdentityRepository interface {
	Create(identity *model.Identity) error
	FindByID(id string) (*model.Identity, error)
	FindByEmail(email string) (*model.Identity, error)
	Delete(id string) error
}

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(identity *model.Identity) error {
	logger.Debug("Creating identity in database", map[string]interface{}{
		"email": identity.Email,
	})

	var count int64
	if err := r.db.Model(&model.Identity{}).Where("email = ?", identity.Email).Count(&count).Error; err != nil {
		logger.Error("Failed to check existing identity", err, map[string]interface{}{
			"email": identity.Email,
		})
		return err
	}
	if count > 0 {
		logger.Warn("Identity already exists", map[string]interface{}{
			"email": identity.Email,
		})
		return ErrIdentityExists
	}

	if err := r.db.Create(identity).Error; err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Identity created concurrently with the same email", map[string]interface{}{
				"email": identity.Email,
			})
			return errors.Join(ErrIdentityExists, err)
		}
		logger.Error("Failed to create identity in database", err, map[string]interface{}{
			"email": identity.Email,
		})
		return err
	}

	logger.Debug("Identity created in database", map[string]interface{}{
		"identity_id": identity.ID,
		"email":       identity.Email,
	})
	return nil
}

func (r *identityRepository) FindByID(id string) (*model.Identity, error) {
	logger.Debug("Finding identity by ID in database", map[string]interface{}{
		"identity_id": id,
	})

	var identity model.Identity
	if err := r.db.First(&identity, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find identity by ID in database", err, map[string]interface{}{
				"identity_id": id,
			})
		}
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepository) FindByEmail(email string) (*model.Identity, error) {
	logger.Debug("Finding identity by email in database", map[string]interface{}{
		"email": email,
	})

	var identity model.Identity
	if err := r.db.Where("email = ?", email).First(&identity).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find identity by email in database", err, map[string]interface{}{
				"email": email,
			})
		}
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepository) Delete(id string) error {
	logger.Debug("Deleting identity from database", map[string]interface{}{
		"identity_id": id,
	})

	result := r.db.Delete(&model.Identity{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("Failed to delete identity from database", result.Error, map[string]interface{}{
			"identity_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Identity deleted from database", map[string]interface{}{
		"identity_id": id,
	})
	return nil
}
