package repository

import (
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"gorm.io/gorm"
)

type CommissionRepository interface {
	CreateBatch(distributions []model.CommissionDistribution) error
	FindAll() ([]model.CommissionDistribution, error)
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) CreateBatch(distributions []model.CommissionDistribution) error {
	if len(distributions) == 0 {
		return nil
	}

	logger.Debug("Creating commission distributions in batch", map[string]interface{}{
		"count": len(distributions),
	})

	if err := r.db.CreateInBatches(distributions, seedBatchSize).Error; err != nil {
		logger.Error("Failed to create commission distributions", err)
		return err
	}
	return nil
}

func (r *commissionRepository) FindAll() ([]model.CommissionDistribution, error) {
	logger.Debug("Loading commission distributions")

	var distributions []model.CommissionDistribution
	if err := r.db.Find(&distributions).Error; err != nil {
		logger.Error("Failed to load commission distributions", err)
		return nil, err
	}
	return distributions, nil
}
