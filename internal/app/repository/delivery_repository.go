package repository

import (
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"gorm.io/gorm"
)

const seedBatchSize = 200

// revenueTimeColumn is Delivery.RevenueTime in SQL
const revenueTimeColumn = "COALESCE(delivered_at, created_at)"

type DeliveryRepository interface {
	CreateBatch(deliveries []model.Delivery) error
	FindDelivered(since time.Time) ([]model.Delivery, error)
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) CreateBatch(deliveries []model.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}

	logger.Debug("Creating deliveries in batch", map[string]interface{}{
		"count": len(deliveries),
	})

	if err := r.db.CreateInBatches(deliveries, seedBatchSize).Error; err != nil {
		logger.Error("Failed to create deliveries", err, map[string]interface{}{
			"count": len(deliveries),
		})
		return err
	}
	return nil
}

// FindDelivered returns delivered deliveries whose revenue time is at or after
// since. Rows without delivered_at fall back to created_at, matching
// Delivery.RevenueTime. A zero since loads the full history.
func (r *deliveryRepository) FindDelivered(since time.Time) ([]model.Delivery, error) {
	logger.Debug("Finding delivered deliveries", map[string]interface{}{
		"since": since,
	})

	query := r.db.Where("status = ?", model.DeliveryStatusDelivered)
	if !since.IsZero() {
		query = query.Where(revenueTimeColumn+" >= ?", since)
	}

	var deliveries []model.Delivery
	if err := query.Order(revenueTimeColumn + " ASC").Find(&deliveries).Error; err != nil {
		logger.Error("Failed to find delivered deliveries", err)
		return nil, err
	}

	logger.Debug("Delivered deliveries found", map[string]interface{}{
		"count": len(deliveries),
	})
	return deliveries, nil
}
