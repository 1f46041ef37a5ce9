package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"    // 배차 대기
	DeliveryStatusInTransit DeliveryStatus = "in_transit" // 배송 중
	DeliveryStatusDelivered DeliveryStatus = "delivered"  // 배송 완료
	DeliveryStatusCancelled DeliveryStatus = "cancelled"  // 취소
)

// Delivery 배달 건
type Delivery struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	MerchantID  string         `gorm:"type:varchar(36);index" json:"merchant_id"`                       // 가맹점 ID
	RiderID     *string        `gorm:"type:varchar(36);index" json:"rider_id,omitempty"`                // 라이더 ID
	Status      DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // 배송 상태
	Amount      float64        `gorm:"not null;default:0" json:"amount"`                                // 주문 금액
	DeliveryFee float64        `gorm:"not null;default:0" json:"delivery_fee"`                          // 배달료
	DeliveredAt *time.Time     `gorm:"index" json:"delivered_at,omitempty"`                             // 배송 완료 시각
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// RevenueTime is the timestamp revenue is bucketed by.
func (d *Delivery) RevenueTime() time.Time {
	if d.DeliveredAt != nil {
		return *d.DeliveredAt
	}
	return d.CreatedAt
}
