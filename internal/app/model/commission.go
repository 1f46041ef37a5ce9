package model

import (
	"time"
)

// CommissionDistribution 배달 건별 수수료 분배 내역
type CommissionDistribution struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	DeliveryID        string    `gorm:"type:varchar(36);not null;index" json:"delivery_id"` // 배달 ID
	TotalAmount       float64   `gorm:"not null;default:0" json:"total_amount"`             // 분배 총액
	PlatformAmount    float64   `gorm:"not null;default:0" json:"platform_amount"`          // 플랫폼 몫
	HubAmount         float64   `gorm:"not null;default:0" json:"hub_amount"`               // 허브 몫
	StationAmount     float64   `gorm:"not null;default:0" json:"station_amount"`           // 스테이션 몫
	RiderAmount       float64   `gorm:"not null;default:0" json:"rider_amount"`             // 라이더 몫
	ShareholderAmount float64   `gorm:"not null;default:0" json:"shareholder_amount"`       // 주주 몫
	CreatedAt         time.Time `json:"created_at"`
}

func (CommissionDistribution) TableName() string {
	return "commission_distributions"
}

// PlatformSetting 플랫폼 수수료 분배율 설정 (단일 행)
type PlatformSetting struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	PlatformRate    float64   `gorm:"not null;default:0" json:"platform_rate"`    // 플랫폼 (%)
	HubRate         float64   `gorm:"not null;default:0" json:"hub_rate"`         // 허브 (%)
	StationRate     float64   `gorm:"not null;default:0" json:"station_rate"`     // 스테이션 (%)
	RiderRate       float64   `gorm:"not null;default:0" json:"rider_rate"`       // 라이더 (%)
	ShareholderRate float64   `gorm:"not null;default:0" json:"shareholder_rate"` // 주주 (%)
	UpdatedBy       string    `gorm:"type:varchar(36)" json:"updated_by"`         // 마지막 수정 관리자 ID
	UpdatedAt       time.Time `json:"updated_at"`
}

func (PlatformSetting) TableName() string {
	return "platform_settings"
}

func (s *PlatformSetting) Snapshot() JSONMap {
	return JSONMap{
		"platform_rate":    s.PlatformRate,
		"hub_rate":         s.HubRate,
		"station_rate":     s.StationRate,
		"rider_rate":       s.RiderRate,
		"shareholder_rate": s.ShareholderRate,
	}
}
