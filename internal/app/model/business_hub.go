package model

// BusinessHub 비즈니스 허브
type BusinessHub struct {
	EntityBase
	Name           string  `gorm:"not null" json:"name" validate:"required,max=200"`                             // 허브 이름
	Code           string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required,max=50"` // 허브 코드
	City           string  `json:"city"`                                                                         // 도시
	Address        string  `gorm:"type:text" json:"address"`                                                     // 주소
	CommissionRate float64 `gorm:"not null;default:0" json:"commission_rate" validate:"gte=0,lte=100"`           // 수수료율 (%)
	Balance        float64 `gorm:"not null;default:0" json:"balance"`                                            // 잔액
	TotalRevenue   float64 `gorm:"not null;default:0" json:"total_revenue"`                                      // 누적 매출
	StationCount   int     `gorm:"not null;default:0" json:"station_count"`                                      // 소속 스테이션 수
}

func (BusinessHub) TableName() string {
	return "business_hubs"
}

func (*BusinessHub) Kind() EntityKind { return KindBusinessHub }

func (h *BusinessHub) DisplayName() string { return h.Name }

func (h *BusinessHub) Revenue() float64 { return h.TotalRevenue }

func (h *BusinessHub) Snapshot() JSONMap {
	m := h.EntityBase.snapshot()
	m["name"] = h.Name
	m["code"] = h.Code
	m["commission_rate"] = h.CommissionRate
	m["balance"] = h.Balance
	return m
}
