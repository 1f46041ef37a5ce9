package model

// Merchant 가맹점
type Merchant struct {
	EntityBase
	Name           string  `gorm:"not null" json:"name" validate:"required,max=200"`                   // 상호명
	BusinessType   string  `gorm:"type:varchar(50)" json:"business_type"`                              // 업종
	Address        string  `gorm:"type:text" json:"address"`                                           // 주소
	CommissionRate float64 `gorm:"not null;default:0" json:"commission_rate" validate:"gte=0,lte=100"` // 수수료율 (%)
	Balance        float64 `gorm:"not null;default:0" json:"balance"`                                  // 잔액
	TotalRevenue   float64 `gorm:"not null;default:0" json:"total_revenue"`                            // 누적 매출
	TotalOrders    int     `gorm:"not null;default:0" json:"total_orders"`                             // 누적 주문 수
}

func (Merchant) TableName() string {
	return "merchants"
}

func (*Merchant) Kind() EntityKind { return KindMerchant }

func (m *Merchant) DisplayName() string { return m.Name }

func (m *Merchant) Revenue() float64 { return m.TotalRevenue }

func (m *Merchant) Snapshot() JSONMap {
	s := m.EntityBase.snapshot()
	s["name"] = m.Name
	s["business_type"] = m.BusinessType
	s["commission_rate"] = m.CommissionRate
	s["balance"] = m.Balance
	return s
}
