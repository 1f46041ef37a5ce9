package model

// Shareholder 주주
type Shareholder struct {
	EntityBase
	Name            string  `gorm:"not null" json:"name" validate:"required,max=200"`                    // 이름
	SharePercentage float64 `gorm:"not null;default:0" json:"share_percentage" validate:"gte=0,lte=100"` // 지분율 (%)
	InvestedAmount  float64 `gorm:"not null;default:0" json:"invested_amount"`                           // 투자 금액
	Balance         float64 `gorm:"not null;default:0" json:"balance"`                                   // 잔액
	TotalEarnings   float64 `gorm:"not null;default:0" json:"total_earnings"`                            // 누적 배당
}

func (Shareholder) TableName() string {
	return "shareholders"
}

func (*Shareholder) Kind() EntityKind { return KindShareholder }

func (s *Shareholder) DisplayName() string { return s.Name }

func (s *Shareholder) Revenue() float64 { return s.TotalEarnings }

func (s *Shareholder) Snapshot() JSONMap {
	m := s.EntityBase.snapshot()
	m["name"] = s.Name
	m["share_percentage"] = s.SharePercentage
	m["balance"] = s.Balance
	return m
}
