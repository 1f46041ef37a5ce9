package model

// LoadingStation 상차 스테이션
type LoadingStation struct {
	EntityBase
	Name           string  `gorm:"not null" json:"name" validate:"required,max=200"`                             // 스테이션 이름
	Code           string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required,max=50"` // 스테이션 코드
	BusinessHubID  *string `gorm:"type:varchar(36);index" json:"business_hub_id,omitempty"`                      // 소속 허브 ID
	Address        string  `gorm:"type:text" json:"address"`                                                     // 주소
	CommissionRate float64 `gorm:"not null;default:0" json:"commission_rate" validate:"gte=0,lte=100"`           // 수수료율 (%)
	Balance        float64 `gorm:"not null;default:0" json:"balance"`                                            // 잔액
	TotalRevenue   float64 `gorm:"not null;default:0" json:"total_revenue"`                                      // 누적 매출
	RiderCount     int     `gorm:"not null;default:0" json:"rider_count"`                                        // 소속 라이더 수
}

func (LoadingStation) TableName() string {
	return "loading_stations"
}

func (*LoadingStation) Kind() EntityKind { return KindLoadingStation }

func (s *LoadingStation) DisplayName() string { return s.Name }

func (s *LoadingStation) Revenue() float64 { return s.TotalRevenue }

func (s *LoadingStation) Snapshot() JSONMap {
	m := s.EntityBase.snapshot()
	m["name"] = s.Name
	m["code"] = s.Code
	m["commission_rate"] = s.CommissionRate
	m["balance"] = s.Balance
	return m
}
