package model

// Rider 배달 라이더
type Rider struct {
	EntityBase
	Name             string  `gorm:"not null" json:"name" validate:"required,max=200"`                                          // 이름
	VehicleType      string  `gorm:"type:varchar(30)" json:"vehicle_type" validate:"omitempty,oneof=bicycle motorbike car van"` // 운송 수단
	LicenseNumber    string  `gorm:"type:varchar(50)" json:"license_number"`                                                    // 면허 번호
	LoadingStationID *string `gorm:"type:varchar(36);index" json:"loading_station_id,omitempty"`                                // 소속 스테이션 ID
	Balance          float64 `gorm:"not null;default:0" json:"balance"`                                                         // 잔액
	TotalEarnings    float64 `gorm:"not null;default:0" json:"total_earnings"`                                                  // 누적 수익
	TotalDeliveries  int     `gorm:"not null;default:0" json:"total_deliveries"`                                                // 누적 배달 수
	Rating           float64 `gorm:"not null;default:0" json:"rating"`                                                          // 평점
}

func (Rider) TableName() string {
	return "riders"
}

func (*Rider) Kind() EntityKind { return KindRider }

func (r *Rider) DisplayName() string { return r.Name }

func (r *Rider) Revenue() float64 { return r.TotalEarnings }

func (r *Rider) Snapshot() JSONMap {
	m := r.EntityBase.snapshot()
	m["name"] = r.Name
	m["vehicle_type"] = r.VehicleType
	m["balance"] = r.Balance
	return m
}
