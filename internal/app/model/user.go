package model

import (
	"time"
)

type UserRole string // 사용자 권한 타입

const (
	RoleAdmin          UserRole = "admin"           // 관리자 권한
	RoleBusinessHub    UserRole = "business_hub"    // 허브 운영자
	RoleLoadingStation UserRole = "loading_station" // 스테이션 운영자
	RoleRider          UserRole = "rider"           // 라이더
	RoleMerchant       UserRole = "merchant"        // 가맹점주
	RoleShareholder    UserRole = "shareholder"     // 주주
)

var UserRoles = []UserRole{
	RoleAdmin,
	RoleBusinessHub,
	RoleLoadingStation,
	RoleRider,
	RoleMerchant,
	RoleShareholder,
}

// User 프로필 (ID는 Identity ID와 동일)
type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`       // 사용자 ID (= Identity ID)
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`           // 이메일
	Name      string    `gorm:"not null" json:"name"`                        // 이름
	Phone     string    `json:"phone"`                                       // 전화번호
	Role      UserRole  `gorm:"type:varchar(20);not null;index" json:"role"` // 권한
	CreatedAt time.Time `json:"created_at"`                                  // 생성 시각
	UpdatedAt time.Time `json:"updated_at"`                                  // 수정 시각
}

func (User) TableName() string {
	return "users"
}
