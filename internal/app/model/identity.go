package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity 로그인 가능한 인증 계정 (identity provider 소유)
type Identity struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"` // 계정 ID (UUID)
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`     // 이메일
	PasswordHash string    `gorm:"not null" json:"-"`                     // 비밀번호 해시
	Metadata     JSONMap   `gorm:"type:jsonb" json:"metadata,omitempty"`  // 부가 정보 (이름, 역할 등)
	CreatedAt    time.Time `json:"created_at"`                            // 생성 시각
}

func (Identity) TableName() string {
	return "auth_identities"
}

func (i *Identity) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
