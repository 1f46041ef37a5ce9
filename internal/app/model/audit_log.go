package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAuditLogImmutable = errors.New("audit log entries are append-only")

// AuditAction 감사 로그 액션 종류
type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionApprove      AuditAction = "APPROVE"
	AuditActionReject       AuditAction = "REJECT"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionConfigChange AuditAction = "CONFIG_CHANGE"
)

func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionApprove,
		AuditActionReject, AuditActionDelete, AuditActionConfigChange:
		return true
	}
	return false
}

// AuditLog 관리자 작업 감사 로그 (추가 전용)
type AuditLog struct {
	ID             uint        `gorm:"primarykey" json:"id"`
	ActorID        string      `gorm:"type:varchar(36);not null;index" json:"actor_id"`    // 작업한 관리자 ID
	ActorName      string      `gorm:"not null" json:"actor_name"`                         // 작업한 관리자 이름
	ActionType     AuditAction `gorm:"type:varchar(20);not null;index" json:"action_type"` // 액션 종류
	EntityType     string      `gorm:"type:varchar(30);not null;index" json:"entity_type"` // 대상 종류
	EntityID       string      `gorm:"type:varchar(36);not null;index" json:"entity_id"`   // 대상 ID
	EntityName     string      `json:"entity_name"`                                        // 대상 표시 이름
	OldValue       JSONMap     `gorm:"type:jsonb" json:"old_value,omitempty"`              // 변경 전 스냅샷
	NewValue       JSONMap     `gorm:"type:jsonb" json:"new_value,omitempty"`              // 변경 후 스냅샷
	ChangesSummary string      `gorm:"type:text" json:"changes_summary"`                   // 변경 요약
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`                            // 기록 시각
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (*AuditLog) BeforeUpdate(tx *gorm.DB) error {
	return ErrAuditLogImmutable
}

func (*AuditLog) BeforeDelete(tx *gorm.DB) error {
	return ErrAuditLogImmutable
}
