package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityKind 관리 대상 엔티티 종류
type EntityKind string

const (
	KindBusinessHub    EntityKind = "business_hub"    // 비즈니스 허브
	KindLoadingStation EntityKind = "loading_station" // 상차 스테이션
	KindRider          EntityKind = "rider"           // 라이더
	KindMerchant       EntityKind = "merchant"        // 가맹점
	KindShareholder    EntityKind = "shareholder"     // 주주
)

// EntityKinds lists every kind in dashboard order.
var EntityKinds = []EntityKind{
	KindBusinessHub,
	KindLoadingStation,
	KindRider,
	KindMerchant,
	KindShareholder,
}

// ParseEntityKind accepts both the singular kind and the plural form used in URLs.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch s {
	case "business_hub", "business_hubs", "hubs":
		return KindBusinessHub, true
	case "loading_station", "loading_stations", "stations":
		return KindLoadingStation, true
	case "rider", "riders":
		return KindRider, true
	case "merchant", "merchants":
		return KindMerchant, true
	case "shareholder", "shareholders":
		return KindShareholder, true
	}
	return "", false
}

// NewRecord returns an empty row of the kind, or nil for an unknown kind.
func (k EntityKind) NewRecord() Entity {
	switch k {
	case KindBusinessHub:
		return &BusinessHub{}
	case KindLoadingStation:
		return &LoadingStation{}
	case KindRider:
		return &Rider{}
	case KindMerchant:
		return &Merchant{}
	case KindShareholder:
		return &Shareholder{}
	}
	return nil
}

// ProfileRole is the role stored on the owner's profile
func (k EntityKind) ProfileRole() UserRole {
	return UserRole(k)
}

// HasCommissionRate reports whether the kind carries its own commission rate.
func (k EntityKind) HasCommissionRate() bool {
	switch k {
	case KindBusinessHub, KindLoadingStation, KindMerchant:
		return true
	}
	return false
}

// EntityStatus 엔티티 상태
type EntityStatus string

const (
	StatusPending   EntityStatus = "pending"   // 승인 대기
	StatusActive    EntityStatus = "active"    // 활성
	StatusRejected  EntityStatus = "rejected"  // 반려
	StatusSuspended EntityStatus = "suspended" // 정지
	StatusInactive  EntityStatus = "inactive"  // 비활성
)

var EntityStatuses = []EntityStatus{
	StatusPending,
	StatusActive,
	StatusRejected,
	StatusSuspended,
	StatusInactive,
}

func (s EntityStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusRejected, StatusSuspended, StatusInactive:
		return true
	}
	return false
}

// CanTransitionTo reports whether the approval workflow may move s to next.
// Only pending entities can be approved or rejected.
func (s EntityStatus) CanTransitionTo(next EntityStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusActive || next == StatusRejected
	case StatusActive, StatusRejected, StatusSuspended, StatusInactive:
		return false
	default:
		return false
	}
}

// Entity is implemented by every provisioned domain row.
type Entity interface {
	Kind() EntityKind
	Base() *EntityBase
	DisplayName() string
	Revenue() float64
	Snapshot() JSONMap
}

// EntityBase 공통 엔티티 필드
type EntityBase struct {
	ID              string       `gorm:"type:varchar(36);primaryKey" json:"id"`                           // 엔티티 ID (UUID)
	OwnerUserID     string       `gorm:"type:varchar(36);uniqueIndex;not null" json:"owner_user_id"`      // 소유자 계정 ID (변경 불가)
	Status          EntityStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // 상태
	RejectionReason *string      `gorm:"type:text" json:"rejection_reason,omitempty"`                     // 반려 사유
	ApprovedBy      *string      `gorm:"type:varchar(36)" json:"approved_by,omitempty"`                   // 승인한 관리자 ID
	ApprovedAt      *time.Time   `json:"approved_at,omitempty"`                                           // 승인 일시
	RejectedBy      *string      `gorm:"type:varchar(36)" json:"rejected_by,omitempty"`                   // 반려한 관리자 ID
	RejectedAt      *time.Time   `json:"rejected_at,omitempty"`                                           // 반려 일시
	CreatedAt       time.Time    `json:"created_at"`                                                      // 생성 시각
	UpdatedAt       time.Time    `json:"updated_at"`                                                      // 수정 시각
}

func (b *EntityBase) Base() *EntityBase {
	return b
}

func (b *EntityBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// snapshot returns the shared fields; variants add their own on top.
func (b *EntityBase) snapshot() JSONMap {
	m := JSONMap{
		"id":            b.ID,
		"owner_user_id": b.OwnerUserID,
		"status":        string(b.Status),
	}
	if b.RejectionReason != nil {
		m["rejection_reason"] = *b.RejectionReason
	}
	return m
}
