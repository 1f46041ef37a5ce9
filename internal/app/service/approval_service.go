package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"gorm.io/gorm"
)

// OperationResult is the primary outcome of a state change plus the outcome
// of its audit write.
type OperationResult struct {
	Entity model.Entity `json:"entity"`
	Audit  AuditOutcome `json:"audit"`
}

type ApprovalService interface {
	Approve(kind model.EntityKind, id string, actor Actor) (*OperationResult, error)
	Reject(kind model.EntityKind, id string, actor Actor, reason string) (*OperationResult, error)
}

type approvalService struct {
	entities repository.EntityRepository
	audit    AuditService
	now      func() time.Time
}

func NewApprovalService(entities repository.EntityRepository, audit AuditService) ApprovalService {
	return &approvalService{
		entities: entities,
		audit:    audit,
		now:      time.Now,
	}
}

func (s *approvalService) Approve(kind model.EntityKind, id string, actor Actor) (*OperationResult, error) {
	op := fmt.Sprintf("approve %s", kind)
	if err := checkTarget(op, kind, id, actor); err != nil {
		return nil, err
	}
	return s.transition(op, kind, id, actor, model.StatusActive, "")
}

// Reject requires a non-blank reason. It is checked before the store is touched.
func (s *approvalService) Reject(kind model.EntityKind, id string, actor Actor, reason string) (*OperationResult, error) {
	op := fmt.Sprintf("reject %s", kind)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		logger.Warn("Rejection without reason refused", map[string]interface{}{
			"entity_kind": kind,
			"entity_id":   id,
			"actor_id":    actor.ID,
		})
		return nil, validationError(op, "rejection reason is required")
	}
	if err := checkTarget(op, kind, id, actor); err != nil {
		return nil, err
	}
	return s.transition(op, kind, id, actor, model.StatusRejected, reason)
}

func checkTarget(op string, kind model.EntityKind, id string, actor Actor) error {
	if kind.NewRecord() == nil {
		return workflowError(op, ErrUnknownEntityKind, nil)
	}
	if strings.TrimSpace(id) == "" {
		return validationError(op, "entity id is required")
	}
	if !actor.valid() {
		return validationError(op, "actor is required")
	}
	return nil
}

func (s *approvalService) transition(op string, kind model.EntityKind, id string, actor Actor, to model.EntityStatus, reason string) (*OperationResult, error) {
	logger.Info("Applying status transition", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
		"to":          to,
		"actor_id":    actor.ID,
	})

	entity, err := s.entities.FindByID(kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflowError(op, ErrEntityNotFound, err)
		}
		return nil, workflowError(op, ErrUpdateConflict, err)
	}

	base := entity.Base()
	from := base.Status
	if !from.CanTransitionTo(to) {
		logger.Warn("Status transition not allowed", map[string]interface{}{
			"entity_kind": kind,
			"entity_id":   id,
			"from":        from,
			"to":          to,
		})
		return nil, workflowError(op, ErrInvalidTransition, fmt.Errorf("cannot move from %s to %s", from, to))
	}

	before := entity.Snapshot()
	change := repository.StatusChange{
		From:    from,
		To:      to,
		ActorID: actor.ID,
		Reason:  reason,
		At:      s.now(),
	}
	if err := s.entities.Transition(kind, id, change); err != nil {
		return nil, workflowError(op, ErrUpdateConflict, err)
	}
	applyStatusChange(base, change)

	entry := AuditEntry{
		Actor:      actor,
		Action:     model.AuditActionApprove,
		EntityType: string(kind),
		EntityID:   id,
		EntityName: entity.DisplayName(),
		OldValue:   before,
		NewValue:   entity.Snapshot(),
	}
	if to == model.StatusRejected {
		entry.Action = model.AuditActionReject
		entry.Summary = fmt.Sprintf("Rejected %s: %s", entity.DisplayName(), reason)
	}

	outcome := recordAudit(s.audit, op, entry)

	logger.Info("Status transition applied", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
		"status":      to,
		"audited":     outcome.OK(),
	})
	return &OperationResult{Entity: entity, Audit: outcome}, nil
}

func applyStatusChange(base *model.EntityBase, change repository.StatusChange) {
	at := change.At
	actorID := change.ActorID
	base.Status = change.To
	base.UpdatedAt = at
	switch change.To {
	case model.StatusActive:
		base.ApprovedBy = &actorID
		base.ApprovedAt = &at
		base.RejectionReason = nil
	case model.StatusRejected:
		reason := change.Reason
		base.RejectedBy = &actorID
		base.RejectedAt = &at
		base.RejectionReason = &reason
	}
}
