package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"gorm.io/gorm"
)

// EntityUpdate holds the editable fields; nil means unchanged.
type EntityUpdate struct {
	Name           *string  `json:"name" validate:"omitempty,max=200"`
	CommissionRate *float64 `json:"commission_rate" validate:"omitempty,gte=0,lte=100"`
	Balance        *float64 `json:"balance"`
}

type EntityService interface {
	List(kind model.EntityKind, filter repository.EntityFilter) ([]model.Entity, int64, error)
	Get(kind model.EntityKind, id string) (model.Entity, error)
	Update(kind model.EntityKind, id string, actor Actor, input EntityUpdate) (*OperationResult, error)
	Delete(kind model.EntityKind, id string, actor Actor) (AuditOutcome, error)
}

type entityService struct {
	entities   repository.EntityRepository
	users      repository.UserRepository
	identities IdentityProvider
	audit      AuditService
	validate   *validator.Validate
}

func NewEntityService(
	entities repository.EntityRepository,
	users repository.UserRepository,
	identities IdentityProvider,
	audit AuditService,
	validate *validator.Validate,
) EntityService {
	return &entityService{
		entities:   entities,
		users:      users,
		identities: identities,
		audit:      audit,
		validate:   validate,
	}
}

func (s *entityService) List(kind model.EntityKind, filter repository.EntityFilter) ([]model.Entity, int64, error) {
	op := "list " + string(kind)
	if kind.NewRecord() == nil {
		return nil, 0, workflowError(op, ErrUnknownEntityKind, nil)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, validationError(op, "unknown status %q", filter.Status)
	}

	entities, total, err := s.entities.List(kind, filter)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (s *entityService) Get(kind model.EntityKind, id string) (model.Entity, error) {
	op := "get " + string(kind)
	if kind.NewRecord() == nil {
		return nil, workflowError(op, ErrUnknownEntityKind, nil)
	}

	entity, err := s.entities.FindByID(kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflowError(op, ErrEntityNotFound, err)
		}
		return nil, err
	}
	return entity, nil
}

func (s *entityService) Update(kind model.EntityKind, id string, actor Actor, input EntityUpdate) (*OperationResult, error) {
	op := "update " + string(kind)
	if !actor.valid() {
		return nil, validationError(op, "actor is required")
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, workflowError(op, ErrValidation, err)
	}
	if input.CommissionRate != nil && !kind.HasCommissionRate() {
		return nil, validationError(op, "%s has no commission rate", kind)
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, validationError(op, "name cannot be blank")
		}
		fields["name"] = name
	}
	if input.CommissionRate != nil {
		fields["commission_rate"] = *input.CommissionRate
	}
	if input.Balance != nil {
		fields["balance"] = *input.Balance
	}
	if len(fields) == 0 {
		return nil, validationError(op, "no fields to update")
	}

	current, err := s.Get(kind, id)
	if err != nil {
		return nil, err
	}
	before := current.Snapshot()

	logger.Info("Updating entity", map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   id,
		"actor_id":    actor.ID,
		"fields":      len(fields),
	})

	if err := s.entities.UpdateFields(kind, id, fields); err != nil {
		return nil, workflowError(op, ErrUpdateConflict, err)
	}

	updated, err := s.entities.FindByID(kind, id)
	if err != nil {
		return nil, workflowError(op, ErrUpdateConflict, err)
	}

	outcome := recordAudit(s.audit, op, AuditEntry{
		Actor:      actor,
		Action:     model.AuditActionUpdate,
		EntityType: string(kind),
		EntityID:   id,
		EntityName: updated.DisplayName(),
		OldValue:   before,
		NewValue:   updated.Snapshot(),
	})
	return &OperationResult{Entity: updated, Audit: outcome}, nil
}

// Delete removes the entity, then its owner's profile and identity.
func (s *entityService) Delete(kind model.EntityKind, id string, actor Actor) (AuditOutcome, error) {
	op := "delete " + string(kind)
	if !actor.valid() {
		return AuditOutcome{}, validationError(op, "actor is required")
	}

	entity, err := s.Get(kind, id)
	if err != nil {
		return AuditOutcome{}, err
	}
	before := entity.Snapshot()
	ownerID := entity.Base().OwnerUserID

	logger.Info("Deleting entity", map[string]interface{}{
		"entity_kind":   kind,
		"entity_id":     id,
		"owner_user_id": ownerID,
		"actor_id":      actor.ID,
	})

	if err := s.entities.Delete(kind, id); err != nil {
		return AuditOutcome{}, workflowError(op, ErrUpdateConflict, err)
	}

	if err := s.users.Delete(ownerID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to delete owner profile after entity deletion", err, map[string]interface{}{
			"entity_id":     id,
			"owner_user_id": ownerID,
		})
	}
	if err := s.identities.DeleteIdentity(ownerID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to delete owner identity after entity deletion", err, map[string]interface{}{
			"entity_id":     id,
			"owner_user_id": ownerID,
		})
	}

	outcome := recordAudit(s.audit, op, AuditEntry{
		Actor:      actor,
		Action:     model.AuditActionDelete,
		EntityType: string(kind),
		EntityID:   id,
		EntityName: entity.DisplayName(),
		OldValue:   before,
		Summary:    fmt.Sprintf("Deleted %s and its owner account", entity.DisplayName()),
	})
	return outcome, nil
}
