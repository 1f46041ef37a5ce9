package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"github.com/ikkim/hubline-admin/pkg/util"
)

// ProvisionInput carries the owner account fields and the domain row to create.
// An empty Password makes the provisioner generate a temporary one.
type ProvisionInput struct {
	Email    string       `validate:"required,email,max=254"`
	Password string       `validate:"omitempty,min=8,max=72"`
	Name     string       `validate:"required,max=100"`
	Phone    string       `validate:"omitempty,max=30"`
	Record   model.Entity `validate:"-"`
}

type ProvisionResult struct {
	Entity            model.Entity `json:"entity"`
	Profile           *model.User  `json:"profile"`
	TemporaryPassword string       `json:"temporary_password,omitempty"`
}

type ProvisioningService interface {
	Provision(kind model.EntityKind, input ProvisionInput) (*ProvisionResult, error)
}

type provisioningService struct {
	identities         IdentityProvider
	users              repository.UserRepository
	entities           repository.EntityRepository
	validate           *validator.Validate
	tempPasswordLength int
}

func NewProvisioningService(
	identities IdentityProvider,
	users repository.UserRepository,
	entities repository.EntityRepository,
	validate *validator.Validate,
	tempPasswordLength int,
) ProvisioningService {
	if tempPasswordLength < util.MinTemporaryPasswordLength {
		tempPasswordLength = util.MinTemporaryPasswordLength
	}
	return &provisioningService{
		identities:         identities,
		users:              users,
		entities:           entities,
		validate:           validate,
		tempPasswordLength: tempPasswordLength,
	}
}

// Provision creates identity, profile and entity as one unit. Each step that
// succeeds pushes its undo; a later failure unwinds them in reverse and the
// step's own error is returned.
func (s *provisioningService) Provision(kind model.EntityKind, input ProvisionInput) (*ProvisionResult, error) {
	op := "provision " + string(kind)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	logger.Info("Provisioning entity", map[string]interface{}{
		"entity_kind": kind,
		"email":       input.Email,
	})

	if err := s.validateInput(op, kind, input); err != nil {
		logger.Warn("Provisioning rejected by validation", map[string]interface{}{
			"entity_kind": kind,
			"email":       input.Email,
			"error":       err.Error(),
		})
		return nil, err
	}

	credential := input.Password
	var temporaryPassword string
	if credential == "" {
		generated, err := util.GenerateTemporaryPassword(s.tempPasswordLength)
		if err != nil {
			return nil, workflowError(op, ErrIdentityCreation, err)
		}
		temporaryPassword = generated
		credential = generated
	}

	undo := newCompensation(op)

	identity, err := s.identities.CreateIdentity(input.Email, credential, model.JSONMap{
		"name":        input.Name,
		"role":        string(kind.ProfileRole()),
		"entity_kind": string(kind),
	})
	if err != nil {
		logger.Warn("Identity creation failed", map[string]interface{}{
			"entity_kind": kind,
			"email":       input.Email,
			"duplicate":   errors.Is(err, repository.ErrIdentityExists),
		})
		return nil, workflowError(op, ErrIdentityCreation, err)
	}
	undo.push("delete identity", func() error {
		return s.identities.DeleteIdentity(identity.ID)
	})

	profile := &model.User{
		ID:    identity.ID,
		Email: input.Email,
		Name:  input.Name,
		Phone: input.Phone,
		Role:  kind.ProfileRole(),
	}
	if err := s.users.Create(profile); err != nil {
		undo.unwind(err)
		return nil, workflowError(op, ErrProfileCreation, err)
	}
	undo.push("delete profile", func() error {
		return s.users.Delete(profile.ID)
	})

	record := input.Record
	*record.Base() = model.EntityBase{
		OwnerUserID: identity.ID,
		Status:      model.StatusPending,
	}
	if err := s.entities.Create(record); err != nil {
		undo.unwind(err)
		return nil, workflowError(op, ErrEntityCreation, err)
	}

	logger.Info("Entity provisioned", map[string]interface{}{
		"entity_kind":   kind,
		"entity_id":     record.Base().ID,
		"owner_user_id": identity.ID,
		"generated_pw":  temporaryPassword != "",
	})

	return &ProvisionResult{
		Entity:            record,
		Profile:           profile,
		TemporaryPassword: temporaryPassword,
	}, nil
}

func (s *provisioningService) validateInput(op string, kind model.EntityKind, input ProvisionInput) error {
	if kind.NewRecord() == nil {
		return workflowError(op, ErrUnknownEntityKind, nil)
	}
	if input.Record == nil {
		return validationError(op, "entity fields are required")
	}
	if input.Record.Kind() != kind {
		return validationError(op, "entity fields are for %s, not %s", input.Record.Kind(), kind)
	}
	if err := s.validate.Struct(input); err != nil {
		return workflowError(op, ErrValidation, err)
	}
	if err := s.validate.Struct(input.Record); err != nil {
		return workflowError(op, ErrValidation, err)
	}
	return nil
}
