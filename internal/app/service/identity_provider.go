package service

import (
	"errors"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"github.com/ikkim/hubline-admin/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// IdentityProvider owns login-capable accounts. Profiles and entities only
// reference identities by id.
type IdentityProvider interface {
	CreateIdentity(email, credential string, metadata model.JSONMap) (*model.Identity, error)
	DeleteIdentity(id string) error
	FindIdentity(id string) (*model.Identity, error)
	Authenticate(email, password string) (*model.Identity, error)
}

type localIdentityProvider struct {
	repo repository.IdentityRepository
}

// NewIdentityProvider stores bcrypt credentials in the auth_identities table.
func NewIdentityProvider(repo repository.IdentityRepository) IdentityProvider {
	return &localIdentityProvider{repo: repo}
}

func (p *localIdentityProvider) CreateIdentity(email, credential string, metadata model.JSONMap) (*model.Identity, error) {
	hash, err := util.HashPassword(credential)
	if err != nil {
		logger.Error("Failed to hash identity credential", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	identity := &model.Identity{
		Email:        email,
		PasswordHash: hash,
		Metadata:     metadata,
	}
	if err := p.repo.Create(identity); err != nil {
		return nil, err
	}

	logger.Info("Identity created", map[string]interface{}{
		"identity_id": identity.ID,
		"email":       email,
	})
	return identity, nil
}

func (p *localIdentityProvider) DeleteIdentity(id string) error {
	if err := p.repo.Delete(id); err != nil {
		return err
	}

	logger.Info("Identity deleted", map[string]interface{}{
		"identity_id": id,
	})
	return nil
}

func (p *localIdentityProvider) FindIdentity(id string) (*model.Identity, error) {
	return p.repo.FindByID(id)
}

func (p *localIdentityProvider) Authenticate(email, password string) (*model.Identity, error) {
	identity, err := p.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Authentication failed: identity not found", map[string]interface{}{
				"email": email,
			})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(identity.PasswordHash, password) {
		logger.Warn("Authentication failed: invalid password", map[string]interface{}{
			"email":       email,
			"identity_id": identity.ID,
		})
		return nil, ErrInvalidCredentials
	}
	return identity, nil
}
