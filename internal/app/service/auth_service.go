package service

import (
	"errors"
	"strings"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"github.com/ikkim/hubline-admin/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotAdmin     = errors.New("account is not an administrator")
)

type AuthService interface {
	Login(email, password string) (*model.User, *util.TokenPair, error)
	GetProfile(id string) (*model.User, error)
}

type authService struct {
	identities    IdentityProvider
	userRepo      repository.UserRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	identities IdentityProvider,
	userRepo repository.UserRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		identities:    identities,
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Login only admits administrators; entity owners have no access to this backend.
func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	identity, err := s.identities.Authenticate(email, password)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindByID(identity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: identity has no profile", map[string]interface{}{
				"identity_id": identity.ID,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if user.Role != model.RoleAdmin {
		logger.Warn("Login refused for non-admin account", map[string]interface{}{
			"user_id": user.ID,
			"role":    user.Role,
		})
		return nil, nil, ErrNotAdmin
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		user.Name,
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})
	return user, tokens, nil
}

// GetProfile requires both the profile and its identity; a deleted identity
// means the session outlived the account.
func (s *authService) GetProfile(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.identities.FindIdentity(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Profile has no identity", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
