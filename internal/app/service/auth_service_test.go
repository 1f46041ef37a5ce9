package service

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ikkim/hubline-admin/config"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/db"
	"github.com/ikkim/hubline-admin/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

var bootstrapAdmin = config.AdminConfig{
	Email:    "admin@hubline.local",
	Password: "admin-password-1",
	Name:     "Platform Admin",
}

func setupAuthServiceTest(t *testing.T) (AuthService, *serviceFixture) {
	testDB, err := db.SetupSeededTestDB(bootstrapAdmin)
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	identityRepo := repository.NewIdentityRepository(testDB)
	auditRepo := repository.NewAuditRepository(testDB)
	f := &serviceFixture{
		db:           testDB,
		identityRepo: identityRepo,
		users:        repository.NewUserRepository(testDB),
		entities:     repository.NewEntityRepository(testDB),
		auditRepo:    auditRepo,
		identities:   NewIdentityProvider(identityRepo),
		audit:        NewAuditService(auditRepo, nil),
		validate:     validator.New(),
	}

	authService := NewAuthService(f.identities, f.users, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
	return authService, f
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, tokens, err := authService.Login(" Admin@Hubline.local ", bootstrapAdmin.Password)
	require.NoError(t, err)

	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, bootstrapAdmin.Name, user.Name)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(model.RoleAdmin), claims.Role)
}

func TestAuthService_LoginFailures(t *testing.T) {
	authService, f := setupAuthServiceTest(t)

	_, err := f.provisioning().Provision(model.KindRider, ProvisionInput{
		Email:    "rider@example.com",
		Password: "rider-password-1",
		Name:     "Rider",
		Record:   &model.Rider{Name: "Rider"},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"wrong password", bootstrapAdmin.Email, "not-the-password", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "whatever-123", ErrInvalidCredentials},
		{"entity owner is not admin", "rider@example.com", "rider-password-1", ErrNotAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
			assert.Nil(t, tokens)
		})
	}
}

func TestAuthService_GetProfile(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, _, err := authService.Login(bootstrapAdmin.Email, bootstrapAdmin.Password)
	require.NoError(t, err)

	profile, err := authService.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, bootstrapAdmin.Email, profile.Email)

	_, err = authService.GetProfile("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_GetProfileWithoutIdentity(t *testing.T) {
	authService, f := setupAuthServiceTest(t)

	user, _, err := authService.Login(bootstrapAdmin.Email, bootstrapAdmin.Password)
	require.NoError(t, err)

	identity, err := f.identities.FindIdentity(user.ID)
	require.NoError(t, err)
	assert.Equal(t, bootstrapAdmin.Email, identity.Email)

	require.NoError(t, f.identityRepo.Delete(user.ID))

	_, err = authService.GetProfile(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// the profile row itself is untouched
	_, err = f.users.FindByID(user.ID)
	assert.NoError(t, err)
}
