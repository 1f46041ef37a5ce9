package service

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errInjected = errors.New("injected store failure")

var testAdmin = Actor{ID: "admin-1", Name: "Ops Admin"}

type serviceFixture struct {
	db           *gorm.DB
	identityRepo repository.IdentityRepository
	users        repository.UserRepository
	entities     repository.EntityRepository
	auditRepo    repository.AuditRepository
	identities   IdentityProvider
	audit        AuditService
	validate     *validator.Validate
}

func setupServiceTest(t *testing.T) *serviceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	identityRepo := repository.NewIdentityRepository(testDB)
	auditRepo := repository.NewAuditRepository(testDB)
	return &serviceFixture{
		db:           testDB,
		identityRepo: identityRepo,
		users:        repository.NewUserRepository(testDB),
		entities:     repository.NewEntityRepository(testDB),
		auditRepo:    auditRepo,
		identities:   NewIdentityProvider(identityRepo),
		audit:        NewAuditService(auditRepo, nil),
		validate:     validator.New(),
	}
}

func (f *serviceFixture) provisioning() ProvisioningService {
	return NewProvisioningService(f.identities, f.users, f.entities, f.validate, 12)
}

func (f *serviceFixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

// provisionRider creates a pending rider through the real provisioner
func (f *serviceFixture) provisionRider(t *testing.T, email, name string) *model.Rider {
	t.Helper()
	result, err := f.provisioning().Provision(model.KindRider, ProvisionInput{
		Email:  email,
		Name:   name,
		Record: &model.Rider{Name: name, VehicleType: "motorbike"},
	})
	require.NoError(t, err)
	return result.Entity.(*model.Rider)
}

// Failure-injecting wrappers embed the real repository and override one method.

type failingUserRepo struct {
	repository.UserRepository
}

func (failingUserRepo) Create(*model.User) error { return errInjected }

type failingEntityCreateRepo struct {
	repository.EntityRepository
}

func (failingEntityCreateRepo) Create(model.Entity) error { return errInjected }

// failingTransitionRepo fails the status write for one entity id
type failingTransitionRepo struct {
	repository.EntityRepository
	failID string
}

func (r failingTransitionRepo) Transition(kind model.EntityKind, id string, change repository.StatusChange) error {
	if id == r.failID {
		return errInjected
	}
	return r.EntityRepository.Transition(kind, id, change)
}

type failingDeleteIdentityProvider struct {
	IdentityProvider
}

func (failingDeleteIdentityProvider) DeleteIdentity(string) error {
	return errors.New("identity provider unavailable")
}

type failingAuditRepo struct {
	repository.AuditRepository
}

func (failingAuditRepo) Create(*model.AuditLog) error { return errInjected }

// spyEntityRepo counts every call that reaches the store
type spyEntityRepo struct {
	repository.EntityRepository
	calls int
}

func (s *spyEntityRepo) FindByID(kind model.EntityKind, id string) (model.Entity, error) {
	s.calls++
	return s.EntityRepository.FindByID(kind, id)
}

func (s *spyEntityRepo) Transition(kind model.EntityKind, id string, change repository.StatusChange) error {
	s.calls++
	return s.EntityRepository.Transition(kind, id, change)
}

func (s *spyEntityRepo) UpdateFields(kind model.EntityKind, id string, fields map[string]interface{}) error {
	s.calls++
	return s.EntityRepository.UpdateFields(kind, id, fields)
}

// racingEntityRepo lets another writer change the status between read and write
type racingEntityRepo struct {
	repository.EntityRepository
	db *gorm.DB
}

func (r *racingEntityRepo) Transition(kind model.EntityKind, id string, change repository.StatusChange) error {
	if err := r.db.Table("riders").Where("id = ?", id).Update("status", model.StatusSuspended).Error; err != nil {
		return err
	}
	return r.EntityRepository.Transition(kind, id, change)
}
