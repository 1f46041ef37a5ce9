package service

import (
	"errors"
	"testing"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisioningService_Provision(t *testing.T) {
	f := setupServiceTest(t)

	result, err := f.provisioning().Provision(model.KindBusinessHub, ProvisionInput{
		Email:  "  Hub.Owner@Example.com ",
		Name:   "Dhaka North Hub",
		Phone:  "01711000000",
		Record: &model.BusinessHub{Name: "Dhaka North", Code: "DHK-N", City: "Dhaka", CommissionRate: 5},
	})
	require.NoError(t, err)

	hub, ok := result.Entity.(*model.BusinessHub)
	require.True(t, ok)
	assert.NotEmpty(t, hub.ID)
	assert.Equal(t, model.StatusPending, hub.Status)
	assert.Equal(t, result.Profile.ID, hub.OwnerUserID)
	assert.Equal(t, "hub.owner@example.com", result.Profile.Email)
	assert.Equal(t, model.RoleBusinessHub, result.Profile.Role)
	assert.Len(t, result.TemporaryPassword, 12)

	assert.Equal(t, int64(1), f.count(t, &model.Identity{}))
	assert.Equal(t, int64(1), f.count(t, &model.User{}))
	assert.Equal(t, int64(1), f.count(t, &model.BusinessHub{}))

	// the generated password is the identity credential
	identity, err := f.identities.Authenticate("hub.owner@example.com", result.TemporaryPassword)
	require.NoError(t, err)
	assert.Equal(t, hub.OwnerUserID, identity.ID)
}

func TestProvisioningService_ProvidedPassword(t *testing.T) {
	f := setupServiceTest(t)

	result, err := f.provisioning().Provision(model.KindShareholder, ProvisionInput{
		Email:    "investor@example.com",
		Password: "initial-pass-1",
		Name:     "Investor",
		Record:   &model.Shareholder{Name: "Investor", SharePercentage: 2.5},
	})
	require.NoError(t, err)
	assert.Empty(t, result.TemporaryPassword)

	_, err = f.identities.Authenticate("investor@example.com", "initial-pass-1")
	assert.NoError(t, err)
}

func TestProvisioningService_DuplicateEmail(t *testing.T) {
	f := setupServiceTest(t)

	_, err := f.identities.CreateIdentity("taken@example.com", "password123", nil)
	require.NoError(t, err)

	result, err := f.provisioning().Provision(model.KindRider, ProvisionInput{
		Email:  "taken@example.com",
		Name:   "Second Rider",
		Record: &model.Rider{Name: "Second Rider", VehicleType: "bicycle"},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrIdentityCreation)
	assert.ErrorIs(t, err, repository.ErrIdentityExists)
	assert.Equal(t, int64(0), f.count(t, &model.User{}))
	assert.Equal(t, int64(0), f.count(t, &model.Rider{}))
}

func TestProvisioningService_Compensation(t *testing.T) {
	tests := []struct {
		name     string
		build    func(f *serviceFixture) ProvisioningService
		wantKind error
	}{
		{
			name: "profile failure deletes identity",
			build: func(f *serviceFixture) ProvisioningService {
				return NewProvisioningService(f.identities, failingUserRepo{f.users}, f.entities, f.validate, 12)
			},
			wantKind: ErrProfileCreation,
		},
		{
			name: "entity failure deletes profile and identity",
			build: func(f *serviceFixture) ProvisioningService {
				return NewProvisioningService(f.identities, f.users, failingEntityCreateRepo{f.entities}, f.validate, 12)
			},
			wantKind: ErrEntityCreation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupServiceTest(t)

			result, err := tt.build(f).Provision(model.KindMerchant, ProvisionInput{
				Email:  "shop@example.com",
				Name:   "Corner Shop",
				Record: &model.Merchant{Name: "Corner Shop", BusinessType: "grocery"},
			})

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.ErrorIs(t, err, errInjected)
			assert.Equal(t, int64(0), f.count(t, &model.Identity{}))
			assert.Equal(t, int64(0), f.count(t, &model.User{}))
			assert.Equal(t, int64(0), f.count(t, &model.Merchant{}))
		})
	}
}

func TestProvisioningService_CompensationFailureKeepsOriginalError(t *testing.T) {
	f := setupServiceTest(t)
	identities := failingDeleteIdentityProvider{f.identities}
	svc := NewProvisioningService(identities, f.users, failingEntityCreateRepo{f.entities}, f.validate, 12)

	_, err := svc.Provision(model.KindRider, ProvisionInput{
		Email:  "rider@example.com",
		Name:   "Rider",
		Record: &model.Rider{Name: "Rider"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEntityCreation)
	assert.ErrorIs(t, err, errInjected)
	assert.False(t, errors.Is(err, ErrIdentityCreation))

	// the profile undo still ran; only the identity is left behind
	assert.Equal(t, int64(0), f.count(t, &model.User{}))
	assert.Equal(t, int64(1), f.count(t, &model.Identity{}))
}

func TestProvisioningService_Validation(t *testing.T) {
	tests := []struct {
		name     string
		kind     model.EntityKind
		input    ProvisionInput
		wantKind error
	}{
		{
			name:     "invalid email",
			kind:     model.KindRider,
			input:    ProvisionInput{Email: "not-an-email", Name: "Rider", Record: &model.Rider{Name: "Rider"}},
			wantKind: ErrValidation,
		},
		{
			name:     "missing name",
			kind:     model.KindRider,
			input:    ProvisionInput{Email: "rider@example.com", Record: &model.Rider{Name: "Rider"}},
			wantKind: ErrValidation,
		},
		{
			name:     "short password",
			kind:     model.KindRider,
			input:    ProvisionInput{Email: "rider@example.com", Password: "short", Name: "Rider", Record: &model.Rider{Name: "Rider"}},
			wantKind: ErrValidation,
		},
		{
			name:     "missing record",
			kind:     model.KindRider,
			input:    ProvisionInput{Email: "rider@example.com", Name: "Rider"},
			wantKind: ErrValidation,
		},
		{
			name:     "record of another kind",
			kind:     model.KindRider,
			input:    ProvisionInput{Email: "rider@example.com", Name: "Rider", Record: &model.Merchant{Name: "Shop"}},
			wantKind: ErrValidation,
		},
		{
			name:     "missing hub code",
			kind:     model.KindBusinessHub,
			input:    ProvisionInput{Email: "hub@example.com", Name: "Hub", Record: &model.BusinessHub{Name: "Hub"}},
			wantKind: ErrValidation,
		},
		{
			name:     "unknown kind",
			kind:     model.EntityKind("warehouse"),
			input:    ProvisionInput{Email: "wh@example.com", Name: "Warehouse", Record: &model.Rider{Name: "x"}},
			wantKind: ErrUnknownEntityKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupServiceTest(t)

			_, err := f.provisioning().Provision(tt.kind, tt.input)

			assert.ErrorIs(t, err, tt.wantKind)
			assert.Equal(t, int64(0), f.count(t, &model.Identity{}))
		})
	}
}

func TestCompensation_UnwindOrder(t *testing.T) {
	var order []string
	c := newCompensation("test")
	c.push("first", func() error { order = append(order, "first"); return nil })
	c.push("second", func() error { order = append(order, "second"); return errors.New("fail") })
	c.push("third", func() error { order = append(order, "third"); return nil })

	failed := c.unwind(errInjected)

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"third", "second", "first"}, order)
	assert.Zero(t, c.unwind(errInjected))
}
