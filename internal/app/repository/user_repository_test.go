package repository

import (
	"testing"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func TestUserRepository_Create(t *testing.T) {
	repo := NewUserRepository(setupRepoTest(t))

	tests := []struct {
		name    string
		user    *model.User
		wantErr bool
	}{
		{
			name: "Valid profile",
			user: &model.User{
				ID:    "11111111-1111-1111-1111-111111111111",
				Email: "hub@example.com",
				Name:  "Hub Owner",
				Phone: "01711000000",
				Role:  model.RoleBusinessHub,
			},
		},
		{
			name: "Duplicate email",
			user: &model.User{
				ID:    "22222222-2222-2222-2222-222222222222",
				Email: "hub@example.com",
				Name:  "Another Owner",
				Role:  model.RoleRider,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.user)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			found, err := repo.FindByID(tt.user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.user.Email, found.Email)
			assert.Equal(t, tt.user.Role, found.Role)
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := NewUserRepository(setupRepoTest(t))
	require.NoError(t, repo.Create(&model.User{ID: "u-1", Email: "rider@example.com", Name: "Rider", Role: model.RoleRider}))

	found, err := repo.FindByEmail("rider@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", found.ID)

	_, err = repo.FindByEmail("missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_ListAll(t *testing.T) {
	repo := NewUserRepository(setupRepoTest(t))
	require.NoError(t, repo.Create(&model.User{ID: "u-1", Email: "a@example.com", Name: "A", Role: model.RoleRider}))
	require.NoError(t, repo.Create(&model.User{ID: "u-2", Email: "b@example.com", Name: "B", Role: model.RoleMerchant}))

	users, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.NotEmpty(t, users[0].Role)
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository(setupRepoTest(t))
	require.NoError(t, repo.Create(&model.User{ID: "u-1", Email: "a@example.com", Name: "A", Role: model.RoleRider}))

	require.NoError(t, repo.Delete("u-1"))

	_, err := repo.FindByID("u-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete("u-1"), gorm.ErrRecordNotFound)
}
