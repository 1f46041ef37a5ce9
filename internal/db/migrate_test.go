package db

import (
	"testing"

	"github.com/ikkim/hubline-admin/config"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_SeedsAdminAndSettings(t *testing.T) {
	admin := config.AdminConfig{Email: "root@hubline.local", Password: "bootstrap-pass", Name: "Root"}
	testDB, err := SetupSeededTestDB(admin)
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	var identity model.Identity
	require.NoError(t, testDB.Where("email = ?", admin.Email).First(&identity).Error)
	assert.True(t, util.VerifyPassword(identity.PasswordHash, admin.Password))

	var profile model.User
	require.NoError(t, testDB.First(&profile, "id = ?", identity.ID).Error)
	assert.Equal(t, model.RoleAdmin, profile.Role)

	var settings model.PlatformSetting
	require.NoError(t, testDB.First(&settings).Error)
	assert.Equal(t, DefaultCommissionRates.RiderRate, settings.RiderRate)

	// second run is a no-op
	require.NoError(t, migrate(testDB, admin))
	var admins int64
	testDB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&admins)
	assert.Equal(t, int64(1), admins)
}

func TestMigrate_SkipsAdminWithoutPassword(t *testing.T) {
	testDB, err := SetupSeededTestDB(config.AdminConfig{Email: "root@hubline.local"})
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	var count int64
	testDB.Model(&model.Identity{}).Count(&count)
	assert.Zero(t, count)
}
