package db

import (
	"errors"

	"github.com/ikkim/hubline-admin/config"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"github.com/ikkim/hubline-admin/pkg/util"
	"gorm.io/gorm"
)

// Models returns every table managed by migrations.
func Models() []interface{} {
	return []interface{}{
		&model.Identity{},
		&model.User{},
		&model.BusinessHub{},
		&model.LoadingStation{},
		&model.Rider{},
		&model.Merchant{},
		&model.Shareholder{},
		&model.AuditLog{},
		&model.Delivery{},
		&model.CommissionDistribution{},
		&model.PlatformSetting{},
	}
}

// DefaultCommissionRates is the split written on first migration.
var DefaultCommissionRates = model.PlatformSetting{
	PlatformRate:    20,
	HubRate:         15,
	StationRate:     15,
	RiderRate:       40,
	ShareholderRate: 10,
}

// Migrate runs database migrations
func Migrate(admin config.AdminConfig) error {
	return migrate(DB, admin)
}

func migrate(db *gorm.DB, admin config.AdminConfig) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(db, admin); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

func seedInitialData(db *gorm.DB, admin config.AdminConfig) error {
	logger.Info("Seeding initial data...")

	if err := seedPlatformSettings(db); err != nil {
		logger.Error("Failed to seed platform settings", err)
		return err
	}

	if err := seedAdmin(db, admin); err != nil {
		logger.Error("Failed to seed bootstrap admin", err, map[string]interface{}{
			"email": admin.Email,
		})
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedPlatformSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.PlatformSetting{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Platform settings already seeded, skipping...")
		return nil
	}

	settings := DefaultCommissionRates
	return db.Create(&settings).Error
}

// seedAdmin creates the bootstrap administrator when no admin profile exists yet
func seedAdmin(db *gorm.DB, admin config.AdminConfig) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Admin account already exists, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	if admin.Password == "" {
		logger.Warn("ADMIN_PASSWORD not set, bootstrap admin not created", map[string]interface{}{
			"email": admin.Email,
		})
		return nil
	}

	hash, err := util.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing model.Identity
		err := tx.Where("email = ?", admin.Email).First(&existing).Error
		if err == nil {
			return errors.New("bootstrap admin email is already used by a non-admin identity")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		identity := &model.Identity{
			Email:        admin.Email,
			PasswordHash: hash,
			Metadata:     model.JSONMap{"name": admin.Name, "role": string(model.RoleAdmin)},
		}
		if err := tx.Create(identity).Error; err != nil {
			return err
		}

		profile := &model.User{
			ID:    identity.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  model.RoleAdmin,
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		logger.Info("Bootstrap admin created", map[string]interface{}{
			"user_id": identity.ID,
			"email":   admin.Email,
		})
		return nil
	})
}
