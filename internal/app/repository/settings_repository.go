package repository

import (
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/logger"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*model.PlatformSetting, error)
	Save(setting *model.PlatformSetting) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get() (*model.PlatformSetting, error) {
	logger.Debug("Loading platform settings")

	var setting model.PlatformSetting
	if err := r.db.Order("id ASC").First(&setting).Error; err != nil {
		logger.Error("Failed to load platform settings", err)
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) Save(setting *model.PlatformSetting) error {
	logger.Debug("Saving platform settings", map[string]interface{}{
		"setting_id": setting.ID,
		"updated_by": setting.UpdatedBy,
	})

	if err := r.db.Save(setting).Error; err != nil {
		logger.Error("Failed to save platform settings", err, map[string]interface{}{
			"setting_id": setting.ID,
		})
		return err
	}

	logger.Debug("Platform settings saved", map[string]interface{}{
		"setting_id": setting.ID,
	})
	return nil
}
