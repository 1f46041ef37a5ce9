package service

import (
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/pkg/logger"
)

const rateSumTolerance = 0.001

// CommissionRates is the platform-wide split of every delivery commission.
type CommissionRates struct {
	PlatformRate    float64 `json:"platform_rate" validate:"gte=0,lte=100"`
	HubRate         float64 `json:"hub_rate" validate:"gte=0,lte=100"`
	StationRate     float64 `json:"station_rate" validate:"gte=0,lte=100"`
	RiderRate       float64 `json:"rider_rate" validate:"gte=0,lte=100"`
	ShareholderRate float64 `json:"shareholder_rate" validate:"gte=0,lte=100"`
}

func (r CommissionRates) Sum() float64 {
	return r.PlatformRate + r.HubRate + r.StationRate + r.RiderRate + r.ShareholderRate
}

type SettingsService interface {
	GetCommissionRates() (*model.PlatformSetting, error)
	UpdateCommissionRates(actor Actor, rates CommissionRates) (*model.PlatformSetting, AuditOutcome, error)
}

type settingsService struct {
	repo     repository.SettingsRepository
	audit    AuditService
	validate *validator.Validate
}

func NewSettingsService(repo repository.SettingsRepository, audit AuditService, validate *validator.Validate) SettingsService {
	return &settingsService{repo: repo, audit: audit, validate: validate}
}

func (s *settingsService) GetCommissionRates() (*model.PlatformSetting, error) {
	return s.repo.Get()
}

func (s *settingsService) UpdateCommissionRates(actor Actor, rates CommissionRates) (*model.PlatformSetting, AuditOutcome, error) {
	op := "update commission rates"
	if !actor.valid() {
		return nil, AuditOutcome{}, validationError(op, "actor is required")
	}
	if err := s.validate.Struct(rates); err != nil {
		return nil, AuditOutcome{}, workflowError(op, ErrValidation, err)
	}
	if sum := rates.Sum(); math.Abs(sum-100) > rateSumTolerance {
		return nil, AuditOutcome{}, validationError(op, "commission rates must add up to 100, got %.2f", sum)
	}

	setting, err := s.repo.Get()
	if err != nil {
		return nil, AuditOutcome{}, err
	}
	before := setting.Snapshot()

	setting.PlatformRate = rates.PlatformRate
	setting.HubRate = rates.HubRate
	setting.StationRate = rates.StationRate
	setting.RiderRate = rates.RiderRate
	setting.ShareholderRate = rates.ShareholderRate
	setting.UpdatedBy = actor.ID

	if err := s.repo.Save(setting); err != nil {
		return nil, AuditOutcome{}, workflowError(op, ErrUpdateConflict, err)
	}

	logger.Info("Commission rates updated", map[string]interface{}{
		"setting_id": setting.ID,
		"actor_id":   actor.ID,
	})

	outcome := recordAudit(s.audit, op, AuditEntry{
		Actor:      actor,
		Action:     model.AuditActionConfigChange,
		EntityType: "platform_settings",
		EntityID:   strconv.FormatUint(uint64(setting.ID), 10),
		EntityName: "Commission rates",
		OldValue:   before,
		NewValue:   setting.Snapshot(),
	})
	return setting, outcome, nil
}
