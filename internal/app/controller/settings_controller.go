package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/hubline-admin/internal/app/service"
	apperrors "github.com/ikkim/hubline-admin/internal/errors"
	"github.com/ikkim/hubline-admin/internal/middleware"
)

type SettingsController struct {
	settingsService service.SettingsService
}

func NewSettingsController(settingsService service.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// GetCommission returns the platform commission split
// GET /api/v1/admin/settings/commission
func (ctrl *SettingsController) GetCommission(c *gin.Context) {
	settings, err := ctrl.settingsService.GetCommissionRates()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to load commission settings", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "platform settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
	})
}

// UpdateCommission replaces the commission split; rates must sum to 100
// PUT /api/v1/admin/settings/commission
func (ctrl *SettingsController) UpdateCommission(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.CommissionRates
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.InvalidRequest(c, err)
		return
	}

	settings, outcome, err := ctrl.settingsService.UpdateCommissionRates(actorFromContext(c), req)
	if err != nil {
		log.Warn("Commission update failed", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, withAuditOutcome(gin.H{
		"message":  "Commission settings updated",
		"settings": settings,
	}, outcome))
}
