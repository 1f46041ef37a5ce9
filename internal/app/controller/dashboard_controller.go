package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/hubline-admin/internal/app/service"
	"github.com/ikkim/hubline-admin/internal/app/stats"
	apperrors "github.com/ikkim/hubline-admin/internal/errors"
	"github.com/ikkim/hubline-admin/internal/middleware"
)

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetStatistics returns platform totals, served from cache when warm
// GET /api/v1/admin/dashboard/statistics
func (ctrl *DashboardController) GetStatistics(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var (
		report *service.DashboardReport
		err    error
	)
	if c.Query("refresh") == "true" {
		report, err = ctrl.dashboardService.RefreshStatistics(c.Request.Context())
	} else {
		report, err = ctrl.dashboardService.GetStatistics(c.Request.Context())
	}
	if err != nil {
		log.Error("Failed to compute dashboard statistics", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "dashboard statistics")
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetRevenue returns revenue buckets for a period
// GET /api/v1/admin/dashboard/revenue?period=daily|weekly|monthly
func (ctrl *DashboardController) GetRevenue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	period, ok := stats.ParseRevenuePeriod(c.DefaultQuery("period", string(stats.PeriodDaily)))
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "period는 daily, weekly, monthly 중 하나여야 합니다")
		return
	}

	buckets, err := ctrl.dashboardService.GetRevenue(period, time.Now().UTC())
	if err != nil {
		log.Error("Failed to compute revenue", err, map[string]interface{}{
			"period": period,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "dashboard revenue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":  period,
		"buckets": buckets,
	})
}
