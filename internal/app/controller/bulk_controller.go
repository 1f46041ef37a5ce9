package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/hubline-admin/internal/app/service"
	apperrors "github.com/ikkim/hubline-admin/internal/errors"
	"github.com/ikkim/hubline-admin/internal/middleware"
)

// maxBulkItems bounds one request
const maxBulkItems = 500

type BulkController struct {
	bulkService service.BulkService
}

func NewBulkController(bulkService service.BulkService) *BulkController {
	return &BulkController{bulkService: bulkService}
}

type BulkRequest struct {
	Items []BulkItem `json:"items" binding:"required,min=1,dive"`
}

// BulkItem is one approval target; reason is required for reject
type BulkItem struct {
	Kind     string `json:"kind" binding:"required"`
	EntityID string `json:"entity_id" binding:"required"`
	Reason   string `json:"reason"`
}

func (r BulkRequest) actions() []service.BulkAction {
	actions := make([]service.BulkAction, 0, len(r.Items))
	for _, item := range r.Items {
		actions = append(actions, service.BulkAction{
			Kind:     normalizeKind(item.Kind),
			EntityID: item.EntityID,
			Reason:   item.Reason,
		})
	}
	return actions
}

// BulkApprove approves every item in order
// POST /api/v1/admin/bulk/approve
func (ctrl *BulkController) BulkApprove(c *gin.Context) {
	ctrl.run(c, "approve", ctrl.bulkService.BulkApprove)
}

// BulkReject rejects every item in order
// POST /api/v1/admin/bulk/reject
func (ctrl *BulkController) BulkReject(c *gin.Context) {
	ctrl.run(c, "reject", ctrl.bulkService.BulkReject)
}

func (ctrl *BulkController) run(c *gin.Context, op string, fn func([]service.BulkAction, service.Actor) service.BulkResult) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid bulk request", map[string]interface{}{
			"op":    op,
			"error": err.Error(),
		})
		apperrors.InvalidRequest(c, err)
		return
	}
	if len(req.Items) > maxBulkItems {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "한 번에 처리할 수 있는 항목 수를 초과했습니다")
		return
	}

	result := fn(req.actions(), actorFromContext(c))

	log.Info("Bulk operation completed", map[string]interface{}{
		"op":            op,
		"success_count": result.SuccessCount,
		"failed_count":  result.FailedCount,
	})

	c.JSON(http.StatusOK, result)
}
