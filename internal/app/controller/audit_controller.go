package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/app/service"
	apperrors "github.com/ikkim/hubline-admin/internal/errors"
	"github.com/ikkim/hubline-admin/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AuditController struct {
	auditService   service.AuditService
	archiveService service.AuditArchiveService
}

func NewAuditController(auditService service.AuditService, archiveService service.AuditArchiveService) *AuditController {
	return &AuditController{
		auditService:   auditService,
		archiveService: archiveService,
	}
}

func (ctrl *AuditController) filter(c *gin.Context) (repository.AuditFilter, bool) {
	from, err := queryTime(c, "from")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "from 형식이 올바르지 않습니다")
		return repository.AuditFilter{}, false
	}
	to, err := queryTime(c, "to")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "to 형식이 올바르지 않습니다")
		return repository.AuditFilter{}, false
	}

	action := model.AuditAction(c.Query("action"))
	if action != "" && !action.Valid() {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "지원하지 않는 작업 유형입니다")
		return repository.AuditFilter{}, false
	}

	entityType := c.Query("entity_type")
	if entityType != "" {
		entityType = string(normalizeKind(entityType))
	}

	return repository.AuditFilter{
		EntityType: entityType,
		EntityID:   c.Query("entity_id"),
		Action:     action,
		ActorID:    c.Query("actor_id"),
		From:       from,
		To:         to,
	}, true
}

// ListAuditLogs returns audit entries newest first
// GET /api/v1/admin/audit-logs
func (ctrl *AuditController) ListAuditLogs(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, ok := ctrl.filter(c)
	if !ok {
		return
	}
	filter.Page = queryInt(c, "page", 1)
	filter.Limit = queryLimit(c, 50, maxAuditLimit)

	logs, total, err := ctrl.auditService.Query(filter)
	if err != nil {
		log.Error("Failed to query audit logs", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "query audit logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audit_logs": logs,
		"total":      total,
		"page":       filter.Page,
		"limit":      filter.Limit,
	})
}

// ExportAuditLogs streams matching entries as an xlsx workbook
// GET /api/v1/admin/audit-logs/export
func (ctrl *AuditController) ExportAuditLogs(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, ok := ctrl.filter(c)
	if !ok {
		return
	}
	// zero lets the exporter apply its own cap
	filter.Limit = queryInt(c, "limit", 0)

	data, err := ctrl.archiveService.Export(filter)
	if err != nil {
		log.Error("Failed to export audit logs", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.AuditExportFailed, "감사 로그 내보내기에 실패했습니다")
		return
	}

	filename := fmt.Sprintf("audit-logs-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
