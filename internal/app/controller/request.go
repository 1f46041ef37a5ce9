package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/service"
	apperrors "github.com/ikkim/hubline-admin/internal/errors"
	"github.com/ikkim/hubline-admin/internal/middleware"
)

// page size caps for ?limit
const (
	maxListLimit  = 100
	maxAuditLimit = 500
)

// actorFromContext builds the audit actor from the authenticated token
func actorFromContext(c *gin.Context) service.Actor {
	id, _ := middleware.GetUserID(c)
	name, ok := middleware.GetUserName(c)
	if !ok {
		name, _ = middleware.GetUserEmail(c)
	}
	return service.Actor{ID: id, Name: name}
}

// kindParam resolves :kind, responding 400 for an unknown kind
func kindParam(c *gin.Context) (model.EntityKind, bool) {
	kind, ok := model.ParseEntityKind(c.Param("kind"))
	if !ok {
		middleware.GetLoggerFromContext(c).Warn("Unknown entity kind", map[string]interface{}{
			"kind": c.Param("kind"),
		})
		apperrors.BadRequest(c, apperrors.EntityUnknownKind, "지원하지 않는 엔티티 종류입니다")
		return "", false
	}
	return kind, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// queryLimit reads ?limit, clamped to ceiling
func queryLimit(c *gin.Context, fallback, ceiling int) int {
	if limit := queryInt(c, "limit", fallback); limit < ceiling {
		return limit
	}
	return ceiling
}

// queryTime accepts RFC3339 or a plain date
func queryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// respondOperation writes the entity with an audit warning when the entry was not recorded
func respondOperation(c *gin.Context, status int, message string, result *service.OperationResult) {
	c.JSON(status, withAuditOutcome(gin.H{
		"message": message,
		"entity":  result.Entity,
	}, result.Audit))
}

func withAuditOutcome(body gin.H, outcome service.AuditOutcome) gin.H {
	if outcome.OK() {
		body["audit_log"] = outcome.Entry
	} else {
		body["audit_warning"] = outcome.Warning()
	}
	return body
}

// normalizeKind maps URL-style plurals to the kind; unknown values pass through
// so the workflow reports them per item
func normalizeKind(raw string) model.EntityKind {
	if kind, ok := model.ParseEntityKind(raw); ok {
		return kind
	}
	return model.EntityKind(raw)
}
