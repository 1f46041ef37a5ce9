package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/app/service"
	apperrors "github.com/ikkim/hubline-admin/internal/errors"
	"github.com/ikkim/hubline-admin/internal/middleware"
)

type EntityController struct {
	entityService       service.EntityService
	provisioningService service.ProvisioningService
	approvalService     service.ApprovalService
}

func NewEntityController(
	entityService service.EntityService,
	provisioningService service.ProvisioningService,
	approvalService service.ApprovalService,
) *EntityController {
	return &EntityController{
		entityService:       entityService,
		provisioningService: provisioningService,
		approvalService:     approvalService,
	}
}

// CreateEntityRequest carries the owner account and the kind-specific fields.
// Entity is decoded into the row type selected by :kind.
type CreateEntityRequest struct {
	Email    string          `json:"email" binding:"required"`
	Password string          `json:"password"`
	Name     string          `json:"name" binding:"required"`
	Phone    string          `json:"phone"`
	Entity   json.RawMessage `json:"entity" binding:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// ListEntities lists entities of one kind, newest first
// GET /api/v1/admin/entities/:kind
func (ctrl *EntityController) ListEntities(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	kind, ok := kindParam(c)
	if !ok {
		return
	}

	filter := repository.EntityFilter{
		Status: model.EntityStatus(c.Query("status")),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryLimit(c, 20, maxListLimit),
	}

	entities, total, err := ctrl.entityService.List(kind, filter)
	if err != nil {
		log.Warn("Failed to list entities", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		apperrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entities": entities,
		"total":    total,
		"page":     filter.Page,
		"limit":    filter.Limit,
	})
}

// CreateEntity provisions owner identity, profile and entity together
// POST /api/v1/admin/entities/:kind
func (ctrl *EntityController) CreateEntity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	kind, ok := kindParam(c)
	if !ok {
		return
	}

	var req CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create entity request", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		apperrors.InvalidRequest(c, err)
		return
	}

	record := kind.NewRecord()
	if err := json.Unmarshal(req.Entity, record); err != nil {
		log.Warn("Invalid entity fields", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		apperrors.InvalidRequest(c, err)
		return
	}

	result, err := ctrl.provisioningService.Provision(kind, service.ProvisionInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Record:   record,
	})
	if err != nil {
		log.Warn("Provisioning failed", map[string]interface{}{
			"kind":  kind,
			"email": req.Email,
			"error": err.Error(),
		})
		apperrors.RespondWithWorkflowError(c, err)
		return
	}

	log.Info("Entity created", map[string]interface{}{
		"kind":      kind,
		"entity_id": result.Entity.Base().ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Entity created successfully",
		"result":  result,
	})
}

// GetEntity returns one entity
// GET /api/v1/admin/entities/:kind/:id
func (ctrl *EntityController) GetEntity(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	entity, err := ctrl.entityService.Get(kind, c.Param("id"))
	if err != nil {
		apperrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entity": entity,
	})
}

// UpdateEntity edits name, commission rate or balance
// PUT /api/v1/admin/entities/:kind/:id
func (ctrl *EntityController) UpdateEntity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	kind, ok := kindParam(c)
	if !ok {
		return
	}

	var req service.EntityUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.InvalidRequest(c, err)
		return
	}

	result, err := ctrl.entityService.Update(kind, c.Param("id"), actorFromContext(c), req)
	if err != nil {
		log.Warn("Entity update failed", map[string]interface{}{
			"kind":      kind,
			"entity_id": c.Param("id"),
			"error":     err.Error(),
		})
		apperrors.RespondWithWorkflowError(c, err)
		return
	}

	respondOperation(c, http.StatusOK, "Entity updated successfully", result)
}

// DeleteEntity removes the entity and its owner account
// DELETE /api/v1/admin/entities/:kind/:id
func (ctrl *EntityController) DeleteEntity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	kind, ok := kindParam(c)
	if !ok {
		return
	}

	outcome, err := ctrl.entityService.Delete(kind, c.Param("id"), actorFromContext(c))
	if err != nil {
		log.Warn("Entity delete failed", map[string]interface{}{
			"kind":      kind,
			"entity_id": c.Param("id"),
			"error":     err.Error(),
		})
		apperrors.RespondWithWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, withAuditOutcome(gin.H{
		"message": "Entity deleted successfully",
	}, outcome))
}

// ApproveEntity moves a pending entity to active
// POST /api/v1/admin/entities/:kind/:id/approve
func (ctrl *EntityController) ApproveEntity(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	result, err := ctrl.approvalService.Approve(kind, c.Param("id"), actorFromContext(c))
	if err != nil {
		apperrors.RespondWithWorkflowError(c, err)
		return
	}

	respondOperation(c, http.StatusOK, "Entity approved", result)
}

// RejectEntity moves a pending entity to rejected with a reason
// POST /api/v1/admin/entities/:kind/:id/reject
func (ctrl *EntityController) RejectEntity(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.InvalidRequest(c, err)
		return
	}

	result, err := ctrl.approvalService.Reject(kind, c.Param("id"), actorFromContext(c), req.Reason)
	if err != nil {
		apperrors.RespondWithWorkflowError(c, err)
		return
	}

	respondOperation(c, http.StatusOK, "Entity rejected", result)
}
