package service

import (
	"fmt"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/logger"
)

type BulkAction struct {
	Kind     model.EntityKind `json:"kind" binding:"required"`
	EntityID string           `json:"entity_id" binding:"required"`
	Reason   string           `json:"reason,omitempty"`
}

// BulkResult is always returned, even when every item failed.
type BulkResult struct {
	SuccessCount int      `json:"success_count"`
	FailedCount  int      `json:"failed_count"`
	Errors       []string `json:"errors"`
}

type BulkService interface {
	BulkApprove(actions []BulkAction, actor Actor) BulkResult
	BulkReject(actions []BulkAction, actor Actor) BulkResult
}

type bulkService struct {
	approvals ApprovalService
}

func NewBulkService(approvals ApprovalService) BulkService {
	return &bulkService{approvals: approvals}
}

func (s *bulkService) BulkApprove(actions []BulkAction, actor Actor) BulkResult {
	return s.run("approve", actions, func(a BulkAction) error {
		_, err := s.approvals.Approve(a.Kind, a.EntityID, actor)
		return err
	})
}

func (s *bulkService) BulkReject(actions []BulkAction, actor Actor) BulkResult {
	return s.run("reject", actions, func(a BulkAction) error {
		_, err := s.approvals.Reject(a.Kind, a.EntityID, actor, a.Reason)
		return err
	})
}

// run applies fn to each action in order. Earlier successes are kept when a
// later item fails.
func (s *bulkService) run(name string, actions []BulkAction, fn func(BulkAction) error) BulkResult {
	logger.Info("Starting bulk operation", map[string]interface{}{
		"operation": name,
		"items":     len(actions),
	})

	result := BulkResult{Errors: []string{}}
	for i, action := range actions {
		if err := fn(action); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", action.Kind, action.EntityID, err))
			logger.Warn("Bulk item failed", map[string]interface{}{
				"operation":   name,
				"index":       i,
				"entity_kind": action.Kind,
				"entity_id":   action.EntityID,
				"error":       err.Error(),
			})
			continue
		}
		result.SuccessCount++
	}

	logger.Info("Bulk operation finished", map[string]interface{}{
		"operation":     name,
		"success_count": result.SuccessCount,
		"failed_count":  result.FailedCount,
	})
	return result
}
