package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/pkg/logger"
)

// Actor is the administrator an operation is attributed to.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (a Actor) valid() bool {
	return strings.TrimSpace(a.ID) != ""
}

// AuditEntry is the input of LogAction.
type AuditEntry struct {
	Actor      Actor
	Action     model.AuditAction
	EntityType string
	EntityID   string
	EntityName string
	OldValue   model.JSONMap
	NewValue   model.JSONMap
	Summary    string
}

// AuditOutcome reports the audit write separately from the state change that
// triggered it. A failed write never undoes that change.
type AuditOutcome struct {
	Entry *model.AuditLog `json:"entry,omitempty"`
	Err   error           `json:"-"`
}

func (o AuditOutcome) OK() bool {
	return o.Err == nil
}

// Warning is the client-facing form of a failed audit write.
func (o AuditOutcome) Warning() string {
	if o.Err == nil {
		return ""
	}
	return "state change saved but the audit log entry could not be written"
}

// AuditPublisher receives every entry after it is persisted.
type AuditPublisher interface {
	PublishAudit(entry *model.AuditLog)
}

// AuditPublishers fans one entry out to each publisher in order.
type AuditPublishers []AuditPublisher

func (p AuditPublishers) PublishAudit(entry *model.AuditLog) {
	for _, publisher := range p {
		if publisher != nil {
			publisher.PublishAudit(entry)
		}
	}
}

type AuditService interface {
	LogAction(entry AuditEntry) (*model.AuditLog, error)
	Query(filter repository.AuditFilter) ([]model.AuditLog, int64, error)
}

type auditService struct {
	repo      repository.AuditRepository
	publisher AuditPublisher
}

// NewAuditService builds the recorder. publisher may be nil.
func NewAuditService(repo repository.AuditRepository, publisher AuditPublisher) AuditService {
	return &auditService{repo: repo, publisher: publisher}
}

func (s *auditService) LogAction(entry AuditEntry) (*model.AuditLog, error) {
	op := "log audit action"
	if !entry.Action.Valid() {
		return nil, validationError(op, "unknown audit action %q", entry.Action)
	}
	if !entry.Actor.valid() {
		return nil, validationError(op, "actor is required")
	}

	summary := entry.Summary
	if summary == "" {
		summary = BuildChangeSummary(entry.Action, entry.EntityName, entry.OldValue, entry.NewValue)
	}

	record := &model.AuditLog{
		ActorID:        entry.Actor.ID,
		ActorName:      entry.Actor.Name,
		ActionType:     entry.Action,
		EntityType:     entry.EntityType,
		EntityID:       entry.EntityID,
		EntityName:     entry.EntityName,
		OldValue:       entry.OldValue,
		NewValue:       entry.NewValue,
		ChangesSummary: summary,
	}

	if err := s.repo.Create(record); err != nil {
		return nil, workflowError(op, ErrAuditWrite, err)
	}

	logger.Info("Audit entry recorded", map[string]interface{}{
		"audit_id":    record.ID,
		"action_type": record.ActionType,
		"entity_type": record.EntityType,
		"entity_id":   record.EntityID,
		"actor_id":    record.ActorID,
	})

	if s.publisher != nil {
		s.publisher.PublishAudit(record)
	}
	return record, nil
}

func (s *auditService) Query(filter repository.AuditFilter) ([]model.AuditLog, int64, error) {
	entries, total, err := s.repo.Query(filter)
	if err != nil {
		logger.Error("Failed to query audit log", err, map[string]interface{}{
			"entity_type": filter.EntityType,
			"entity_id":   filter.EntityID,
		})
		return nil, 0, err
	}
	return entries, total, nil
}

// recordAudit writes the entry and turns a failure into a warning outcome.
func recordAudit(audit AuditService, op string, entry AuditEntry) AuditOutcome {
	record, err := audit.LogAction(entry)
	if err != nil {
		logger.Warn("Audit write failed after state change", map[string]interface{}{
			"operation":   op,
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID,
			"error":       err.Error(),
		})
		return AuditOutcome{Err: err}
	}
	return AuditOutcome{Entry: record}
}

// summaryOrder lists fields with dedicated phrasing, in the order they appear.
var summaryOrder = []string{"status", "commission_rate", "balance"}

var summaryIgnored = map[string]bool{
	"id":            true,
	"owner_user_id": true,
	"updated_at":    true,
}

// BuildChangeSummary describes the difference between two snapshots. When
// either side is missing or nothing differs it falls back to the action.
func BuildChangeSummary(action model.AuditAction, entityName string, oldValue, newValue model.JSONMap) string {
	if oldValue == nil || newValue == nil {
		return actionSummary(action, entityName)
	}

	keys := make(map[string]bool)
	for k := range oldValue {
		keys[k] = true
	}
	for k := range newValue {
		keys[k] = true
	}

	var ordered []string
	for _, k := range summaryOrder {
		if keys[k] {
			ordered = append(ordered, k)
			delete(keys, k)
		}
	}
	var rest []string
	for k := range keys {
		if !summaryIgnored[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	var parts []string
	for _, key := range ordered {
		before, after := oldValue[key], newValue[key]
		if sameValue(before, after) {
			continue
		}
		parts = append(parts, fieldSummary(key, before, after))
	}

	if len(parts) == 0 {
		return actionSummary(action, entityName)
	}
	return strings.Join(parts, "; ")
}

func fieldSummary(key string, before, after interface{}) string {
	switch key {
	case "status":
		return fmt.Sprintf("Status changed from %s to %s", displayValue(before), displayValue(after))
	case "commission_rate":
		return fmt.Sprintf("Commission rate changed from %s%% to %s%%", amount(before), amount(after))
	case "balance":
		return fmt.Sprintf("Balance changed from %s to %s", amount(before), amount(after))
	}
	return fieldLabel(key) + " updated"
}

func actionSummary(action model.AuditAction, entityName string) string {
	name := entityName
	if name == "" {
		name = "record"
	}
	switch action {
	case model.AuditActionCreate:
		return "Created " + name
	case model.AuditActionUpdate:
		return "Updated " + name
	case model.AuditActionApprove:
		return "Approved " + name
	case model.AuditActionReject:
		return "Rejected " + name
	case model.AuditActionDelete:
		return "Deleted " + name
	case model.AuditActionConfigChange:
		return "Changed configuration " + name
	}
	return string(action) + " " + name
}

// fieldLabel turns commission_rate into "Commission rate".
func fieldLabel(key string) string {
	label := strings.ReplaceAll(key, "_", " ")
	if label == "" {
		return "Field"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func sameValue(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func amount(v interface{}) string {
	if f, ok := toFloat(v); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return displayValue(v)
}

func displayValue(v interface{}) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprint(v)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
