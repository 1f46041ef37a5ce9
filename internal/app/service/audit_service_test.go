package service

import (
	"testing"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	published []*model.AuditLog
}

func (p *recordingPublisher) PublishAudit(entry *model.AuditLog) {
	p.published = append(p.published, entry)
}

func TestBuildChangeSummary(t *testing.T) {
	tests := []struct {
		name   string
		action model.AuditAction
		old    model.JSONMap
		new    model.JSONMap
		want   string
	}{
		{
			name:   "status change",
			action: model.AuditActionApprove,
			old:    model.JSONMap{"id": "1", "status": "pending"},
			new:    model.JSONMap{"id": "1", "status": "active"},
			want:   "Status changed from pending to active",
		},
		{
			name:   "commission rate",
			action: model.AuditActionUpdate,
			old:    model.JSONMap{"commission_rate": 5.0},
			new:    model.JSONMap{"commission_rate": 7.5},
			want:   "Commission rate changed from 5.00% to 7.50%",
		},
		{
			name:   "dedicated phrasing first then other fields sorted",
			action: model.AuditActionUpdate,
			old:    model.JSONMap{"name": "A", "balance": 10.0, "vehicle_type": "car", "updated_at": "x"},
			new:    model.JSONMap{"name": "B", "balance": 25.5, "vehicle_type": "van", "updated_at": "y"},
			want:   "Balance changed from 10.00 to 25.50; Name updated; Vehicle type updated",
		},
		{
			name:   "mixed numeric types compare equal",
			action: model.AuditActionUpdate,
			old:    model.JSONMap{"balance": 10},
			new:    model.JSONMap{"balance": 10.0},
			want:   "Updated Rider One",
		},
		{
			name:   "missing snapshot falls back to action",
			action: model.AuditActionDelete,
			old:    model.JSONMap{"status": "active"},
			new:    nil,
			want:   "Deleted Rider One",
		},
		{
			name:   "create without old value",
			action: model.AuditActionCreate,
			new:    model.JSONMap{"status": "pending"},
			want:   "Created Rider One",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildChangeSummary(tt.action, "Rider One", tt.old, tt.new))
		})
	}

	assert.Equal(t, "Approved record", BuildChangeSummary(model.AuditActionApprove, "", nil, nil))
}

func TestAuditService_LogAction(t *testing.T) {
	f := setupServiceTest(t)
	publisher := &recordingPublisher{}
	svc := NewAuditService(f.auditRepo, publisher)

	entry, err := svc.LogAction(AuditEntry{
		Actor:      testAdmin,
		Action:     model.AuditActionUpdate,
		EntityType: string(model.KindMerchant),
		EntityID:   "m-1",
		EntityName: "Corner Shop",
		OldValue:   model.JSONMap{"commission_rate": 10.0},
		NewValue:   model.JSONMap{"commission_rate": 12.0},
	})
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.Equal(t, "Commission rate changed from 10.00% to 12.00%", entry.ChangesSummary)
	assert.Equal(t, testAdmin.Name, entry.ActorName)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, entry.ID, publisher.published[0].ID)

	logs, total, err := svc.Query(repository.AuditFilter{EntityID: "m-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, entry.ID, logs[0].ID)
}

func TestAuditService_LogActionExplicitSummary(t *testing.T) {
	f := setupServiceTest(t)

	entry, err := f.audit.LogAction(AuditEntry{
		Actor:      testAdmin,
		Action:     model.AuditActionReject,
		EntityType: string(model.KindRider),
		EntityID:   "r-1",
		EntityName: "Rider",
		Summary:    "Rejected Rider: missing license",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rejected Rider: missing license", entry.ChangesSummary)
}

func TestAuditService_LogActionValidation(t *testing.T) {
	f := setupServiceTest(t)
	publisher := &recordingPublisher{}
	svc := NewAuditService(f.auditRepo, publisher)

	_, err := svc.LogAction(AuditEntry{Actor: testAdmin, Action: "PURGE"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.LogAction(AuditEntry{Action: model.AuditActionApprove})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, publisher.published)
	assert.Equal(t, int64(0), f.count(t, &model.AuditLog{}))
}

func TestAuditService_WriteFailure(t *testing.T) {
	f := setupServiceTest(t)
	publisher := &recordingPublisher{}
	svc := NewAuditService(failingAuditRepo{f.auditRepo}, publisher)

	_, err := svc.LogAction(AuditEntry{Actor: testAdmin, Action: model.AuditActionApprove, EntityID: "x"})

	assert.ErrorIs(t, err, ErrAuditWrite)
	assert.ErrorIs(t, err, errInjected)
	assert.Empty(t, publisher.published)

	outcome := recordAudit(svc, "approve rider", AuditEntry{Actor: testAdmin, Action: model.AuditActionApprove})
	assert.False(t, outcome.OK())
	assert.NotEmpty(t, outcome.Warning())
}

func TestAuditPublishers_FanOut(t *testing.T) {
	first := &recordingPublisher{}
	second := &recordingPublisher{}
	publishers := AuditPublishers{first, nil, second}

	entry := &model.AuditLog{ID: 7, ActionType: model.AuditActionDelete}
	publishers.PublishAudit(entry)

	require.Len(t, first.published, 1)
	require.Len(t, second.published, 1)
	assert.Equal(t, uint(7), second.published[0].ID)
}
