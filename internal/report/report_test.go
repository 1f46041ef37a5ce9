package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildAuditWorkbook(t *testing.T) {
	entries := []model.AuditLog{
		{
			ID:             7,
			ActorID:        "admin-1",
			ActorName:      "Platform Admin",
			ActionType:     model.AuditActionApprove,
			EntityType:     "rider",
			EntityID:       "r-1",
			EntityName:     "Karim",
			ChangesSummary: "Status changed from pending to active",
			NewValue:       model.JSONMap{"status": "active"},
			CreatedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	data, err := BuildAuditWorkbook(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AuditSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Action", rows[0][4])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "2026-03-01T10:00:00Z", rows[1][1])
	assert.Equal(t, "APPROVE", rows[1][4])
	assert.Equal(t, "Status changed from pending to active", rows[1][8])
	assert.JSONEq(t, `{"status":"active"}`, rows[1][10])
}

func TestBuildAuditWorkbook_Empty(t *testing.T) {
	data, err := BuildAuditWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AuditSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseDeliveryWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(DeliverySheetColumns))
	for i, c := range DeliverySheetColumns {
		header[i] = c
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{
		"m-1", "r-1", "120", "12", "2026-03-01T08:30:00Z", "2.4", "1.8", "1.8", "4.8", "1.2",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{
		"m-2", "", "80", "8", "2026-03-02", "1.6", "1.2", "1.2", "3.2", "0.8",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{
		"m-3", "", "abc", "8", "2026-03-02", "1", "1", "1", "1", "1",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A5", &[]interface{}{"short"}))

	imports, skipped, err := ParseDeliveryWorkbook(f)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, imports, 2)

	first := imports[0]
	assert.Equal(t, "m-1", first.Delivery.MerchantID)
	require.NotNil(t, first.Delivery.RiderID)
	assert.Equal(t, model.DeliveryStatusDelivered, first.Delivery.Status)
	assert.InDelta(t, 12.0, first.Distribution.TotalAmount, 1e-9)

	assert.Nil(t, imports[1].Delivery.RiderID)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), *imports[1].Delivery.DeliveredAt)
}
