package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const AuditSheet = "Audit Log"

var auditHeaders = []string{
	"ID", "Time (UTC)", "Actor ID", "Actor", "Action",
	"Entity Type", "Entity ID", "Entity", "Summary", "Old Value", "New Value",
}

// BuildAuditWorkbook renders entries into a single-sheet xlsx file.
func BuildAuditWorkbook(entries []model.AuditLog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), AuditSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(auditHeaders))
	for i, h := range auditHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(AuditSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(auditHeaders))
	if err := f.SetCellStyle(AuditSheet, "A1", lastCol+"1", style); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, entry := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			entry.ID,
			entry.CreatedAt.UTC().Format(time.RFC3339),
			entry.ActorID,
			entry.ActorName,
			string(entry.ActionType),
			entry.EntityType,
			entry.EntityID,
			entry.EntityName,
			entry.ChangesSummary,
			jsonCell(entry.OldValue),
			jsonCell(entry.NewValue),
		}
		if err := f.SetSheetRow(AuditSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func jsonCell(m model.JSONMap) string {
	if m == nil {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}
