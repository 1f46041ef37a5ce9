package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/report"
	"github.com/ikkim/hubline-admin/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportLimit caps a single on-demand export.
const exportLimit = 10000

// ObjectStorage is the subset of the S3 client the archiver needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
}

type ArchiveResult struct {
	Key     string `json:"key"`
	Entries int    `json:"entries"`
}

type AuditArchiveService interface {
	Export(filter repository.AuditFilter) ([]byte, error)
	ArchiveDay(ctx context.Context, day time.Time) (*ArchiveResult, error)
}

type auditArchiveService struct {
	repo    repository.AuditRepository
	storage ObjectStorage
	prefix  string
}

// NewAuditArchiveService builds the exporter. storage may be nil, in which
// case only Export is available.
func NewAuditArchiveService(repo repository.AuditRepository, storage ObjectStorage, prefix string) AuditArchiveService {
	return &auditArchiveService{repo: repo, storage: storage, prefix: prefix}
}

func (s *auditArchiveService) Export(filter repository.AuditFilter) ([]byte, error) {
	filter.Page = 1
	if filter.Limit < 1 || filter.Limit > exportLimit {
		filter.Limit = exportLimit
	}

	entries, _, err := s.repo.Query(filter)
	if err != nil {
		return nil, err
	}

	data, err := report.BuildAuditWorkbook(entries)
	if err != nil {
		logger.Error("Failed to build audit workbook", err, map[string]interface{}{
			"entries": len(entries),
		})
		return nil, err
	}

	logger.Info("Audit log exported", map[string]interface{}{
		"entries": len(entries),
		"bytes":   len(data),
	})
	return data, nil
}

// ArchiveDay uploads every entry of the calendar day (UTC) containing day.
// Days without entries are skipped and return a nil result.
func (s *auditArchiveService) ArchiveDay(ctx context.Context, day time.Time) (*ArchiveResult, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("audit archive storage is not configured")
	}

	day = day.UTC()
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	entries, err := s.repo.FindBetween(from, to)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		logger.Info("No audit entries to archive", map[string]interface{}{
			"day": from.Format("2006-01-02"),
		})
		return nil, nil
	}

	data, err := report.BuildAuditWorkbook(entries)
	if err != nil {
		return nil, err
	}

	key := archiveKey(s.prefix, from, uuid.NewString())
	if err := s.storage.Upload(ctx, key, xlsxContentType, data); err != nil {
		return nil, err
	}

	logger.Info("Audit log archived", map[string]interface{}{
		"day":     from.Format("2006-01-02"),
		"key":     key,
		"entries": len(entries),
	})
	return &ArchiveResult{Key: key, Entries: len(entries)}, nil
}

// archiveKey builds <prefix>/YYYY/MM/DD-<id>.xlsx
func archiveKey(prefix string, day time.Time, id string) string {
	return path.Join(prefix, day.Format("2006"), day.Format("01"), fmt.Sprintf("%s-%s.xlsx", day.Format("02"), id))
}
