package repository

import (
	"context"
	"errors"

	"github.com/restocked/stocklog/internal/domain/models"
)

// ErrNotFound indicates the requested log does not exist.
var ErrNotFound = errors.New("log not found")

// LogRepository defines the persistence operations for finalized procurement
// logs. Implementations assign an id when the log does not carry one.
type LogRepository interface {
	SaveLog(ctx context.Context, log models.DailyLog) (models.DailyLog, error)
	GetLogs(ctx context.Context) ([]models.DailyLog, error)
	GetLog(ctx context.Context, id string) (models.DailyLog, error)
	DeleteLog(ctx context.Context, id string) error
}

// ReportStore persists the nightly spend snapshots produced by the scheduler.
type ReportStore interface {
	SaveSpendReport(ctx context.Context, report models.DailySpendReport) error
}
