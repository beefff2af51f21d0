package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/restocked/stocklog/internal/config"
	"github.com/restocked/stocklog/internal/repository"
	"github.com/restocked/stocklog/internal/repository/sheets"
	"github.com/restocked/stocklog/internal/service/reporting"
)

// Scheduler runs the nightly spend report: aggregate the day's logs, keep a
// snapshot, and mirror a row into the bookkeeping spreadsheet.
type Scheduler struct {
	cron         *cron.Cron
	cfg          config.ReportingConfig
	reportingSvc *reporting.Service
	reports      repository.ReportStore
	exporter     sheets.Exporter
	logger       *zap.Logger
}

// NewScheduler creates a scheduler. reports and exporter may be nil; the
// snapshot is then only logged.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, reports repository.ReportStore, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		cfg:          cfg,
		reportingSvc: reportingSvc,
		reports:      reports,
		exporter:     exporter,
		logger:       logger,
	}
}

// Start registers the nightly job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyReport); err != nil {
		s.logger.Error("failed to schedule daily spend report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reportingSvc.DailySnapshot(ctx, time.Now().In(s.cron.Location()))
	if err != nil {
		s.logger.Error("failed to build daily spend report", zap.Error(err))
		return
	}

	s.logger.Info("daily spend report", zap.String("summary", s.reportingSvc.RenderDailySummary(report)))

	if s.reports != nil {
		if err := s.reports.SaveSpendReport(ctx, report); err != nil {
			s.logger.Error("failed to store spend report", zap.Error(err))
		}
	}

	if s.exporter != nil {
		if err := s.exporter.AppendSpendReport(ctx, report); err != nil {
			s.logger.Error("failed to export spend report", zap.Error(err))
		}
	}
}
