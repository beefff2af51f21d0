package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/restocked/stocklog/internal/domain/models"
	"github.com/restocked/stocklog/internal/repository"
)

const (
	dateLayout      = "2006-01-02"
	dashboardWindow = 30 * 24 * time.Hour
)

// Service aggregates stored procurement logs into dashboard figures and the
// nightly spend snapshot.
type Service struct {
	repo   repository.LogRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(repo repository.LogRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// BuildDashboard aggregates the last 30 days of logs: total spend, total
// quantity received, distinct supplier count and a per-day cost trend sorted
// ascending for the chart.
func (s *Service) BuildDashboard(ctx context.Context) (models.DashboardSummary, error) {
	logs, err := s.repo.GetLogs(ctx)
	if err != nil {
		return models.DashboardSummary{}, fmt.Errorf("load logs: %w", err)
	}

	now := s.now().UTC()
	windowStart := now.Add(-dashboardWindow)

	summary := models.DashboardSummary{
		GeneratedAt: now,
		WindowStart: windowStart,
		WindowEnd:   now,
	}

	suppliers := make(map[string]struct{})
	daily := make(map[string]float64)

	for _, log := range logs {
		if log.Date.Before(windowStart) {
			continue
		}

		summary.LogCount++
		summary.TotalSpend += log.TotalCost
		suppliers[log.Supplier] = struct{}{}

		for _, item := range log.Items {
			summary.TotalQuantity += item.Quantity
		}

		day := log.Date.UTC().Format(dateLayout)
		daily[day] += log.TotalCost
	}

	summary.SupplierCount = len(suppliers)

	trend := make([]models.TrendPoint, 0, len(daily))
	for day, cost := range daily {
		date, err := time.Parse(dateLayout, day)
		if err != nil {
			continue
		}
		trend = append(trend, models.TrendPoint{Date: date, Cost: cost})
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date.Before(trend[j].Date)
	})
	summary.Trend = trend

	return summary, nil
}

// DailySnapshot aggregates the logs confirmed on the given calendar day.
func (s *Service) DailySnapshot(ctx context.Context, day time.Time) (models.DailySpendReport, error) {
	logs, err := s.repo.GetLogs(ctx)
	if err != nil {
		return models.DailySpendReport{}, fmt.Errorf("load logs: %w", err)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	report := models.DailySpendReport{
		Date:      dayStart,
		CreatedAt: s.now().UTC(),
	}

	suppliers := make(map[string]struct{})
	for _, log := range logs {
		logDay := log.Date.In(day.Location())
		if logDay.Before(dayStart) || !logDay.Before(dayEnd) {
			continue
		}
		report.LogCount++
		report.TotalSpend += log.TotalCost
		suppliers[log.Supplier] = struct{}{}
	}
	report.SupplierCount = len(suppliers)

	return report, nil
}

// RenderDailySummary formats a snapshot for logs and notifications.
func (s *Service) RenderDailySummary(report models.DailySpendReport) string {
	if report.LogCount == 0 {
		return fmt.Sprintf("Spend summary (%s): no procurement logged.", report.Date.Format(dateLayout))
	}
	return fmt.Sprintf("Spend summary (%s): %.2f across %d logs from %d suppliers.",
		report.Date.Format(dateLayout), report.TotalSpend, report.LogCount, report.SupplierCount)
}
