package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/restocked/stocklog/internal/domain/models"
	"github.com/restocked/stocklog/internal/repository"
)

// Repository is a session-lifetime in-memory store. It is the default backend
// until a shop points the service at MongoDB, and doubles as the test double.
type Repository struct {
	mu      sync.RWMutex
	logs    map[string]models.DailyLog
	reports []models.DailySpendReport
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		logs: make(map[string]models.DailyLog),
	}
}

// SaveLog stores a finalized log, assigning an id when one is missing.
func (r *Repository) SaveLog(_ context.Context, log models.DailyLog) (models.DailyLog, error) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[log.ID] = log
	return log, nil
}

// GetLogs returns all logs, newest first.
func (r *Repository) GetLogs(_ context.Context) ([]models.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]models.DailyLog, 0, len(r.logs))
	for _, log := range r.logs {
		logs = append(logs, log)
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
	return logs, nil
}

// GetLog fetches one log by id.
func (r *Repository) GetLog(_ context.Context, id string) (models.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, ok := r.logs[id]
	if !ok {
		return models.DailyLog{}, repository.ErrNotFound
	}
	return log, nil
}

// DeleteLog removes one log by id.
func (r *Repository) DeleteLog(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.logs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

// SaveSpendReport appends a nightly spend snapshot.
func (r *Repository) SaveSpendReport(_ context.Context, report models.DailySpendReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

// SpendReports returns the stored snapshots in insertion order.
func (r *Repository) SpendReports() []models.DailySpendReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.DailySpendReport(nil), r.reports...)
}
