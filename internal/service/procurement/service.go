package procurement

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/restocked/stocklog/internal/domain/models"
	"github.com/restocked/stocklog/internal/entry"
	"github.com/restocked/stocklog/internal/repository"
	"github.com/restocked/stocklog/internal/repository/sheets"
	"github.com/restocked/stocklog/pkg/clients/recognition"
)

// ErrSessionNotFound indicates the referenced wizard session does not exist
// (never created, expired, or already confirmed).
var ErrSessionNotFound = errors.New("entry session not found")

// ErrRecognitionUnavailable indicates the service runs without a recognition
// provider configured.
var ErrRecognitionUnavailable = errors.New("receipt recognition is not configured")

const recognitionTimeout = 60 * time.Second

// Service drives entry wizard sessions: transitions, worksheet edits, the
// asynchronous recognition flow and final persistence.
type Service struct {
	sessions   *entry.SessionManager
	templates  entry.TemplateProvider
	recognizer recognition.Recognizer
	repo       repository.LogRepository
	exporter   sheets.Exporter
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a new procurement entry service. recognizer and exporter
// may be nil; the matching features are then disabled.
func NewService(templates entry.TemplateProvider, recognizer recognition.Recognizer, repo repository.LogRepository, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions:   entry.NewSessionManager(),
		templates:  templates,
		recognizer: recognizer,
		repo:       repo,
		exporter:   exporter,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateSession starts a new wizard session on the welcome screen.
func (s *Service) CreateSession() entry.Snapshot {
	session := s.sessions.Create()
	s.logger.Info("entry session created", zap.String("session_id", session.ID()))
	return session.Snapshot()
}

// GetSession returns the current snapshot of a session.
func (s *Service) GetSession(id string) (entry.Snapshot, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return entry.Snapshot{}, ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// Begin advances a session from welcome to category selection.
func (s *Service) Begin(id string) (entry.Snapshot, error) {
	return s.transition(id, func(session *entry.Session) error {
		return session.Begin()
	})
}

// SelectCategory seeds the worksheet for the chosen category.
func (s *Service) SelectCategory(id string, category models.Category) (entry.Snapshot, error) {
	return s.transition(id, func(session *entry.Session) error {
		return session.SelectCategory(category, s.templates)
	})
}

// BackToCategory abandons the worksheet and returns to category selection.
func (s *Service) BackToCategory(id string) (entry.Snapshot, error) {
	return s.transition(id, func(session *entry.Session) error {
		return session.BackToCategory()
	})
}

// Review moves the session to the summary screen.
func (s *Service) Review(id string) (entry.Snapshot, error) {
	return s.transition(id, func(session *entry.Session) error {
		return session.Review()
	})
}

// BackToWorksheet returns from the summary to the worksheet.
func (s *Service) BackToWorksheet(id string) (entry.Snapshot, error) {
	return s.transition(id, func(session *entry.Session) error {
		return session.BackToWorksheet()
	})
}

// UpdateInfo edits the supplier and/or notes of the active worksheet.
func (s *Service) UpdateInfo(id string, supplier, notes *string) (entry.Snapshot, error) {
	return s.transition(id, func(session *entry.Session) error {
		return session.UpdateInfo(supplier, notes)
	})
}

// AddItem appends a blank worksheet row.
func (s *Service) AddItem(id string) (entry.Snapshot, error) {
	return s.transition(id, func(session *entry.Session) error {
		return session.AddItem()
	})
}

// UpdateItem edits one field of one worksheet row.
func (s *Service) UpdateItem(id string, index int, field, value string) (entry.Snapshot, error) {
	return s.transition(id, func(session *entry.Session) error {
		return session.UpdateItem(index, field, value)
	})
}

// RemoveItem deletes one worksheet row.
func (s *Service) RemoveItem(id string, index int) (entry.Snapshot, error) {
	return s.transition(id, func(session *entry.Session) error {
		return session.RemoveItem(index)
	})
}

// Recognize kicks off the asynchronous receipt recognition call. It returns
// as soon as the call is accepted; the result merges into the worksheet when
// it arrives, and only if that worksheet is still the active one. The client
// observes progress and outcome through session snapshots.
func (s *Service) Recognize(ctx context.Context, id, hint string, image models.ReceiptImage) (entry.Snapshot, error) {
	if s.recognizer == nil {
		return entry.Snapshot{}, ErrRecognitionUnavailable
	}

	session, ok := s.sessions.Get(id)
	if !ok {
		return entry.Snapshot{}, ErrSessionNotFound
	}

	epoch, err := session.BeginRecognition()
	if err != nil {
		return entry.Snapshot{}, err
	}

	// Detached from the request context: the HTTP call returns immediately
	// while the recognition call keeps running.
	go s.runRecognition(session, epoch, hint, image)

	return session.Snapshot(), nil
}

func (s *Service) runRecognition(session *entry.Session, epoch uint64, hint string, image models.ReceiptImage) {
	ctx, cancel := context.WithTimeout(context.Background(), recognitionTimeout)
	defer cancel()

	result, err := s.recognizer.Recognize(ctx, hint, image)
	applied := session.CompleteRecognition(epoch, result, err)

	switch {
	case err != nil:
		s.logger.Warn("receipt recognition failed",
			zap.String("session_id", session.ID()),
			zap.Error(err))
	case !applied:
		s.logger.Info("recognition result discarded",
			zap.String("session_id", session.ID()),
			zap.Uint64("epoch", epoch))
	default:
		s.logger.Info("recognition result merged",
			zap.String("session_id", session.ID()),
			zap.Int("items", len(result.Items)))
	}
}

// Confirm assembles the final log, persists it and retires the session. The
// bookkeeping export runs in the background; its failure never blocks the
// worker's confirmation.
func (s *Service) Confirm(ctx context.Context, id string) (models.DailyLog, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return models.DailyLog{}, ErrSessionNotFound
	}

	log, err := session.Confirm(s.now().UTC())
	if err != nil {
		return models.DailyLog{}, err
	}

	saved, err := s.repo.SaveLog(ctx, log)
	if err != nil {
		return models.DailyLog{}, err
	}

	s.sessions.Remove(id)
	s.logger.Info("procurement log confirmed",
		zap.String("log_id", saved.ID),
		zap.String("category", string(saved.Category)),
		zap.Float64("total_cost", saved.TotalCost))

	if s.exporter != nil {
		go s.exportLog(saved)
	}

	return saved, nil
}

func (s *Service) exportLog(log models.DailyLog) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.exporter.AppendLog(ctx, log); err != nil {
		s.logger.Warn("bookkeeping export failed", zap.String("log_id", log.ID), zap.Error(err))
	}
}

func (s *Service) transition(id string, fn func(*entry.Session) error) (entry.Snapshot, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return entry.Snapshot{}, ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return entry.Snapshot{}, err
	}
	return session.Snapshot(), nil
}
