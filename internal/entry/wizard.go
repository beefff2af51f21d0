package entry

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/restocked/stocklog/internal/domain/models"
)

// Step identifies the active screen of the entry wizard.
type Step string

const (
	StepWelcome   Step = "WELCOME"
	StepCategory  Step = "CATEGORY"
	StepWorksheet Step = "WORKSHEET"
	StepSummary   Step = "SUMMARY"
)

// Session is one worker's pass through the entry wizard. All state changes go
// through its mutex, which gives the same atomicity the original single-threaded
// event loop had: no operation observes a half-applied update.
//
// The epoch counter guards the asynchronous recognition flow. It is bumped
// whenever the worksheet is re-seeded or abandoned, so a recognition result
// started against an earlier worksheet is recognized as stale and discarded.
type Session struct {
	mu        sync.Mutex
	id        string
	createdAt time.Time

	step           Step
	category       models.Category
	worksheet      Worksheet
	analyzing      bool
	recognitionErr string
	epoch          uint64
}

// NewSession creates a session parked on the welcome screen.
func NewSession() *Session {
	return &Session{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		step:      StepWelcome,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Snapshot is a read-only view of the session for the transport layer.
type Snapshot struct {
	ID             string          `json:"id"`
	Step           Step            `json:"step"`
	Category       models.Category `json:"category,omitempty"`
	Worksheet      Worksheet       `json:"worksheet"`
	Analyzing      bool            `json:"analyzing"`
	RecognitionErr string          `json:"recognition_error,omitempty"`
	RunningTotal   float64         `json:"running_total"`
	ReviewTotal    float64         `json:"review_total"`
}

// Snapshot captures the current state atomically. RunningTotal includes blank
// rows (what the worksheet header shows); ReviewTotal is the post-filter sum
// the summary screen and the persisted log use.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.worksheet
	ws.Items = append([]models.LineItem(nil), s.worksheet.Items...)

	var reviewTotal float64
	for _, item := range ws.ValidItems() {
		reviewTotal += item.Total
	}

	return Snapshot{
		ID:             s.id,
		Step:           s.step,
		Category:       s.category,
		Worksheet:      ws,
		Analyzing:      s.analyzing,
		RecognitionErr: s.recognitionErr,
		RunningTotal:   ws.GrandTotal(),
		ReviewTotal:    reviewTotal,
	}
}

// Begin advances from the welcome screen to category selection.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepWelcome {
		return ErrInvalidTransition
	}
	s.step = StepCategory
	return nil
}

// SelectCategory seeds a fresh worksheet for the category and advances to the
// worksheet screen. Selecting a category always re-initializes; any edits from
// a previous pass over this session are discarded, there is no resume.
func (s *Session) SelectCategory(category models.Category, templates TemplateProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepCategory {
		return ErrInvalidTransition
	}

	var tpl *Template
	if templates != nil {
		if t, ok := templates.Template(category); ok {
			tpl = &t
		}
	}

	s.category = category
	s.worksheet = NewWorksheet(category, tpl)
	s.step = StepWorksheet
	s.analyzing = false
	s.recognitionErr = ""
	s.epoch++
	return nil
}

// BackToCategory abandons the current worksheet and returns to category
// selection. Deliberately destructive; any softening confirmation dialog
// belongs to the client.
func (s *Session) BackToCategory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepWorksheet {
		return ErrInvalidTransition
	}

	s.step = StepCategory
	s.worksheet = Worksheet{}
	s.analyzing = false
	s.recognitionErr = ""
	s.epoch++
	return nil
}

// Review advances to the summary screen. Blocked while the worksheet holds no
// named rows.
func (s *Session) Review() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepWorksheet {
		return ErrInvalidTransition
	}
	if len(s.worksheet.ValidItems()) == 0 {
		return ErrNoValidItems
	}

	s.step = StepSummary
	return nil
}

// BackToWorksheet returns from the summary to the worksheet, keeping all edits.
func (s *Session) BackToWorksheet() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepSummary {
		return ErrInvalidTransition
	}
	s.step = StepWorksheet
	return nil
}

// Confirm assembles the final log from the summary screen. The session is
// finished afterwards; the caller decides where to navigate and removes it.
func (s *Session) Confirm(now time.Time) (models.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepSummary {
		return models.DailyLog{}, ErrInvalidTransition
	}

	log, err := Assemble(s.worksheet, s.category, now)
	if err != nil {
		return models.DailyLog{}, err
	}

	s.epoch++
	return log, nil
}

// UpdateInfo edits the supplier and/or notes on the worksheet screen. Nil
// fields are left unchanged; empty strings overwrite.
func (s *Session) UpdateInfo(supplier, notes *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepWorksheet {
		return ErrInvalidTransition
	}
	if supplier != nil {
		s.worksheet.Supplier = *supplier
	}
	if notes != nil {
		s.worksheet.Notes = *notes
	}
	return nil
}

// AddItem appends a blank row to the worksheet.
func (s *Session) AddItem() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepWorksheet {
		return ErrInvalidTransition
	}
	s.worksheet.AddBlankRow()
	return nil
}

// UpdateItem edits one field of one worksheet row.
func (s *Session) UpdateItem(index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepWorksheet {
		return ErrInvalidTransition
	}
	return s.worksheet.UpdateField(index, field, value)
}

// RemoveItem deletes one worksheet row, except the last remaining one.
func (s *Session) RemoveItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepWorksheet {
		return ErrInvalidTransition
	}
	return s.worksheet.RemoveRow(index)
}

// BeginRecognition marks a recognition call as outstanding and returns the
// epoch the result must present to be applied. Only one call may be in flight
// per session; user edits stay permitted meanwhile.
func (s *Session) BeginRecognition() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepWorksheet {
		return 0, ErrInvalidTransition
	}
	if s.analyzing {
		return 0, ErrRecognitionBusy
	}

	s.analyzing = true
	s.recognitionErr = ""
	return s.epoch, nil
}

// CompleteRecognition finishes an outstanding recognition call. The merge is
// applied in one atomic step against whatever the worksheet holds at this
// moment, and only while the originating worksheet is still the active one.
// On failure or an empty extraction the worksheet stays untouched and the
// failure message is kept for the next snapshot so the client can offer a
// retry. The in-progress flag never survives completion.
func (s *Session) CompleteRecognition(epoch uint64, result *models.ParseResult, failure error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		// The worksheet this call was started against is gone; the flag was
		// already reset by the transition that replaced it.
		return false
	}

	s.analyzing = false

	if failure != nil {
		s.recognitionErr = failure.Error()
		return false
	}
	if result == nil || result.Empty() {
		s.recognitionErr = "no procurement data recognized in the photo"
		return false
	}
	if s.step != StepWorksheet {
		return false
	}

	s.worksheet = Merge(s.worksheet, *result)
	return true
}
