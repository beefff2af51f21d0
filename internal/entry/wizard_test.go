package entry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restocked/stocklog/internal/domain/models"
)

func advanceToWorksheet(t *testing.T, templates TemplateProvider, category models.Category) *Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, s.Begin())
	require.NoError(t, s.SelectCategory(category, templates))
	return s
}

func TestWizardHappyPath(t *testing.T) {
	s := advanceToWorksheet(t, DemoTemplates(), models.CategoryMeat)

	snap := s.Snapshot()
	assert.Equal(t, StepWorksheet, snap.Step)
	assert.Equal(t, models.CategoryMeat, snap.Category)
	assert.Equal(t, "双汇冷鲜肉直供", snap.Worksheet.Supplier)
	require.Len(t, snap.Worksheet.Items, 2)

	require.NoError(t, s.Review())
	assert.Equal(t, StepSummary, s.Snapshot().Step)

	log, err := s.Confirm(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, models.StatusStocked, log.Status)
	assert.Equal(t, 1050.0, log.TotalCost)
}

func TestWizardSeedsBlankRowForUnknownCategory(t *testing.T) {
	s := advanceToWorksheet(t, DemoTemplates(), models.CategoryOther)

	snap := s.Snapshot()
	require.Len(t, snap.Worksheet.Items, 1)
	assert.True(t, snap.Worksheet.Items[0].IsBlank())
	assert.Empty(t, snap.Worksheet.Supplier)
}

func TestWizardRejectsInvalidTransitions(t *testing.T) {
	s := NewSession()

	assert.ErrorIs(t, s.SelectCategory(models.CategoryMeat, nil), ErrInvalidTransition)
	assert.ErrorIs(t, s.Review(), ErrInvalidTransition)
	assert.ErrorIs(t, s.BackToCategory(), ErrInvalidTransition)
	assert.ErrorIs(t, s.BackToWorksheet(), ErrInvalidTransition)
	_, err := s.Confirm(time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, s.AddItem(), ErrInvalidTransition)

	require.NoError(t, s.Begin())
	assert.ErrorIs(t, s.Begin(), ErrInvalidTransition)
}

func TestReviewBlockedUntilRowNamed(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryVegetables)

	err := s.Review()
	assert.ErrorIs(t, err, ErrNoValidItems)
	assert.Equal(t, StepWorksheet, s.Snapshot().Step)

	require.NoError(t, s.UpdateItem(0, FieldName, "土豆"))
	require.NoError(t, s.Review())
	assert.Equal(t, StepSummary, s.Snapshot().Step)
}

func TestBackToCategoryDiscardsEdits(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryMeat)
	require.NoError(t, s.UpdateItem(0, FieldName, "Beef"))

	require.NoError(t, s.BackToCategory())
	assert.Equal(t, StepCategory, s.Snapshot().Step)

	// Re-selecting always re-initializes; there is no resume.
	require.NoError(t, s.SelectCategory(models.CategoryMeat, nil))
	snap := s.Snapshot()
	require.Len(t, snap.Worksheet.Items, 1)
	assert.True(t, snap.Worksheet.Items[0].IsBlank())
}

func TestBackToWorksheetKeepsState(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryMeat)
	require.NoError(t, s.UpdateItem(0, FieldName, "Beef"))
	require.NoError(t, s.UpdateItem(0, FieldQuantity, "10"))
	require.NoError(t, s.UpdateItem(0, FieldUnitPrice, "5"))
	require.NoError(t, s.Review())

	require.NoError(t, s.BackToWorksheet())

	snap := s.Snapshot()
	assert.Equal(t, StepWorksheet, snap.Step)
	assert.Equal(t, "Beef", snap.Worksheet.Items[0].Name)
	assert.Equal(t, 50.0, snap.RunningTotal)
}

func TestSnapshotTotals(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryMeat)
	require.NoError(t, s.UpdateItem(0, FieldQuantity, "2"))
	require.NoError(t, s.UpdateItem(0, FieldUnitPrice, "30"))
	require.NoError(t, s.AddItem())
	require.NoError(t, s.UpdateItem(1, FieldName, "Beef"))
	require.NoError(t, s.UpdateItem(1, FieldQuantity, "10"))
	require.NoError(t, s.UpdateItem(1, FieldUnitPrice, "10"))

	snap := s.Snapshot()
	// The blank priced row counts while editing, but not toward what would be
	// persisted.
	assert.Equal(t, 160.0, snap.RunningTotal)
	assert.Equal(t, 100.0, snap.ReviewTotal)
}

func TestRecognitionMergeApplied(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryMeat)
	require.NoError(t, s.UpdateItem(0, FieldName, "Beef"))

	epoch, err := s.BeginRecognition()
	require.NoError(t, err)
	assert.True(t, s.Snapshot().Analyzing)

	applied := s.CompleteRecognition(epoch, &models.ParseResult{
		Supplier: "OtherCo",
		Items:    []models.LineItem{{Name: "Rice", Total: 20}},
	}, nil)

	assert.True(t, applied)
	snap := s.Snapshot()
	assert.False(t, snap.Analyzing)
	assert.Equal(t, "OtherCo", snap.Worksheet.Supplier)
	require.Len(t, snap.Worksheet.Items, 2)
	assert.Equal(t, "Rice", snap.Worksheet.Items[1].Name)
}

func TestRecognitionSecondCallBlockedWhileOutstanding(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryMeat)

	_, err := s.BeginRecognition()
	require.NoError(t, err)

	_, err = s.BeginRecognition()
	assert.ErrorIs(t, err, ErrRecognitionBusy)
}

func TestRecognitionFailureLeavesStateUntouched(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryMeat)
	require.NoError(t, s.UpdateItem(0, FieldName, "Beef"))

	epoch, err := s.BeginRecognition()
	require.NoError(t, err)

	applied := s.CompleteRecognition(epoch, nil, errors.New("upstream timeout"))
	assert.False(t, applied)

	snap := s.Snapshot()
	assert.False(t, snap.Analyzing)
	assert.Equal(t, "upstream timeout", snap.RecognitionErr)
	require.Len(t, snap.Worksheet.Items, 1)
	assert.Equal(t, "Beef", snap.Worksheet.Items[0].Name)
}

func TestRecognitionEmptyResultNotifies(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryMeat)

	epoch, err := s.BeginRecognition()
	require.NoError(t, err)

	applied := s.CompleteRecognition(epoch, &models.ParseResult{}, nil)
	assert.False(t, applied)

	snap := s.Snapshot()
	assert.False(t, snap.Analyzing)
	assert.NotEmpty(t, snap.RecognitionErr)

	// The next attempt starts clean.
	_, err = s.BeginRecognition()
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot().RecognitionErr)
}

func TestStaleRecognitionResultDiscarded(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryMeat)

	epoch, err := s.BeginRecognition()
	require.NoError(t, err)

	// The worker backs out and starts over before the result arrives.
	require.NoError(t, s.BackToCategory())
	require.NoError(t, s.SelectCategory(models.CategoryVegetables, nil))

	applied := s.CompleteRecognition(epoch, &models.ParseResult{
		Items: []models.LineItem{{Name: "Rice"}},
	}, nil)

	assert.False(t, applied)
	snap := s.Snapshot()
	assert.False(t, snap.Analyzing)
	require.Len(t, snap.Worksheet.Items, 1)
	assert.True(t, snap.Worksheet.Items[0].IsBlank())
}

func TestRecognitionResultWhileOnSummaryDiscarded(t *testing.T) {
	s := advanceToWorksheet(t, nil, models.CategoryMeat)
	require.NoError(t, s.UpdateItem(0, FieldName, "Beef"))

	epoch, err := s.BeginRecognition()
	require.NoError(t, err)
	require.NoError(t, s.Review())

	applied := s.CompleteRecognition(epoch, &models.ParseResult{
		Items: []models.LineItem{{Name: "Rice"}},
	}, nil)

	assert.False(t, applied)
	snap := s.Snapshot()
	assert.False(t, snap.Analyzing)
	require.Len(t, snap.Worksheet.Items, 1)
}

func TestSessionManagerLifecycle(t *testing.T) {
	sm := NewSessionManager()

	s := sm.Create()
	got, ok := sm.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	sm.Remove(s.ID())
	_, ok = sm.Get(s.ID())
	assert.False(t, ok)

	_, ok = sm.Get("missing")
	assert.False(t, ok)
}
