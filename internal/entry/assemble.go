package entry

import (
	"time"

	"github.com/restocked/stocklog/internal/domain/models"
)

// Assemble projects the worksheet into an immutable DailyLog ready for storage.
//
// Blank rows are filtered out and the total cost is recomputed over the
// filtered rows, so the persisted figure always matches the persisted items
// even if the running total on screen included placeholders. The zero-items
// guard duplicates the review guard in case summary was reached with stale
// state.
func Assemble(ws Worksheet, category models.Category, now time.Time) (models.DailyLog, error) {
	items := ws.ValidItems()
	if len(items) == 0 {
		return models.DailyLog{}, ErrNoValidItems
	}

	var totalCost float64
	for _, item := range items {
		totalCost += item.Total
	}

	return models.DailyLog{
		Date:      now,
		Category:  category,
		Supplier:  ws.SupplierOrDefault(),
		Items:     items,
		TotalCost: totalCost,
		Notes:     ws.Notes,
		Status:    models.StatusStocked,
	}, nil
}
