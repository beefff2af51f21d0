package entry

import "github.com/restocked/stocklog/internal/domain/models"

// Merge reconciles a recognition result with the current worksheet.
//
// Recognition augments manual work, it never replaces it: blank placeholder
// rows are dropped, recognized rows are appended after the rows the worker
// already named, and supplier/notes are adopted only when still empty. The
// input worksheet is not modified.
func Merge(ws Worksheet, result models.ParseResult) Worksheet {
	merged := ws

	kept := ws.ValidItems()
	items := make([]models.LineItem, 0, len(kept)+len(result.Items))
	items = append(items, kept...)
	items = append(items, result.Items...)
	merged.Items = items

	if merged.Supplier == "" && result.Supplier != "" {
		merged.Supplier = result.Supplier
	}
	if merged.Notes == "" && result.Notes != "" {
		merged.Notes = result.Notes
	}

	return merged
}
