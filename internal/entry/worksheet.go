package entry

import (
	"strings"

	"github.com/restocked/stocklog/internal/domain/models"
)

// Worksheet is the editable state of one in-progress procurement entry: the
// supplier, free-form notes and an ordered list of line items. Row order is
// insertion order and is what the screen displays.
type Worksheet struct {
	Category models.Category   `json:"category"`
	Supplier string            `json:"supplier"`
	Notes    string            `json:"notes"`
	Items    []models.LineItem `json:"items"`
}

// NewWorksheet seeds a worksheet for the selected category. With no template
// the sheet starts with a single blank row so the list is never empty.
func NewWorksheet(category models.Category, tpl *Template) Worksheet {
	if tpl != nil && len(tpl.Items) > 0 {
		items := make([]models.LineItem, len(tpl.Items))
		copy(items, tpl.Items)
		return Worksheet{
			Category: category,
			Supplier: tpl.Supplier,
			Notes:    tpl.Notes,
			Items:    items,
		}
	}

	return Worksheet{
		Category: category,
		Items:    []models.LineItem{models.BlankItem()},
	}
}

// AddBlankRow appends one zero-valued row at the end of the list.
func (w *Worksheet) AddBlankRow() {
	w.Items = append(w.Items, models.BlankItem())
}

// Item field identifiers accepted by UpdateField.
const (
	FieldName          = "name"
	FieldSpecification = "specification"
	FieldQuantity      = "quantity"
	FieldUnit          = "unit"
	FieldUnitPrice     = "unitPrice"
)

// UpdateField replaces one field of the row at index. Quantity and unit price
// edits recompute the row subtotal; the subtotal itself is never editable.
// Text fields take the value verbatim, empty string included.
func (w *Worksheet) UpdateField(index int, field, value string) error {
	if index < 0 || index >= len(w.Items) {
		return ErrIndexOutOfRange
	}

	item := w.Items[index]
	switch field {
	case FieldName:
		item.Name = value
	case FieldSpecification:
		item.Specification = value
	case FieldUnit:
		item.Unit = value
	case FieldQuantity:
		item.Quantity = models.ParseAmount(value)
		item.Total = item.Quantity * item.UnitPrice
	case FieldUnitPrice:
		item.UnitPrice = models.ParseAmount(value)
		item.Total = item.Quantity * item.UnitPrice
	default:
		return ErrUnknownField
	}

	w.Items[index] = item
	return nil
}

// RemoveRow deletes the row at index. The worksheet always keeps at least one
// row, so removing the sole remaining one is rejected.
func (w *Worksheet) RemoveRow(index int) error {
	if index < 0 || index >= len(w.Items) {
		return ErrIndexOutOfRange
	}
	if len(w.Items) == 1 {
		return ErrLastRow
	}

	w.Items = append(w.Items[:index], w.Items[index+1:]...)
	return nil
}

// GrandTotal is the running total shown while editing. Blank rows still count;
// they only fall out at submission.
func (w Worksheet) GrandTotal() float64 {
	var total float64
	for _, item := range w.Items {
		total += item.Total
	}
	return total
}

// ValidItems returns a copy of the rows with a non-blank name, preserving order.
// The editable list itself is left untouched.
func (w Worksheet) ValidItems() []models.LineItem {
	valid := make([]models.LineItem, 0, len(w.Items))
	for _, item := range w.Items {
		if !item.IsBlank() {
			valid = append(valid, item)
		}
	}
	return valid
}

// SupplierOrDefault resolves the supplier for persistence, falling back to the
// unknown-supplier sentinel when the field was left blank.
func (w Worksheet) SupplierOrDefault() string {
	if strings.TrimSpace(w.Supplier) == "" {
		return models.UnknownSupplier
	}
	return w.Supplier
}
