package models

import (
	"math"
	"strconv"
	"strings"
)

// LineItem is one row of a procurement worksheet.
type LineItem struct {
	Name          string  `bson:"name" json:"name"`
	Specification string  `bson:"specification" json:"specification"`
	Quantity      float64 `bson:"quantity" json:"quantity"`
	Unit          string  `bson:"unit" json:"unit"`
	UnitPrice     float64 `bson:"unit_price" json:"unitPrice"`
	Total         float64 `bson:"total" json:"total"` // Quantity * UnitPrice
}

// BlankItem returns a zero-valued row ready for manual entry.
func BlankItem() LineItem {
	return LineItem{}
}

// IsBlank reports whether the row is a placeholder the user never named.
func (i LineItem) IsBlank() bool {
	return strings.TrimSpace(i.Name) == ""
}

// ParseAmount converts user input to a number. Entry fields arrive as free text
// from a mobile keyboard, so anything unparseable reads as 0 rather than an error.
func ParseAmount(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	// ParseFloat accepts "NaN" and "Inf" literals; neither is a usable amount,
	// and NaN would make every snapshot unserializable.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ComputeTotal derives a row subtotal from raw quantity and unit price input.
// The result is always a defined number, even mid-typing.
func ComputeTotal(quantity, unitPrice string) float64 {
	return ParseAmount(quantity) * ParseAmount(unitPrice)
}
