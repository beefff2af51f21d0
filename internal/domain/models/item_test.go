package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "20", 20},
		{"decimal", "28.5", 28.5},
		{"negative", "-3", -3},
		{"zero", "0", 0},
		{"empty", "", 0},
		{"whitespace", "   ", 0},
		{"non-numeric", "abc", 0},
		{"half-typed", "12.", 12},
		{"trailing garbage", "5kg", 0},
		{"nan literal", "NaN", 0},
		{"nan mixed case", "nan", 0},
		{"inf literal", "Inf", 0},
		{"positive inf", "+Inf", 0},
		{"negative inf", "-Inf", 0},
		{"infinity literal", "Infinity", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.input))
		})
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		price    string
		want     float64
	}{
		{"both numeric", "10", "5", 50},
		{"decimals", "20", "28.5", 570},
		{"unparseable quantity", "abc", "5", 0},
		{"unparseable price", "10", "", 0},
		{"both unparseable", "x", "y", 0},
		{"negative quantity", "-2", "10", -20},
		{"zero price", "10", "0", 0},
		{"nan quantity", "NaN", "5", 0},
		{"inf times zero", "Inf", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(tt.quantity, tt.price)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestLineItemIsBlank(t *testing.T) {
	assert.True(t, LineItem{}.IsBlank())
	assert.True(t, LineItem{Name: "   "}.IsBlank())
	assert.False(t, LineItem{Name: "Beef"}.IsBlank())

	// A priced but unnamed row is still a placeholder.
	assert.True(t, LineItem{Quantity: 3, UnitPrice: 7, Total: 21}.IsBlank())
}
