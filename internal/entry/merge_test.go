package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restocked/stocklog/internal/domain/models"
)

func TestMergeDropsBlankRowsAndAppends(t *testing.T) {
	ws := Worksheet{
		Items: []models.LineItem{
			{Name: "Beef", Total: 50},
			{Name: ""},
			{Name: "Pork", Total: 30},
		},
	}
	result := models.ParseResult{
		Items: []models.LineItem{
			{Name: "Rice", Total: 20},
			{Name: "Oil", Total: 15},
		},
	}

	merged := Merge(ws, result)

	require.Len(t, merged.Items, 4)
	assert.Equal(t, "Beef", merged.Items[0].Name)
	assert.Equal(t, "Pork", merged.Items[1].Name)
	assert.Equal(t, "Rice", merged.Items[2].Name)
	assert.Equal(t, "Oil", merged.Items[3].Name)
}

func TestMergeManualSupplierWins(t *testing.T) {
	ws := Worksheet{
		Supplier: "ACME",
		Items:    []models.LineItem{{Name: "Beef", Total: 50}},
	}
	result := models.ParseResult{
		Supplier: "OtherCo",
		Items:    []models.LineItem{{Name: "Rice", Total: 20}},
	}

	merged := Merge(ws, result)

	assert.Equal(t, "ACME", merged.Supplier)
	require.Len(t, merged.Items, 2)
	assert.Equal(t, "Beef", merged.Items[0].Name)
	assert.Equal(t, "Rice", merged.Items[1].Name)

	// Merging again with the supplier already set never changes it.
	again := Merge(merged, result)
	assert.Equal(t, "ACME", again.Supplier)
}

func TestMergeAdoptsSupplierAndNotesWhenEmpty(t *testing.T) {
	ws := Worksheet{Items: []models.LineItem{{Name: "Beef"}}}
	result := models.ParseResult{
		Supplier: "城南蔬菜批发市场",
		Notes:    "扫描自小票",
		Items:    []models.LineItem{{Name: "土豆"}},
	}

	merged := Merge(ws, result)

	assert.Equal(t, "城南蔬菜批发市场", merged.Supplier)
	assert.Equal(t, "扫描自小票", merged.Notes)
}

func TestMergeKeepsExistingNotes(t *testing.T) {
	ws := Worksheet{
		Notes: "manual note",
		Items: []models.LineItem{{Name: "Beef"}},
	}
	result := models.ParseResult{Notes: "recognized note"}

	merged := Merge(ws, result)
	assert.Equal(t, "manual note", merged.Notes)
}

func TestMergeNeverDropsNamedRows(t *testing.T) {
	ws := Worksheet{
		Items: []models.LineItem{
			{Name: "Beef"},
			{Name: "Pork"},
		},
	}

	merged := Merge(ws, models.ParseResult{})

	require.Len(t, merged.Items, 2)
	assert.Equal(t, "Beef", merged.Items[0].Name)
	assert.Equal(t, "Pork", merged.Items[1].Name)
}

func TestMergeLeavesInputUntouched(t *testing.T) {
	ws := Worksheet{
		Items: []models.LineItem{
			{Name: ""},
			{Name: "Beef"},
		},
	}

	_ = Merge(ws, models.ParseResult{Items: []models.LineItem{{Name: "Rice"}}})

	require.Len(t, ws.Items, 2)
	assert.Equal(t, "", ws.Items[0].Name)
	assert.Equal(t, "Beef", ws.Items[1].Name)
}
