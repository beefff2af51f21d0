package entry

import "github.com/restocked/stocklog/internal/domain/models"

// Template seeds a fresh worksheet for a category: a habitual supplier, a note
// and the rows usually ordered from them.
type Template struct {
	Supplier string
	Notes    string
	Items    []models.LineItem
}

// TemplateProvider resolves the optional worksheet seed for a category. The
// wizard works fine without one; a missing template just means an empty sheet.
type TemplateProvider interface {
	Template(category models.Category) (Template, bool)
}

// StaticTemplates is a fixed in-memory TemplateProvider.
type StaticTemplates map[models.Category]Template

// Template implements TemplateProvider.
func (s StaticTemplates) Template(category models.Category) (Template, bool) {
	tpl, ok := s[category]
	return tpl, ok
}

// DemoTemplates returns the demo presets used until real per-shop templates
// are sourced from the backend.
func DemoTemplates() StaticTemplates {
	return StaticTemplates{
		models.CategoryMeat: {
			Supplier: "双汇冷鲜肉直供",
			Notes:    "今日五花肉品质不错，已核对重量。",
			Items: []models.LineItem{
				{Name: "精品五花肉", Specification: "带皮", Quantity: 20, Unit: "kg", UnitPrice: 28.5, Total: 570},
				{Name: "猪肋排", Specification: "精修", Quantity: 15, Unit: "kg", UnitPrice: 32.0, Total: 480},
			},
		},
		models.CategoryVegetables: {
			Supplier: "城南蔬菜批发市场",
			Notes:    "土豆这批个头较小。",
			Items: []models.LineItem{
				{Name: "本地土豆", Specification: "黄心", Quantity: 50, Unit: "斤", UnitPrice: 1.2, Total: 60},
				{Name: "青椒", Specification: "薄皮", Quantity: 20, Unit: "斤", UnitPrice: 4.5, Total: 90},
				{Name: "大白菜", Specification: "新鲜", Quantity: 30, Unit: "斤", UnitPrice: 0.8, Total: 24},
			},
		},
		models.CategoryAlcohol: {
			Supplier: "雪花啤酒总代",
			Notes:    "周末备货，增加库存。",
			Items: []models.LineItem{
				{Name: "雪花勇闯天涯", Specification: "500ml*12", Quantity: 50, Unit: "箱", UnitPrice: 38, Total: 1900},
				{Name: "百威纯生", Specification: "330ml*24", Quantity: 20, Unit: "箱", UnitPrice: 120, Total: 2400},
			},
		},
		models.CategoryDryGoods: {
			Supplier: "粮油批发中心",
			Items: []models.LineItem{
				{Name: "金龙鱼大豆油", Specification: "20L/桶", Quantity: 5, Unit: "桶", UnitPrice: 210, Total: 1050},
				{Name: "特一粉", Specification: "25kg", Quantity: 10, Unit: "袋", UnitPrice: 95, Total: 950},
			},
		},
		models.CategoryConsumables: {
			Supplier: "酒店用品城",
			Notes:    "补货一次性用品。",
			Items: []models.LineItem{
				{Name: "抽纸", Specification: "200抽", Quantity: 100, Unit: "包", UnitPrice: 2.5, Total: 250},
				{Name: "洗洁精", Specification: "5kg/桶", Quantity: 4, Unit: "桶", UnitPrice: 15, Total: 60},
			},
		},
	}
}
