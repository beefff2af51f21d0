package models

import "time"

// Category classifies a procurement entry and selects its worksheet template.
type Category string

const (
	CategoryMeat        Category = "Meat"
	CategoryVegetables  Category = "Vegetables"
	CategoryDryGoods    Category = "Dry Goods"
	CategoryAlcohol     Category = "Alcohol"
	CategoryConsumables Category = "Consumables"
	CategoryOther       Category = "Other"
)

// LogStatus tracks the stocking state of a persisted log.
type LogStatus string

const (
	StatusStocked LogStatus = "Stocked"
	StatusPending LogStatus = "Pending"
	StatusIssue   LogStatus = "Issue"
)

// UnknownSupplier is recorded when the worker never filled in a supplier name.
const UnknownSupplier = "未知供应商"

// DailyLog is a finalized procurement record. Immutable once saved; only the
// storage layer may remove it.
type DailyLog struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	Date      time.Time  `bson:"date" json:"date"`
	Category  Category   `bson:"category" json:"category"`
	Supplier  string     `bson:"supplier" json:"supplier"`
	Items     []LineItem `bson:"items" json:"items"`
	TotalCost float64    `bson:"total_cost" json:"totalCost"`
	Notes     string     `bson:"notes" json:"notes"`
	Status    LogStatus  `bson:"status" json:"status"`
}
