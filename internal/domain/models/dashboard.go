package models

import "time"

// TrendPoint is one day of aggregated spend for the dashboard chart.
type TrendPoint struct {
	Date time.Time `json:"date"`
	Cost float64   `json:"cost"`
}

// DashboardSummary aggregates the stored logs into the figures shown on the
// home screen.
type DashboardSummary struct {
	TotalSpend    float64      `json:"total_spend"`
	TotalQuantity float64      `json:"total_quantity"`
	SupplierCount int          `json:"supplier_count"`
	LogCount      int          `json:"log_count"`
	Trend         []TrendPoint `json:"trend"`
	GeneratedAt   time.Time    `json:"generated_at"`
	WindowStart   time.Time    `json:"window_start"`
	WindowEnd     time.Time    `json:"window_end"`
}

// DailySpendReport is the nightly snapshot written by the scheduler.
type DailySpendReport struct {
	Date          time.Time `bson:"date" json:"date"`
	LogCount      int       `bson:"log_count" json:"log_count"`
	TotalSpend    float64   `bson:"total_spend" json:"total_spend"`
	SupplierCount int       `bson:"supplier_count" json:"supplier_count"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
