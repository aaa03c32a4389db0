package models

import "github.com/shopspring/decimal"

// Timeframe is the budgeting period.
type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// Valid reports whether t is a known timeframe.
func (t Timeframe) Valid() bool {
	return t == TimeframeWeekly || t == TimeframeMonthly
}

// Budget is a spending limit for one timeframe. A user has at most one
// budget per timeframe; the service keeps it that way with an upsert.
type Budget struct {
	Base
	UserID    string          `gorm:"type:uuid;not null;index:idx_budgets_user_timeframe" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount" swaggertype:"string" example:"1000.00"`
	Timeframe Timeframe       `gorm:"size:10;not null;index:idx_budgets_user_timeframe" json:"timeframe" example:"monthly"`
}
