package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Expense is a single spending record. It is never edited, only deleted.
type Expense struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index:idx_expenses_user_date" json:"user_id"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount" swaggertype:"string" example:"12.50"`
	Description string          `gorm:"not null;default:''" json:"description"`
	ExpenseDate datatypes.Date  `gorm:"not null;index:idx_expenses_user_date" json:"expense_date" swaggertype:"string" example:"2024-03-01T00:00:00Z"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category"`
}
