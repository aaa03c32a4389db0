package services

import (
	"github.com/shopspring/decimal"

	apperrors "budgetbuddy/internal/errors"
)

// maxAmount is the largest value a decimal(12,2) amount column holds.
var maxAmount = decimal.RequireFromString("9999999999.99")

// normalizeAmount rounds an amount to cents, the scale it is stored at, and
// checks the rounded value is positive and fits the column.
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if amount.GreaterThan(maxAmount) {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not exceed 9999999999.99")
	}
	return amount, nil
}
