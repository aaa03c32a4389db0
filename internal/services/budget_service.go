package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/events"
	"budgetbuddy/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, publisher events.Publisher) BudgetServicer {
	return &budgetService{db: db, publisher: publisher}
}

// SaveBudget sets the user's budget for a timeframe, updating the existing
// row when there is one.
func (s *budgetService) SaveBudget(userID string, timeframe models.Timeframe, amount decimal.Decimal) (*models.Budget, error) {
	if !timeframe.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "timeframe must be weekly or monthly")
	}
	amount, err := normalizeAmount(amount)
	if err != nil {
		return nil, err
	}

	var budget models.Budget
	err = s.db.Where("user_id = ? AND timeframe = ?", userID, timeframe).First(&budget).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{
			UserID:    userID,
			Timeframe: timeframe,
			Amount:    amount,
		}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		if err := s.db.Model(&budget).Update("amount", amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.Amount = amount
	}

	events.Emit(s.publisher, events.New(events.BudgetSaved, userID, budget.ID, map[string]string{
		"timeframe": string(budget.Timeframe),
		"amount":    budget.Amount.StringFixed(2),
	}))

	return &budget, nil
}

// GetBudgets returns the user's budgets, newest first.
func (s *budgetService) GetBudgets(userID string) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}
