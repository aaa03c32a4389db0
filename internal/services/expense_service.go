package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/events"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/pagination"
)

// DefaultRecentExpenses is the number of expenses GetRecentExpenses returns
// when no positive limit is given.
const DefaultRecentExpenses = 5

// expenseService handles expense-related business logic.
type expenseService struct {
	db        *gorm.DB
	publisher events.Publisher
	now       func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, publisher events.Publisher) ExpenseServicer {
	return &expenseService{
		db:        db,
		publisher: publisher,
		now:       time.Now,
	}
}

// civilDate drops the clock part of t, keeping its calendar date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddExpense records a new expense in one of the user's categories. A nil
// date means today.
func (s *expenseService) AddExpense(
	userID string,
	categoryID string,
	amount decimal.Decimal,
	description string,
	date *time.Time,
) (*models.Expense, error) {
	if categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount and category are required")
	}
	amount, err := normalizeAmount(amount)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	day := civilDate(s.now())
	if date != nil && !date.IsZero() {
		day = civilDate(*date)
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		CategoryID:  &category.ID,
		ExpenseDate: datatypes.Date(day),
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expense.Category = &category

	events.Emit(s.publisher, events.New(events.ExpenseCreated, userID, expense.ID, map[string]interface{}{
		"amount":       expense.Amount.StringFixed(2),
		"category_id":  expense.CategoryID,
		"expense_date": day.Format("2006-01-02"),
	}))

	return expense, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// GetRecentExpenses returns the user's latest expenses.
func (s *expenseService) GetRecentExpenses(userID string, limit int) ([]models.Expense, error) {
	if limit <= 0 {
		limit = DefaultRecentExpenses
	}

	var expenses []models.Expense
	if err := s.newestFirst(s.db.Preload("Category").Where("user_id = ?", userID)).
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetUserExpenses returns a page of the user's expenses matching filter.
func (s *expenseService) GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	var totalItems int64
	if err := s.filtered(userID, filter).Model(&models.Expense{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.newestFirst(s.filtered(userID, filter).Preload("Category")).
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page, totalItems)
	return &result, nil
}

// ListExpenses returns every expense matching filter, newest first.
func (s *expenseService) ListExpenses(userID string, filter ExpenseFilter) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.newestFirst(s.filtered(userID, filter).Preload("Category")).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// ExpensesSince returns the expenses dated on or after from.
func (s *expenseService) ExpensesSince(userID string, from time.Time) ([]models.Expense, error) {
	return s.ListExpenses(userID, ExpenseFilter{FromDate: &from})
}

// DeleteExpense deletes an owned expense and returns it as it was.
func (s *expenseService) DeleteExpense(userID, expenseID string) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	result := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrExpenseNotFound
	}

	events.Emit(s.publisher, events.New(events.ExpenseDeleted, userID, expense.ID, map[string]string{
		"amount": expense.Amount.StringFixed(2),
	}))

	return expense, nil
}

func (s *expenseService) filtered(userID string, filter ExpenseFilter) *gorm.DB {
	query := s.db.Where("user_id = ?", userID)
	if filter.FromDate != nil {
		query = query.Where("expense_date >= ?", civilDate(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("expense_date <= ?", civilDate(*filter.ToDate))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	return query
}

func (s *expenseService) newestFirst(query *gorm.DB) *gorm.DB {
	return query.Order("expense_date DESC").Order("created_at DESC")
}
