package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"budgetbuddy/internal/gemini"
	"budgetbuddy/internal/insights"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	EnsureDefaultCategories(userID string) error
	GetUserCategories(userID string) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	CreateCategory(userID, name, icon, color string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, icon, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	SaveBudget(userID string, timeframe models.Timeframe, amount decimal.Decimal) (*models.Budget, error)
	GetBudgets(userID string) ([]models.Budget, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
// Dates are civil dates; both bounds are inclusive.
type ExpenseFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	AddExpense(userID, categoryID string, amount decimal.Decimal, description string, date *time.Time) (*models.Expense, error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	GetRecentExpenses(userID string, limit int) ([]models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	ListExpenses(userID string, filter ExpenseFilter) ([]models.Expense, error)
	ExpensesSince(userID string, from time.Time) ([]models.Expense, error)
	DeleteExpense(userID, expenseID string) (*models.Expense, error)
}

// Dashboard is the overview shown on the home screen.
type Dashboard struct {
	WeeklyBudget     *models.Budget    `json:"weekly_budget"`
	MonthlyBudget    *models.Budget    `json:"monthly_budget"`
	WeeklySpent      decimal.Decimal   `json:"weekly_spent" swaggertype:"string"`
	MonthlySpent     decimal.Decimal   `json:"monthly_spent" swaggertype:"string"`
	WeeklyRemaining  decimal.Decimal   `json:"weekly_remaining" swaggertype:"string"`
	MonthlyRemaining decimal.Decimal   `json:"monthly_remaining" swaggertype:"string"`
	RecentExpenses   []models.Expense  `json:"recent_expenses"`
	Categories       []models.Category `json:"categories"`
}

// DashboardServicer defines the contract for the dashboard overview.
type DashboardServicer interface {
	GetDashboard(userID string) (*Dashboard, error)
}

// SuggestionResult pairs the spending analysis with the tips derived from it.
type SuggestionResult struct {
	Analysis    insights.Analysis     `json:"analysis"`
	Suggestions []insights.Suggestion `json:"suggestions"`
}

// SuggestionServicer defines the contract for spending suggestions.
type SuggestionServicer interface {
	GetSuggestions(userID string) (*SuggestionResult, error)
}

// PhotoServicer defines the contract for receipt photo analysis.
type PhotoServicer interface {
	Enabled() bool
	AnalyzePhoto(ctx context.Context, image []byte) (*gemini.Receipt, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resource, resourceID, ipAddress string, changes map[string]interface{})
}
