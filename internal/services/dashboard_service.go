package services

import (
	"time"

	"github.com/shopspring/decimal"

	"budgetbuddy/internal/insights"
	"budgetbuddy/internal/models"
)

// dashboardService assembles the home screen overview.
type dashboardService struct {
	budgets    BudgetServicer
	expenses   ExpenseServicer
	categories CategoryServicer
	now        func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(budgets BudgetServicer, expenses ExpenseServicer, categories CategoryServicer) DashboardServicer {
	return &dashboardService{
		budgets:    budgets,
		expenses:   expenses,
		categories: categories,
		now:        time.Now,
	}
}

// GetDashboard returns budgets, spend and remaining amounts for the current
// week and month, the latest expenses and the user's categories.
func (s *dashboardService) GetDashboard(userID string) (*Dashboard, error) {
	categories, err := s.categories.GetUserCategories(userID)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgets.GetBudgets(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	weekStart := insights.PeriodStart(models.TimeframeWeekly, now)
	monthStart := insights.PeriodStart(models.TimeframeMonthly, now)

	// One query covers both windows.
	from := monthStart
	if weekStart.Before(from) {
		from = weekStart
	}
	expenses, err := s.expenses.ExpensesSince(userID, from)
	if err != nil {
		return nil, err
	}

	recent, err := s.expenses.GetRecentExpenses(userID, DefaultRecentExpenses)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		WeeklySpent:    spentSince(expenses, weekStart),
		MonthlySpent:   spentSince(expenses, monthStart),
		RecentExpenses: recent,
		Categories:     categories,
	}
	for i := range budgets {
		b := budgets[i]
		switch {
		case b.Timeframe == models.TimeframeWeekly && d.WeeklyBudget == nil:
			d.WeeklyBudget = &b
		case b.Timeframe == models.TimeframeMonthly && d.MonthlyBudget == nil:
			d.MonthlyBudget = &b
		}
	}
	d.WeeklyRemaining = remaining(d.WeeklyBudget, d.WeeklySpent)
	d.MonthlyRemaining = remaining(d.MonthlyBudget, d.MonthlySpent)

	return d, nil
}

func spentSince(expenses []models.Expense, start time.Time) decimal.Decimal {
	start = civilDate(start)
	total := decimal.Zero
	for _, e := range expenses {
		if civilDate(time.Time(e.ExpenseDate)).Before(start) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total
}

func remaining(budget *models.Budget, spent decimal.Decimal) decimal.Decimal {
	if budget == nil {
		return decimal.Zero
	}
	return budget.Amount.Sub(spent)
}
