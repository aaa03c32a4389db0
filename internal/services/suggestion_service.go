package services

import (
	"time"

	"budgetbuddy/internal/insights"
	"budgetbuddy/internal/models"
)

// suggestionService loads budgets and expenses and runs them through the
// insights pipeline.
type suggestionService struct {
	budgets  BudgetServicer
	expenses ExpenseServicer
	now      func() time.Time
}

// NewSuggestionService creates a new SuggestionServicer.
func NewSuggestionService(budgets BudgetServicer, expenses ExpenseServicer) SuggestionServicer {
	return &suggestionService{
		budgets:  budgets,
		expenses: expenses,
		now:      time.Now,
	}
}

// GetSuggestions analyses the current period of the user's primary budget
// and returns the analysis with its tips.
func (s *suggestionService) GetSuggestions(userID string) (*SuggestionResult, error) {
	budgets, err := s.budgets.GetBudgets(userID)
	if err != nil {
		return nil, err
	}

	budget, ok := insights.PrimaryBudget(budgets)
	if !ok {
		analysis := insights.NoBudgetAnalysis()
		return &SuggestionResult{Analysis: analysis, Suggestions: insights.Suggest(analysis)}, nil
	}

	now := s.now()
	expenses, err := s.expenses.ExpensesSince(userID, insights.PeriodStart(budget.Timeframe, now))
	if err != nil {
		return nil, err
	}

	analysis := insights.Analyze(budget, expenseRows(expenses), now)
	return &SuggestionResult{Analysis: analysis, Suggestions: insights.Suggest(analysis)}, nil
}

func expenseRows(expenses []models.Expense) []insights.ExpenseRow {
	rows := make([]insights.ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		row := insights.ExpenseRow{Amount: e.Amount}
		if e.Category != nil {
			row.Category = &insights.CategoryRef{Name: e.Category.Name, Icon: e.Category.Icon}
		}
		rows = append(rows, row)
	}
	return rows
}
