// Package insights turns a user's budgets and expenses into a spending
// analysis and a short list of tips. Everything here is pure: callers load
// the rows, these functions only reduce and classify them.
package insights

import (
	"time"

	"budgetbuddy/internal/models"

	"github.com/shopspring/decimal"
)

// Status is the budget status of a spending analysis.
type Status string

const (
	StatusOver     Status = "over"
	StatusUnder    Status = "under"
	StatusOnTrack  Status = "on-track"
	StatusNoBudget Status = "no-budget"
)

var (
	hundred        = decimal.NewFromInt(100)
	underThreshold = decimal.NewFromInt(70)
	keywordShare   = decimal.NewFromInt(40)
)

// CategoryRef is the part of a category the aggregator needs.
type CategoryRef struct {
	Name string
	Icon string
}

// ExpenseRow is one expense as seen by the aggregator. Category is nil for
// uncategorised expenses.
type ExpenseRow struct {
	Amount   decimal.Decimal
	Category *CategoryRef
}

// CategoryTotal is the accumulated spend of one category.
type CategoryTotal struct {
	Name   string
	Icon   string
	Amount decimal.Decimal
}

// Totals is the result of Aggregate.
type Totals struct {
	Spent decimal.Decimal
	// ByCategory is in the order each category was first seen.
	ByCategory []CategoryTotal
}

// Aggregate sums the rows. The total is exact; categories are keyed by name.
func Aggregate(rows []ExpenseRow) Totals {
	t := Totals{Spent: decimal.Zero}
	index := make(map[string]int)

	for _, r := range rows {
		t.Spent = t.Spent.Add(r.Amount)
		if r.Category == nil {
			continue
		}
		i, ok := index[r.Category.Name]
		if !ok {
			i = len(t.ByCategory)
			index[r.Category.Name] = i
			t.ByCategory = append(t.ByCategory, CategoryTotal{
				Name:   r.Category.Name,
				Icon:   r.Category.Icon,
				Amount: decimal.Zero,
			})
		}
		t.ByCategory[i].Amount = t.ByCategory[i].Amount.Add(r.Amount)
	}
	return t
}

// Top returns the category with the largest positive amount. On ties the
// category seen first wins.
func (t Totals) Top() (CategoryTotal, bool) {
	var (
		best  CategoryTotal
		found bool
	)
	largest := decimal.Zero
	for _, c := range t.ByCategory {
		if c.Amount.GreaterThan(largest) {
			best, largest, found = c, c.Amount, true
		}
	}
	return best, found
}

// PeriodStart returns the civil date the current period starts on: the
// Sunday of this week, or the first of this month.
func PeriodStart(tf models.Timeframe, now time.Time) time.Time {
	y, m, d := now.Date()
	if tf == models.TimeframeWeekly {
		return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	}
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}

// DaysInPeriod returns how many days of the current period have elapsed,
// today included.
func DaysInPeriod(tf models.Timeframe, now time.Time) int {
	if tf == models.TimeframeWeekly {
		return int(now.Weekday()) + 1
	}
	return now.Day()
}

// PrimaryBudget picks the budget the analysis runs against. A monthly budget
// wins over a weekly one. Budgets without a positive amount are ignored.
func PrimaryBudget(budgets []models.Budget) (models.Budget, bool) {
	var weekly *models.Budget
	for i := range budgets {
		b := budgets[i]
		if !b.Amount.IsPositive() {
			continue
		}
		switch b.Timeframe {
		case models.TimeframeMonthly:
			return b, true
		case models.TimeframeWeekly:
			if weekly == nil {
				weekly = &budgets[i]
			}
		}
	}
	if weekly != nil {
		return *weekly, true
	}
	return models.Budget{}, false
}

// Classify compares spend against a positive budget amount. The returned
// overage is set only for StatusOver and the under amount only for
// StatusUnder.
func Classify(spent, budget decimal.Decimal) (status Status, overage, under *decimal.Decimal) {
	// pct > 100 <=> spent > budget; pct < 70 <=> spent*100 < budget*70.
	// Comparing products keeps the boundaries exact.
	switch {
	case spent.GreaterThan(budget):
		o := spent.Sub(budget)
		return StatusOver, &o, nil
	case spent.Mul(hundred).LessThan(budget.Mul(underThreshold)):
		u := budget.Sub(spent)
		return StatusUnder, nil, &u
	default:
		return StatusOnTrack, nil, nil
	}
}

// TopCategory is the largest spending category within the analysed window.
type TopCategory struct {
	Name       string          `json:"name"`
	Icon       string          `json:"icon"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string"`
	Percentage decimal.Decimal `json:"percentage" swaggertype:"string"`
}

// Analysis is the derived view of a user's spending against their budget.
type Analysis struct {
	BudgetStatus      Status           `json:"budget_status"`
	TotalSpent        decimal.Decimal  `json:"total_spent" swaggertype:"string"`
	AverageDailySpend decimal.Decimal  `json:"average_daily_spend" swaggertype:"string"`
	DaysInPeriod      int              `json:"days_in_period"`
	Timeframe         models.Timeframe `json:"timeframe"`
	OverageAmount     *decimal.Decimal `json:"overage_amount,omitempty" swaggertype:"string"`
	UnderAmount       *decimal.Decimal `json:"under_amount,omitempty" swaggertype:"string"`
	TopCategory       *TopCategory     `json:"top_category,omitempty"`
}

// NoBudgetAnalysis is the analysis reported when the user has no budget.
func NoBudgetAnalysis() Analysis {
	return Analysis{
		BudgetStatus:      StatusNoBudget,
		TotalSpent:        decimal.Zero,
		AverageDailySpend: decimal.Zero,
		Timeframe:         models.TimeframeMonthly,
	}
}

// Analyze reduces the expenses of the budget's current period. rows must
// already be limited to that period.
func Analyze(budget models.Budget, rows []ExpenseRow, now time.Time) Analysis {
	totals := Aggregate(rows)
	days := DaysInPeriod(budget.Timeframe, now)

	a := Analysis{
		TotalSpent:        totals.Spent,
		AverageDailySpend: decimal.Zero,
		DaysInPeriod:      days,
		Timeframe:         budget.Timeframe,
	}
	if days > 0 {
		a.AverageDailySpend = totals.Spent.Div(decimal.NewFromInt(int64(days)))
	}
	a.BudgetStatus, a.OverageAmount, a.UnderAmount = Classify(totals.Spent, budget.Amount)

	if top, ok := totals.Top(); ok && totals.Spent.IsPositive() {
		a.TopCategory = &TopCategory{
			Name:       top.Name,
			Icon:       top.Icon,
			Amount:     top.Amount,
			Percentage: top.Amount.Div(totals.Spent).Mul(hundred),
		}
	}
	return a
}
