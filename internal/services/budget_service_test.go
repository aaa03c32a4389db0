package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"budgetbuddy/internal/events"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/testutil"
)

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Name
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSaveBudget(t *testing.T) {
	t.Run("creates_then_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pub := &recordingPublisher{}
		svc := NewBudgetService(db, pub)
		user := testutil.CreateTestUser(t, db)

		first, err := svc.SaveBudget(user.ID, models.TimeframeMonthly, dec("1000"))
		testutil.AssertNoError(t, err)

		second, err := svc.SaveBudget(user.ID, models.TimeframeMonthly, dec("1200.50"))
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected the same budget row, got %s and %s", first.ID, second.ID)
		}
		if !second.Amount.Equal(dec("1200.50")) {
			t.Errorf("expected amount 1200.50, got %s", second.Amount)
		}

		var count int64
		db.Model(&models.Budget{}).Where("user_id = ? AND timeframe = ?", user.ID, models.TimeframeMonthly).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 monthly budget, got %d", count)
		}

		if got := pub.names(); len(got) != 2 || got[0] != events.BudgetSaved {
			t.Errorf("expected two budget.saved events, got %v", got)
		}
	})

	t.Run("one_per_timeframe", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, events.NopPublisher{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveBudget(user.ID, models.TimeframeWeekly, dec("200"))
		testutil.AssertNoError(t, err)
		_, err = svc.SaveBudget(user.ID, models.TimeframeMonthly, dec("800"))
		testutil.AssertNoError(t, err)

		budgets, err := svc.GetBudgets(user.ID)
		testutil.AssertNoError(t, err)
		if len(budgets) != 2 {
			t.Errorf("expected 2 budgets, got %d", len(budgets))
		}
	})

	t.Run("publish_failure_is_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, &recordingPublisher{err: errors.New("broker down")})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveBudget(user.ID, models.TimeframeWeekly, dec("200"))
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, nil)
		user := testutil.CreateTestUser(t, db)

		tests := []struct {
			name      string
			timeframe models.Timeframe
			amount    string
		}{
			{"zero_amount", models.TimeframeMonthly, "0"},
			{"negative_amount", models.TimeframeWeekly, "-5"},
			{"rounds_to_zero", models.TimeframeMonthly, "0.001"},
			{"exceeds_column", models.TimeframeMonthly, "10000000000"},
			{"unknown_timeframe", models.Timeframe("yearly"), "100"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.SaveBudget(user.ID, tt.timeframe, dec(tt.amount))
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			})
		}
	})
}

func TestSaveBudget_RoundsToCents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db, nil)
	user := testutil.CreateTestUser(t, db)

	saved, err := svc.SaveBudget(user.ID, models.TimeframeWeekly, dec("250.005"))
	testutil.AssertNoError(t, err)
	if !saved.Amount.Equal(dec("250.01")) {
		t.Errorf("expected 250.01, got %s", saved.Amount)
	}

	var stored models.Budget
	if err := db.First(&stored, "id = ?", saved.ID).Error; err != nil {
		t.Fatalf("load budget: %v", err)
	}
	if !stored.Amount.Equal(saved.Amount) {
		t.Errorf("expected stored amount %s, got %s", saved.Amount, stored.Amount)
	}
}

func TestGetBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db, nil)
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)

	testutil.CreateTestBudget(t, db, alice.ID, models.TimeframeWeekly, "100")
	newest := testutil.CreateTestBudget(t, db, alice.ID, models.TimeframeMonthly, "400")
	testutil.CreateTestBudget(t, db, bob.ID, models.TimeframeMonthly, "999")

	budgets, err := svc.GetBudgets(alice.ID)
	testutil.AssertNoError(t, err)

	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}
	if budgets[0].ID != newest.ID {
		t.Errorf("expected newest budget first, got %s", budgets[0].Timeframe)
	}
}
