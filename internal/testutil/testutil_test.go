package testutil_test

import (
	"errors"
	"testing"
	"time"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "expense_categories", "budgets", "expenses", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected second database to be empty, got %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a generated ID")
	}

	category := testutil.CreateTestCategory(t, db, user.ID)
	if category.IsDefault {
		t.Error("expected a non-default category")
	}

	budget := testutil.CreateTestBudget(t, db, user.ID, models.TimeframeMonthly, "1000")
	if budget.Amount.String() != "1000" {
		t.Errorf("expected budget amount 1000, got %s", budget.Amount)
	}

	expense := testutil.CreateTestExpense(t, db, user.ID, &category.ID, "12.50", time.Now())
	var stored models.Expense
	if err := db.First(&stored, "id = ?", expense.ID).Error; err != nil {
		t.Fatalf("failed to reload expense: %v", err)
	}
	if stored.Amount.StringFixed(2) != "12.50" {
		t.Errorf("expected amount 12.50, got %s", stored.Amount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := apperrors.Wrap(apperrors.ErrExpenseNotFound, errors.New("boom"))
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

	if !errors.Is(err, apperrors.ErrExpenseNotFound) {
		t.Error("expected wrapped error to match its sentinel")
	}
}
