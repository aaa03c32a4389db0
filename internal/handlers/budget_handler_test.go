package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/services"
)

type mockBudgetService struct {
	saveBudgetFn func(userID string, timeframe models.Timeframe, amount decimal.Decimal) (*models.Budget, error)
	getBudgetsFn func(userID string) ([]models.Budget, error)
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func (m *mockBudgetService) SaveBudget(userID string, timeframe models.Timeframe, amount decimal.Decimal) (*models.Budget, error) {
	if m.saveBudgetFn != nil {
		return m.saveBudgetFn(userID, timeframe, amount)
	}
	return &models.Budget{Base: models.Base{ID: "b1"}, UserID: userID, Timeframe: timeframe, Amount: amount}, nil
}

func (m *mockBudgetService) GetBudgets(userID string) ([]models.Budget, error) {
	if m.getBudgetsFn != nil {
		return m.getBudgetsFn(userID)
	}
	return []models.Budget{}, nil
}

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.PUT("/budgets", handler.SaveBudget)
	auth.GET("/budgets", handler.GetBudgets)
	return r
}

func TestBudgetHandler_SaveBudget(t *testing.T) {
	t.Run("returns 200 with the saved budget", func(t *testing.T) {
		var gotAmount decimal.Decimal
		var gotTimeframe models.Timeframe
		svc := &mockBudgetService{
			saveBudgetFn: func(userID string, tf models.Timeframe, amount decimal.Decimal) (*models.Budget, error) {
				gotTimeframe, gotAmount = tf, amount
				return &models.Budget{Base: models.Base{ID: "b1"}, UserID: userID, Timeframe: tf, Amount: amount}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupBudgetRouter(NewBudgetHandler(svc, audit))

		rec := doRequest(r, "PUT", "/budgets", `{"timeframe":"monthly","amount":"1000.50"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotTimeframe != models.TimeframeMonthly {
			t.Errorf("expected monthly, got %s", gotTimeframe)
		}
		if !gotAmount.Equal(decimal.RequireFromString("1000.50")) {
			t.Errorf("expected 1000.50, got %s", gotAmount)
		}
		result := parseJSON(t, rec)
		if result["message"] != "Monthly budget saved successfully! 🎉" {
			t.Errorf("unexpected message %v", result["message"])
		}
		budget := result["budget"].(map[string]interface{})
		if budget["amount"] != "1000.5" {
			t.Errorf("expected amount string 1000.5, got %v", budget["amount"])
		}
		if got := audit.actions(); len(got) != 1 || got[0] != "SAVE_BUDGET" {
			t.Errorf("expected SAVE_BUDGET audit entry, got %v", got)
		}
	})

	t.Run("accepts numeric amounts", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/budgets", `{"timeframe":"weekly","amount":250}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if msg := parseJSON(t, rec)["message"]; msg != "Weekly budget saved successfully! 🎉" {
			t.Errorf("unexpected message %v", msg)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"invalid timeframe", `{"timeframe":"yearly","amount":"100"}`},
		{"missing timeframe", `{"amount":"100"}`},
		{"zero amount", `{"timeframe":"weekly","amount":"0"}`},
		{"negative amount", `{"timeframe":"weekly","amount":"-5"}`},
		{"non numeric amount", `{"timeframe":"weekly","amount":"lots"}`},
		{"malformed json", `{"timeframe":`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			called := false
			svc := &mockBudgetService{
				saveBudgetFn: func(_ string, _ models.Timeframe, _ decimal.Decimal) (*models.Budget, error) {
					called = true
					return nil, nil
				},
			}
			r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

			rec := doRequest(r, "PUT", "/budgets", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
			if called {
				t.Error("service should not be called on invalid input")
			}
		})
	}

	t.Run("returns 401 without auth", func(t *testing.T) {
		r := gin.New()
		r.PUT("/budgets", NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}).SaveBudget)

		rec := doRequest(r, "PUT", "/budgets", `{"timeframe":"weekly","amount":"100"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("returns budgets", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetsFn: func(userID string) ([]models.Budget, error) {
				return []models.Budget{
					{Base: models.Base{ID: "b2"}, UserID: userID, Timeframe: models.TimeframeMonthly, Amount: decimal.NewFromInt(1000)},
					{Base: models.Base{ID: "b1"}, UserID: userID, Timeframe: models.TimeframeWeekly, Amount: decimal.NewFromInt(100)},
				}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		budgets := parseJSON(t, rec)["budgets"].([]interface{})
		if len(budgets) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(budgets))
		}
		if budgets[0].(map[string]interface{})["timeframe"] != "monthly" {
			t.Errorf("expected service order to be preserved, got %v", budgets[0])
		}
	})

	t.Run("returns 500 on service failure", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetsFn: func(_ string) ([]models.Budget, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
