package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// SaveBudgetRequest represents the request payload for setting a budget.
type SaveBudgetRequest struct {
	Timeframe models.Timeframe `json:"timeframe" binding:"required,timeframe" example:"monthly"`
	Amount    decimal.Decimal  `json:"amount" binding:"required,gt=0" swaggertype:"string" example:"1000.00"`
}

// SaveBudget sets the budget for a timeframe, replacing the previous amount.
// @Summary     Save a budget
// @Description Create or update the weekly or monthly budget. A user has at most one budget per timeframe.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SaveBudgetRequest true "Budget details"
// @Success     200 {object} map[string]interface{} "Saved budget and message"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [put]
func (h *BudgetHandler) SaveBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SaveBudget(userID, req.Timeframe, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SAVE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"timeframe": budget.Timeframe, "amount": budget.Amount.StringFixed(2)})

	c.JSON(http.StatusOK, gin.H{
		"budget":  budget,
		"message": budgetSavedMessage(budget.Timeframe),
	})
}

// budgetSavedMessage returns e.g. "Monthly budget saved successfully! 🎉".
func budgetSavedMessage(tf models.Timeframe) string {
	name := string(tf)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name + " budget saved successfully! 🎉"
}

// GetBudgets handles listing budgets for the authenticated user.
// @Summary     Get budgets
// @Description Get the user's budgets, newest first
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Budget "Budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.GetBudgets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}
