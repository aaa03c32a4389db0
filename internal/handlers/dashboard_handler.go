package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetbuddy/internal/services"
)

// DashboardHandler serves the home screen overview and the spending tips.
type DashboardHandler struct {
	dashboardService  services.DashboardServicer
	suggestionService services.SuggestionServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, suggestionService services.SuggestionServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, suggestionService: suggestionService}
}

// GetDashboard returns budgets, spend and recent expenses.
// @Summary     Get dashboard
// @Description Weekly and monthly budgets with spend and remaining amounts, the 5 latest expenses and the user's categories
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetSuggestions returns the spending analysis and up to six tips.
// @Summary     Get spending suggestions
// @Description Analyse the current period of the user's budget (monthly wins over weekly) and return rule-based tips
// @Tags        suggestions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SuggestionResult "Analysis and suggestions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /suggestions [get]
func (h *DashboardHandler) GetSuggestions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.suggestionService.GetSuggestions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
