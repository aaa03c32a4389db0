// Package server wires services, handlers and middleware into the HTTP API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "budgetbuddy/internal/docs" // Register swagger docs
	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/events"
	"budgetbuddy/internal/handlers"
	"budgetbuddy/internal/middleware"
	"budgetbuddy/internal/services"
)

// multipartOverhead is added to the photo body limit for JSON framing and
// multipart headers around the image.
const multipartOverhead = 64 << 10

// Services is the set of business services the API routes to.
type Services struct {
	Users       services.UserServicer
	Categories  services.CategoryServicer
	Budgets     services.BudgetServicer
	Expenses    services.ExpenseServicer
	Dashboard   services.DashboardServicer
	Suggestions services.SuggestionServicer
	Photos      services.PhotoServicer
	Audit       services.AuditServicer
}

// NewServices builds every service on top of one database handle. analyzer
// may be nil when AI is disabled.
func NewServices(db *gorm.DB, publisher events.Publisher, aiEnabled bool, analyzer services.ReceiptAnalyzer) Services {
	categories := services.NewCategoryService(db)
	budgets := services.NewBudgetService(db, publisher)
	expenses := services.NewExpenseService(db, publisher)

	return Services{
		Users:       services.NewUserService(db),
		Categories:  categories,
		Budgets:     budgets,
		Expenses:    expenses,
		Dashboard:   services.NewDashboardService(budgets, expenses, categories),
		Suggestions: services.NewSuggestionService(budgets, expenses),
		Photos:      services.NewPhotoService(aiEnabled, analyzer),
		Audit:       services.NewAuditService(db),
	}
}

// Options carries the startup decisions the router depends on.
type Options struct {
	Tokens        *middleware.TokenIssuer
	AIEnabled     bool
	MaxPhotoBytes int64
}

// NewRouter returns the gin engine serving /api/v1.
func NewRouter(opts Options, svc Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, opts.Tokens, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories, svc.Audit)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit)
	expenseHandler := handlers.NewExpenseHandler(svc.Expenses, svc.Audit)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, svc.Suggestions)
	photoHandler := handlers.NewPhotoHandler(svc.Photos, opts.MaxPhotoBytes)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(opts.Tokens))

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)
	protected.GET("/suggestions", dashboardHandler.GetSuggestions)
	protected.GET("/features", photoHandler.GetFeatures)

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("", budgetHandler.SaveBudget)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.AddExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/recent", expenseHandler.GetRecentExpenses)
	expenses.GET("/export", expenseHandler.ExportExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Base64 grows the payload by a third.
	photos := protected.Group("/photos")
	photos.Use(middleware.RequireFeature(opts.AIEnabled, apperrors.ErrAINotConfigured))
	photos.Use(middleware.LimitBody(opts.MaxPhotoBytes*4/3 + multipartOverhead))
	photos.POST("/analyze", photoHandler.AnalyzePhoto)

	return router
}
