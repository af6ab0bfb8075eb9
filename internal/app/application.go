package app

import (
	"net/http"

	"github.com/ak/pantry/internal/app/middleware"
	"github.com/ak/pantry/internal/domain/services"
	"github.com/ak/pantry/internal/infrastructure/config"
	"github.com/ak/pantry/internal/infrastructure/database"
	"github.com/ak/pantry/internal/infrastructure/repositories"
	"github.com/ak/pantry/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Application holds all application dependencies and services
type Application struct {
	config      *config.Config
	logger      *logger.Logger
	mongodb     *database.MongoDB
	repos       *repositories.Provider
	households  services.HouseholdService
	stock       services.StockService
	meals       services.MealService
	shopping    services.ShoppingService
	spoonacular services.SpoonacularService
	edamam      services.EdamamService
	jwtConfig   middleware.JWTConfig
	router      *gin.Engine
}

// New creates a new Application instance
func New(cfg *config.Config, log *logger.Logger, mongodb *database.MongoDB) (*Application, error) {
	repos := repositories.NewProvider(mongodb)

	spoonacular := services.NewSpoonacularService(cfg.Spoonacular, log)
	edamam := services.NewEdamamService(cfg.Edamam, log)

	matcher := services.NewMatcherService(spoonacular, log)
	units := services.NewUnitBridge(spoonacular, log)
	reconcile := services.NewReconcileService(repos.Stock, repos.Meal, repos.ShoppingList, matcher, units, log)

	stock := services.NewStockService(repos.Stock, log)

	app := &Application{
		config:      cfg,
		logger:      log,
		mongodb:     mongodb,
		repos:       repos,
		households:  services.NewHouseholdService(repos.Household, repos.User),
		stock:       stock,
		meals:       services.NewMealService(repos.Meal, reconcile, log),
		shopping:    services.NewShoppingService(repos.ShoppingList, stock, log),
		spoonacular: spoonacular,
		edamam:      edamam,
		jwtConfig: middleware.JWTConfig{
			Secret:         cfg.JWT.Secret,
			Issuer:         cfg.JWT.Issuer,
			AccessTokenTTL: cfg.JWT.AccessTokenTTL,
		},
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	app.router = gin.New()

	// Add middleware
	app.router.Use(middleware.RecoveryMiddleware(log.Logger))
	app.router.Use(middleware.RequestIDMiddleware())
	app.router.Use(middleware.LoggerMiddleware(log.Logger))
	app.router.Use(app.corsMiddleware())

	// Setup routes
	app.setupRoutes()

	return app, nil
}

// Router returns the HTTP handler
func (a *Application) Router() http.Handler {
	return a.router
}

// setupRoutes configures all application routes
func (a *Application) setupRoutes() {
	// Health check endpoints
	a.router.GET("/health", a.healthCheck)
	a.router.GET("/ready", a.readinessCheck)

	v1 := a.router.Group("/api/v1")
	{
		// Public info endpoint
		v1.GET("/info", a.apiInfo)

		// Authentication
		auth := v1.Group("/auth")
		{
			auth.POST("/register", a.register)
			auth.POST("/login", a.login)
		}

		// Everything below requires a valid token
		authed := v1.Group("")
		authed.Use(middleware.JWTMiddleware(a.jwtConfig))
		{
			// Account and household membership
			users := authed.Group("/users")
			{
				users.GET("/me", a.currentUser)
				users.PUT("/me/username", a.updateUsername)
				users.POST("/me/household", a.joinHousehold)
			}
			authed.GET("/household/members", a.listMembers)

			// Stock management
			stock := authed.Group("/stock")
			{
				stock.GET("", a.listStock)
				stock.POST("", a.addStock)
				stock.PUT("/:id", a.updateStock)
				stock.DELETE("/:id", a.deleteStock)
			}

			// Meal management and reconciliation flows
			meals := authed.Group("/meals")
			{
				meals.GET("", a.listMeals)
				meals.POST("", a.createMeal)
				meals.GET("/:id", a.getMeal)
				meals.DELETE("/:id", a.deleteMeal)
				meals.POST("/:id/cook/preview", a.cookPreview)
				meals.POST("/:id/cook/commit", a.cookCommit)
				meals.POST("/:id/plan/preview", a.planPreview)
				meals.POST("/:id/plan/commit", a.planCommit)
			}

			// Shopping lists
			shopping := authed.Group("/shopping-list")
			{
				shopping.GET("", a.activeShoppingList)
				shopping.GET("/history", a.shoppingHistory)
				shopping.GET("/:id/items", a.listShoppingItems)
				shopping.POST("/items", a.addShoppingItem)
				shopping.DELETE("/items/:id", a.deleteShoppingItem)
				shopping.POST("/archive", a.archiveShoppingList)
			}

			// Recipe search and ingredient autocomplete
			recipes := authed.Group("/recipes")
			{
				recipes.GET("/search", a.searchRecipes)
				recipes.POST("/plan", a.planRecipe)
			}
			authed.GET("/ingredients/autocomplete", a.autocompleteIngredients)
		}
	}
}

func (a *Application) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
