package server

import (
	"github.com/gin-gonic/gin"

	"github.com/pantryplan/api/internal/infrastructure/config"
	"github.com/pantryplan/api/internal/infrastructure/http/handlers"
	"github.com/pantryplan/api/internal/infrastructure/http/middleware"
	"github.com/pantryplan/api/internal/infrastructure/monitoring"
	"github.com/pantryplan/api/pkg/healthcheck"
)

// Handlers bundles the resource handlers mounted under /api/v1
type Handlers struct {
	Recipes   *handlers.RecipeHandlers
	Pantry    *handlers.PantryHandlers
	MealPlans *handlers.MealPlanHandlers
	Shopping  *handlers.ShoppingHandlers
	Goals     *handlers.GoalHandlers
	Nutrition *handlers.NutritionHandlers
	AI        *handlers.AIHandlers
}

// NewRouter builds the gin engine with the middleware chain and all routes.
// metrics may be nil, which disables request metrics and /metrics.
func NewRouter(
	cfg *config.Config,
	mw *middleware.Middleware,
	h Handlers,
	health *healthcheck.Registry,
	metrics *monitoring.MetricsCollector,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidation()

	r := gin.New()
	_ = r.SetTrustedProxies(cfg.Server.TrustedProxies)

	r.Use(
		mw.RequestID(),
		mw.Recovery(),
		mw.Logger(),
		mw.Tracing(),
		mw.Security(),
		mw.CORS(),
	)
	if metrics != nil && cfg.Monitoring.EnableMetrics {
		r.Use(metrics.HTTPMiddleware())
		r.GET(cfg.Monitoring.MetricsPath, gin.WrapH(metrics.Handler()))
	}
	r.Use(mw.ErrorHandler())

	r.GET("/health", health.Handler())
	r.GET("/health/live", health.LivenessHandler())
	r.GET("/health/ready", health.ReadinessHandler())

	api := r.Group("/api/v1", mw.Auth(), mw.RateLimit())

	recipes := api.Group("/recipes")
	{
		recipes.GET("", h.Recipes.ListRecipes)
		recipes.POST("", h.Recipes.CreateRecipe)
		recipes.GET("/search", h.Recipes.SearchRecipes)
		recipes.GET("/:id", h.Recipes.GetRecipe)
		recipes.PUT("/:id", h.Recipes.UpdateRecipe)
		recipes.DELETE("/:id", h.Recipes.DeleteRecipe)
		recipes.POST("/:id/nutrition/estimate", h.Recipes.EstimateNutrition)
	}

	pantry := api.Group("/pantry")
	{
		pantry.GET("", h.Pantry.ListItems)
		pantry.POST("", h.Pantry.AddItem)
		pantry.GET("/expiring", h.Pantry.ListExpiring)
		pantry.PUT("/:id", h.Pantry.UpdateItem)
		pantry.DELETE("/:id", h.Pantry.DeleteItem)
	}

	plans := api.Group("/meal-plans")
	{
		plans.GET("", h.MealPlans.ListRange)
		plans.POST("", h.MealPlans.PlanMeal)
		plans.GET("/week", h.MealPlans.ListWeek)
		plans.GET("/export", h.MealPlans.Export)
		plans.POST("/shopping-list", h.MealPlans.GenerateShoppingList)
		plans.PUT("/:id", h.MealPlans.UpdateMeal)
		plans.DELETE("/:id", h.MealPlans.DeleteMeal)
		plans.POST("/:id/complete", h.MealPlans.CompleteMeal)
	}

	lists := api.Group("/shopping-lists")
	{
		lists.GET("", h.Shopping.ListLists)
		lists.POST("", h.Shopping.CreateList)
		lists.GET("/summary", h.Shopping.Summary)
		lists.PUT("/:id", h.Shopping.UpdateList)
		lists.DELETE("/:id", h.Shopping.DeleteList)
		lists.POST("/:id/items/:index/toggle", h.Shopping.ToggleItem)
	}

	goals := api.Group("/goals")
	{
		goals.GET("", h.Goals.ListGoals)
		goals.POST("", h.Goals.CreateGoal)
		goals.GET("/summary", h.Goals.Summary)
		goals.PUT("/:id", h.Goals.UpdateGoal)
		goals.DELETE("/:id", h.Goals.DeleteGoal)
		goals.POST("/:id/progress", h.Goals.SetProgress)
		goals.POST("/:id/increment", h.Goals.Increment)
		goals.POST("/:id/decrement", h.Goals.Decrement)
	}

	api.GET("/nutrition/dashboard", h.Nutrition.Dashboard)

	ai := api.Group("/ai")
	{
		ai.POST("/recipes/generate", h.AI.GenerateRecipes)
		ai.GET("/recipes/suggest", h.AI.SuggestRecipes)
		ai.POST("/image/analyze", h.AI.AnalyzeImage)
	}

	return r
}
