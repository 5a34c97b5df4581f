package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/ports/inbound"
)

// RecipeHandlers handles recipe requests
type RecipeHandlers struct {
	service inbound.RecipeService
	logger  *zap.Logger
}

// NewRecipeHandlers creates recipe handlers
func NewRecipeHandlers(service inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{service: service, logger: logger.Named("recipe-handlers")}
}

// CreateRecipeRequest is the body of POST /recipes
type CreateRecipeRequest struct {
	Title        string                    `json:"title" binding:"required,max=200"`
	Description  string                    `json:"description" binding:"max=2000"`
	Ingredients  []inbound.IngredientInput `json:"ingredients" binding:"required,min=1,dive"`
	Instructions []string                  `json:"instructions"`
	Servings     int                       `json:"servings" binding:"required,gt=0"`
	Calories     *float64                  `json:"calories" binding:"omitempty,gte=0"`
	Nutrition    *inbound.NutritionInput   `json:"nutrition"`
	PrepTime     int                       `json:"prep_time" binding:"gte=0"`
	CookTime     int                       `json:"cook_time" binding:"gte=0"`
	Difficulty   string                    `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Tags         []string                  `json:"tags"`
	ImageURL     string                    `json:"image_url" binding:"omitempty,url"`
}

// UpdateRecipeRequest is the body of PUT /recipes/:id; omitted fields are kept
type UpdateRecipeRequest struct {
	Title        *string                    `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string                    `json:"description" binding:"omitempty,max=2000"`
	Ingredients  *[]inbound.IngredientInput `json:"ingredients" binding:"omitempty,min=1,dive"`
	Instructions *[]string                  `json:"instructions"`
	Servings     *int                       `json:"servings" binding:"omitempty,gt=0"`
	Calories     *float64                   `json:"calories" binding:"omitempty,gte=0"`
	Nutrition    *inbound.NutritionInput    `json:"nutrition"`
	PrepTime     *int                       `json:"prep_time" binding:"omitempty,gte=0"`
	CookTime     *int                       `json:"cook_time" binding:"omitempty,gte=0"`
	Difficulty   *string                    `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Tags         *[]string                  `json:"tags"`
	ImageURL     *string                    `json:"image_url" binding:"omitempty,url"`
}

// ListRecipes handles GET /recipes
func (h *RecipeHandlers) ListRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}
	recipes, err := h.service.ListRecipes(c.Request.Context(), userID, n)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, recipes, "")
}

// SearchRecipes handles GET /recipes/search
func (h *RecipeHandlers) SearchRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	query := inbound.RecipeSearchQuery{
		UserID:       userID,
		Text:         c.Query("q"),
		Difficulties: queryList(c, "difficulty"),
	}
	if query.MaxPrepTime, ok = queryInt(c, "max_prep"); !ok {
		return
	}
	if query.MaxCookTime, ok = queryInt(c, "max_cook"); !ok {
		return
	}
	if query.MaxCalories, ok = queryFloat(c, "max_calories"); !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	if limit != nil {
		query.Limit = *limit
	}

	recipes, err := h.service.SearchRecipes(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, recipes, "")
}

// CreateRecipe handles POST /recipes
func (h *RecipeHandlers) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.service.CreateRecipe(c.Request.Context(), inbound.CreateRecipeCommand{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Servings:     req.Servings,
		Calories:     req.Calories,
		Nutrition:    req.Nutrition,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Difficulty:   req.Difficulty,
		Tags:         req.Tags,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, recipe, "Recipe created successfully")
}

// GetRecipe handles GET /recipes/:id
func (h *RecipeHandlers) GetRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.service.GetRecipe(c.Request.Context(), id, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, recipe, "")
}

// UpdateRecipe handles PUT /recipes/:id
func (h *RecipeHandlers) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.service.UpdateRecipe(c.Request.Context(), inbound.UpdateRecipeCommand{
		RecipeID:     id,
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Servings:     req.Servings,
		Calories:     req.Calories,
		Nutrition:    req.Nutrition,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Difficulty:   req.Difficulty,
		Tags:         req.Tags,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, recipe, "Recipe updated successfully")
}

// DeleteRecipe handles DELETE /recipes/:id
func (h *RecipeHandlers) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}

// EstimateNutrition handles POST /recipes/:id/nutrition/estimate
func (h *RecipeHandlers) EstimateNutrition(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.service.EstimateNutrition(c.Request.Context(), id, userID)
	if err != nil {
		h.logger.Debug("Nutrition estimate failed", zap.String("recipe_id", id.String()), zap.Error(err))
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, recipe, "Nutrition estimated")
}
