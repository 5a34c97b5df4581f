package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/ports/inbound"
)

// MealPlanHandlers handles meal plan requests
type MealPlanHandlers struct {
	service inbound.MealPlanService
	logger  *zap.Logger
}

// NewMealPlanHandlers creates meal plan handlers
func NewMealPlanHandlers(service inbound.MealPlanService, logger *zap.Logger) *MealPlanHandlers {
	return &MealPlanHandlers{service: service, logger: logger.Named("mealplan-handlers")}
}

// PlanMealRequest is the body of POST /meal-plans
type PlanMealRequest struct {
	RecipeID string `json:"recipe_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	MealType string `json:"meal_type" binding:"required"`
	Servings int    `json:"servings" binding:"required,gt=0"`
	Notes    string `json:"notes" binding:"max=1000"`
}

// UpdateMealRequest is the body of PUT /meal-plans/:id; omitted fields are kept
type UpdateMealRequest struct {
	Date      *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	MealType  *string `json:"meal_type"`
	Servings  *int    `json:"servings" binding:"omitempty,gt=0"`
	Notes     *string `json:"notes" binding:"omitempty,max=1000"`
	Completed *bool   `json:"is_completed"`
}

// CompleteMealRequest is the optional body of POST /meal-plans/:id/complete.
// Without a value the completion flag is toggled.
type CompleteMealRequest struct {
	Completed *bool `json:"completed"`
}

// GenerateShoppingListRequest is the body of POST /meal-plans/shopping-list
type GenerateShoppingListRequest struct {
	From string `json:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ListRange handles GET /meal-plans
func (h *MealPlanHandlers) ListRange(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	plans, err := h.service.ListRange(c.Request.Context(), userID, from, to)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, plans, "")
}

// ListWeek handles GET /meal-plans/week
func (h *MealPlanHandlers) ListWeek(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	day, err := parseDate("date", c.Query("date"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	week, err := h.service.ListWeek(c.Request.Context(), userID, day)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, week, "")
}

// Export handles GET /meal-plans/export
func (h *MealPlanHandlers) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	text, err := h.service.Export(c.Request.Context(), userID, from, to)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="meal-plan.txt"`)
	c.String(http.StatusOK, text)
}

// GenerateShoppingList handles POST /meal-plans/shopping-list
func (h *MealPlanHandlers) GenerateShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req GenerateShoppingListRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	from, err := parseDate("from", req.From)
	if err != nil {
		_ = c.Error(err)
		return
	}
	to, err := parseDate("to", req.To)
	if err != nil {
		_ = c.Error(err)
		return
	}

	list, err := h.service.GenerateShoppingList(c.Request.Context(), userID, from, to)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, list, "Shopping list generated")
}

// PlanMeal handles POST /meal-plans
func (h *MealPlanHandlers) PlanMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req PlanMealRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		_ = c.Error(err)
		return
	}

	plan, err := h.service.PlanMeal(c.Request.Context(), inbound.PlanMealCommand{
		UserID:   userID,
		RecipeID: uuid.MustParse(req.RecipeID),
		Date:     date,
		MealType: req.MealType,
		Servings: req.Servings,
		Notes:    req.Notes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, plan, "Meal planned")
}

// UpdateMeal handles PUT /meal-plans/:id
func (h *MealPlanHandlers) UpdateMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateMealRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := optionalDate("date", req.Date)
	if err != nil {
		_ = c.Error(err)
		return
	}

	plan, err := h.service.UpdateMeal(c.Request.Context(), inbound.UpdateMealCommand{
		EntryID:   id,
		UserID:    userID,
		Date:      date,
		MealType:  req.MealType,
		Servings:  req.Servings,
		Notes:     req.Notes,
		Completed: req.Completed,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, plan, "Meal updated")
}

// CompleteMeal handles POST /meal-plans/:id/complete
func (h *MealPlanHandlers) CompleteMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CompleteMealRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	plan, err := h.service.SetCompleted(c.Request.Context(), id, userID, req.Completed)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, plan, "")
}

// DeleteMeal handles DELETE /meal-plans/:id
func (h *MealPlanHandlers) DeleteMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMeal(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
