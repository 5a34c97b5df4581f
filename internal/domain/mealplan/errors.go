package mealplan

import "errors"

var (
	// ErrInvalidRecipeServings means a planned recipe has servings <= 0, so
	// the serving multiplier is undefined. It is a data defect, not transient.
	ErrInvalidRecipeServings = errors.New("recipe servings must be greater than 0")

	ErrRecipeNotAttached = errors.New("meal plan entry has no resolved recipe")
	ErrInvalidServings   = errors.New("planned servings must be greater than 0")
	ErrInvalidMealType   = errors.New("meal type must be breakfast, lunch, dinner or snack")
	ErrInvalidDateRange  = errors.New("date range end is before its start")
	ErrMissingRecipe     = errors.New("meal plan entry requires a recipe")
	ErrMissingDate       = errors.New("meal plan entry requires a date")
	ErrMealPlanNotFound  = errors.New("meal plan entry not found")
)
