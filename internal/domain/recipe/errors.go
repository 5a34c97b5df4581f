package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleRequired             = errors.New("recipe title is required")
	ErrTitleTooLong              = errors.New("recipe title must not exceed 200 characters")
	ErrDescriptionTooLong        = errors.New("recipe description must not exceed 2000 characters")
	ErrInvalidServings           = errors.New("servings must be greater than 0")
	ErrIngredientNameRequired    = errors.New("ingredient name is required")
	ErrInvalidIngredientQuantity = errors.New("ingredient quantity must be greater than 0")
	ErrInvalidNutrition          = errors.New("nutrition values cannot be negative")
	ErrInvalidCalories           = errors.New("calories cannot be negative")
	ErrInvalidTime               = errors.New("prep and cook time cannot be negative")
	ErrInvalidDifficulty         = errors.New("difficulty must be easy, medium or hard")
	ErrInvalidRating             = errors.New("rating must be between 0 and 5")

	// Lookup and permission errors
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("only recipe owner can perform this action")
)
