// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipeService defines the use cases for recipe management
type RecipeService interface {
	// Commands
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error
	EstimateNutrition(ctx context.Context, recipeID, userID uuid.UUID) (*RecipeDTO, error)

	// Queries
	GetRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, userID uuid.UUID, limit int) ([]*RecipeDTO, error)
	SearchRecipes(ctx context.Context, query RecipeSearchQuery) ([]*RecipeDTO, error)
}

// IngredientInput is one ingredient line of a command
type IngredientInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit"`
}

// NutritionInput carries per-serving nutrition values
type NutritionInput struct {
	Calories float64 `json:"calories" binding:"gte=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
	Fiber    float64 `json:"fiber" binding:"gte=0"`
	Sugar    float64 `json:"sugar" binding:"gte=0"`
	Sodium   float64 `json:"sodium" binding:"gte=0"`
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	UserID       uuid.UUID
	Title        string
	Description  string
	Ingredients  []IngredientInput
	Instructions []string
	Servings     int
	Calories     *float64
	Nutrition    *NutritionInput
	PrepTime     int
	CookTime     int
	Difficulty   string
	Tags         []string
	ImageURL     string
}

// UpdateRecipeCommand contains data for updating a recipe. Nil fields are left unchanged.
type UpdateRecipeCommand struct {
	RecipeID     uuid.UUID
	UserID       uuid.UUID
	Title        *string
	Description  *string
	Ingredients  *[]IngredientInput
	Instructions *[]string
	Servings     *int
	Calories     *float64
	Nutrition    *NutritionInput
	PrepTime     *int
	CookTime     *int
	Difficulty   *string
	Tags         *[]string
	ImageURL     *string
}

// RecipeSearchQuery filters a user's recipes
type RecipeSearchQuery struct {
	UserID       uuid.UUID
	Text         string
	Difficulties []string
	MaxPrepTime  *int
	MaxCookTime  *int
	MaxCalories  *float64
	Limit        int
}

// RecipeDTO is the API representation of a recipe
type RecipeDTO struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Ingredients  []IngredientDTO `json:"ingredients"`
	Instructions []string        `json:"instructions"`
	Servings     int             `json:"servings"`
	Calories     *float64        `json:"calories,omitempty"`
	Nutrition    *NutritionDTO   `json:"nutrition,omitempty"`
	PrepTime     int             `json:"prep_time"`
	CookTime     int             `json:"cook_time"`
	Difficulty   string          `json:"difficulty"`
	Tags         []string        `json:"tags"`
	ImageURL     string          `json:"image_url,omitempty"`
	Rating       float64         `json:"rating"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IngredientDTO is the API representation of an ingredient
type IngredientDTO struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// NutritionDTO is the API representation of nutrition values
type NutritionDTO struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}
