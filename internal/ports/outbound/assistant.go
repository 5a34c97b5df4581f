package outbound

import (
	"context"

	"github.com/pantryplan/api/internal/domain/recipe"
)

// RecipeAssistant is a generative model that drafts recipes and reads photos
type RecipeAssistant interface {
	// GenerateRecipes drafts recipes that use the given ingredients
	GenerateRecipes(ctx context.Context, req RecipeGenerationRequest) ([]GeneratedRecipe, error)
	// SuggestRecipes proposes recipe titles for a free-text query
	SuggestRecipes(ctx context.Context, query string, limit int) ([]string, error)
	// AnalyzeImage lists the food items visible in a photo
	AnalyzeImage(ctx context.Context, req ImageAnalysisRequest) (ImageAnalysis, error)
}

// RecipePreferences narrows generated recipes. Zero values mean no preference.
type RecipePreferences struct {
	Dietary    []string
	Cuisine    string
	MaxMinutes int
	Difficulty recipe.Difficulty
	Servings   int
}

// RecipeGenerationRequest asks for Count recipes built around Ingredients
type RecipeGenerationRequest struct {
	Ingredients []string
	Preferences RecipePreferences
	Count       int
}

// GeneratedRecipe is a recipe draft; it is not persisted
type GeneratedRecipe struct {
	Title        string
	Description  string
	Ingredients  []recipe.Ingredient
	Instructions []string
	PrepTime     int
	CookTime     int
	Difficulty   recipe.Difficulty
	Servings     int
	Calories     float64
}

// ImageAnalysisRequest carries a photo to inspect
type ImageAnalysisRequest struct {
	Image    []byte
	MIMEType string
}

// DetectedItem is one food item recognized in a photo
type DetectedItem struct {
	Name       string
	Confidence float64
	Quantity   float64
	Unit       string
	Category   string
}

// ImageAnalysis is what the model saw in a photo
type ImageAnalysis struct {
	Items       []DetectedItem
	Suggestions []string
}
