package inbound

import (
	"context"

	"github.com/google/uuid"
)

// MaxImageBytes bounds photos sent for analysis
const MaxImageBytes = 8 << 20

// AssistantService defines the AI-assisted cooking use cases
type AssistantService interface {
	GenerateRecipes(ctx context.Context, cmd GenerateRecipesCommand) (*GeneratedRecipesDTO, error)
	SuggestRecipes(ctx context.Context, userID uuid.UUID, query string, limit int) ([]string, error)
	AnalyzeImage(ctx context.Context, cmd AnalyzeImageCommand) (*ImageAnalysisDTO, error)
}

// RecipePreferencesInput narrows generated recipes
type RecipePreferencesInput struct {
	Dietary    []string `json:"dietary"`
	Cuisine    string   `json:"cuisine"`
	MaxMinutes int      `json:"max_minutes" binding:"gte=0"`
	Difficulty string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Servings   int      `json:"servings" binding:"gte=0"`
}

// GenerateRecipesCommand asks for recipe drafts. With UsePantry the user's
// unexpired pantry items are added to Ingredients. With Save every draft is
// also stored as one of the user's recipes.
type GenerateRecipesCommand struct {
	UserID      uuid.UUID
	Ingredients []string
	UsePantry   bool
	Preferences RecipePreferencesInput
	Count       int
	Save        bool
}

// GeneratedRecipeDTO is an unsaved recipe draft
type GeneratedRecipeDTO struct {
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Ingredients  []IngredientDTO `json:"ingredients"`
	Instructions []string        `json:"instructions"`
	PrepTime     int             `json:"prep_time"`
	CookTime     int             `json:"cook_time"`
	Difficulty   string          `json:"difficulty,omitempty"`
	Servings     int             `json:"servings"`
	Calories     float64         `json:"calories"`
}

// GeneratedRecipesDTO holds the drafts and, when saving, the stored recipes
type GeneratedRecipesDTO struct {
	Ingredients []string             `json:"ingredients"`
	Recipes     []GeneratedRecipeDTO `json:"recipes"`
	Saved       []*RecipeDTO         `json:"saved,omitempty"`
}

// AnalyzeImageCommand carries a photo. With AddToPantry every item detected
// with at least MinConfidence is added to the user's pantry.
type AnalyzeImageCommand struct {
	UserID        uuid.UUID
	Image         []byte
	MIMEType      string
	AddToPantry   bool
	MinConfidence float64
}

// DetectedItemDTO is one food item recognized in a photo
type DetectedItemDTO struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Quantity   float64 `json:"quantity,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	Category   string  `json:"category"`
}

// ImageAnalysisDTO is the result of analyzing a photo
type ImageAnalysisDTO struct {
	Items       []DetectedItemDTO `json:"items"`
	Suggestions []string          `json:"suggestions"`
	Added       []*PantryItemDTO  `json:"added,omitempty"`
}
