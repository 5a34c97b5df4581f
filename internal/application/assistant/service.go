// Package assistant provides the AI-assisted cooking use cases: recipe drafts
// from what is in the pantry, title suggestions and photo-based pantry entry
package assistant

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/pantry"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/ports/inbound"
	"github.com/pantryplan/api/internal/ports/outbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

const (
	defaultMinConfidence = 0.6
	maxIngredients       = 50
	serviceName          = "recipe assistant"
)

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// RecipeCreator stores recipes on behalf of a user
type RecipeCreator interface {
	CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error)
}

// PantryStock reads and fills a user's pantry
type PantryStock interface {
	AddItem(ctx context.Context, cmd inbound.CreatePantryItemCommand) (*inbound.PantryItemDTO, error)
	ListItems(ctx context.Context, userID uuid.UUID, category string) ([]*inbound.PantryItemDTO, error)
}

// AssistantService implements inbound.AssistantService
type AssistantService struct {
	assistant outbound.RecipeAssistant
	recipes   RecipeCreator
	pantry    PantryStock
	logger    *zap.Logger
}

// NewAssistantService creates the service. assistant may be nil when no AI
// backend is configured; every operation then fails with SERVICE_UNAVAILABLE.
func NewAssistantService(assistant outbound.RecipeAssistant, recipes RecipeCreator, pantry PantryStock, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		assistant: assistant,
		recipes:   recipes,
		pantry:    pantry,
		logger:    logger.Named("assistant-service"),
	}
}

var _ inbound.AssistantService = (*AssistantService)(nil)

// GenerateRecipes drafts recipes from the given ingredients and, on request,
// the user's pantry
func (s *AssistantService) GenerateRecipes(ctx context.Context, cmd inbound.GenerateRecipesCommand) (*inbound.GeneratedRecipesDTO, error) {
	if s.assistant == nil {
		return nil, apperrors.NewServiceUnavailableError(serviceName)
	}

	ingredients := dedupe(cmd.Ingredients)
	if cmd.UsePantry {
		items, err := s.pantry.ListItems(ctx, cmd.UserID, "")
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(items))
		for _, item := range items {
			if !item.Expired && item.Quantity > 0 {
				names = append(names, item.Name)
			}
		}
		ingredients = dedupe(append(ingredients, names...))
	}
	if len(ingredients) == 0 {
		return nil, apperrors.NewValidationError("at least one ingredient is required")
	}
	if len(ingredients) > maxIngredients {
		ingredients = ingredients[:maxIngredients]
	}

	prefs := outbound.RecipePreferences{
		Dietary:    cmd.Preferences.Dietary,
		Cuisine:    strings.TrimSpace(cmd.Preferences.Cuisine),
		MaxMinutes: cmd.Preferences.MaxMinutes,
		Servings:   cmd.Preferences.Servings,
	}
	if cmd.Preferences.Difficulty != "" {
		d, err := recipe.ParseDifficulty(cmd.Preferences.Difficulty)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error()).WithCause(err)
		}
		prefs.Difficulty = d
	}

	drafts, err := s.assistant.GenerateRecipes(ctx, outbound.RecipeGenerationRequest{
		Ingredients: ingredients,
		Preferences: prefs,
		Count:       cmd.Count,
	})
	if err != nil {
		s.logger.Warn("Recipe generation failed",
			zap.String("user_id", cmd.UserID.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewExternalServiceError(serviceName, err)
	}

	result := &inbound.GeneratedRecipesDTO{
		Ingredients: ingredients,
		Recipes:     make([]inbound.GeneratedRecipeDTO, 0, len(drafts)),
	}
	for _, draft := range drafts {
		result.Recipes = append(result.Recipes, draftToDTO(draft))
	}

	if cmd.Save {
		saved, err := s.save(ctx, cmd.UserID, drafts)
		if err != nil {
			return nil, err
		}
		result.Saved = saved
	}

	s.logger.Info("Recipes generated",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("drafts", len(result.Recipes)),
		zap.Int("saved", len(result.Saved)),
	)
	return result, nil
}

// save stores each draft. Drafts the recipe rules reject are skipped.
func (s *AssistantService) save(ctx context.Context, userID uuid.UUID, drafts []outbound.GeneratedRecipe) ([]*inbound.RecipeDTO, error) {
	saved := make([]*inbound.RecipeDTO, 0, len(drafts))
	for _, draft := range drafts {
		cmd := inbound.CreateRecipeCommand{
			UserID:       userID,
			Title:        draft.Title,
			Description:  draft.Description,
			Instructions: draft.Instructions,
			Servings:     draft.Servings,
			PrepTime:     draft.PrepTime,
			CookTime:     draft.CookTime,
			Difficulty:   string(draft.Difficulty),
			Tags:         []string{"ai-generated"},
		}
		for _, ing := range draft.Ingredients {
			cmd.Ingredients = append(cmd.Ingredients, inbound.IngredientInput{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit})
		}
		if draft.Calories > 0 {
			calories := draft.Calories
			cmd.Calories = &calories
		}

		dto, err := s.recipes.CreateRecipe(ctx, cmd)
		if err != nil {
			if apperrors.Is(err, apperrors.CodeValidationFailed) {
				s.logger.Warn("Skipping generated recipe", zap.String("title", draft.Title), zap.Error(err))
				continue
			}
			return nil, err
		}
		saved = append(saved, dto)
	}
	return saved, nil
}

// SuggestRecipes proposes recipe titles for query. A failing model yields an
// empty list rather than an error.
func (s *AssistantService) SuggestRecipes(ctx context.Context, userID uuid.UUID, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query is required")
	}
	if s.assistant == nil {
		return nil, apperrors.NewServiceUnavailableError(serviceName)
	}

	titles, err := s.assistant.SuggestRecipes(ctx, query, limit)
	if err != nil {
		s.logger.Warn("Recipe suggestions unavailable",
			zap.String("user_id", userID.String()),
			zap.String("query", query),
			zap.Error(err),
		)
		return []string{}, nil
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}

// AnalyzeImage detects food items in a photo and optionally stocks them
func (s *AssistantService) AnalyzeImage(ctx context.Context, cmd inbound.AnalyzeImageCommand) (*inbound.ImageAnalysisDTO, error) {
	if len(cmd.Image) == 0 {
		return nil, apperrors.NewValidationError("image is required")
	}
	if len(cmd.Image) > inbound.MaxImageBytes {
		return nil, apperrors.NewValidationError("image exceeds 8 MiB")
	}
	mimeType := strings.ToLower(strings.TrimSpace(cmd.MIMEType))
	if !supportedImageTypes[mimeType] {
		return nil, apperrors.NewValidationError("unsupported image type " + cmd.MIMEType)
	}
	if s.assistant == nil {
		return nil, apperrors.NewServiceUnavailableError(serviceName)
	}

	analysis, err := s.assistant.AnalyzeImage(ctx, outbound.ImageAnalysisRequest{Image: cmd.Image, MIMEType: mimeType})
	if err != nil {
		s.logger.Warn("Image analysis failed",
			zap.String("user_id", cmd.UserID.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewExternalServiceError(serviceName, err)
	}

	result := &inbound.ImageAnalysisDTO{
		Items:       make([]inbound.DetectedItemDTO, 0, len(analysis.Items)),
		Suggestions: analysis.Suggestions,
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	for _, item := range analysis.Items {
		result.Items = append(result.Items, inbound.DetectedItemDTO{
			Name:       item.Name,
			Confidence: item.Confidence,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			Category:   string(categoryOf(item.Category)),
		})
	}

	if cmd.AddToPantry {
		added, err := s.stock(ctx, cmd, result.Items)
		if err != nil {
			return nil, err
		}
		result.Added = added
	}
	return result, nil
}

func (s *AssistantService) stock(ctx context.Context, cmd inbound.AnalyzeImageCommand, items []inbound.DetectedItemDTO) ([]*inbound.PantryItemDTO, error) {
	threshold := cmd.MinConfidence
	if threshold <= 0 {
		threshold = defaultMinConfidence
	}

	added := make([]*inbound.PantryItemDTO, 0, len(items))
	for _, item := range items {
		if item.Confidence < threshold {
			continue
		}
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		dto, err := s.pantry.AddItem(ctx, inbound.CreatePantryItemCommand{
			UserID:   cmd.UserID,
			Name:     item.Name,
			Quantity: quantity,
			Unit:     item.Unit,
			Category: item.Category,
		})
		if err != nil {
			if apperrors.Is(err, apperrors.CodeValidationFailed) {
				s.logger.Warn("Skipping detected item", zap.String("name", item.Name), zap.Error(err))
				continue
			}
			return nil, err
		}
		added = append(added, dto)
	}

	s.logger.Info("Pantry stocked from photo",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("detected", len(items)),
		zap.Int("added", len(added)),
	)
	return added, nil
}

func draftToDTO(r outbound.GeneratedRecipe) inbound.GeneratedRecipeDTO {
	ingredients := make([]inbound.IngredientDTO, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, inbound.IngredientDTO{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit})
	}
	instructions := r.Instructions
	if instructions == nil {
		instructions = []string{}
	}
	return inbound.GeneratedRecipeDTO{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Difficulty:   string(r.Difficulty),
		Servings:     r.Servings,
		Calories:     r.Calories,
	}
}

// categoryOf maps a model-chosen category onto the pantry categories
func categoryOf(raw string) pantry.Category {
	c := pantry.Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return pantry.CategoryOther
	}
	return c
}

// dedupe trims names and drops blanks and case-insensitive repeats
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
