// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/application/mapping"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shared"
	"github.com/pantryplan/api/internal/ports/inbound"
	"github.com/pantryplan/api/internal/ports/outbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

const defaultCacheTTL = 10 * time.Minute

// Options tunes the recipe service
type Options struct {
	CacheTTL time.Duration
}

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	cache      outbound.CacheRepository
	estimator  outbound.NutritionEstimator
	events     shared.EventDispatcher
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service. estimator may be nil when
// no AI backend is configured.
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	cache outbound.CacheRepository,
	estimator outbound.NutritionEstimator,
	events shared.EventDispatcher,
	opts Options,
	logger *zap.Logger,
) *RecipeService {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RecipeService{
		recipeRepo: recipeRepo,
		cache:      cache,
		estimator:  estimator,
		events:     events,
		cacheTTL:   ttl,
		logger:     logger.Named("recipe-service"),
	}
}

var _ inbound.RecipeService = (*RecipeService)(nil)

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating new recipe",
		zap.String("title", cmd.Title),
		zap.String("user_id", cmd.UserID.String()),
	)

	entity, err := recipe.New(cmd.UserID, cmd.Title, cmd.Description, cmd.Servings, mapping.IngredientsFromInput(cmd.Ingredients))
	if err != nil {
		return nil, translateError(err)
	}

	entity.SetInstructions(cmd.Instructions)
	entity.SetTags(cmd.Tags)
	entity.SetImageURL(cmd.ImageURL)
	if err := entity.SetTimes(cmd.PrepTime, cmd.CookTime); err != nil {
		return nil, translateError(err)
	}
	if cmd.Difficulty != "" {
		d, err := recipe.ParseDifficulty(cmd.Difficulty)
		if err != nil {
			return nil, translateError(err)
		}
		if err := entity.SetDifficulty(d); err != nil {
			return nil, translateError(err)
		}
	}
	if err := entity.SetCalories(cmd.Calories); err != nil {
		return nil, translateError(err)
	}
	if err := entity.SetNutrition(mapping.NutritionFromInput(cmd.Nutrition)); err != nil {
		return nil, translateError(err)
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, apperrors.NewDatabaseError("create recipe", err)
	}
	s.publish(entity)

	dto := mapping.RecipeToDTO(entity)
	s.logger.Info("Recipe created successfully",
		zap.String("recipe_id", dto.ID.String()),
		zap.String("title", dto.Title),
	)
	return dto, nil
}

// UpdateRecipe updates an existing recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Updating recipe",
		zap.String("recipe_id", cmd.RecipeID.String()),
		zap.String("user_id", cmd.UserID.String()),
	)

	entity, err := s.loadOwned(ctx, cmd.RecipeID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(entity, cmd); err != nil {
		return nil, translateError(err)
	}
	entity.MarkUpdated()

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, apperrors.NewDatabaseError("update recipe", err)
	}
	s.invalidate(ctx, entity.ID())
	s.publish(entity)

	return mapping.RecipeToDTO(entity), nil
}

func applyUpdate(entity *recipe.Recipe, cmd inbound.UpdateRecipeCommand) error {
	if cmd.Title != nil || cmd.Description != nil {
		title, description := entity.Title(), entity.Description()
		if cmd.Title != nil {
			title = *cmd.Title
		}
		if cmd.Description != nil {
			description = *cmd.Description
		}
		if err := entity.UpdateDetails(title, description); err != nil {
			return err
		}
	}
	if cmd.Ingredients != nil {
		if err := entity.SetIngredients(mapping.IngredientsFromInput(*cmd.Ingredients)); err != nil {
			return err
		}
	}
	if cmd.Instructions != nil {
		entity.SetInstructions(*cmd.Instructions)
	}
	if cmd.Servings != nil {
		if err := entity.SetServings(*cmd.Servings); err != nil {
			return err
		}
	}
	if cmd.PrepTime != nil || cmd.CookTime != nil {
		prep, cook := entity.PrepTime(), entity.CookTime()
		if cmd.PrepTime != nil {
			prep = *cmd.PrepTime
		}
		if cmd.CookTime != nil {
			cook = *cmd.CookTime
		}
		if err := entity.SetTimes(prep, cook); err != nil {
			return err
		}
	}
	if cmd.Difficulty != nil {
		d, err := recipe.ParseDifficulty(*cmd.Difficulty)
		if err != nil {
			return err
		}
		if err := entity.SetDifficulty(d); err != nil {
			return err
		}
	}
	if cmd.Calories != nil {
		if err := entity.SetCalories(cmd.Calories); err != nil {
			return err
		}
	}
	if cmd.Nutrition != nil {
		if err := entity.SetNutrition(mapping.NutritionFromInput(cmd.Nutrition)); err != nil {
			return err
		}
	}
	if cmd.Tags != nil {
		entity.SetTags(*cmd.Tags)
	}
	if cmd.ImageURL != nil {
		entity.SetImageURL(*cmd.ImageURL)
	}
	return nil
}

// DeleteRecipe deletes a recipe owned by the user
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	entity, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, entity.ID()); err != nil {
		return apperrors.NewDatabaseError("delete recipe", err)
	}
	s.invalidate(ctx, entity.ID())

	s.logger.Info("Recipe deleted", zap.String("recipe_id", recipeID.String()))
	return nil
}

// EstimateNutrition asks the estimator for per-serving nutrition and stores it
func (s *RecipeService) EstimateNutrition(ctx context.Context, recipeID, userID uuid.UUID) (*inbound.RecipeDTO, error) {
	if s.estimator == nil {
		return nil, apperrors.NewServiceUnavailableError("nutrition estimator")
	}

	entity, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if len(entity.Ingredients()) == 0 {
		return nil, apperrors.NewValidationError("recipe has no ingredients to estimate from")
	}

	info, err := s.estimator.EstimateNutrition(ctx, outbound.NutritionEstimateRequest{
		Title:       entity.Title(),
		Servings:    entity.Servings(),
		Ingredients: entity.Ingredients(),
	})
	if err != nil {
		s.logger.Warn("Nutrition estimate failed",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewExternalServiceError("nutrition estimator", err)
	}

	if err := entity.ApplyEstimatedNutrition(info); err != nil {
		return nil, apperrors.NewExternalServiceError("nutrition estimator", err)
	}
	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, apperrors.NewDatabaseError("update recipe", err)
	}
	s.invalidate(ctx, entity.ID())
	s.publish(entity)

	return mapping.RecipeToDTO(entity), nil
}

// GetRecipe returns one recipe, served from cache when possible
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*inbound.RecipeDTO, error) {
	key := cacheKey(recipeID)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var dto inbound.RecipeDTO
		if err := json.Unmarshal(data, &dto); err == nil {
			if dto.UserID != userID {
				return nil, apperrors.NewRecipeNotFoundError(recipeID.String())
			}
			return &dto, nil
		}
	} else if !errors.Is(err, outbound.ErrCacheMiss) {
		s.logger.Warn("Recipe cache read failed", zap.String("key", key), zap.Error(err))
	}

	entity, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}

	dto := mapping.RecipeToDTO(entity)
	if data, err := json.Marshal(dto); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.Warn("Recipe cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return dto, nil
}

// ListRecipes lists the user's recipes, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, limit int) ([]*inbound.RecipeDTO, error) {
	recipes, err := s.recipeRepo.FindByOwner(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list recipes", err)
	}
	return toDTOs(recipes), nil
}

// SearchRecipes filters the user's recipes
func (s *RecipeService) SearchRecipes(ctx context.Context, query inbound.RecipeSearchQuery) ([]*inbound.RecipeDTO, error) {
	criteria := outbound.RecipeSearchCriteria{
		OwnerID:     query.UserID,
		Query:       query.Text,
		MaxPrepTime: query.MaxPrepTime,
		MaxCookTime: query.MaxCookTime,
		MaxCalories: query.MaxCalories,
		Limit:       query.Limit,
	}
	for _, raw := range query.Difficulties {
		d, err := recipe.ParseDifficulty(raw)
		if err != nil {
			return nil, translateError(err)
		}
		criteria.Difficulties = append(criteria.Difficulties, d)
	}

	recipes, err := s.recipeRepo.Search(ctx, criteria)
	if err != nil {
		return nil, apperrors.NewDatabaseError("search recipes", err)
	}
	return toDTOs(recipes), nil
}

func (s *RecipeService) loadOwned(ctx context.Context, recipeID, userID uuid.UUID) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}
	if !entity.IsOwnedBy(userID) {
		return nil, apperrors.NewRecipeNotFoundError(recipeID.String())
	}
	return entity, nil
}

func (s *RecipeService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate recipe cache",
			zap.String("recipe_id", id.String()),
			zap.Error(err),
		)
	}
}

func (s *RecipeService) publish(entity *recipe.Recipe) {
	if err := shared.DispatchAll(s.events, entity); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("recipe:%s", id)
}

func toDTOs(recipes []*recipe.Recipe) []*inbound.RecipeDTO {
	out := make([]*inbound.RecipeDTO, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, mapping.RecipeToDTO(r))
	}
	return out
}

var validationErrors = []error{
	recipe.ErrTitleRequired,
	recipe.ErrTitleTooLong,
	recipe.ErrDescriptionTooLong,
	recipe.ErrInvalidServings,
	recipe.ErrIngredientNameRequired,
	recipe.ErrInvalidIngredientQuantity,
	recipe.ErrInvalidNutrition,
	recipe.ErrInvalidCalories,
	recipe.ErrInvalidTime,
	recipe.ErrInvalidDifficulty,
	recipe.ErrInvalidRating,
}

func translateError(err error) error {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return apperrors.NewValidationError(err.Error()).WithCause(err)
		}
	}
	return apperrors.Wrap(err, "recipe operation failed")
}
