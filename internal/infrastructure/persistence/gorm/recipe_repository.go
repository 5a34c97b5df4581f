package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	if err := r.db.WithContext(ctx).Create(RecipeToModel(rec)).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update writes every column of an existing recipe
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)

	result := r.db.WithContext(ctx).Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update recipe: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return recipe.ErrRecipeNotFound
	}

	return nil
}

// Delete deletes a recipe by ID
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return recipe.ErrRecipeNotFound
	}

	return nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}

	return ModelToRecipe(&model), nil
}

// FindByIDs loads the recipes that exist among ids; missing IDs are skipped
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return []*recipe.Recipe{}, nil
	}

	var models []RecipeModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}

	return toRecipes(models), nil
}

// FindByOwner lists an owner's recipes, newest first
func (r *RecipeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*recipe.Recipe, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []RecipeModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	return toRecipes(models), nil
}

// Search filters an owner's recipes by text, difficulty, timing and calories
func (r *RecipeRepository) Search(ctx context.Context, criteria outbound.RecipeSearchCriteria) ([]*recipe.Recipe, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("owner_id = ?", criteria.OwnerID)

	if q := strings.TrimSpace(criteria.Query); q != "" {
		searchTerm := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if len(criteria.Difficulties) > 0 {
		difficulties := make([]string, len(criteria.Difficulties))
		for i, d := range criteria.Difficulties {
			difficulties[i] = string(d)
		}
		query = query.Where("difficulty IN ?", difficulties)
	}

	if criteria.MaxPrepTime != nil {
		query = query.Where("prep_time_minutes <= ?", *criteria.MaxPrepTime)
	}

	if criteria.MaxCookTime != nil {
		query = query.Where("cook_time_minutes <= ?", *criteria.MaxCookTime)
	}

	if criteria.MaxCalories != nil {
		query = query.Where("calories IS NOT NULL AND calories <= ?", *criteria.MaxCalories)
	}

	query = query.Order("created_at DESC")
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}

	var models []RecipeModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}

	return toRecipes(models), nil
}

func toRecipes(models []RecipeModel) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes
}
