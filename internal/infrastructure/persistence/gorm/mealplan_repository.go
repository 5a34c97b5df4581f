package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/ports/outbound"
)

// MealPlanRepository implements the meal plan repository interface using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create stores a new entry
func (r *MealPlanRepository) Create(ctx context.Context, entry *mealplan.Entry) error {
	if err := r.db.WithContext(ctx).Omit("Recipe").Create(MealPlanToModel(entry)).Error; err != nil {
		return fmt.Errorf("failed to create meal plan entry: %w", err)
	}
	return nil
}

// Update writes every column of an existing entry
func (r *MealPlanRepository) Update(ctx context.Context, entry *mealplan.Entry) error {
	model := MealPlanToModel(entry)

	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("Recipe").Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update meal plan entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return mealplan.ErrMealPlanNotFound
	}
	return nil
}

// Delete removes an entry by ID
func (r *MealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&MealPlanModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete meal plan entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return mealplan.ErrMealPlanNotFound
	}
	return nil
}

// FindByID finds an entry by ID with its recipe attached
func (r *MealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.Entry, error) {
	var model MealPlanModel
	err := r.db.WithContext(ctx).
		Preload("Recipe").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mealplan.ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("failed to find meal plan entry: %w", err)
	}
	return ModelToMealPlan(&model), nil
}

// FindByDateRange lists an owner's entries between two calendar days inclusive
func (r *MealPlanRepository) FindByDateRange(ctx context.Context, ownerID uuid.UUID, dr mealplan.DateRange) ([]*mealplan.Entry, error) {
	var models []MealPlanModel
	err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, dr.From, dr.To).
		Order("date ASC, created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plan entries: %w", err)
	}

	entries := make([]*mealplan.Entry, len(models))
	for i := range models {
		entries[i] = ModelToMealPlan(&models[i])
	}
	return entries, nil
}
