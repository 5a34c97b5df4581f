package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/ports/outbound"
)

// GoalRepository implements the goal repository interface using GORM
type GoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) outbound.GoalRepository {
	return &GoalRepository{db: db}
}

// Create stores a new goal
func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	if err := r.db.WithContext(ctx).Create(GoalToModel(g)).Error; err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// Update writes every column of an existing goal
func (r *GoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	model := GoalToModel(g)

	result := r.db.WithContext(ctx).Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update goal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

// Delete removes a goal by ID
func (r *GoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&GoalModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete goal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

// FindByID finds a goal by ID
func (r *GoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	var model GoalModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goal.ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return ModelToGoal(&model), nil
}

// FindByOwner lists an owner's goals, newest first
func (r *GoalRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*goal.Goal, error) {
	var models []GoalModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	goals := make([]*goal.Goal, len(models))
	for i := range models {
		goals[i] = ModelToGoal(&models[i])
	}
	return goals, nil
}
