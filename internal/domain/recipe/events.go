package recipe

import (
	"time"

	"github.com/google/uuid"
)

// RecipeCreatedEvent is raised when a new recipe is created
type RecipeCreatedEvent struct {
	RecipeID  uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	CreatedAt time.Time
}

func (e RecipeCreatedEvent) EventName() string {
	return "recipe.created"
}

func (e RecipeCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// RecipeUpdatedEvent is raised when a recipe's content changes
type RecipeUpdatedEvent struct {
	RecipeID  uuid.UUID
	UpdatedAt time.Time
}

func (e RecipeUpdatedEvent) EventName() string {
	return "recipe.updated"
}

func (e RecipeUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// NutritionEstimatedEvent is raised when nutrition values are filled in by an estimator
type NutritionEstimatedEvent struct {
	RecipeID    uuid.UUID
	Calories    float64
	EstimatedAt time.Time
}

func (e NutritionEstimatedEvent) EventName() string {
	return "recipe.nutrition.estimated"
}

func (e NutritionEstimatedEvent) OccurredAt() time.Time {
	return e.EstimatedAt
}
