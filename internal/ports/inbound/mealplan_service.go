package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MealPlanService defines the use cases for meal planning
type MealPlanService interface {
	PlanMeal(ctx context.Context, cmd PlanMealCommand) (*MealPlanDTO, error)
	UpdateMeal(ctx context.Context, cmd UpdateMealCommand) (*MealPlanDTO, error)
	DeleteMeal(ctx context.Context, entryID, userID uuid.UUID) error
	SetCompleted(ctx context.Context, entryID, userID uuid.UUID, completed *bool) (*MealPlanDTO, error)

	ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*MealPlanDTO, error)
	ListWeek(ctx context.Context, userID uuid.UUID, day time.Time) (*WeekPlanDTO, error)

	// GenerateShoppingList aggregates every pending meal in the range into a
	// new active shopping list.
	GenerateShoppingList(ctx context.Context, userID uuid.UUID, from, to time.Time) (*ShoppingListDTO, error)
	Export(ctx context.Context, userID uuid.UUID, from, to time.Time) (string, error)
}

// PlanMealCommand puts a recipe on the plan
type PlanMealCommand struct {
	UserID   uuid.UUID
	RecipeID uuid.UUID
	Date     time.Time
	MealType string
	Servings int
	Notes    string
}

// UpdateMealCommand changes a planned meal. Nil fields are left unchanged.
type UpdateMealCommand struct {
	EntryID   uuid.UUID
	UserID    uuid.UUID
	Date      *time.Time
	MealType  *string
	Servings  *int
	Notes     *string
	Completed *bool
}

// MealPlanDTO is the API representation of a planned meal
type MealPlanDTO struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	RecipeID    uuid.UUID  `json:"recipe_id"`
	Recipe      *RecipeDTO `json:"recipe,omitempty"`
	Date        string     `json:"date"`
	MealType    string     `json:"meal_type"`
	Servings    int        `json:"servings"`
	IsCompleted bool       `json:"is_completed"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// WeekPlanDTO groups a Monday-based week of meals by date
type WeekPlanDTO struct {
	From  string                    `json:"from"`
	To    string                    `json:"to"`
	Days  map[string][]*MealPlanDTO `json:"days"`
	Meals int                       `json:"meals"`
}
