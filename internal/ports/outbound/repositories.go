// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/domain/pantry"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shopping"
)

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// RecipeRepository defines the interface for recipe persistence.
// FindByID returns recipe.ErrRecipeNotFound for unknown IDs.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error)

	// FindByOwner lists newest first; limit <= 0 means no limit
	FindByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*recipe.Recipe, error)
	Search(ctx context.Context, criteria RecipeSearchCriteria) ([]*recipe.Recipe, error)
}

// RecipeSearchCriteria defines search parameters for recipes
type RecipeSearchCriteria struct {
	OwnerID      uuid.UUID
	Query        string
	Difficulties []recipe.Difficulty
	MaxPrepTime  *int
	MaxCookTime  *int
	MaxCalories  *float64
	Limit        int
}

// PantryRepository defines the interface for pantry persistence
type PantryRepository interface {
	Create(ctx context.Context, item *pantry.Item) error
	Update(ctx context.Context, item *pantry.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*pantry.Item, error)
	FindByCategory(ctx context.Context, ownerID uuid.UUID, category pantry.Category) ([]*pantry.Item, error)

	// FindExpiringBefore lists items with an expiry date on or before the
	// given time, soonest first.
	FindExpiringBefore(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]*pantry.Item, error)
}

// MealPlanRepository defines the interface for meal plan persistence.
// Entries returned by the Find methods have their recipe attached when it
// still exists.
type MealPlanRepository interface {
	Create(ctx context.Context, entry *mealplan.Entry) error
	Update(ctx context.Context, entry *mealplan.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*mealplan.Entry, error)

	// FindByDateRange lists entries ordered by date, then creation time
	FindByDateRange(ctx context.Context, ownerID uuid.UUID, r mealplan.DateRange) ([]*mealplan.Entry, error)
}

// ShoppingListRepository defines the interface for shopping list persistence
type ShoppingListRepository interface {
	Create(ctx context.Context, list *shopping.List) error
	Update(ctx context.Context, list *shopping.List) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*shopping.List, error)

	// FindByOwner lists newest first; a nil status returns every list
	FindByOwner(ctx context.Context, ownerID uuid.UUID, status *shopping.Status) ([]*shopping.List, error)
}

// GoalRepository defines the interface for goal persistence
type GoalRepository interface {
	Create(ctx context.Context, g *goal.Goal) error
	Update(ctx context.Context, g *goal.Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error)

	// FindByOwner lists newest first
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*goal.Goal, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// NutritionEstimator estimates per-serving nutrition from a recipe's ingredients
type NutritionEstimator interface {
	EstimateNutrition(ctx context.Context, req NutritionEstimateRequest) (recipe.NutritionInfo, error)
}

// NutritionEstimateRequest describes the recipe to estimate
type NutritionEstimateRequest struct {
	Title       string
	Servings    int
	Ingredients []recipe.Ingredient
}
