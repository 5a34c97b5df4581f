// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/domain/pantry"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shopping"
)

// Factory builds domain objects filled with fake data
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory creates a new factory with seeded faker
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// Ingredient returns a random valid ingredient
func (f *Factory) Ingredient() recipe.Ingredient {
	return recipe.Ingredient{
		Name:     f.faker.Vegetable(),
		Quantity: float64(f.faker.Number(1, 500)),
		Unit:     f.faker.RandomString([]string{"g", "ml", "pcs", "tbsp"}),
	}
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	snapshot recipe.Snapshot
}

// NewRecipeBuilder creates a new recipe builder with default values
func (f *Factory) NewRecipeBuilder() *RecipeBuilder {
	now := time.Now().UTC()
	return &RecipeBuilder{snapshot: recipe.Snapshot{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Title:        f.faker.Dinner(),
		Description:  f.faker.Sentence(8),
		Ingredients:  []recipe.Ingredient{f.Ingredient(), f.Ingredient()},
		Instructions: []string{f.faker.Sentence(6), f.faker.Sentence(6)},
		Servings:     4,
		PrepTime:     15,
		CookTime:     30,
		Difficulty:   recipe.DifficultyMedium,
		Tags:         []string{"test"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}}
}

// WithOwner sets the recipe owner
func (b *RecipeBuilder) WithOwner(ownerID uuid.UUID) *RecipeBuilder {
	b.snapshot.OwnerID = ownerID
	return b
}

// WithTitle sets the recipe title
func (b *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	b.snapshot.Title = title
	return b
}

// WithServings sets the native serving count, even a non-positive one
func (b *RecipeBuilder) WithServings(servings int) *RecipeBuilder {
	b.snapshot.Servings = servings
	return b
}

// WithIngredients replaces the ingredients
func (b *RecipeBuilder) WithIngredients(ingredients ...recipe.Ingredient) *RecipeBuilder {
	b.snapshot.Ingredients = ingredients
	return b
}

// WithCalories sets per-serving calories
func (b *RecipeBuilder) WithCalories(calories float64) *RecipeBuilder {
	b.snapshot.Calories = &calories
	return b
}

// WithNutrition sets per-serving nutrition
func (b *RecipeBuilder) WithNutrition(info recipe.NutritionInfo) *RecipeBuilder {
	b.snapshot.Nutrition = &info
	return b
}

// WithDifficulty sets the difficulty
func (b *RecipeBuilder) WithDifficulty(d recipe.Difficulty) *RecipeBuilder {
	b.snapshot.Difficulty = d
	return b
}

// WithDescription sets the description
func (b *RecipeBuilder) WithDescription(description string) *RecipeBuilder {
	b.snapshot.Description = description
	return b
}

// CreatedAt sets both timestamps
func (b *RecipeBuilder) CreatedAt(t time.Time) *RecipeBuilder {
	b.snapshot.CreatedAt = t
	b.snapshot.UpdatedAt = t
	return b
}

// Build rehydrates the recipe without validation
func (b *RecipeBuilder) Build() *recipe.Recipe {
	return recipe.Rehydrate(b.snapshot)
}

// MealPlanEntry plans r for date with the recipe attached
func (f *Factory) MealPlanEntry(r *recipe.Recipe, date time.Time, servings int, completed bool) *mealplan.Entry {
	now := time.Now().UTC()
	e := mealplan.Rehydrate(mealplan.Snapshot{
		ID:        uuid.New(),
		OwnerID:   r.OwnerID(),
		RecipeID:  r.ID(),
		Date:      date,
		MealType:  mealplan.MealType(f.faker.RandomString([]string{"breakfast", "lunch", "dinner", "snack"})),
		Servings:  servings,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	})
	e.AttachRecipe(r)
	return e
}

// Goal builds a goal with the given progress
func (f *Factory) Goal(ownerID uuid.UUID, t goal.Type, target, current float64) *goal.Goal {
	return goal.Rehydrate(goal.Snapshot{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Type:         t,
		TargetValue:  target,
		CurrentValue: current,
		Unit:         t.DefaultUnit(),
		Period:       goal.PeriodDaily,
		CreatedAt:    time.Now().UTC(),
	})
}

// ShoppingList builds an active list with n random items
func (f *Factory) ShoppingList(ownerID uuid.UUID, n int) *shopping.List {
	items := make([]shopping.Item, 0, n)
	for i := 0; i < n; i++ {
		ing := f.Ingredient()
		items = append(items, shopping.Item{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit})
	}
	return shopping.Rehydrate(shopping.Snapshot{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      f.faker.Sentence(3),
		Items:     items,
		Status:    shopping.StatusActive,
		CreatedAt: time.Now().UTC(),
	})
}

// PantryItem builds a pantry item that expires after the given number of days
func (f *Factory) PantryItem(ownerID uuid.UUID, expiresInDays int) *pantry.Item {
	expiry := time.Now().UTC().AddDate(0, 0, expiresInDays)
	return pantry.Rehydrate(pantry.Snapshot{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       f.faker.Fruit(),
		Quantity:   float64(f.faker.Number(1, 10)),
		Unit:       "pcs",
		Category:   pantry.CategoryFruit,
		ExpiryDate: &expiry,
		CreatedAt:  time.Now().UTC(),
	})
}
