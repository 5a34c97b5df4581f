package mealplan

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryplan/api/internal/domain/recipe"
)

func recipeWithServings(servings int) *recipe.Recipe {
	return recipe.Rehydrate(recipe.Snapshot{ID: uuid.New(), Title: "Stew", Servings: servings})
}

func plannedEntry(r *recipe.Recipe, servings int) *Entry {
	e := Rehydrate(Snapshot{
		ID:       uuid.New(),
		RecipeID: r.ID(),
		Date:     time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		MealType: MealTypeDinner,
		Servings: servings,
	})
	e.AttachRecipe(r)
	return e
}

func TestServingMultiplier(t *testing.T) {
	t.Run("HalfOfRecipe", func(t *testing.T) {
		m, err := plannedEntry(recipeWithServings(4), 2).ServingMultiplier()
		require.NoError(t, err)
		assert.Equal(t, 0.5, m)
	})

	t.Run("OneAndHalfOfRecipe", func(t *testing.T) {
		m, err := plannedEntry(recipeWithServings(4), 6).ServingMultiplier()
		require.NoError(t, err)
		assert.Equal(t, 1.5, m)
	})

	t.Run("ZeroRecipeServings", func(t *testing.T) {
		_, err := plannedEntry(recipeWithServings(0), 2).ServingMultiplier()
		assert.ErrorIs(t, err, ErrInvalidRecipeServings)
	})

	t.Run("NoRecipe", func(t *testing.T) {
		e := Rehydrate(Snapshot{ID: uuid.New(), RecipeID: uuid.New(), Servings: 2})
		_, err := e.ServingMultiplier()
		assert.ErrorIs(t, err, ErrRecipeNotAttached)
	})
}

func TestAttachRecipeIgnoresMismatchedID(t *testing.T) {
	e := Rehydrate(Snapshot{ID: uuid.New(), RecipeID: uuid.New(), Servings: 1})

	e.AttachRecipe(recipeWithServings(2))

	assert.Nil(t, e.Recipe())
}

func TestNewEntryValidation(t *testing.T) {
	owner, recipeID := uuid.New(), uuid.New()
	date := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)

	e, err := New(owner, recipeID, date, MealTypeLunch, 2, " leftovers ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), e.Date())
	assert.Equal(t, "leftovers", e.Notes())
	assert.False(t, e.IsCompleted())

	_, err = New(owner, recipeID, date, MealType("brunch"), 2, "")
	assert.ErrorIs(t, err, ErrInvalidMealType)

	_, err = New(owner, recipeID, date, MealTypeLunch, 0, "")
	assert.ErrorIs(t, err, ErrInvalidServings)

	_, err = New(owner, uuid.Nil, date, MealTypeLunch, 1, "")
	assert.ErrorIs(t, err, ErrMissingRecipe)
}

func TestToggleCompletedRaisesEventOnce(t *testing.T) {
	e := plannedEntry(recipeWithServings(2), 2)

	e.ToggleCompleted()
	e.SetCompleted(true)

	assert.True(t, e.IsCompleted())
	assert.Len(t, e.Events(), 1)

	e.ToggleCompleted()
	assert.False(t, e.IsCompleted())
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want time.Time
	}{
		{"Monday", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"Wednesday", time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"Sunday", time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := WeekOf(tt.day)
			assert.Equal(t, tt.want, week.From)
			assert.Equal(t, tt.want.AddDate(0, 0, 6), week.To)
			assert.Equal(t, 7, week.Days())
			assert.True(t, week.Contains(tt.day))
		})
	}
}

func TestNewDateRangeRejectsReversed(t *testing.T) {
	_, err := NewDateRange(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
