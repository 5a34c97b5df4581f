package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for Recipe entity
type RecipeTestSuite struct {
	suite.Suite
	ownerID     uuid.UUID
	ingredients []Ingredient
}

func (suite *RecipeTestSuite) SetupTest() {
	suite.ownerID = uuid.New()
	suite.ingredients = []Ingredient{
		{Name: "Flour", Quantity: 200, Unit: "g"},
		{Name: "Milk", Quantity: 300, Unit: "ml"},
	}
}

func (suite *RecipeTestSuite) TestRecipeCreation() {
	suite.Run("ValidRecipe_ShouldCreateSuccessfully", func() {
		// Act
		r, err := New(suite.ownerID, "  Pancakes ", "Fluffy", 4, suite.ingredients)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Pancakes", r.Title())
		assert.Equal(suite.T(), 4, r.Servings())
		assert.NotEqual(suite.T(), uuid.Nil, r.ID())
		assert.True(suite.T(), r.IsOwnedBy(suite.ownerID))
		assert.Equal(suite.T(), DifficultyEasy, r.Difficulty())

		events := r.Events()
		require.Len(suite.T(), events, 1)
		created, ok := events[0].(RecipeCreatedEvent)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), r.ID(), created.RecipeID)
	})

	suite.Run("ZeroServings_ShouldReturnError", func() {
		r, err := New(suite.ownerID, "Pancakes", "", 0, suite.ingredients)

		assert.ErrorIs(suite.T(), err, ErrInvalidServings)
		assert.Nil(suite.T(), r)
	})

	suite.Run("NegativeServings_ShouldReturnError", func() {
		_, err := New(suite.ownerID, "Pancakes", "", -2, suite.ingredients)

		assert.ErrorIs(suite.T(), err, ErrInvalidServings)
	})

	suite.Run("EmptyTitle_ShouldReturnError", func() {
		_, err := New(suite.ownerID, "   ", "", 2, suite.ingredients)

		assert.ErrorIs(suite.T(), err, ErrTitleRequired)
	})

	suite.Run("IngredientWithoutQuantity_ShouldReturnError", func() {
		_, err := New(suite.ownerID, "Pancakes", "", 2, []Ingredient{{Name: "Egg", Quantity: 0}})

		assert.ErrorIs(suite.T(), err, ErrInvalidIngredientQuantity)
	})

	suite.Run("IngredientWithoutName_ShouldReturnError", func() {
		_, err := New(suite.ownerID, "Pancakes", "", 2, []Ingredient{{Name: " ", Quantity: 1}})

		assert.ErrorIs(suite.T(), err, ErrIngredientNameRequired)
	})
}

func (suite *RecipeTestSuite) TestRehydrate() {
	suite.Run("NonPositiveServings_ShouldBeKept", func() {
		r := Rehydrate(Snapshot{ID: uuid.New(), Title: "Broken", Servings: 0})

		assert.Equal(suite.T(), 0, r.Servings())
		assert.Empty(suite.T(), r.Events())
	})

	suite.Run("SnapshotRoundTrip_ShouldPreserveOptionalFields", func() {
		r, err := New(suite.ownerID, "Soup", "", 2, suite.ingredients)
		require.NoError(suite.T(), err)
		calories := 350.0
		require.NoError(suite.T(), r.SetCalories(&calories))

		restored := Rehydrate(r.Snapshot())

		got, ok := restored.Calories()
		assert.True(suite.T(), ok)
		assert.Equal(suite.T(), 350.0, got)
		_, hasNutrition := restored.Nutrition()
		assert.False(suite.T(), hasNutrition)
		assert.Equal(suite.T(), r.Ingredients(), restored.Ingredients())
	})
}

func (suite *RecipeTestSuite) TestMutations() {
	suite.Run("SetTags_ShouldNormalize", func() {
		r, _ := New(suite.ownerID, "Salad", "", 1, nil)

		r.SetTags([]string{"Vegan", " vegan ", "", "Quick"})

		assert.Equal(suite.T(), []string{"vegan", "quick"}, r.Tags())
	})

	suite.Run("SetTimes_Negative_ShouldReturnError", func() {
		r, _ := New(suite.ownerID, "Salad", "", 1, nil)

		assert.ErrorIs(suite.T(), r.SetTimes(-1, 10), ErrInvalidTime)
	})

	suite.Run("SetCalories_Negative_ShouldReturnError", func() {
		r, _ := New(suite.ownerID, "Salad", "", 1, nil)
		negative := -5.0

		assert.ErrorIs(suite.T(), r.SetCalories(&negative), ErrInvalidCalories)
	})

	suite.Run("ApplyEstimatedNutrition_ShouldFillMissingCalories", func() {
		r, _ := New(suite.ownerID, "Salad", "", 1, nil)
		r.ClearEvents()

		err := r.ApplyEstimatedNutrition(NutritionInfo{Calories: 420, Protein: 12, Carbs: 40, Fat: 20})

		require.NoError(suite.T(), err)
		calories, ok := r.Calories()
		assert.True(suite.T(), ok)
		assert.Equal(suite.T(), 420.0, calories)
		info, ok := r.Nutrition()
		assert.True(suite.T(), ok)
		assert.Equal(suite.T(), 12.0, info.Protein)
		require.Len(suite.T(), r.Events(), 1)
	})

	suite.Run("ApplyEstimatedNutrition_ShouldKeepExistingCalories", func() {
		r, _ := New(suite.ownerID, "Salad", "", 1, nil)
		existing := 300.0
		require.NoError(suite.T(), r.SetCalories(&existing))

		require.NoError(suite.T(), r.ApplyEstimatedNutrition(NutritionInfo{Calories: 500}))

		calories, _ := r.Calories()
		assert.Equal(suite.T(), 300.0, calories)
	})
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	_, err = ParseDifficulty("extreme")
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}
