package shopping

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/domain/recipe"
)

type AggregatorTestSuite struct {
	suite.Suite
}

func newRecipe(servings int, ingredients ...recipe.Ingredient) *recipe.Recipe {
	return recipe.Rehydrate(recipe.Snapshot{
		ID:          uuid.New(),
		Title:       "Test recipe",
		Servings:    servings,
		Ingredients: ingredients,
	})
}

func newEntry(r *recipe.Recipe, servings int) *mealplan.Entry {
	e := mealplan.Rehydrate(mealplan.Snapshot{
		ID:       uuid.New(),
		RecipeID: r.ID(),
		Date:     time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		MealType: mealplan.MealTypeDinner,
		Servings: servings,
	})
	e.AttachRecipe(r)
	return e
}

func ids(entries ...*mealplan.Entry) IDSet {
	set := NewIDSet()
	for _, e := range entries {
		set[e.ID()] = struct{}{}
	}
	return set
}

func (s *AggregatorTestSuite) TestScaling() {
	flour := recipe.Ingredient{Name: "Flour", Quantity: 200, Unit: "g"}

	s.Run("HalfServings_ShouldHalveQuantity", func() {
		e := newEntry(newRecipe(4, flour), 2)

		items, err := Aggregate([]*mealplan.Entry{e}, ids(e))

		require.NoError(s.T(), err)
		require.Len(s.T(), items, 1)
		assert.Equal(s.T(), Item{Name: "Flour", Quantity: 100, Unit: "g"}, items[0])
	})

	s.Run("MoreServings_ShouldScaleUp", func() {
		e := newEntry(newRecipe(4, flour), 6)

		items, err := Aggregate([]*mealplan.Entry{e}, ids(e))

		require.NoError(s.T(), err)
		assert.Equal(s.T(), 300.0, items[0].Quantity)
	})
}

func (s *AggregatorTestSuite) TestMerge() {
	s.Run("BlankNames_ShouldBeSkipped", func() {
		e := newEntry(newRecipe(1,
			recipe.Ingredient{Name: "   ", Quantity: 1, Unit: "pcs"},
			recipe.Ingredient{Name: "", Quantity: 2, Unit: "g"},
			recipe.Ingredient{Name: "Basil", Quantity: 5, Unit: "g"},
		), 1)

		items, conflicts, err := AggregateWithReport([]*mealplan.Entry{e}, ids(e))

		require.NoError(s.T(), err)
		assert.Empty(s.T(), conflicts)
		require.Len(s.T(), items, 1)
		assert.Equal(s.T(), "Basil", items[0].Name)
	})

	s.Run("CaseAndWhitespaceVariants_ShouldMerge", func() {
		a := newEntry(newRecipe(1, recipe.Ingredient{Name: "Tomato", Quantity: 3, Unit: "pcs"}), 1)
		b := newEntry(newRecipe(1, recipe.Ingredient{Name: "  tomato ", Quantity: 2, Unit: "pcs"}), 1)

		items, conflicts, err := AggregateWithReport([]*mealplan.Entry{a, b}, ids(a, b))

		require.NoError(s.T(), err)
		require.Len(s.T(), items, 1)
		assert.Equal(s.T(), "Tomato", items[0].Name)
		assert.Equal(s.T(), 5.0, items[0].Quantity)
		assert.False(s.T(), items[0].Checked)
		assert.Empty(s.T(), conflicts)
	})

	s.Run("DisplayName_ShouldOnlyCapitalizeFirstCharacter", func() {
		e := newEntry(newRecipe(1, recipe.Ingredient{Name: "OLIVE Oil", Quantity: 1, Unit: "tbsp"}), 1)

		items, err := Aggregate([]*mealplan.Entry{e}, ids(e))

		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Olive oil", items[0].Name)
	})

	s.Run("MixedUnits_ShouldSumAndKeepFirstUnit", func() {
		a := newEntry(newRecipe(1, recipe.Ingredient{Name: "flour", Quantity: 200, Unit: "g"}), 1)
		b := newEntry(newRecipe(1, recipe.Ingredient{Name: "Flour", Quantity: 1, Unit: "cup"}), 1)

		items, conflicts, err := AggregateWithReport([]*mealplan.Entry{a, b}, ids(a, b))

		require.NoError(s.T(), err)
		require.Len(s.T(), items, 1)
		assert.Equal(s.T(), 201.0, items[0].Quantity)
		assert.Equal(s.T(), "g", items[0].Unit)
		require.Len(s.T(), conflicts, 1)
		assert.Equal(s.T(), UnitConflict{Name: "Flour", Units: []string{"g", "cup"}}, conflicts[0])
	})
}

func (s *AggregatorTestSuite) TestOrdering() {
	s.Run("FirstOccurrenceOrder_ShouldBePreserved", func() {
		a := newEntry(newRecipe(1,
			recipe.Ingredient{Name: "zucchini", Quantity: 1, Unit: "pcs"},
			recipe.Ingredient{Name: "apple", Quantity: 2, Unit: "pcs"},
		), 1)
		b := newEntry(newRecipe(1,
			recipe.Ingredient{Name: "milk", Quantity: 1, Unit: "l"},
			recipe.Ingredient{Name: "Zucchini", Quantity: 1, Unit: "pcs"},
		), 1)

		items, err := Aggregate([]*mealplan.Entry{a, b}, ids(a, b))

		require.NoError(s.T(), err)
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}
		assert.Equal(s.T(), []string{"Zucchini", "Apple", "Milk"}, names)
		assert.Equal(s.T(), 2.0, items[0].Quantity)
	})

	s.Run("PermutedEntries_ShouldKeepQuantities", func() {
		a := newEntry(newRecipe(2, recipe.Ingredient{Name: "rice", Quantity: 100, Unit: "g"}), 3)
		b := newEntry(newRecipe(1, recipe.Ingredient{Name: "beans", Quantity: 50, Unit: "g"},
			recipe.Ingredient{Name: "rice", Quantity: 80, Unit: "g"}), 1)

		forward, err := Aggregate([]*mealplan.Entry{a, b}, ids(a, b))
		require.NoError(s.T(), err)
		backward, err := Aggregate([]*mealplan.Entry{b, a}, ids(a, b))
		require.NoError(s.T(), err)

		assert.ElementsMatch(s.T(), forward, backward)
	})
}

func (s *AggregatorTestSuite) TestSelection() {
	r := newRecipe(2, recipe.Ingredient{Name: "egg", Quantity: 2, Unit: "pcs"})
	a, b := newEntry(r, 2), newEntry(r, 4)

	s.Run("EmptySelection_ShouldReturnEmpty", func() {
		items, err := Aggregate([]*mealplan.Entry{a, b}, IDSet{})

		require.NoError(s.T(), err)
		assert.NotNil(s.T(), items)
		assert.Empty(s.T(), items)
	})

	s.Run("NilSelection_ShouldReturnEmpty", func() {
		items, err := Aggregate([]*mealplan.Entry{a, b}, nil)

		require.NoError(s.T(), err)
		assert.Empty(s.T(), items)
	})

	s.Run("UnknownIDs_ShouldBeIgnored", func() {
		items, err := Aggregate([]*mealplan.Entry{a, b}, NewIDSet(b.ID(), uuid.New()))

		require.NoError(s.T(), err)
		require.Len(s.T(), items, 1)
		assert.Equal(s.T(), 4.0, items[0].Quantity)
	})

	s.Run("EntryWithoutRecipe_ShouldBeSkipped", func() {
		orphan := mealplan.Rehydrate(mealplan.Snapshot{ID: uuid.New(), RecipeID: uuid.New(), Servings: 2})

		items, err := Aggregate([]*mealplan.Entry{orphan, a}, ids(orphan, a))

		require.NoError(s.T(), err)
		require.Len(s.T(), items, 1)
		assert.Equal(s.T(), 2.0, items[0].Quantity)
	})
}

func (s *AggregatorTestSuite) TestInvalidRecipeServings() {
	s.Run("ZeroServings_ShouldFailWithoutPartialOutput", func() {
		good := newEntry(newRecipe(2, recipe.Ingredient{Name: "egg", Quantity: 2, Unit: "pcs"}), 2)
		bad := newEntry(newRecipe(0, recipe.Ingredient{Name: "salt", Quantity: 1, Unit: "g"}), 1)

		items, err := Aggregate([]*mealplan.Entry{good, bad}, ids(good, bad))

		assert.ErrorIs(s.T(), err, mealplan.ErrInvalidRecipeServings)
		assert.Nil(s.T(), items)
	})

	s.Run("BadEntryNotSelected_ShouldSucceed", func() {
		good := newEntry(newRecipe(2, recipe.Ingredient{Name: "egg", Quantity: 2, Unit: "pcs"}), 2)
		bad := newEntry(newRecipe(0, recipe.Ingredient{Name: "salt", Quantity: 1, Unit: "g"}), 1)

		items, err := Aggregate([]*mealplan.Entry{good, bad}, ids(good))

		require.NoError(s.T(), err)
		assert.Len(s.T(), items, 1)
	})
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}
