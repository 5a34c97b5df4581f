package gorm

import (
	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/domain/pantry"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shopping"
)

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	s := r.Snapshot()

	model := &RecipeModel{
		ID:              s.ID,
		OwnerID:         s.OwnerID,
		Title:           s.Title,
		Description:     s.Description,
		Ingredients:     IngredientList(s.Ingredients),
		Instructions:    StringSlice(s.Instructions),
		Servings:        s.Servings,
		Calories:        s.Calories,
		PrepTimeMinutes: s.PrepTime,
		CookTimeMinutes: s.CookTime,
		Difficulty:      string(s.Difficulty),
		Tags:            StringSlice(s.Tags),
		ImageURL:        s.ImageURL,
		Rating:          s.Rating,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}

	if s.Nutrition != nil {
		model.Nutrition = NullNutrition{Info: *s.Nutrition, Valid: true}
	}

	return model
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	var nutrition *recipe.NutritionInfo
	if m.Nutrition.Valid {
		info := m.Nutrition.Info
		nutrition = &info
	}

	return recipe.Rehydrate(recipe.Snapshot{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Description:  m.Description,
		Ingredients:  []recipe.Ingredient(m.Ingredients),
		Instructions: []string(m.Instructions),
		Servings:     m.Servings,
		Calories:     m.Calories,
		Nutrition:    nutrition,
		PrepTime:     m.PrepTimeMinutes,
		CookTime:     m.CookTimeMinutes,
		Difficulty:   recipe.Difficulty(m.Difficulty),
		Tags:         []string(m.Tags),
		ImageURL:     m.ImageURL,
		Rating:       m.Rating,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	})
}

// PantryItemToModel converts a domain pantry item to a GORM model
func PantryItemToModel(i *pantry.Item) *PantryItemModel {
	s := i.Snapshot()
	return &PantryItemModel{
		ID:         s.ID,
		OwnerID:    s.OwnerID,
		Name:       s.Name,
		Quantity:   s.Quantity,
		Unit:       s.Unit,
		Category:   string(s.Category),
		ExpiryDate: s.ExpiryDate,
		PhotoURL:   s.PhotoURL,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ModelToPantryItem converts a GORM model to a domain pantry item
func ModelToPantryItem(m *PantryItemModel) *pantry.Item {
	return pantry.Rehydrate(pantry.Snapshot{
		ID:         m.ID,
		OwnerID:    m.OwnerID,
		Name:       m.Name,
		Quantity:   m.Quantity,
		Unit:       m.Unit,
		Category:   pantry.Category(m.Category),
		ExpiryDate: m.ExpiryDate,
		PhotoURL:   m.PhotoURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	})
}

// MealPlanToModel converts a domain meal plan entry to a GORM model.
// The attached recipe is not written; it is owned by the recipes table.
func MealPlanToModel(e *mealplan.Entry) *MealPlanModel {
	s := e.Snapshot()
	return &MealPlanModel{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		RecipeID:  s.RecipeID,
		Date:      s.Date,
		MealType:  string(s.MealType),
		Servings:  s.Servings,
		Completed: s.Completed,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ModelToMealPlan converts a GORM model to a domain entry, attaching the
// preloaded recipe when the row still has one.
func ModelToMealPlan(m *MealPlanModel) *mealplan.Entry {
	entry := mealplan.Rehydrate(mealplan.Snapshot{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		RecipeID:  m.RecipeID,
		Date:      m.Date,
		MealType:  mealplan.MealType(m.MealType),
		Servings:  m.Servings,
		Completed: m.Completed,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	})

	if m.Recipe != nil {
		entry.AttachRecipe(ModelToRecipe(m.Recipe))
	}

	return entry
}

// ShoppingListToModel converts a domain shopping list to a GORM model
func ShoppingListToModel(l *shopping.List) *ShoppingListModel {
	s := l.Snapshot()
	return &ShoppingListModel{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Items:     ShoppingItemList(s.Items),
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ModelToShoppingList converts a GORM model to a domain shopping list
func ModelToShoppingList(m *ShoppingListModel) *shopping.List {
	return shopping.Rehydrate(shopping.Snapshot{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Items:     []shopping.Item(m.Items),
		Status:    shopping.Status(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	})
}

// GoalToModel converts a domain goal to a GORM model
func GoalToModel(g *goal.Goal) *GoalModel {
	s := g.Snapshot()
	return &GoalModel{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		Type:         string(s.Type),
		TargetValue:  s.TargetValue,
		CurrentValue: s.CurrentValue,
		Unit:         s.Unit,
		Period:       string(s.Period),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ModelToGoal converts a GORM model to a domain goal
func ModelToGoal(m *GoalModel) *goal.Goal {
	return goal.Rehydrate(goal.Snapshot{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Type:         goal.Type(m.Type),
		TargetValue:  m.TargetValue,
		CurrentValue: m.CurrentValue,
		Unit:         m.Unit,
		Period:       goal.Period(m.Period),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	})
}
