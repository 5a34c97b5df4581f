// Package mapping converts domain aggregates to the DTOs exposed by inbound ports.
package mapping

import (
	"time"

	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/domain/pantry"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shopping"
	"github.com/pantryplan/api/internal/ports/inbound"
)

// RecipeToDTO converts a recipe
func RecipeToDTO(r *recipe.Recipe) *inbound.RecipeDTO {
	if r == nil {
		return nil
	}

	ingredients := make([]inbound.IngredientDTO, 0, len(r.Ingredients()))
	for _, ing := range r.Ingredients() {
		ingredients = append(ingredients, inbound.IngredientDTO{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}

	dto := &inbound.RecipeDTO{
		ID:           r.ID(),
		UserID:       r.OwnerID(),
		Title:        r.Title(),
		Description:  r.Description(),
		Ingredients:  ingredients,
		Instructions: nonNil(r.Instructions()),
		Servings:     r.Servings(),
		PrepTime:     r.PrepTime(),
		CookTime:     r.CookTime(),
		Difficulty:   string(r.Difficulty()),
		Tags:         nonNil(r.Tags()),
		ImageURL:     r.ImageURL(),
		Rating:       r.Rating(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
	if c, ok := r.Calories(); ok {
		dto.Calories = &c
	}
	if n, ok := r.Nutrition(); ok {
		dto.Nutrition = &inbound.NutritionDTO{
			Calories: n.Calories,
			Protein:  n.Protein,
			Carbs:    n.Carbs,
			Fat:      n.Fat,
			Fiber:    n.Fiber,
			Sugar:    n.Sugar,
			Sodium:   n.Sodium,
		}
	}
	return dto
}

// IngredientsFromInput converts command ingredients to domain ingredients
func IngredientsFromInput(in []inbound.IngredientInput) []recipe.Ingredient {
	out := make([]recipe.Ingredient, 0, len(in))
	for _, i := range in {
		out = append(out, recipe.Ingredient{Name: i.Name, Quantity: i.Quantity, Unit: i.Unit})
	}
	return out
}

// NutritionFromInput converts command nutrition to domain nutrition
func NutritionFromInput(in *inbound.NutritionInput) *recipe.NutritionInfo {
	if in == nil {
		return nil
	}
	return &recipe.NutritionInfo{
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
		Fiber:    in.Fiber,
		Sugar:    in.Sugar,
		Sodium:   in.Sodium,
	}
}

// MealPlanToDTO converts a meal plan entry, including its recipe when attached
func MealPlanToDTO(e *mealplan.Entry) *inbound.MealPlanDTO {
	return &inbound.MealPlanDTO{
		ID:          e.ID(),
		UserID:      e.OwnerID(),
		RecipeID:    e.RecipeID(),
		Recipe:      RecipeToDTO(e.Recipe()),
		Date:        e.Date().Format(mealplan.DateLayout),
		MealType:    string(e.MealType()),
		Servings:    e.Servings(),
		IsCompleted: e.IsCompleted(),
		Notes:       e.Notes(),
		CreatedAt:   e.CreatedAt(),
	}
}

// ShoppingListToDTO converts a shopping list
func ShoppingListToDTO(l *shopping.List) *inbound.ShoppingListDTO {
	items := make([]inbound.ShoppingItemDTO, 0, len(l.Items()))
	for _, item := range l.Items() {
		items = append(items, inbound.ShoppingItemDTO{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Checked:  item.Checked,
		})
	}
	return &inbound.ShoppingListDTO{
		ID:        l.ID(),
		UserID:    l.OwnerID(),
		Name:      l.Name(),
		Items:     items,
		Status:    string(l.Status()),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
	}
}

// ShoppingItemsFromInput converts command items to domain items
func ShoppingItemsFromInput(in []inbound.ShoppingItemInput) []shopping.Item {
	out := make([]shopping.Item, 0, len(in))
	for _, i := range in {
		out = append(out, shopping.Item{Name: i.Name, Quantity: i.Quantity, Unit: i.Unit, Checked: i.Checked})
	}
	return out
}

// GoalToDTO converts a goal
func GoalToDTO(g *goal.Goal) *inbound.GoalDTO {
	return &inbound.GoalDTO{
		ID:           g.ID(),
		UserID:       g.OwnerID(),
		GoalType:     string(g.Type()),
		TargetValue:  g.TargetValue(),
		CurrentValue: g.CurrentValue(),
		Unit:         g.Unit(),
		Period:       string(g.Period()),
		Progress:     g.Progress(),
		Completed:    g.IsCompleted(),
		CreatedAt:    g.CreatedAt(),
	}
}

// PantryItemToDTO converts a pantry item; now decides the expired flag
func PantryItemToDTO(i *pantry.Item, now time.Time) *inbound.PantryItemDTO {
	return &inbound.PantryItemDTO{
		ID:         i.ID(),
		UserID:     i.OwnerID(),
		Name:       i.Name(),
		Quantity:   i.Quantity(),
		Unit:       i.Unit(),
		Category:   string(i.Category()),
		ExpiryDate: i.ExpiryDate(),
		Expired:    i.IsExpired(now),
		PhotoURL:   i.PhotoURL(),
		CreatedAt:  i.CreatedAt(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
