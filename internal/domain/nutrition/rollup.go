// Package nutrition computes nutrition totals over cooked meals and progress
// toward numeric goals.
package nutrition

import (
	"math"

	"github.com/pantryplan/api/internal/domain/mealplan"
)

// Stats are nutrition totals over completed meal plan entries. Totals are
// rounded to whole units.
type Stats struct {
	TotalCalories      float64 `json:"total_calories"`
	TotalProtein       float64 `json:"total_protein"`
	TotalCarbs         float64 `json:"total_carbs"`
	TotalFat           float64 `json:"total_fat"`
	AvgCaloriesPerMeal float64 `json:"avg_calories_per_meal"`
	MealCount          int     `json:"meal_count"`
}

// Distribution is the share of each macro in percent
type Distribution struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// Rollup sums nutrition over the completed entries that have a resolved
// recipe, scaled by each entry's serving multiplier.
//
// Only recipes with calories count toward MealCount. Macros are added
// whenever the recipe has nutrition info, calories or not. A recipe with
// servings <= 0 fails the call with mealplan.ErrInvalidRecipeServings.
func Rollup(entries []*mealplan.Entry) (Stats, error) {
	var (
		calories, protein, carbs, fat float64
		mealCount                     int
	)

	for _, entry := range entries {
		if entry == nil || !entry.IsCompleted() || entry.Recipe() == nil {
			continue
		}

		multiplier, err := entry.ServingMultiplier()
		if err != nil {
			return Stats{}, err
		}

		r := entry.Recipe()
		if c, ok := r.Calories(); ok {
			calories += c * multiplier
			mealCount++
		}
		if info, ok := r.Nutrition(); ok {
			protein += info.Protein * multiplier
			carbs += info.Carbs * multiplier
			fat += info.Fat * multiplier
		}
	}

	var avg float64
	if mealCount > 0 {
		avg = math.Round(calories / float64(mealCount))
	}

	return Stats{
		TotalCalories:      math.Round(calories),
		TotalProtein:       math.Round(protein),
		TotalCarbs:         math.Round(carbs),
		TotalFat:           math.Round(fat),
		AvgCaloriesPerMeal: avg,
		MealCount:          mealCount,
	}, nil
}

// GoalProgress returns current as a percentage of target, clamped to [0, 100].
// A target <= 0 means no goal and yields 0.
func GoalProgress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Max(0, math.Min(current/target*100, 100))
}

// MacroPercentage returns part as a rounded percentage of sum, or 0 when sum
// is not positive.
func MacroPercentage(part, sum float64) float64 {
	if sum <= 0 {
		return 0
	}
	return math.Round(part / sum * 100)
}

// MacroDistribution splits the rounded macro totals into percentages
func (s Stats) MacroDistribution() Distribution {
	sum := s.TotalProtein + s.TotalCarbs + s.TotalFat
	return Distribution{
		Protein: MacroPercentage(s.TotalProtein, sum),
		Carbs:   MacroPercentage(s.TotalCarbs, sum),
		Fat:     MacroPercentage(s.TotalFat, sum),
	}
}
