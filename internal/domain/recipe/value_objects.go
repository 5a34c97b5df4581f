package recipe

import (
	"strings"
)

// Ingredient is one line of a recipe's ingredient list. Quantity is expressed
// for the recipe's native serving count.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrIngredientNameRequired
	}
	if i.Quantity <= 0 {
		return ErrInvalidIngredientQuantity
	}
	return nil
}

// NutritionInfo holds per-serving nutrition values. Protein, carbs, fat,
// fiber and sugar are grams; sodium is milligrams.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// Validate rejects negative values.
func (n NutritionInfo) Validate() error {
	for _, v := range []float64{n.Calories, n.Protein, n.Carbs, n.Fat, n.Fiber, n.Sugar, n.Sodium} {
		if v < 0 {
			return ErrInvalidNutrition
		}
	}
	return nil
}

// Difficulty represents how hard a recipe is to cook
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is a known difficulty
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty parses a difficulty name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", ErrInvalidDifficulty
	}
	return d, nil
}
