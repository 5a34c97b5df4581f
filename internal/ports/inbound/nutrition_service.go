package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NutritionService reports nutrition totals over cooked meals
type NutritionService interface {
	// Dashboard rolls up completed meals in [from, to]. Zero times default
	// to the current Monday-based week.
	Dashboard(ctx context.Context, userID uuid.UUID, from, to time.Time) (*NutritionDashboardDTO, error)
}

// NutritionStatsDTO mirrors the rollup result
type NutritionStatsDTO struct {
	TotalCalories      float64 `json:"total_calories"`
	TotalProtein       float64 `json:"total_protein"`
	TotalCarbs         float64 `json:"total_carbs"`
	TotalFat           float64 `json:"total_fat"`
	AvgCaloriesPerMeal float64 `json:"avg_calories_per_meal"`
	MealCount          int     `json:"meal_count"`
}

// MacroDistributionDTO is the percentage split of macros
type MacroDistributionDTO struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// GoalProgressDTO compares a rolled-up total with a goal target
type GoalProgressDTO struct {
	GoalID   uuid.UUID `json:"goal_id"`
	Current  float64   `json:"current"`
	Target   float64   `json:"target"`
	Unit     string    `json:"unit"`
	Progress float64   `json:"progress"`
}

// NutritionDashboardDTO is the nutrition overview for a date range
type NutritionDashboardDTO struct {
	From         string                      `json:"from"`
	To           string                      `json:"to"`
	Stats        NutritionStatsDTO           `json:"stats"`
	Distribution MacroDistributionDTO        `json:"macro_distribution"`
	Goals        map[string]*GoalProgressDTO `json:"goals"`
}
