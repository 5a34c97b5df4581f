// Package nutrition provides the nutrition dashboard over cooked meals
package nutrition

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/domain/nutrition"
	"github.com/pantryplan/api/internal/ports/inbound"
	"github.com/pantryplan/api/internal/ports/outbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

var dashboardGoalTypes = []goal.Type{goal.TypeCalories, goal.TypeProtein, goal.TypeCarbs, goal.TypeFat}

// NutritionService implements the nutrition dashboard
type NutritionService struct {
	plans  outbound.MealPlanRepository
	goals  outbound.GoalRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewNutritionService creates a new nutrition service
func NewNutritionService(plans outbound.MealPlanRepository, goals outbound.GoalRepository, logger *zap.Logger) *NutritionService {
	return &NutritionService{
		plans:  plans,
		goals:  goals,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.Named("nutrition-service"),
	}
}

var _ inbound.NutritionService = (*NutritionService)(nil)

// Dashboard rolls up the completed meals of the range and compares the
// totals with the user's macro goals.
func (s *NutritionService) Dashboard(ctx context.Context, userID uuid.UUID, from, to time.Time) (*inbound.NutritionDashboardDTO, error) {
	span, err := s.resolveRange(from, to)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithCause(err)
	}

	entries, err := s.plans.FindByDateRange(ctx, userID, span)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list meal plans", err)
	}

	stats, err := nutrition.Rollup(entries)
	if err != nil {
		if errors.Is(err, mealplan.ErrInvalidRecipeServings) {
			s.logger.Warn("Rollup hit a recipe with invalid servings",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			return nil, apperrors.NewInvalidRecipeServingsError(err)
		}
		return nil, apperrors.Wrap(err, "nutrition rollup failed")
	}

	goals, err := s.goals.FindByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list goals", err)
	}

	dist := stats.MacroDistribution()
	dashboard := &inbound.NutritionDashboardDTO{
		From: span.From.Format(mealplan.DateLayout),
		To:   span.To.Format(mealplan.DateLayout),
		Stats: inbound.NutritionStatsDTO{
			TotalCalories:      stats.TotalCalories,
			TotalProtein:       stats.TotalProtein,
			TotalCarbs:         stats.TotalCarbs,
			TotalFat:           stats.TotalFat,
			AvgCaloriesPerMeal: stats.AvgCaloriesPerMeal,
			MealCount:          stats.MealCount,
		},
		Distribution: inbound.MacroDistributionDTO{
			Protein: dist.Protein,
			Carbs:   dist.Carbs,
			Fat:     dist.Fat,
		},
		Goals: make(map[string]*inbound.GoalProgressDTO),
	}

	for _, t := range dashboardGoalTypes {
		g := goal.FirstOfType(goals, t)
		if g == nil {
			continue
		}
		current := totalFor(stats, t)
		dashboard.Goals[string(t)] = &inbound.GoalProgressDTO{
			GoalID:   g.ID(),
			Current:  current,
			Target:   g.TargetValue(),
			Unit:     g.Unit(),
			Progress: nutrition.GoalProgress(current, g.TargetValue()),
		}
	}

	return dashboard, nil
}

func (s *NutritionService) resolveRange(from, to time.Time) (mealplan.DateRange, error) {
	if from.IsZero() && to.IsZero() {
		return mealplan.WeekOf(s.now()), nil
	}
	if from.IsZero() {
		from = to
	}
	if to.IsZero() {
		to = from
	}
	return mealplan.NewDateRange(from, to)
}

func totalFor(stats nutrition.Stats, t goal.Type) float64 {
	switch t {
	case goal.TypeCalories:
		return stats.TotalCalories
	case goal.TypeProtein:
		return stats.TotalProtein
	case goal.TypeCarbs:
		return stats.TotalCarbs
	case goal.TypeFat:
		return stats.TotalFat
	}
	return 0
}
