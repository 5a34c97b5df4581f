// Package mealplan provides the application layer for meal planning and
// shopping-list generation from planned meals.
package mealplan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/application/mapping"
	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shared"
	"github.com/pantryplan/api/internal/domain/shopping"
	"github.com/pantryplan/api/internal/ports/inbound"
	"github.com/pantryplan/api/internal/ports/outbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

// MealPlanService implements the meal planning use cases
type MealPlanService struct {
	plans   outbound.MealPlanRepository
	recipes outbound.RecipeRepository
	lists   outbound.ShoppingListRepository
	events  shared.EventDispatcher
	now     func() time.Time
	logger  *zap.Logger
}

// NewMealPlanService creates a new meal plan service
func NewMealPlanService(
	plans outbound.MealPlanRepository,
	recipes outbound.RecipeRepository,
	lists outbound.ShoppingListRepository,
	events shared.EventDispatcher,
	logger *zap.Logger,
) *MealPlanService {
	return &MealPlanService{
		plans:   plans,
		recipes: recipes,
		lists:   lists,
		events:  events,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger.Named("mealplan-service"),
	}
}

var _ inbound.MealPlanService = (*MealPlanService)(nil)

// PlanMeal puts one of the user's recipes on the plan
func (s *MealPlanService) PlanMeal(ctx context.Context, cmd inbound.PlanMealCommand) (*inbound.MealPlanDTO, error) {
	mealType, err := mealplan.ParseMealType(cmd.MealType)
	if err != nil {
		return nil, translateError(err)
	}

	r, err := s.recipes.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(cmd.RecipeID.String())
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}
	if !r.IsOwnedBy(cmd.UserID) {
		return nil, apperrors.NewRecipeNotFoundError(cmd.RecipeID.String())
	}

	entry, err := mealplan.New(cmd.UserID, cmd.RecipeID, cmd.Date, mealType, cmd.Servings, cmd.Notes)
	if err != nil {
		return nil, translateError(err)
	}
	entry.AttachRecipe(r)

	if err := s.plans.Create(ctx, entry); err != nil {
		return nil, apperrors.NewDatabaseError("create meal plan", err)
	}
	s.publish(entry)

	s.logger.Info("Meal planned",
		zap.String("entry_id", entry.ID().String()),
		zap.String("recipe_id", cmd.RecipeID.String()),
		zap.String("date", entry.Date().Format(mealplan.DateLayout)),
		zap.String("meal_type", string(mealType)),
	)
	return mapping.MealPlanToDTO(entry), nil
}

// UpdateMeal changes a planned meal
func (s *MealPlanService) UpdateMeal(ctx context.Context, cmd inbound.UpdateMealCommand) (*inbound.MealPlanDTO, error) {
	entry, err := s.loadOwned(ctx, cmd.EntryID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Date != nil {
		if err := entry.Reschedule(*cmd.Date); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.MealType != nil {
		m, err := mealplan.ParseMealType(*cmd.MealType)
		if err != nil {
			return nil, translateError(err)
		}
		if err := entry.SetMealType(m); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.Servings != nil {
		if err := entry.SetServings(*cmd.Servings); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.Notes != nil {
		entry.SetNotes(*cmd.Notes)
	}
	if cmd.Completed != nil {
		entry.SetCompleted(*cmd.Completed)
	}

	if err := s.plans.Update(ctx, entry); err != nil {
		return nil, apperrors.NewDatabaseError("update meal plan", err)
	}
	s.publish(entry)
	return mapping.MealPlanToDTO(entry), nil
}

// DeleteMeal removes a planned meal
func (s *MealPlanService) DeleteMeal(ctx context.Context, entryID, userID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, entryID, userID); err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, entryID); err != nil {
		return apperrors.NewDatabaseError("delete meal plan", err)
	}
	return nil
}

// SetCompleted marks a meal as cooked or not. A nil flag toggles it.
func (s *MealPlanService) SetCompleted(ctx context.Context, entryID, userID uuid.UUID, completed *bool) (*inbound.MealPlanDTO, error) {
	entry, err := s.loadOwned(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}

	if completed == nil {
		entry.ToggleCompleted()
	} else {
		entry.SetCompleted(*completed)
	}

	if err := s.plans.Update(ctx, entry); err != nil {
		return nil, apperrors.NewDatabaseError("update meal plan", err)
	}
	s.publish(entry)
	return mapping.MealPlanToDTO(entry), nil
}

// ListRange lists planned meals between from and to, inclusive
func (s *MealPlanService) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*inbound.MealPlanDTO, error) {
	entries, err := s.entriesInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]*inbound.MealPlanDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, mapping.MealPlanToDTO(e))
	}
	return out, nil
}

// ListWeek returns the Monday-based week containing day, grouped by date
func (s *MealPlanService) ListWeek(ctx context.Context, userID uuid.UUID, day time.Time) (*inbound.WeekPlanDTO, error) {
	if day.IsZero() {
		day = s.now()
	}
	week := mealplan.WeekOf(day)

	entries, err := s.plans.FindByDateRange(ctx, userID, week)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list meal plans", err)
	}

	plan := &inbound.WeekPlanDTO{
		From:  week.From.Format(mealplan.DateLayout),
		To:    week.To.Format(mealplan.DateLayout),
		Days:  make(map[string][]*inbound.MealPlanDTO, 7),
		Meals: len(entries),
	}
	for d := week.From; !d.After(week.To); d = d.AddDate(0, 0, 1) {
		plan.Days[d.Format(mealplan.DateLayout)] = []*inbound.MealPlanDTO{}
	}
	for _, e := range entries {
		key := e.Date().Format(mealplan.DateLayout)
		plan.Days[key] = append(plan.Days[key], mapping.MealPlanToDTO(e))
	}
	return plan, nil
}

// GenerateShoppingList aggregates the ingredients of every meal in the range
// that has not been cooked yet and stores them as a new active list.
func (s *MealPlanService) GenerateShoppingList(ctx context.Context, userID uuid.UUID, from, to time.Time) (*inbound.ShoppingListDTO, error) {
	entries, err := s.entriesInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	pending := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		if !e.IsCompleted() {
			pending = append(pending, e.ID())
		}
	}
	if len(pending) == 0 {
		return nil, apperrors.NewValidationError("all planned meals are already cooked")
	}

	items, conflicts, err := shopping.AggregateWithReport(entries, shopping.NewIDSet(pending...))
	if err != nil {
		return nil, translateError(err)
	}
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("planned meals have no ingredients")
	}
	for _, c := range conflicts {
		s.logger.Warn("Ingredient summed across different units",
			zap.String("ingredient", c.Name),
			zap.Strings("units", c.Units),
		)
	}

	name := fmt.Sprintf("Shopping list for meal plan (%s)", s.now().Format(mealplan.DateLayout))
	list, err := shopping.NewList(userID, name, items)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithCause(err)
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, apperrors.NewDatabaseError("create shopping list", err)
	}
	if err := shared.DispatchAll(s.events, list); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}

	s.logger.Info("Shopping list generated from meal plan",
		zap.String("list_id", list.ID().String()),
		zap.Int("meals", len(pending)),
		zap.Int("items", len(items)),
	)
	return mapping.ShoppingListToDTO(list), nil
}

// Export renders the range as plain text, one line per planned meal
func (s *MealPlanService) Export(ctx context.Context, userID uuid.UUID, from, to time.Time) (string, error) {
	entries, err := s.entriesInRange(ctx, userID, from, to)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, e := range entries {
		title := "Unknown"
		if r := e.Recipe(); r != nil {
			title = r.Title()
		}
		fmt.Fprintf(&b, "%s - %s: %s (%d servings)\n",
			e.Date().Format(mealplan.DateLayout), e.MealType(), title, e.Servings())
	}
	return b.String(), nil
}

func (s *MealPlanService) entriesInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*mealplan.Entry, error) {
	if from.IsZero() && to.IsZero() {
		week := mealplan.WeekOf(s.now())
		from, to = week.From, week.To
	}
	if to.IsZero() {
		to = from
	}
	if from.IsZero() {
		from = to
	}

	r, err := mealplan.NewDateRange(from, to)
	if err != nil {
		return nil, translateError(err)
	}

	entries, err := s.plans.FindByDateRange(ctx, userID, r)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list meal plans", err)
	}
	return entries, nil
}

func (s *MealPlanService) loadOwned(ctx context.Context, entryID, userID uuid.UUID) (*mealplan.Entry, error) {
	entry, err := s.plans.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, mealplan.ErrMealPlanNotFound) {
			return nil, apperrors.NewMealPlanNotFoundError(entryID.String())
		}
		return nil, apperrors.NewDatabaseError("find meal plan", err)
	}
	if entry.OwnerID() != userID {
		return nil, apperrors.NewMealPlanNotFoundError(entryID.String())
	}
	return entry, nil
}

func (s *MealPlanService) publish(entry *mealplan.Entry) {
	if err := shared.DispatchAll(s.events, entry); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
}

func translateError(err error) error {
	switch {
	case errors.Is(err, mealplan.ErrInvalidRecipeServings):
		return apperrors.NewInvalidRecipeServingsError(err)
	case errors.Is(err, mealplan.ErrInvalidServings),
		errors.Is(err, mealplan.ErrInvalidMealType),
		errors.Is(err, mealplan.ErrInvalidDateRange),
		errors.Is(err, mealplan.ErrMissingRecipe),
		errors.Is(err, mealplan.ErrMissingDate):
		return apperrors.NewValidationError(err.Error()).WithCause(err)
	}
	return apperrors.Wrap(err, "meal plan operation failed")
}
