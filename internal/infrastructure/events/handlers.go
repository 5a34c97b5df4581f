package events

import (
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shared"
	"github.com/pantryplan/api/internal/domain/shopping"
)

// ShoppingObserver records generated shopping items
type ShoppingObserver interface {
	ShoppingItemsGenerated(n int)
}

// RegisterDefaultHandlers wires the audit log handlers and the shopping item counter
func RegisterDefaultHandlers(d shared.EventDispatcher, shoppingObserver ShoppingObserver, logger *zap.Logger) {
	log := logger.Named("audit")

	d.Register(recipe.RecipeCreatedEvent{}.EventName(), func(e shared.DomainEvent) error {
		if ev, ok := e.(recipe.RecipeCreatedEvent); ok {
			log.Info("Recipe created",
				zap.String("recipe_id", ev.RecipeID.String()),
				zap.String("owner_id", ev.OwnerID.String()),
				zap.String("title", ev.Title),
			)
		}
		return nil
	})

	d.Register(recipe.NutritionEstimatedEvent{}.EventName(), func(e shared.DomainEvent) error {
		if ev, ok := e.(recipe.NutritionEstimatedEvent); ok {
			log.Info("Recipe nutrition estimated",
				zap.String("recipe_id", ev.RecipeID.String()),
				zap.Float64("calories", ev.Calories),
			)
		}
		return nil
	})

	d.Register(shopping.ListCreatedEvent{}.EventName(), func(e shared.DomainEvent) error {
		ev, ok := e.(shopping.ListCreatedEvent)
		if !ok {
			return nil
		}
		if shoppingObserver != nil {
			shoppingObserver.ShoppingItemsGenerated(ev.ItemCount)
		}
		log.Info("Shopping list created",
			zap.String("list_id", ev.ListID.String()),
			zap.Int("items", ev.ItemCount),
		)
		return nil
	})

	for _, name := range []string{
		mealplan.EntryCompletedEvent{}.EventName(),
		goal.GoalReachedEvent{}.EventName(),
	} {
		d.Register(name, func(e shared.DomainEvent) error {
			log.Debug("Domain event", zap.String("event", e.EventName()))
			return nil
		})
	}
}
