package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// EntryPlannedEvent is raised when a recipe is put on the plan
type EntryPlannedEvent struct {
	EntryID   uuid.UUID
	RecipeID  uuid.UUID
	Date      time.Time
	PlannedAt time.Time
}

func (e EntryPlannedEvent) EventName() string {
	return "mealplan.entry.planned"
}

func (e EntryPlannedEvent) OccurredAt() time.Time {
	return e.PlannedAt
}

// EntryCompletedEvent is raised when a planned meal is marked as cooked
type EntryCompletedEvent struct {
	EntryID     uuid.UUID
	RecipeID    uuid.UUID
	CompletedAt time.Time
}

func (e EntryCompletedEvent) EventName() string {
	return "mealplan.entry.completed"
}

func (e EntryCompletedEvent) OccurredAt() time.Time {
	return e.CompletedAt
}
