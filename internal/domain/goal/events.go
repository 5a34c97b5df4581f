package goal

import (
	"time"

	"github.com/google/uuid"
)

// GoalReachedEvent is raised when progress first reaches 100%
type GoalReachedEvent struct {
	GoalID    uuid.UUID
	Type      Type
	ReachedAt time.Time
}

func (e GoalReachedEvent) EventName() string {
	return "goal.reached"
}

func (e GoalReachedEvent) OccurredAt() time.Time {
	return e.ReachedAt
}
