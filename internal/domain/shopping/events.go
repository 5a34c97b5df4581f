package shopping

import (
	"time"

	"github.com/google/uuid"
)

// ListCreatedEvent is raised when a shopping list is created
type ListCreatedEvent struct {
	ListID    uuid.UUID
	ItemCount int
	CreatedAt time.Time
}

func (e ListCreatedEvent) EventName() string {
	return "shopping.list.created"
}

func (e ListCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}
