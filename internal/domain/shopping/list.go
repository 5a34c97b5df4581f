// Package shopping holds shopping lists and the aggregation of meal plan
// ingredients into shopping items.
package shopping

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/api/internal/domain/shared"
)

// Item is one line of a shopping list
type Item struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Checked  bool    `json:"checked"`
}

// Status is the lifecycle state of a list
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// List is a named shopping list owned by a user
type List struct {
	shared.AggregateRoot

	id        uuid.UUID
	ownerID   uuid.UUID
	name      string
	items     []Item
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewList creates an active list
func NewList(ownerID uuid.UUID, name string, items []Item) (*List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	l := &List{
		id:        uuid.New(),
		ownerID:   ownerID,
		name:      name,
		items:     append([]Item(nil), items...),
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}
	l.AddEvent(ListCreatedEvent{ListID: l.id, ItemCount: len(items), CreatedAt: now})
	return l, nil
}

// Snapshot is the flat, persistable form of a List
type Snapshot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Items     []Item
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rehydrate rebuilds a List from storage
func Rehydrate(s Snapshot) *List {
	return &List{
		id:        s.ID,
		ownerID:   s.OwnerID,
		name:      s.Name,
		items:     s.Items,
		status:    s.Status,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}
}

// Snapshot returns the persistable form of the list
func (l *List) Snapshot() Snapshot {
	return Snapshot{
		ID:        l.id,
		OwnerID:   l.ownerID,
		Name:      l.name,
		Items:     l.Items(),
		Status:    l.status,
		CreatedAt: l.createdAt,
		UpdatedAt: l.updatedAt,
	}
}

func (l *List) ID() uuid.UUID        { return l.id }
func (l *List) OwnerID() uuid.UUID   { return l.ownerID }
func (l *List) Name() string         { return l.name }
func (l *List) Status() Status       { return l.status }
func (l *List) CreatedAt() time.Time { return l.createdAt }
func (l *List) UpdatedAt() time.Time { return l.updatedAt }

// Items returns a copy of the list items
func (l *List) Items() []Item {
	return append([]Item(nil), l.items...)
}

// CheckedCount returns how many items are checked off
func (l *List) CheckedCount() int {
	n := 0
	for _, item := range l.items {
		if item.Checked {
			n++
		}
	}
	return n
}

// Rename changes the list name
func (l *List) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	l.name = name
	l.touch()
	return nil
}

// ReplaceItems replaces all items
func (l *List) ReplaceItems(items []Item) error {
	if err := validateItems(items); err != nil {
		return err
	}
	l.items = append([]Item(nil), items...)
	l.touch()
	return nil
}

// SetStatus moves the list to another lifecycle state
func (l *List) SetStatus(s Status) error {
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	l.status = s
	l.touch()
	return nil
}

// ToggleItem flips the checked flag of the item at index
func (l *List) ToggleItem(index int) (Item, error) {
	if index < 0 || index >= len(l.items) {
		return Item{}, ErrItemIndexOutOfRange
	}
	l.items[index].Checked = !l.items[index].Checked
	l.touch()
	return l.items[index], nil
}

func (l *List) touch() {
	l.updatedAt = time.Now().UTC()
}

func validateItems(items []Item) error {
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return ErrItemNameRequired
		}
		if item.Quantity < 0 {
			return ErrInvalidItemQuantity
		}
	}
	return nil
}

// Summary counts lists and items across a user's shopping lists
type Summary struct {
	TotalLists     int `json:"total_lists"`
	ActiveLists    int `json:"active_lists"`
	CompletedLists int `json:"completed_lists"`
	TotalItems     int `json:"total_items"`
	CheckedItems   int `json:"checked_items"`
}

// Summarize computes a Summary over lists
func Summarize(lists []*List) Summary {
	var s Summary
	for _, l := range lists {
		s.TotalLists++
		switch l.status {
		case StatusActive:
			s.ActiveLists++
		case StatusCompleted:
			s.CompletedLists++
		}
		s.TotalItems += len(l.items)
		s.CheckedItems += l.CheckedCount()
	}
	return s
}
