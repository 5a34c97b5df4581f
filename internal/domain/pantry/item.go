// Package pantry models the ingredients a user currently has on hand.
package pantry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category groups pantry items
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruit      Category = "fruit"
	CategoryMeat       Category = "meat"
	CategoryFish       Category = "fish"
	CategoryDairy      Category = "dairy"
	CategoryGrains     Category = "grains"
	CategorySpices     Category = "spices"
	CategoryCanned     Category = "canned"
	CategoryFrozen     Category = "frozen"
	CategoryOther      Category = "other"
)

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	switch c {
	case CategoryVegetables, CategoryFruit, CategoryMeat, CategoryFish, CategoryDairy,
		CategoryGrains, CategorySpices, CategoryCanned, CategoryFrozen, CategoryOther:
		return true
	}
	return false
}

// DefaultExpiryWindow is how far ahead "expiring soon" looks by default
const DefaultExpiryWindow = 7 * 24 * time.Hour

// Item is a quantity of a named ingredient on hand
type Item struct {
	id         uuid.UUID
	ownerID    uuid.UUID
	name       string
	quantity   float64
	unit       string
	category   Category
	expiryDate *time.Time
	photoURL   string
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a pantry item
func New(ownerID uuid.UUID, name string, quantity float64, unit string, category Category, expiry *time.Time) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if category == "" {
		category = CategoryOther
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	now := time.Now().UTC()
	return &Item{
		id:         uuid.New(),
		ownerID:    ownerID,
		name:       name,
		quantity:   quantity,
		unit:       strings.TrimSpace(unit),
		category:   category,
		expiryDate: truncate(expiry),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Snapshot is the flat, persistable form of an Item
type Snapshot struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Quantity   float64
	Unit       string
	Category   Category
	ExpiryDate *time.Time
	PhotoURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Rehydrate rebuilds an Item from storage
func Rehydrate(s Snapshot) *Item {
	return &Item{
		id:         s.ID,
		ownerID:    s.OwnerID,
		name:       s.Name,
		quantity:   s.Quantity,
		unit:       s.Unit,
		category:   s.Category,
		expiryDate: s.ExpiryDate,
		photoURL:   s.PhotoURL,
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
	}
}

// Snapshot returns the persistable form of the item
func (i *Item) Snapshot() Snapshot {
	return Snapshot{
		ID:         i.id,
		OwnerID:    i.ownerID,
		Name:       i.name,
		Quantity:   i.quantity,
		Unit:       i.unit,
		Category:   i.category,
		ExpiryDate: i.expiryDate,
		PhotoURL:   i.photoURL,
		CreatedAt:  i.createdAt,
		UpdatedAt:  i.updatedAt,
	}
}

func (i *Item) ID() uuid.UUID          { return i.id }
func (i *Item) OwnerID() uuid.UUID     { return i.ownerID }
func (i *Item) Name() string           { return i.name }
func (i *Item) Quantity() float64      { return i.quantity }
func (i *Item) Unit() string           { return i.unit }
func (i *Item) Category() Category     { return i.category }
func (i *Item) ExpiryDate() *time.Time { return i.expiryDate }
func (i *Item) PhotoURL() string       { return i.photoURL }
func (i *Item) CreatedAt() time.Time   { return i.createdAt }
func (i *Item) UpdatedAt() time.Time   { return i.updatedAt }

// IsExpired reports whether the expiry date is before now's calendar day
func (i *Item) IsExpired(now time.Time) bool {
	if i.expiryDate == nil {
		return false
	}
	return i.expiryDate.Before(*truncate(&now))
}

// ExpiresWithin reports whether the item expires on or before now+window
func (i *Item) ExpiresWithin(now time.Time, window time.Duration) bool {
	if i.expiryDate == nil {
		return false
	}
	return !i.expiryDate.After(now.Add(window))
}

// Rename changes the item name
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	i.name = name
	i.touch()
	return nil
}

// SetQuantity changes quantity and unit
func (i *Item) SetQuantity(quantity float64, unit string) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	i.quantity = quantity
	i.unit = strings.TrimSpace(unit)
	i.touch()
	return nil
}

// SetCategory changes the category
func (i *Item) SetCategory(c Category) error {
	if !c.IsValid() {
		return ErrInvalidCategory
	}
	i.category = c
	i.touch()
	return nil
}

// SetExpiryDate sets or clears the expiry date
func (i *Item) SetExpiryDate(expiry *time.Time) {
	i.expiryDate = truncate(expiry)
	i.touch()
}

// SetPhotoURL sets the photo URL
func (i *Item) SetPhotoURL(url string) {
	i.photoURL = strings.TrimSpace(url)
	i.touch()
}

func (i *Item) touch() {
	i.updatedAt = time.Now().UTC()
}

func truncate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}
