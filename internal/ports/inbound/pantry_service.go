package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PantryService defines the use cases for pantry inventory
type PantryService interface {
	AddItem(ctx context.Context, cmd CreatePantryItemCommand) (*PantryItemDTO, error)
	UpdateItem(ctx context.Context, cmd UpdatePantryItemCommand) (*PantryItemDTO, error)
	DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error

	ListItems(ctx context.Context, userID uuid.UUID, category string) ([]*PantryItemDTO, error)
	ListExpiring(ctx context.Context, userID uuid.UUID, days int) ([]*PantryItemDTO, error)
}

// CreatePantryItemCommand contains data for a new pantry item
type CreatePantryItemCommand struct {
	UserID     uuid.UUID
	Name       string
	Quantity   float64
	Unit       string
	Category   string
	ExpiryDate *time.Time
	PhotoURL   string
}

// UpdatePantryItemCommand changes a pantry item. Nil fields are left unchanged.
type UpdatePantryItemCommand struct {
	ItemID      uuid.UUID
	UserID      uuid.UUID
	Name        *string
	Quantity    *float64
	Unit        *string
	Category    *string
	ExpiryDate  *time.Time
	ClearExpiry bool
	PhotoURL    *string
}

// PantryItemDTO is the API representation of a pantry item
type PantryItemDTO struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Name       string     `json:"name"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit"`
	Category   string     `json:"category"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Expired    bool       `json:"expired"`
	PhotoURL   string     `json:"photo_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
