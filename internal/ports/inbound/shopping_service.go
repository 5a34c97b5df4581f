package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ShoppingListService defines the use cases for shopping lists
type ShoppingListService interface {
	CreateList(ctx context.Context, cmd CreateShoppingListCommand) (*ShoppingListDTO, error)
	UpdateList(ctx context.Context, cmd UpdateShoppingListCommand) (*ShoppingListDTO, error)
	DeleteList(ctx context.Context, listID, userID uuid.UUID) error
	ToggleItem(ctx context.Context, listID, userID uuid.UUID, index int) (*ShoppingListDTO, error)

	ListLists(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*ShoppingListDTO, error)
	Summary(ctx context.Context, userID uuid.UUID) (*ShoppingSummaryDTO, error)
}

// ShoppingItemInput is one item of a shopping list command
type ShoppingItemInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"gte=0"`
	Unit     string  `json:"unit"`
	Checked  bool    `json:"checked"`
}

// CreateShoppingListCommand creates a list
type CreateShoppingListCommand struct {
	UserID uuid.UUID
	Name   string
	Items  []ShoppingItemInput
}

// UpdateShoppingListCommand changes a list. Nil fields are left unchanged.
type UpdateShoppingListCommand struct {
	ListID uuid.UUID
	UserID uuid.UUID
	Name   *string
	Items  *[]ShoppingItemInput
	Status *string
}

// ShoppingItemDTO is the API representation of a shopping item
type ShoppingItemDTO struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Checked  bool    `json:"checked"`
}

// ShoppingListDTO is the API representation of a shopping list
type ShoppingListDTO struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Name      string            `json:"name"`
	Items     []ShoppingItemDTO `json:"items"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ShoppingSummaryDTO counts a user's lists and items
type ShoppingSummaryDTO struct {
	TotalLists     int `json:"total_lists"`
	ActiveLists    int `json:"active_lists"`
	CompletedLists int `json:"completed_lists"`
	TotalItems     int `json:"total_items"`
	CheckedItems   int `json:"checked_items"`
}
