package shopping

import "errors"

var (
	ErrNameRequired         = errors.New("shopping list name is required")
	ErrItemNameRequired     = errors.New("shopping item name is required")
	ErrInvalidItemQuantity  = errors.New("shopping item quantity cannot be negative")
	ErrInvalidStatus        = errors.New("status must be active, completed or archived")
	ErrItemIndexOutOfRange  = errors.New("shopping item index out of range")
	ErrShoppingListNotFound = errors.New("shopping list not found")
)
