package pantry

import "errors"

var (
	ErrNameRequired       = errors.New("pantry item name is required")
	ErrInvalidQuantity    = errors.New("pantry item quantity cannot be negative")
	ErrInvalidCategory    = errors.New("unknown pantry category")
	ErrPantryItemNotFound = errors.New("pantry item not found")
)
