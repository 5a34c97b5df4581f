package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryplan/api/internal/domain/shopping"
	"github.com/pantryplan/api/internal/ports/outbound"
)

// ShoppingListRepository implements the shopping list repository interface using GORM
type ShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *gorm.DB) outbound.ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// Create stores a new list
func (r *ShoppingListRepository) Create(ctx context.Context, list *shopping.List) error {
	if err := r.db.WithContext(ctx).Create(ShoppingListToModel(list)).Error; err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}
	return nil
}

// Update writes every column of an existing list
func (r *ShoppingListRepository) Update(ctx context.Context, list *shopping.List) error {
	model := ShoppingListToModel(list)

	result := r.db.WithContext(ctx).Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update shopping list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shopping.ErrShoppingListNotFound
	}
	return nil
}

// Delete removes a list by ID
func (r *ShoppingListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ShoppingListModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete shopping list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shopping.ErrShoppingListNotFound
	}
	return nil
}

// FindByID finds a list by ID
func (r *ShoppingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.List, error) {
	var model ShoppingListModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shopping.ErrShoppingListNotFound
		}
		return nil, fmt.Errorf("failed to find shopping list: %w", err)
	}
	return ModelToShoppingList(&model), nil
}

// FindByOwner lists an owner's lists newest first, optionally by status
func (r *ShoppingListRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, status *shopping.Status) ([]*shopping.List, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var models []ShoppingListModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	lists := make([]*shopping.List, len(models))
	for i := range models {
		lists[i] = ModelToShoppingList(&models[i])
	}
	return lists, nil
}
