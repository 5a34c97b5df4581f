package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryplan/api/internal/domain/pantry"
	"github.com/pantryplan/api/internal/ports/outbound"
)

// PantryRepository implements the pantry repository interface using GORM
type PantryRepository struct {
	db *gorm.DB
}

// NewPantryRepository creates a new pantry repository
func NewPantryRepository(db *gorm.DB) outbound.PantryRepository {
	return &PantryRepository{db: db}
}

// Create stores a new pantry item
func (r *PantryRepository) Create(ctx context.Context, item *pantry.Item) error {
	if err := r.db.WithContext(ctx).Create(PantryItemToModel(item)).Error; err != nil {
		return fmt.Errorf("failed to create pantry item: %w", err)
	}
	return nil
}

// Update writes every column of an existing item, including a cleared expiry
func (r *PantryRepository) Update(ctx context.Context, item *pantry.Item) error {
	model := PantryItemToModel(item)

	result := r.db.WithContext(ctx).Model(model).Select("*").Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update pantry item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pantry.ErrPantryItemNotFound
	}
	return nil
}

// Delete removes an item by ID
func (r *PantryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PantryItemModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pantry item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pantry.ErrPantryItemNotFound
	}
	return nil
}

// FindByID finds an item by ID
func (r *PantryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error) {
	var model PantryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pantry.ErrPantryItemNotFound
		}
		return nil, fmt.Errorf("failed to find pantry item: %w", err)
	}
	return ModelToPantryItem(&model), nil
}

// FindByOwner lists an owner's items, newest first
func (r *PantryRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*pantry.Item, error) {
	return r.find(ctx, r.db.Where("owner_id = ?", ownerID).Order("created_at DESC"))
}

// FindByCategory lists an owner's items in one category, newest first
func (r *PantryRepository) FindByCategory(ctx context.Context, ownerID uuid.UUID, category pantry.Category) ([]*pantry.Item, error) {
	return r.find(ctx, r.db.
		Where("owner_id = ? AND category = ?", ownerID, string(category)).
		Order("created_at DESC"))
}

// FindExpiringBefore lists items that expire on or before the given time
func (r *PantryRepository) FindExpiringBefore(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]*pantry.Item, error) {
	return r.find(ctx, r.db.
		Where("owner_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", ownerID, before).
		Order("expiry_date ASC"))
}

func (r *PantryRepository) find(ctx context.Context, query *gorm.DB) ([]*pantry.Item, error) {
	var models []PantryItemModel
	if err := query.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}

	items := make([]*pantry.Item, len(models))
	for i := range models {
		items[i] = ModelToPantryItem(&models[i])
	}
	return items, nil
}
