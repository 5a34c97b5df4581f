// Package pantry provides the application layer for pantry inventory
package pantry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/application/mapping"
	"github.com/pantryplan/api/internal/domain/pantry"
	"github.com/pantryplan/api/internal/ports/inbound"
	"github.com/pantryplan/api/internal/ports/outbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

const defaultExpiringDays = 7

// PantryService implements the pantry use cases
type PantryService struct {
	repo   outbound.PantryRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewPantryService creates a new pantry service
func NewPantryService(repo outbound.PantryRepository, logger *zap.Logger) *PantryService {
	return &PantryService{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.Named("pantry-service"),
	}
}

var _ inbound.PantryService = (*PantryService)(nil)

// AddItem stores a new pantry item
func (s *PantryService) AddItem(ctx context.Context, cmd inbound.CreatePantryItemCommand) (*inbound.PantryItemDTO, error) {
	item, err := pantry.New(cmd.UserID, cmd.Name, cmd.Quantity, cmd.Unit, parseCategory(cmd.Category), cmd.ExpiryDate)
	if err != nil {
		return nil, translateError(err)
	}
	item.SetPhotoURL(cmd.PhotoURL)

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, apperrors.NewDatabaseError("create pantry item", err)
	}

	s.logger.Info("Pantry item added",
		zap.String("item_id", item.ID().String()),
		zap.String("user_id", cmd.UserID.String()),
		zap.String("category", string(item.Category())),
	)
	return mapping.PantryItemToDTO(item, s.now()), nil
}

// UpdateItem changes a pantry item owned by the user
func (s *PantryService) UpdateItem(ctx context.Context, cmd inbound.UpdatePantryItemCommand) (*inbound.PantryItemDTO, error) {
	item, err := s.loadOwned(ctx, cmd.ItemID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := item.Rename(*cmd.Name); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.Quantity != nil || cmd.Unit != nil {
		quantity, unit := item.Quantity(), item.Unit()
		if cmd.Quantity != nil {
			quantity = *cmd.Quantity
		}
		if cmd.Unit != nil {
			unit = *cmd.Unit
		}
		if err := item.SetQuantity(quantity, unit); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.Category != nil {
		if err := item.SetCategory(parseCategory(*cmd.Category)); err != nil {
			return nil, translateError(err)
		}
	}
	switch {
	case cmd.ClearExpiry:
		item.SetExpiryDate(nil)
	case cmd.ExpiryDate != nil:
		item.SetExpiryDate(cmd.ExpiryDate)
	}
	if cmd.PhotoURL != nil {
		item.SetPhotoURL(*cmd.PhotoURL)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, apperrors.NewDatabaseError("update pantry item", err)
	}
	return mapping.PantryItemToDTO(item, s.now()), nil
}

// DeleteItem removes a pantry item owned by the user
func (s *PantryService) DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, itemID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return apperrors.NewDatabaseError("delete pantry item", err)
	}
	s.logger.Info("Pantry item deleted", zap.String("item_id", itemID.String()))
	return nil
}

// ListItems lists the user's items, optionally narrowed to one category
func (s *PantryService) ListItems(ctx context.Context, userID uuid.UUID, category string) ([]*inbound.PantryItemDTO, error) {
	var (
		items []*pantry.Item
		err   error
	)
	if category == "" {
		items, err = s.repo.FindByOwner(ctx, userID)
	} else {
		c := parseCategory(category)
		if !c.IsValid() {
			return nil, translateError(pantry.ErrInvalidCategory)
		}
		items, err = s.repo.FindByCategory(ctx, userID, c)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("list pantry items", err)
	}
	return s.toDTOs(items), nil
}

// ListExpiring lists items expiring within the given number of days.
// days <= 0 uses the default window.
func (s *PantryService) ListExpiring(ctx context.Context, userID uuid.UUID, days int) ([]*inbound.PantryItemDTO, error) {
	if days <= 0 {
		days = defaultExpiringDays
	}
	before := s.now().AddDate(0, 0, days)

	items, err := s.repo.FindExpiringBefore(ctx, userID, before)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list expiring pantry items", err)
	}
	return s.toDTOs(items), nil
}

func (s *PantryService) loadOwned(ctx context.Context, itemID, userID uuid.UUID) (*pantry.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pantry.ErrPantryItemNotFound) {
			return nil, apperrors.NewPantryItemNotFoundError(itemID.String())
		}
		return nil, apperrors.NewDatabaseError("find pantry item", err)
	}
	if item.OwnerID() != userID {
		return nil, apperrors.NewPantryItemNotFoundError(itemID.String())
	}
	return item, nil
}

func (s *PantryService) toDTOs(items []*pantry.Item) []*inbound.PantryItemDTO {
	now := s.now()
	out := make([]*inbound.PantryItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, mapping.PantryItemToDTO(item, now))
	}
	return out
}

func parseCategory(raw string) pantry.Category {
	return pantry.Category(strings.ToLower(strings.TrimSpace(raw)))
}

func translateError(err error) error {
	switch {
	case errors.Is(err, pantry.ErrNameRequired),
		errors.Is(err, pantry.ErrInvalidQuantity),
		errors.Is(err, pantry.ErrInvalidCategory):
		return apperrors.NewValidationError(err.Error()).WithCause(err)
	}
	return apperrors.Wrap(err, "pantry operation failed")
}
