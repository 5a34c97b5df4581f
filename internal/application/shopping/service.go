// Package shopping provides the application layer for shopping lists
package shopping

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/application/mapping"
	"github.com/pantryplan/api/internal/domain/shared"
	"github.com/pantryplan/api/internal/domain/shopping"
	"github.com/pantryplan/api/internal/ports/inbound"
	"github.com/pantryplan/api/internal/ports/outbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

// ShoppingListService implements the shopping list use cases
type ShoppingListService struct {
	repo   outbound.ShoppingListRepository
	events shared.EventDispatcher
	logger *zap.Logger
}

// NewShoppingListService creates a new shopping list service
func NewShoppingListService(repo outbound.ShoppingListRepository, events shared.EventDispatcher, logger *zap.Logger) *ShoppingListService {
	return &ShoppingListService{
		repo:   repo,
		events: events,
		logger: logger.Named("shopping-service"),
	}
}

var _ inbound.ShoppingListService = (*ShoppingListService)(nil)

// CreateList creates an active list
func (s *ShoppingListService) CreateList(ctx context.Context, cmd inbound.CreateShoppingListCommand) (*inbound.ShoppingListDTO, error) {
	list, err := shopping.NewList(cmd.UserID, cmd.Name, mapping.ShoppingItemsFromInput(cmd.Items))
	if err != nil {
		return nil, translateError(err)
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, apperrors.NewDatabaseError("create shopping list", err)
	}
	if err := shared.DispatchAll(s.events, list); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}

	s.logger.Info("Shopping list created",
		zap.String("list_id", list.ID().String()),
		zap.Int("items", len(cmd.Items)),
	)
	return mapping.ShoppingListToDTO(list), nil
}

// UpdateList changes the name, items or status of a list
func (s *ShoppingListService) UpdateList(ctx context.Context, cmd inbound.UpdateShoppingListCommand) (*inbound.ShoppingListDTO, error) {
	list, err := s.loadOwned(ctx, cmd.ListID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := list.Rename(*cmd.Name); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.Items != nil {
		if err := list.ReplaceItems(mapping.ShoppingItemsFromInput(*cmd.Items)); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.Status != nil {
		if err := list.SetStatus(shopping.Status(strings.ToLower(strings.TrimSpace(*cmd.Status)))); err != nil {
			return nil, translateError(err)
		}
	}

	if err := s.repo.Update(ctx, list); err != nil {
		return nil, apperrors.NewDatabaseError("update shopping list", err)
	}
	return mapping.ShoppingListToDTO(list), nil
}

// DeleteList removes a list
func (s *ShoppingListService) DeleteList(ctx context.Context, listID, userID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, listID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, listID); err != nil {
		return apperrors.NewDatabaseError("delete shopping list", err)
	}
	return nil
}

// ToggleItem flips the checked flag of the item at index
func (s *ShoppingListService) ToggleItem(ctx context.Context, listID, userID uuid.UUID, index int) (*inbound.ShoppingListDTO, error) {
	list, err := s.loadOwned(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := list.ToggleItem(index); err != nil {
		return nil, translateError(err)
	}
	if err := s.repo.Update(ctx, list); err != nil {
		return nil, apperrors.NewDatabaseError("update shopping list", err)
	}
	return mapping.ShoppingListToDTO(list), nil
}

// ListLists returns the user's lists, newest first
func (s *ShoppingListService) ListLists(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*inbound.ShoppingListDTO, error) {
	var status *shopping.Status
	if activeOnly {
		active := shopping.StatusActive
		status = &active
	}

	lists, err := s.repo.FindByOwner(ctx, userID, status)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list shopping lists", err)
	}

	out := make([]*inbound.ShoppingListDTO, 0, len(lists))
	for _, l := range lists {
		out = append(out, mapping.ShoppingListToDTO(l))
	}
	return out, nil
}

// Summary counts the user's lists and items
func (s *ShoppingListService) Summary(ctx context.Context, userID uuid.UUID) (*inbound.ShoppingSummaryDTO, error) {
	lists, err := s.repo.FindByOwner(ctx, userID, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list shopping lists", err)
	}

	sum := shopping.Summarize(lists)
	return &inbound.ShoppingSummaryDTO{
		TotalLists:     sum.TotalLists,
		ActiveLists:    sum.ActiveLists,
		CompletedLists: sum.CompletedLists,
		TotalItems:     sum.TotalItems,
		CheckedItems:   sum.CheckedItems,
	}, nil
}

func (s *ShoppingListService) loadOwned(ctx context.Context, listID, userID uuid.UUID) (*shopping.List, error) {
	list, err := s.repo.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, shopping.ErrShoppingListNotFound) {
			return nil, apperrors.NewShoppingListNotFoundError(listID.String())
		}
		return nil, apperrors.NewDatabaseError("find shopping list", err)
	}
	if list.OwnerID() != userID {
		return nil, apperrors.NewShoppingListNotFoundError(listID.String())
	}
	return list, nil
}

func translateError(err error) error {
	switch {
	case errors.Is(err, shopping.ErrNameRequired),
		errors.Is(err, shopping.ErrItemNameRequired),
		errors.Is(err, shopping.ErrInvalidItemQuantity),
		errors.Is(err, shopping.ErrInvalidStatus),
		errors.Is(err, shopping.ErrItemIndexOutOfRange):
		return apperrors.NewValidationError(err.Error()).WithCause(err)
	}
	return apperrors.Wrap(err, "shopping list operation failed")
}
