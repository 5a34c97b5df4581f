package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/ports/inbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

// ShoppingHandlers handles shopping list requests
type ShoppingHandlers struct {
	service inbound.ShoppingListService
	logger  *zap.Logger
}

// NewShoppingHandlers creates shopping list handlers
func NewShoppingHandlers(service inbound.ShoppingListService, logger *zap.Logger) *ShoppingHandlers {
	return &ShoppingHandlers{service: service, logger: logger.Named("shopping-handlers")}
}

// CreateShoppingListRequest is the body of POST /shopping-lists
type CreateShoppingListRequest struct {
	Name  string                      `json:"name" binding:"required,max=200"`
	Items []inbound.ShoppingItemInput `json:"items" binding:"dive"`
}

// UpdateShoppingListRequest is the body of PUT /shopping-lists/:id; omitted fields are kept
type UpdateShoppingListRequest struct {
	Name   *string                      `json:"name" binding:"omitempty,min=1,max=200"`
	Items  *[]inbound.ShoppingItemInput `json:"items" binding:"omitempty,dive"`
	Status *string                      `json:"status" binding:"omitempty,oneof=active completed archived"`
}

// ListLists handles GET /shopping-lists; ?status=active narrows to active lists
func (h *ShoppingHandlers) ListLists(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	activeOnly := false
	switch c.Query("status") {
	case "":
	case "active":
		activeOnly = true
	default:
		_ = c.Error(apperrors.NewValidationError("status filter supports only 'active'"))
		return
	}

	lists, err := h.service.ListLists(c.Request.Context(), userID, activeOnly)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, lists, "")
}

// Summary handles GET /shopping-lists/summary
func (h *ShoppingHandlers) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, summary, "")
}

// CreateList handles POST /shopping-lists
func (h *ShoppingHandlers) CreateList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.service.CreateList(c.Request.Context(), inbound.CreateShoppingListCommand{
		UserID: userID,
		Name:   req.Name,
		Items:  req.Items,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, list, "Shopping list created")
}

// UpdateList handles PUT /shopping-lists/:id
func (h *ShoppingHandlers) UpdateList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.service.UpdateList(c.Request.Context(), inbound.UpdateShoppingListCommand{
		ListID: id,
		UserID: userID,
		Name:   req.Name,
		Items:  req.Items,
		Status: req.Status,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, list, "Shopping list updated")
}

// ToggleItem handles POST /shopping-lists/:id/items/:index/toggle
func (h *ShoppingHandlers) ToggleItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		_ = c.Error(apperrors.NewValidationError("index must be a non-negative integer"))
		return
	}

	list, err := h.service.ToggleItem(c.Request.Context(), id, userID, index)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, list, "")
}

// DeleteList handles DELETE /shopping-lists/:id
func (h *ShoppingHandlers) DeleteList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteList(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
