package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/ports/inbound"
)

// PantryHandlers handles pantry requests
type PantryHandlers struct {
	service inbound.PantryService
	logger  *zap.Logger
}

// NewPantryHandlers creates pantry handlers
func NewPantryHandlers(service inbound.PantryService, logger *zap.Logger) *PantryHandlers {
	return &PantryHandlers{service: service, logger: logger.Named("pantry-handlers")}
}

// CreatePantryItemRequest is the body of POST /pantry
type CreatePantryItemRequest struct {
	Name       string  `json:"name" binding:"required,max=200"`
	Quantity   float64 `json:"quantity" binding:"gte=0"`
	Unit       string  `json:"unit" binding:"max=50"`
	Category   string  `json:"category"`
	ExpiryDate *string `json:"expiry_date"`
	PhotoURL   string  `json:"photo_url" binding:"omitempty,url"`
}

// UpdatePantryItemRequest is the body of PUT /pantry/:id; omitted fields are kept
type UpdatePantryItemRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Quantity    *float64 `json:"quantity" binding:"omitempty,gte=0"`
	Unit        *string  `json:"unit" binding:"omitempty,max=50"`
	Category    *string  `json:"category"`
	ExpiryDate  *string  `json:"expiry_date"`
	ClearExpiry bool     `json:"clear_expiry"`
	PhotoURL    *string  `json:"photo_url" binding:"omitempty,url"`
}

// ListItems handles GET /pantry
func (h *PantryHandlers) ListItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.service.ListItems(c.Request.Context(), userID, c.Query("category"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, items, "")
}

// ListExpiring handles GET /pantry/expiring
func (h *PantryHandlers) ListExpiring(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	days, ok := queryInt(c, "days")
	if !ok {
		return
	}

	n := 0
	if days != nil {
		n = *days
	}
	items, err := h.service.ListExpiring(c.Request.Context(), userID, n)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, items, "")
}

// AddItem handles POST /pantry
func (h *PantryHandlers) AddItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreatePantryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	expiry, err := optionalDate("expiry_date", req.ExpiryDate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), inbound.CreatePantryItemCommand{
		UserID:     userID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		Category:   req.Category,
		ExpiryDate: expiry,
		PhotoURL:   req.PhotoURL,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, item, "Pantry item added")
}

// UpdateItem handles PUT /pantry/:id
func (h *PantryHandlers) UpdateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdatePantryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	expiry, err := optionalDate("expiry_date", req.ExpiryDate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), inbound.UpdatePantryItemCommand{
		ItemID:      id,
		UserID:      userID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Category:    req.Category,
		ExpiryDate:  expiry,
		ClearExpiry: req.ClearExpiry,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, item, "Pantry item updated")
}

// DeleteItem handles DELETE /pantry/:id
func (h *PantryHandlers) DeleteItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
