package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/ports/inbound"
)

// NutritionHandlers serves the nutrition dashboard
type NutritionHandlers struct {
	service inbound.NutritionService
	logger  *zap.Logger
}

// NewNutritionHandlers creates nutrition handlers
func NewNutritionHandlers(service inbound.NutritionService, logger *zap.Logger) *NutritionHandlers {
	return &NutritionHandlers{service: service, logger: logger.Named("nutrition-handlers")}
}

// Dashboard handles GET /nutrition/dashboard
func (h *NutritionHandlers) Dashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), userID, from, to)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, dashboard, "")
}
