package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/ports/inbound"
)

// GoalHandlers handles goal requests
type GoalHandlers struct {
	service inbound.GoalService
	logger  *zap.Logger
}

// NewGoalHandlers creates goal handlers
func NewGoalHandlers(service inbound.GoalService, logger *zap.Logger) *GoalHandlers {
	return &GoalHandlers{service: service, logger: logger.Named("goal-handlers")}
}

// CreateGoalRequest is the body of POST /goals
type CreateGoalRequest struct {
	GoalType    string  `json:"goal_type" binding:"required"`
	TargetValue float64 `json:"target_value" binding:"required,gt=0"`
	Unit        string  `json:"unit" binding:"max=20"`
	Period      string  `json:"period"`
}

// UpdateGoalRequest is the body of PUT /goals/:id; omitted fields are kept
type UpdateGoalRequest struct {
	GoalType     *string  `json:"goal_type"`
	TargetValue  *float64 `json:"target_value" binding:"omitempty,gt=0"`
	CurrentValue *float64 `json:"current_value" binding:"omitempty,gte=0"`
	Unit         *string  `json:"unit" binding:"omitempty,max=20"`
	Period       *string  `json:"period"`
}

// ProgressRequest is the body of POST /goals/:id/progress
type ProgressRequest struct {
	CurrentValue *float64 `json:"current_value" binding:"required,gte=0"`
}

// ListGoals handles GET /goals
func (h *GoalHandlers) ListGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := h.service.ListGoals(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, goals, "")
}

// Summary handles GET /goals/summary
func (h *GoalHandlers) Summary(c *gin.Context) {
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

// CreateGoal handles POST /goals
func (h *GoalHandlers) CreateGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.service.CreateGoal(c.Request.Context(), inbound.CreateGoalCommand{
		UserID:      userID,
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		Period:      req.Period,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, goal, "Goal created")
}

// UpdateGoal handles PUT /goals/:id
func (h *GoalHandlers) UpdateGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.service.UpdateGoal(c.Request.Context(), inbound.UpdateGoalCommand{
		GoalID:       id,
		UserID:       userID,
		GoalType:     req.GoalType,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Period:       req.Period,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, goal, "Goal updated")
}

// SetProgress handles POST /goals/:id/progress
func (h *GoalHandlers) SetProgress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.service.SetProgress(c.Request.Context(), id, userID, *req.CurrentValue)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, goal, "")
}

// Increment handles POST /goals/:id/increment
func (h *GoalHandlers) Increment(c *gin.Context) {
	h.step(c, h.service.Increment)
}

// Decrement handles POST /goals/:id/decrement
func (h *GoalHandlers) Decrement(c *gin.Context) {
	h.step(c, h.service.Decrement)
}

func (h *GoalHandlers) step(c *gin.Context, apply func(ctx context.Context, goalID, userID uuid.UUID) (*inbound.GoalDTO, error)) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	goal, err := apply(c.Request.Context(), id, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, goal, "")
}

// DeleteGoal handles DELETE /goals/:id
func (h *GoalHandlers) DeleteGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteGoal(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
