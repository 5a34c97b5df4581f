package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GoalService defines the use cases for nutrition and activity goals
type GoalService interface {
	CreateGoal(ctx context.Context, cmd CreateGoalCommand) (*GoalDTO, error)
	UpdateGoal(ctx context.Context, cmd UpdateGoalCommand) (*GoalDTO, error)
	DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error
	SetProgress(ctx context.Context, goalID, userID uuid.UUID, current float64) (*GoalDTO, error)
	Increment(ctx context.Context, goalID, userID uuid.UUID) (*GoalDTO, error)
	Decrement(ctx context.Context, goalID, userID uuid.UUID) (*GoalDTO, error)

	ListGoals(ctx context.Context, userID uuid.UUID) ([]*GoalDTO, error)
	Summary(ctx context.Context, userID uuid.UUID) (*GoalSummaryDTO, error)
}

// CreateGoalCommand creates a goal
type CreateGoalCommand struct {
	UserID      uuid.UUID
	GoalType    string
	TargetValue float64
	Unit        string
	Period      string
}

// UpdateGoalCommand changes a goal. Nil fields are left unchanged.
type UpdateGoalCommand struct {
	GoalID       uuid.UUID
	UserID       uuid.UUID
	GoalType     *string
	TargetValue  *float64
	CurrentValue *float64
	Unit         *string
	Period       *string
}

// GoalDTO is the API representation of a goal
type GoalDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	GoalType     string    `json:"goal_type"`
	TargetValue  float64   `json:"target_value"`
	CurrentValue float64   `json:"current_value"`
	Unit         string    `json:"unit"`
	Period       string    `json:"period"`
	Progress     float64   `json:"progress"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// GoalSummaryDTO aggregates goal progress
type GoalSummaryDTO struct {
	TotalGoals      int     `json:"total_goals"`
	CompletedGoals  int     `json:"completed_goals"`
	AverageProgress float64 `json:"average_progress"`
}
