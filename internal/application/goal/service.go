// Package goal provides the application layer for nutrition and activity goals
package goal

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/application/mapping"
	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/domain/shared"
	"github.com/pantryplan/api/internal/ports/inbound"
	"github.com/pantryplan/api/internal/ports/outbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

// GoalService implements the goal use cases
type GoalService struct {
	repo   outbound.GoalRepository
	events shared.EventDispatcher
	logger *zap.Logger
}

// NewGoalService creates a new goal service
func NewGoalService(repo outbound.GoalRepository, events shared.EventDispatcher, logger *zap.Logger) *GoalService {
	return &GoalService{
		repo:   repo,
		events: events,
		logger: logger.Named("goal-service"),
	}
}

var _ inbound.GoalService = (*GoalService)(nil)

// CreateGoal creates a goal. An empty period means daily.
func (s *GoalService) CreateGoal(ctx context.Context, cmd inbound.CreateGoalCommand) (*inbound.GoalDTO, error) {
	period := normalize(cmd.Period)
	if period == "" {
		period = string(goal.PeriodDaily)
	}

	g, err := goal.New(cmd.UserID, goal.Type(normalize(cmd.GoalType)), cmd.TargetValue, cmd.Unit, goal.Period(period))
	if err != nil {
		return nil, translateError(err)
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, apperrors.NewDatabaseError("create goal", err)
	}

	s.logger.Info("Goal created",
		zap.String("goal_id", g.ID().String()),
		zap.String("type", string(g.Type())),
		zap.Float64("target", g.TargetValue()),
	)
	return mapping.GoalToDTO(g), nil
}

// UpdateGoal changes a goal
func (s *GoalService) UpdateGoal(ctx context.Context, cmd inbound.UpdateGoalCommand) (*inbound.GoalDTO, error) {
	g, err := s.loadOwned(ctx, cmd.GoalID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.GoalType != nil {
		if err := g.SetType(goal.Type(normalize(*cmd.GoalType))); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.TargetValue != nil {
		if err := g.SetTarget(*cmd.TargetValue); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.Unit != nil {
		g.SetUnit(*cmd.Unit)
	}
	if cmd.Period != nil {
		if err := g.SetPeriod(goal.Period(normalize(*cmd.Period))); err != nil {
			return nil, translateError(err)
		}
	}
	if cmd.CurrentValue != nil {
		if err := g.SetProgress(*cmd.CurrentValue); err != nil {
			return nil, translateError(err)
		}
	}

	return s.save(ctx, g)
}

// DeleteGoal removes a goal
func (s *GoalService) DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, goalID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, goalID); err != nil {
		return apperrors.NewDatabaseError("delete goal", err)
	}
	return nil
}

// SetProgress sets the current value of a goal
func (s *GoalService) SetProgress(ctx context.Context, goalID, userID uuid.UUID, current float64) (*inbound.GoalDTO, error) {
	g, err := s.loadOwned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	if err := g.SetProgress(current); err != nil {
		return nil, translateError(err)
	}
	return s.save(ctx, g)
}

// Increment adds one step to the goal
func (s *GoalService) Increment(ctx context.Context, goalID, userID uuid.UUID) (*inbound.GoalDTO, error) {
	g, err := s.loadOwned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	g.Increment()
	return s.save(ctx, g)
}

// Decrement removes one step from the goal, stopping at zero
func (s *GoalService) Decrement(ctx context.Context, goalID, userID uuid.UUID) (*inbound.GoalDTO, error) {
	g, err := s.loadOwned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	g.Decrement()
	return s.save(ctx, g)
}

// ListGoals lists the user's goals, newest first
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*inbound.GoalDTO, error) {
	goals, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list goals", err)
	}
	out := make([]*inbound.GoalDTO, 0, len(goals))
	for _, g := range goals {
		out = append(out, mapping.GoalToDTO(g))
	}
	return out, nil
}

// Summary reports completed goals and average progress
func (s *GoalService) Summary(ctx context.Context, userID uuid.UUID) (*inbound.GoalSummaryDTO, error) {
	goals, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list goals", err)
	}
	sum := goal.Summarize(goals)
	return &inbound.GoalSummaryDTO{
		TotalGoals:      sum.TotalGoals,
		CompletedGoals:  sum.CompletedGoals,
		AverageProgress: sum.AverageProgress,
	}, nil
}

func (s *GoalService) save(ctx context.Context, g *goal.Goal) (*inbound.GoalDTO, error) {
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, apperrors.NewDatabaseError("update goal", err)
	}
	if err := shared.DispatchAll(s.events, g); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
	return mapping.GoalToDTO(g), nil
}

func (s *GoalService) loadOwned(ctx context.Context, goalID, userID uuid.UUID) (*goal.Goal, error) {
	g, err := s.repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, goal.ErrGoalNotFound) {
			return nil, apperrors.NewGoalNotFoundError(goalID.String())
		}
		return nil, apperrors.NewDatabaseError("find goal", err)
	}
	if g.OwnerID() != userID {
		return nil, apperrors.NewGoalNotFoundError(goalID.String())
	}
	return g, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func translateError(err error) error {
	switch {
	case errors.Is(err, goal.ErrInvalidType),
		errors.Is(err, goal.ErrInvalidPeriod),
		errors.Is(err, goal.ErrInvalidTarget),
		errors.Is(err, goal.ErrNegativeProgress):
		return apperrors.NewValidationError(err.Error()).WithCause(err)
	}
	return apperrors.Wrap(err, "goal operation failed")
}
