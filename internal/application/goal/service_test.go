package goal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/ports/inbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
	"github.com/pantryplan/api/test/testutils"
)

type GoalServiceTestSuite struct {
	suite.Suite
	repo    *testutils.MockGoalRepository
	events  *testutils.RecordingDispatcher
	factory *testutils.Factory
	service *GoalService
	ctx     context.Context
	userID  uuid.UUID
}

func (s *GoalServiceTestSuite) SetupTest() {
	s.repo = new(testutils.MockGoalRepository)
	s.events = &testutils.RecordingDispatcher{}
	s.factory = testutils.NewFactory(5)
	s.service = NewGoalService(s.repo, s.events, zap.NewNop())
	s.ctx = context.Background()
	s.userID = uuid.New()
}

func (s *GoalServiceTestSuite) TestCreateGoal() {
	s.Run("Defaults_ShouldFillUnitAndPeriod", func() {
		s.SetupTest()
		s.repo.On("Create", s.ctx, mock.AnythingOfType("*goal.Goal")).Return(nil)

		dto, err := s.service.CreateGoal(s.ctx, inbound.CreateGoalCommand{UserID: s.userID, GoalType: "Water", TargetValue: 2000})

		require.NoError(s.T(), err)
		assert.Equal(s.T(), "water", dto.GoalType)
		assert.Equal(s.T(), "ml", dto.Unit)
		assert.Equal(s.T(), "daily", dto.Period)
		assert.Zero(s.T(), dto.Progress)
	})

	s.Run("ZeroTarget_ShouldReturnValidationError", func() {
		s.SetupTest()

		_, err := s.service.CreateGoal(s.ctx, inbound.CreateGoalCommand{UserID: s.userID, GoalType: "steps"})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func (s *GoalServiceTestSuite) TestIncrementDecrement() {
	s.Run("WaterIncrement_ShouldAddQuarterLitre", func() {
		s.SetupTest()
		g := s.factory.Goal(s.userID, goal.TypeWater, 2000, 500)
		s.repo.On("FindByID", s.ctx, g.ID()).Return(g, nil)
		s.repo.On("Update", s.ctx, g).Return(nil)

		dto, err := s.service.Increment(s.ctx, g.ID(), s.userID)

		require.NoError(s.T(), err)
		assert.Equal(s.T(), 750.0, dto.CurrentValue)
	})

	s.Run("Decrement_ShouldFloorAtZero", func() {
		s.SetupTest()
		g := s.factory.Goal(s.userID, goal.TypeSteps, 10000, 40)
		s.repo.On("FindByID", s.ctx, g.ID()).Return(g, nil)
		s.repo.On("Update", s.ctx, g).Return(nil)

		dto, err := s.service.Decrement(s.ctx, g.ID(), s.userID)

		require.NoError(s.T(), err)
		assert.Zero(s.T(), dto.CurrentValue)
	})
}

func (s *GoalServiceTestSuite) TestSetProgress() {
	s.Run("CrossingTarget_ShouldPublishGoalReached", func() {
		s.SetupTest()
		g := s.factory.Goal(s.userID, goal.TypeProtein, 120, 100)
		s.repo.On("FindByID", s.ctx, g.ID()).Return(g, nil)
		s.repo.On("Update", s.ctx, g).Return(nil)

		dto, err := s.service.SetProgress(s.ctx, g.ID(), s.userID, 130)

		require.NoError(s.T(), err)
		assert.True(s.T(), dto.Completed)
		assert.Equal(s.T(), 100.0, dto.Progress)
		assert.Equal(s.T(), []string{"goal.reached"}, s.events.Names())
	})

	s.Run("Negative_ShouldReturnValidationError", func() {
		s.SetupTest()
		g := s.factory.Goal(s.userID, goal.TypeFat, 70, 10)
		s.repo.On("FindByID", s.ctx, g.ID()).Return(g, nil)

		_, err := s.service.SetProgress(s.ctx, g.ID(), s.userID, -1)

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	s.Run("UnknownGoal_ShouldReturnNotFound", func() {
		s.SetupTest()
		id := uuid.New()
		s.repo.On("FindByID", s.ctx, id).Return(nil, goal.ErrGoalNotFound)

		_, err := s.service.SetProgress(s.ctx, id, s.userID, 1)

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeGoalNotFound))
	})
}

func (s *GoalServiceTestSuite) TestSummary() {
	s.SetupTest()
	goals := []*goal.Goal{
		s.factory.Goal(s.userID, goal.TypeCalories, 2000, 3000),
		s.factory.Goal(s.userID, goal.TypeProtein, 100, 50),
	}
	s.repo.On("FindByOwner", s.ctx, s.userID).Return(goals, nil)

	sum, err := s.service.Summary(s.ctx, s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, sum.TotalGoals)
	assert.Equal(s.T(), 1, sum.CompletedGoals)
	assert.Equal(s.T(), 75.0, sum.AverageProgress)
}

func TestGoalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GoalServiceTestSuite))
}
