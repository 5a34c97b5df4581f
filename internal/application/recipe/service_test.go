package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/ports/inbound"
	"github.com/pantryplan/api/internal/ports/outbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
	"github.com/pantryplan/api/test/testutils"
)

type RecipeServiceTestSuite struct {
	suite.Suite
	repo      *testutils.MockRecipeRepository
	cache     *testutils.MockCacheRepository
	estimator *testutils.MockNutritionEstimator
	events    *testutils.RecordingDispatcher
	factory   *testutils.Factory
	service   *RecipeService
	ctx       context.Context
	userID    uuid.UUID
}

func (s *RecipeServiceTestSuite) SetupTest() {
	s.repo = new(testutils.MockRecipeRepository)
	s.cache = new(testutils.MockCacheRepository)
	s.estimator = new(testutils.MockNutritionEstimator)
	s.events = &testutils.RecordingDispatcher{}
	s.factory = testutils.NewFactory(42)
	s.service = NewRecipeService(s.repo, s.cache, s.estimator, s.events, Options{CacheTTL: time.Minute}, zap.NewNop())
	s.ctx = context.Background()
	s.userID = uuid.New()
}

func (s *RecipeServiceTestSuite) TestCreateRecipe() {
	s.Run("ValidCommand_ShouldPersistAndPublish", func() {
		s.SetupTest()
		calories := 450.0
		cmd := inbound.CreateRecipeCommand{
			UserID:       s.userID,
			Title:        "Shakshuka",
			Servings:     2,
			Ingredients:  []inbound.IngredientInput{{Name: "Egg", Quantity: 4, Unit: "pcs"}},
			Instructions: []string{"Simmer sauce", "Add eggs"},
			Difficulty:   "Medium",
			Calories:     &calories,
		}
		s.repo.On("Create", s.ctx, mock.AnythingOfType("*recipe.Recipe")).Return(nil)

		dto, err := s.service.CreateRecipe(s.ctx, cmd)

		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Shakshuka", dto.Title)
		assert.Equal(s.T(), "medium", dto.Difficulty)
		require.NotNil(s.T(), dto.Calories)
		assert.Equal(s.T(), 450.0, *dto.Calories)
		assert.Equal(s.T(), []string{"recipe.created"}, s.events.Names())
		s.repo.AssertExpectations(s.T())
	})

	s.Run("ZeroServings_ShouldReturnValidationError", func() {
		s.SetupTest()

		_, err := s.service.CreateRecipe(s.ctx, inbound.CreateRecipeCommand{UserID: s.userID, Title: "Soup"})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
		assert.ErrorIs(s.T(), err, recipe.ErrInvalidServings)
		s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	})

	s.Run("RepositoryFailure_ShouldReturnDatabaseError", func() {
		s.SetupTest()
		s.repo.On("Create", s.ctx, mock.Anything).Return(errors.New("disk full"))

		_, err := s.service.CreateRecipe(s.ctx, inbound.CreateRecipeCommand{UserID: s.userID, Title: "Soup", Servings: 1})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeDatabaseError))
	})
}

func (s *RecipeServiceTestSuite) TestGetRecipe() {
	s.Run("CacheMiss_ShouldLoadAndStore", func() {
		s.SetupTest()
		r := s.factory.NewRecipeBuilder().WithOwner(s.userID).Build()
		key := "recipe:" + r.ID().String()
		s.cache.On("Get", s.ctx, key).Return(nil, outbound.ErrCacheMiss)
		s.repo.On("FindByID", s.ctx, r.ID()).Return(r, nil)
		s.cache.On("Set", s.ctx, key, mock.Anything, time.Minute).Return(nil)

		dto, err := s.service.GetRecipe(s.ctx, r.ID(), s.userID)

		require.NoError(s.T(), err)
		assert.Equal(s.T(), r.ID(), dto.ID)
		s.cache.AssertExpectations(s.T())
	})

	s.Run("CacheHit_ShouldSkipRepository", func() {
		s.SetupTest()
		id := uuid.New()
		data, _ := json.Marshal(inbound.RecipeDTO{ID: id, UserID: s.userID, Title: "Cached"})
		s.cache.On("Get", s.ctx, "recipe:"+id.String()).Return(data, nil)

		dto, err := s.service.GetRecipe(s.ctx, id, s.userID)

		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Cached", dto.Title)
		s.repo.AssertNotCalled(s.T(), "FindByID", mock.Anything, mock.Anything)
	})

	s.Run("OtherOwner_ShouldReturnNotFound", func() {
		s.SetupTest()
		r := s.factory.NewRecipeBuilder().Build()
		s.cache.On("Get", s.ctx, mock.Anything).Return(nil, outbound.ErrCacheMiss)
		s.repo.On("FindByID", s.ctx, r.ID()).Return(r, nil)

		_, err := s.service.GetRecipe(s.ctx, r.ID(), s.userID)

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})

	s.Run("Unknown_ShouldReturnNotFound", func() {
		s.SetupTest()
		id := uuid.New()
		s.cache.On("Get", s.ctx, mock.Anything).Return(nil, outbound.ErrCacheMiss)
		s.repo.On("FindByID", s.ctx, id).Return(nil, recipe.ErrRecipeNotFound)

		_, err := s.service.GetRecipe(s.ctx, id, s.userID)

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func (s *RecipeServiceTestSuite) TestUpdateRecipe() {
	s.Run("PartialUpdate_ShouldKeepOtherFieldsAndInvalidateCache", func() {
		s.SetupTest()
		r := s.factory.NewRecipeBuilder().WithOwner(s.userID).WithTitle("Old").Build()
		servings := 6
		title := "New"
		s.repo.On("FindByID", s.ctx, r.ID()).Return(r, nil)
		s.repo.On("Update", s.ctx, r).Return(nil)
		s.cache.On("Delete", s.ctx, "recipe:"+r.ID().String()).Return(nil)

		dto, err := s.service.UpdateRecipe(s.ctx, inbound.UpdateRecipeCommand{
			RecipeID: r.ID(), UserID: s.userID, Title: &title, Servings: &servings,
		})

		require.NoError(s.T(), err)
		assert.Equal(s.T(), "New", dto.Title)
		assert.Equal(s.T(), 6, dto.Servings)
		assert.Len(s.T(), dto.Ingredients, 2)
		assert.Contains(s.T(), s.events.Names(), "recipe.updated")
		s.cache.AssertExpectations(s.T())
	})

	s.Run("InvalidDifficulty_ShouldReturnValidationError", func() {
		s.SetupTest()
		r := s.factory.NewRecipeBuilder().WithOwner(s.userID).Build()
		bad := "extreme"
		s.repo.On("FindByID", s.ctx, r.ID()).Return(r, nil)

		_, err := s.service.UpdateRecipe(s.ctx, inbound.UpdateRecipeCommand{RecipeID: r.ID(), UserID: s.userID, Difficulty: &bad})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func (s *RecipeServiceTestSuite) TestEstimateNutrition() {
	s.Run("Estimator_ShouldStoreNutritionAndCalories", func() {
		s.SetupTest()
		r := s.factory.NewRecipeBuilder().WithOwner(s.userID).Build()
		info := recipe.NutritionInfo{Calories: 380, Protein: 22, Carbs: 30, Fat: 15}
		s.repo.On("FindByID", s.ctx, r.ID()).Return(r, nil)
		s.estimator.On("EstimateNutrition", s.ctx, mock.MatchedBy(func(req outbound.NutritionEstimateRequest) bool {
			return req.Servings == 4 && len(req.Ingredients) == 2
		})).Return(info, nil)
		s.repo.On("Update", s.ctx, r).Return(nil)
		s.cache.On("Delete", s.ctx, mock.Anything).Return(nil)

		dto, err := s.service.EstimateNutrition(s.ctx, r.ID(), s.userID)

		require.NoError(s.T(), err)
		require.NotNil(s.T(), dto.Nutrition)
		assert.Equal(s.T(), 22.0, dto.Nutrition.Protein)
		require.NotNil(s.T(), dto.Calories)
		assert.Equal(s.T(), 380.0, *dto.Calories)
		assert.Contains(s.T(), s.events.Names(), "recipe.nutrition.estimated")
	})

	s.Run("NoEstimator_ShouldReturnServiceUnavailable", func() {
		s.SetupTest()
		svc := NewRecipeService(s.repo, s.cache, nil, s.events, Options{}, zap.NewNop())

		_, err := svc.EstimateNutrition(s.ctx, uuid.New(), s.userID)

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeServiceUnavailable))
	})

	s.Run("EstimatorFailure_ShouldReturnExternalServiceError", func() {
		s.SetupTest()
		r := s.factory.NewRecipeBuilder().WithOwner(s.userID).Build()
		s.repo.On("FindByID", s.ctx, r.ID()).Return(r, nil)
		s.estimator.On("EstimateNutrition", s.ctx, mock.Anything).Return(recipe.NutritionInfo{}, errors.New("quota"))

		_, err := s.service.EstimateNutrition(s.ctx, r.ID(), s.userID)

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeExternalServiceError))
		s.repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
	})
}

func (s *RecipeServiceTestSuite) TestSearchRecipes() {
	s.Run("Filters_ShouldBePassedToRepository", func() {
		s.SetupTest()
		maxCalories := 500.0
		s.repo.On("Search", s.ctx, mock.MatchedBy(func(c outbound.RecipeSearchCriteria) bool {
			return c.OwnerID == s.userID && c.Query == "pasta" &&
				len(c.Difficulties) == 1 && c.Difficulties[0] == recipe.DifficultyEasy &&
				c.MaxCalories != nil && *c.MaxCalories == 500
		})).Return([]*recipe.Recipe{s.factory.NewRecipeBuilder().WithOwner(s.userID).Build()}, nil)

		got, err := s.service.SearchRecipes(s.ctx, inbound.RecipeSearchQuery{
			UserID: s.userID, Text: "pasta", Difficulties: []string{"easy"}, MaxCalories: &maxCalories,
		})

		require.NoError(s.T(), err)
		assert.Len(s.T(), got, 1)
	})

	s.Run("UnknownDifficulty_ShouldReturnValidationError", func() {
		s.SetupTest()

		_, err := s.service.SearchRecipes(s.ctx, inbound.RecipeSearchQuery{UserID: s.userID, Difficulties: []string{"legendary"}})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
