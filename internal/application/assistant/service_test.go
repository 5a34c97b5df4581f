package assistant

import (
	"context"
	"errors"
	"testing"

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

type mockRecipeCreator struct {
	mock.Mock
}

func (m *mockRecipeCreator) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.RecipeDTO)
	return dto, args.Error(1)
}

type mockPantryStock struct {
	mock.Mock
}

func (m *mockPantryStock) AddItem(ctx context.Context, cmd inbound.CreatePantryItemCommand) (*inbound.PantryItemDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.PantryItemDTO)
	return dto, args.Error(1)
}

func (m *mockPantryStock) ListItems(ctx context.Context, userID uuid.UUID, category string) ([]*inbound.PantryItemDTO, error) {
	args := m.Called(ctx, userID, category)
	items, _ := args.Get(0).([]*inbound.PantryItemDTO)
	return items, args.Error(1)
}

type AssistantServiceTestSuite struct {
	suite.Suite
	assistant *testutils.MockRecipeAssistant
	recipes   *mockRecipeCreator
	pantry    *mockPantryStock
	service   *AssistantService
	ctx       context.Context
	userID    uuid.UUID
}

func (s *AssistantServiceTestSuite) SetupTest() {
	s.assistant = new(testutils.MockRecipeAssistant)
	s.recipes = new(mockRecipeCreator)
	s.pantry = new(mockPantryStock)
	s.service = NewAssistantService(s.assistant, s.recipes, s.pantry, zap.NewNop())
	s.ctx = context.Background()
	s.userID = uuid.New()
}

func omelette() outbound.GeneratedRecipe {
	return outbound.GeneratedRecipe{
		Title:        "Omelette",
		Ingredients:  []recipe.Ingredient{{Name: "egg", Quantity: 3, Unit: "pcs"}},
		Instructions: []string{"Whisk", "Fry"},
		Difficulty:   recipe.DifficultyEasy,
		Servings:     1,
		Calories:     300,
	}
}

func (s *AssistantServiceTestSuite) TestGenerateRecipes() {
	s.Run("UsePantry_ShouldMergeFreshPantryItems", func() {
		s.SetupTest()
		s.pantry.On("ListItems", s.ctx, s.userID, "").Return([]*inbound.PantryItemDTO{
			{Name: "Eggs", Quantity: 6},
			{Name: "tomato", Quantity: 2},
			{Name: "Milk", Quantity: 1, Expired: true},
			{Name: "Flour", Quantity: 0},
		}, nil)
		s.assistant.On("GenerateRecipes", s.ctx, outbound.RecipeGenerationRequest{
			Ingredients: []string{"Tomato", "basil", "Eggs"},
			Preferences: outbound.RecipePreferences{Cuisine: "italian", Difficulty: recipe.DifficultyEasy},
			Count:       2,
		}).Return([]outbound.GeneratedRecipe{omelette()}, nil)

		result, err := s.service.GenerateRecipes(s.ctx, inbound.GenerateRecipesCommand{
			UserID:      s.userID,
			Ingredients: []string{" Tomato ", "basil", "", "Basil"},
			UsePantry:   true,
			Preferences: inbound.RecipePreferencesInput{Cuisine: " italian ", Difficulty: "easy"},
			Count:       2,
		})

		require.NoError(s.T(), err)
		assert.Equal(s.T(), []string{"Tomato", "basil", "Eggs"}, result.Ingredients)
		require.Len(s.T(), result.Recipes, 1)
		assert.Equal(s.T(), "Omelette", result.Recipes[0].Title)
		assert.Equal(s.T(), "easy", result.Recipes[0].Difficulty)
		assert.Empty(s.T(), result.Saved)
		s.recipes.AssertNotCalled(s.T(), "CreateRecipe", mock.Anything, mock.Anything)
	})

	s.Run("Save_ShouldStoreDraftsAndSkipRejectedOnes", func() {
		s.SetupTest()
		broken := omelette()
		broken.Title = "Broken"
		s.assistant.On("GenerateRecipes", s.ctx, mock.Anything).
			Return([]outbound.GeneratedRecipe{omelette(), broken}, nil)
		stored := &inbound.RecipeDTO{ID: uuid.New(), Title: "Omelette"}
		s.recipes.On("CreateRecipe", s.ctx, mock.MatchedBy(func(cmd inbound.CreateRecipeCommand) bool {
			return cmd.Title == "Omelette"
		})).Return(stored, nil)
		s.recipes.On("CreateRecipe", s.ctx, mock.MatchedBy(func(cmd inbound.CreateRecipeCommand) bool {
			return cmd.Title == "Broken"
		})).Return(nil, apperrors.NewValidationError("servings must be positive"))

		result, err := s.service.GenerateRecipes(s.ctx, inbound.GenerateRecipesCommand{
			UserID:      s.userID,
			Ingredients: []string{"egg"},
			Save:        true,
		})

		require.NoError(s.T(), err)
		assert.Len(s.T(), result.Recipes, 2)
		require.Len(s.T(), result.Saved, 1)
		assert.Equal(s.T(), stored.ID, result.Saved[0].ID)

		saved := s.recipes.Calls[0].Arguments.Get(1).(inbound.CreateRecipeCommand)
		assert.Equal(s.T(), s.userID, saved.UserID)
		assert.Equal(s.T(), []string{"ai-generated"}, saved.Tags)
		require.NotNil(s.T(), saved.Calories)
		assert.Equal(s.T(), 300.0, *saved.Calories)
		assert.Equal(s.T(), []inbound.IngredientInput{{Name: "egg", Quantity: 3, Unit: "pcs"}}, saved.Ingredients)
	})

	s.Run("Save_DatabaseFailure_ShouldPropagate", func() {
		s.SetupTest()
		s.assistant.On("GenerateRecipes", s.ctx, mock.Anything).Return([]outbound.GeneratedRecipe{omelette()}, nil)
		s.recipes.On("CreateRecipe", s.ctx, mock.Anything).
			Return(nil, apperrors.NewDatabaseError("create recipe", errors.New("disk full")))

		_, err := s.service.GenerateRecipes(s.ctx, inbound.GenerateRecipesCommand{
			UserID: s.userID, Ingredients: []string{"egg"}, Save: true,
		})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeDatabaseError))
	})

	s.Run("NoIngredients_ShouldFailValidation", func() {
		s.SetupTest()
		s.pantry.On("ListItems", s.ctx, s.userID, "").Return([]*inbound.PantryItemDTO{}, nil)

		_, err := s.service.GenerateRecipes(s.ctx, inbound.GenerateRecipesCommand{
			UserID: s.userID, Ingredients: []string{"  "}, UsePantry: true,
		})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
		s.assistant.AssertNotCalled(s.T(), "GenerateRecipes", mock.Anything, mock.Anything)
	})

	s.Run("ModelFailure_ShouldBeExternalError", func() {
		s.SetupTest()
		s.assistant.On("GenerateRecipes", s.ctx, mock.Anything).Return(nil, errors.New("quota exceeded"))

		_, err := s.service.GenerateRecipes(s.ctx, inbound.GenerateRecipesCommand{UserID: s.userID, Ingredients: []string{"egg"}})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeExternalServiceError))
	})
}

func (s *AssistantServiceTestSuite) TestSuggestRecipes() {
	s.Run("ShouldReturnTitles", func() {
		s.SetupTest()
		s.assistant.On("SuggestRecipes", s.ctx, "lentils", 5).Return([]string{"Dal", "Lentil soup"}, nil)

		titles, err := s.service.SuggestRecipes(s.ctx, s.userID, " lentils ", 5)

		require.NoError(s.T(), err)
		assert.Equal(s.T(), []string{"Dal", "Lentil soup"}, titles)
	})

	s.Run("ModelFailure_ShouldDegradeToEmptyList", func() {
		s.SetupTest()
		s.assistant.On("SuggestRecipes", s.ctx, "lentils", 0).Return(nil, errors.New("timeout"))

		titles, err := s.service.SuggestRecipes(s.ctx, s.userID, "lentils", 0)

		require.NoError(s.T(), err)
		assert.NotNil(s.T(), titles)
		assert.Empty(s.T(), titles)
	})

	s.Run("EmptyQuery_ShouldFailValidation", func() {
		s.SetupTest()

		_, err := s.service.SuggestRecipes(s.ctx, s.userID, "   ", 5)

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func (s *AssistantServiceTestSuite) TestAnalyzeImage() {
	photo := []byte{0xff, 0xd8, 0xff}

	s.Run("AddToPantry_ShouldStockConfidentItems", func() {
		s.SetupTest()
		s.assistant.On("AnalyzeImage", s.ctx, outbound.ImageAnalysisRequest{Image: photo, MIMEType: "image/jpeg"}).
			Return(outbound.ImageAnalysis{
				Items: []outbound.DetectedItem{
					{Name: "Tomato", Confidence: 0.95, Quantity: 5, Unit: "pcs", Category: "vegetables"},
					{Name: "Cheese", Confidence: 0.7, Category: "snacks"},
					{Name: "Blur", Confidence: 0.2},
				},
			}, nil)
		s.pantry.On("AddItem", s.ctx, inbound.CreatePantryItemCommand{
			UserID: s.userID, Name: "Tomato", Quantity: 5, Unit: "pcs", Category: "vegetables",
		}).Return(&inbound.PantryItemDTO{Name: "Tomato"}, nil)
		s.pantry.On("AddItem", s.ctx, inbound.CreatePantryItemCommand{
			UserID: s.userID, Name: "Cheese", Quantity: 1, Category: "other",
		}).Return(&inbound.PantryItemDTO{Name: "Cheese"}, nil)

		result, err := s.service.AnalyzeImage(s.ctx, inbound.AnalyzeImageCommand{
			UserID: s.userID, Image: photo, MIMEType: "Image/JPEG", AddToPantry: true,
		})

		require.NoError(s.T(), err)
		require.Len(s.T(), result.Items, 3)
		assert.Equal(s.T(), "other", result.Items[1].Category)
		assert.Equal(s.T(), []string{}, result.Suggestions)
		require.Len(s.T(), result.Added, 2)
		s.pantry.AssertNumberOfCalls(s.T(), "AddItem", 2)
	})

	s.Run("WithoutAddToPantry_ShouldOnlyReport", func() {
		s.SetupTest()
		s.assistant.On("AnalyzeImage", s.ctx, mock.Anything).Return(outbound.ImageAnalysis{
			Items:       []outbound.DetectedItem{{Name: "Apple", Confidence: 0.9, Category: "fruit"}},
			Suggestions: []string{"Apple pie"},
		}, nil)

		result, err := s.service.AnalyzeImage(s.ctx, inbound.AnalyzeImageCommand{UserID: s.userID, Image: photo, MIMEType: "image/png"})

		require.NoError(s.T(), err)
		assert.Equal(s.T(), []string{"Apple pie"}, result.Suggestions)
		assert.Empty(s.T(), result.Added)
		s.pantry.AssertNotCalled(s.T(), "AddItem", mock.Anything, mock.Anything)
	})

	s.Run("BadInput_ShouldFailValidation", func() {
		s.SetupTest()
		for _, cmd := range []inbound.AnalyzeImageCommand{
			{UserID: s.userID, MIMEType: "image/jpeg"},
			{UserID: s.userID, Image: photo, MIMEType: "application/pdf"},
			{UserID: s.userID, Image: make([]byte, inbound.MaxImageBytes+1), MIMEType: "image/jpeg"},
		} {
			_, err := s.service.AnalyzeImage(s.ctx, cmd)
			assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
		}
		s.assistant.AssertNotCalled(s.T(), "AnalyzeImage", mock.Anything, mock.Anything)
	})
}

func (s *AssistantServiceTestSuite) TestNotConfigured() {
	service := NewAssistantService(nil, s.recipes, s.pantry, zap.NewNop())

	_, err := service.GenerateRecipes(s.ctx, inbound.GenerateRecipesCommand{UserID: s.userID, Ingredients: []string{"egg"}})
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeServiceUnavailable))

	_, err = service.SuggestRecipes(s.ctx, s.userID, "soup", 5)
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeServiceUnavailable))

	_, err = service.AnalyzeImage(s.ctx, inbound.AnalyzeImageCommand{UserID: s.userID, Image: []byte{1}, MIMEType: "image/jpeg"})
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeServiceUnavailable))
}

func TestAssistantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssistantServiceTestSuite))
}
