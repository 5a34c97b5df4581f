package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/ports/outbound"
)

const recipesJSON = "```json\n" + `{"recipes": [
  {"title": "Tomato Omelette", "description": "Quick breakfast",
   "ingredients": [{"name": "egg", "quantity": 3, "unit": "pcs"}, {"name": " tomato ", "quantity": 1, "unit": "pcs"}],
   "instructions": ["Whisk the eggs", "  ", "Fry with tomato"],
   "prep_time": 5, "cook_time": 10, "difficulty": "Easy", "servings": 2, "calories": 280},
  {"title": "", "ingredients": [{"name": "egg", "quantity": 2, "unit": "pcs"}]},
  {"title": "Air soup", "ingredients": [{"name": "water", "quantity": 0, "unit": "ml"}]},
  {"title": "Shakshuka", "ingredients": [{"name": "egg", "quantity": 4, "unit": "pcs"}],
   "difficulty": "tricky", "servings": 0, "calories": -5}
]}` + "\n```"

func TestParseRecipes_KeepsUsableDrafts(t *testing.T) {
	recipes, err := parseRecipes(recipesJSON)
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	omelette := recipes[0]
	assert.Equal(t, "Tomato Omelette", omelette.Title)
	assert.Equal(t, recipe.DifficultyEasy, omelette.Difficulty)
	assert.Equal(t, []string{"Whisk the eggs", "Fry with tomato"}, omelette.Instructions)
	assert.Equal(t, recipe.Ingredient{Name: "tomato", Quantity: 1, Unit: "pcs"}, omelette.Ingredients[1])
	assert.Equal(t, 280.0, omelette.Calories)

	shakshuka := recipes[1]
	assert.Empty(t, shakshuka.Difficulty)
	assert.Equal(t, 1, shakshuka.Servings)
	assert.Zero(t, shakshuka.Calories)
}

func TestParseRecipes_NothingUsable(t *testing.T) {
	_, err := parseRecipes(`{"recipes": [{"title": "Nothing", "ingredients": []}]}`)
	assert.Error(t, err)

	_, err = parseRecipes("sorry")
	assert.Error(t, err)
}

func TestBuildRecipePrompt_IncludesPreferences(t *testing.T) {
	prompt := buildRecipePrompt(outbound.RecipeGenerationRequest{
		Ingredients: []string{"rice", "spinach"},
		Preferences: outbound.RecipePreferences{
			Dietary:    []string{"vegetarian"},
			Cuisine:    "indian",
			MaxMinutes: 30,
			Difficulty: recipe.DifficultyEasy,
			Servings:   2,
		},
	}, 3)

	assert.Contains(t, prompt, "Create 3 different recipes")
	assert.Contains(t, prompt, "rice, spinach")
	assert.Contains(t, prompt, "Diet: vegetarian")
	assert.Contains(t, prompt, "Cuisine: indian")
	assert.Contains(t, prompt, "at most 30 minutes")
	assert.Contains(t, prompt, "Difficulty: easy")
	assert.Contains(t, prompt, "Servings: 2")

	bare := buildRecipePrompt(outbound.RecipeGenerationRequest{Ingredients: []string{"rice"}}, 1)
	assert.NotContains(t, bare, "Preferences")
}

func TestClient_GenerateRecipes(t *testing.T) {
	gen := new(mockGenerator)
	obs := &recordingObserver{}
	client := newClient(gen, Config{Model: "test-model"}, obs, nil, zap.NewNop())

	gen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return containsAll(prompt, "Create 1 different recipes", "egg, tomato")
	})).Return(recipesJSON, nil).Once()

	recipes, err := client.GenerateRecipes(context.Background(), outbound.RecipeGenerationRequest{
		Ingredients: []string{"egg", "tomato"},
		Count:       1,
	})

	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tomato Omelette", recipes[0].Title)
	assert.Equal(t, []string{"gemini/test-model/success"}, obs.statuses)
	gen.AssertExpectations(t)
}

func TestClient_GenerateRecipes_Failures(t *testing.T) {
	gen := new(mockGenerator)
	obs := &recordingObserver{}
	client := newClient(gen, Config{}, obs, nil, zap.NewNop())

	_, err := client.GenerateRecipes(context.Background(), outbound.RecipeGenerationRequest{})
	assert.Error(t, err)
	gen.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)

	gen.On("GenerateContent", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()
	gen.On("GenerateContent", mock.Anything, mock.Anything).Return(`{"recipes": []}`, nil).Once()

	_, err = client.GenerateRecipes(context.Background(), outbound.RecipeGenerationRequest{Ingredients: []string{"egg"}})
	assert.Error(t, err)
	_, err = client.GenerateRecipes(context.Background(), outbound.RecipeGenerationRequest{Ingredients: []string{"egg"}})
	assert.Error(t, err)

	assert.Equal(t, []string{
		"gemini/" + defaultModel + "/error",
		"gemini/" + defaultModel + "/invalid_response",
	}, obs.statuses)
}

func TestClient_SuggestRecipes(t *testing.T) {
	gen := new(mockGenerator)
	client := newClient(gen, Config{}, nil, nil, zap.NewNop())

	gen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return containsAll(prompt, `"lentil"`, "Suggest 2 recipe titles")
	})).Return(`{"titles": ["Lentil Soup", " lentil soup ", "", "Dal Tadka", "Lentil Salad"]}`, nil).Once()

	titles, err := client.SuggestRecipes(context.Background(), "  lentil ", 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"Lentil Soup", "Dal Tadka"}, titles)

	_, err = client.SuggestRecipes(context.Background(), "   ", 2)
	assert.Error(t, err)
	gen.AssertExpectations(t)
}

func TestClient_AnalyzeImage(t *testing.T) {
	gen := new(mockGenerator)
	obs := &recordingObserver{}
	client := newClient(gen, Config{Model: "test-model"}, obs, nil, zap.NewNop())
	photo := []byte{0xff, 0xd8, 0xff, 0xe0}

	gen.On("GenerateWithImage", mock.Anything, imagePrompt, genai.Blob{MIMEType: "image/jpeg", Data: photo}).
		Return(`{"items": [
			{"name": "Tomato", "confidence": 1.4, "quantity": 5, "unit": "pcs", "category": "Vegetables"},
			{"name": "  ", "confidence": 0.9},
			{"name": "Milk", "confidence": 0.4, "quantity": -1, "unit": "l"}
		], "suggestions": ["Tomato soup", ""]}`, nil).Once()

	analysis, err := client.AnalyzeImage(context.Background(), outbound.ImageAnalysisRequest{Image: photo, MIMEType: "image/jpeg"})

	require.NoError(t, err)
	require.Len(t, analysis.Items, 2)
	assert.Equal(t, outbound.DetectedItem{Name: "Tomato", Confidence: 1, Quantity: 5, Unit: "pcs", Category: "vegetables"}, analysis.Items[0])
	assert.Equal(t, 0.0, analysis.Items[1].Quantity)
	assert.Equal(t, []string{"Tomato soup"}, analysis.Suggestions)
	assert.Equal(t, []string{"gemini/test-model/success"}, obs.statuses)
	gen.AssertExpectations(t)
}

func TestClient_AnalyzeImage_RejectsBadInput(t *testing.T) {
	gen := new(mockGenerator)
	client := newClient(gen, Config{}, nil, nil, zap.NewNop())

	_, err := client.AnalyzeImage(context.Background(), outbound.ImageAnalysisRequest{MIMEType: "image/png"})
	assert.Error(t, err)

	_, err = client.AnalyzeImage(context.Background(), outbound.ImageAnalysisRequest{Image: []byte("%PDF"), MIMEType: "application/pdf"})
	assert.Error(t, err)

	gen.AssertNotCalled(t, "GenerateWithImage", mock.Anything, mock.Anything, mock.Anything)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
