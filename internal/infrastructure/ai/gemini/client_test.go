package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/ports/outbound"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) GenerateWithImage(ctx context.Context, prompt string, image genai.Blob) (string, error) {
	args := m.Called(ctx, prompt, image)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) Close() error {
	return m.Called().Error(0)
}

type recordingObserver struct {
	statuses []string
}

func (o *recordingObserver) AIRequest(provider, model, status string, _ time.Duration) {
	o.statuses = append(o.statuses, provider+"/"+model+"/"+status)
}

func soupRequest() outbound.NutritionEstimateRequest {
	return outbound.NutritionEstimateRequest{
		Title:    "Tomato soup",
		Servings: 4,
		Ingredients: []recipe.Ingredient{
			{Name: "tomato", Quantity: 800, Unit: "g"},
			{Name: "cream", Quantity: 100, Unit: "ml"},
		},
	}
}

func TestParseNutrition(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    recipe.NutritionInfo
		wantErr bool
	}{
		{
			name: "plain JSON",
			text: `{"calories": 210, "protein": 5.5, "carbs": 18, "fat": 12, "fiber": 3, "sugar": 9, "sodium": 480}`,
			want: recipe.NutritionInfo{Calories: 210, Protein: 5.5, Carbs: 18, Fat: 12, Fiber: 3, Sugar: 9, Sodium: 480},
		},
		{
			name: "fenced with prose",
			text: "Here you go:\n```json\n{\"calories\": 95, \"protein\": 2}\n```",
			want: recipe.NutritionInfo{Calories: 95, Protein: 2},
		},
		{name: "no object", text: "I cannot help with that", wantErr: true},
		{name: "missing calories", text: `{"protein": 4}`, wantErr: true},
		{name: "negative value", text: `{"calories": 100, "fat": -1}`, wantErr: true},
		{name: "malformed", text: `{"calories": "lots"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNutrition(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt_ListsIngredients(t *testing.T) {
	prompt := buildPrompt(soupRequest())

	assert.Contains(t, prompt, "Tomato soup")
	assert.Contains(t, prompt, "make 4 servings")
	assert.Contains(t, prompt, "- 800 g tomato")
	assert.Contains(t, prompt, "- 100 ml cream")
}

func TestClient_EstimateNutrition(t *testing.T) {
	gen := new(mockGenerator)
	obs := &recordingObserver{}
	est := newClient(gen, Config{Model: "test-model", Timeout: time.Second}, obs, nil, zap.NewNop())

	gen.On("GenerateContent", mock.Anything, mock.AnythingOfType("string")).
		Return(`{"calories": 180, "protein": 4, "carbs": 20, "fat": 9}`, nil).Once()

	info, err := est.EstimateNutrition(context.Background(), soupRequest())
	require.NoError(t, err)
	assert.Equal(t, 180.0, info.Calories)
	assert.Equal(t, 9.0, info.Fat)
	assert.Equal(t, []string{"gemini/test-model/success"}, obs.statuses)
	gen.AssertExpectations(t)
}

func TestClient_Failures(t *testing.T) {
	gen := new(mockGenerator)
	obs := &recordingObserver{}
	est := newClient(gen, Config{}, obs, nil, zap.NewNop())

	gen.On("GenerateContent", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()
	gen.On("GenerateContent", mock.Anything, mock.Anything).Return("not json", nil).Once()

	_, err := est.EstimateNutrition(context.Background(), soupRequest())
	assert.Error(t, err)

	_, err = est.EstimateNutrition(context.Background(), soupRequest())
	assert.Error(t, err)

	assert.Equal(t, []string{
		"gemini/" + defaultModel + "/error",
		"gemini/" + defaultModel + "/invalid_response",
	}, obs.statuses)
}

func TestClient_RejectsEmptyIngredients(t *testing.T) {
	gen := new(mockGenerator)
	est := newClient(gen, Config{}, nil, nil, zap.NewNop())

	_, err := est.EstimateNutrition(context.Background(), outbound.NutritionEstimateRequest{Title: "Air", Servings: 1})
	assert.Error(t, err)
	gen.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
}
