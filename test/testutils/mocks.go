// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pantryplan/api/internal/domain/goal"
	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/domain/pantry"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shared"
	"github.com/pantryplan/api/internal/domain/shopping"
	"github.com/pantryplan/api/internal/ports/outbound"
)

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*recipe.Recipe)
	return r, args.Error(1)
}

func (m *MockRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	r, _ := args.Get(0).([]*recipe.Recipe)
	return r, args.Error(1)
}

func (m *MockRecipeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ownerID, limit)
	r, _ := args.Get(0).([]*recipe.Recipe)
	return r, args.Error(1)
}

func (m *MockRecipeRepository) Search(ctx context.Context, criteria outbound.RecipeSearchCriteria) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, criteria)
	r, _ := args.Get(0).([]*recipe.Recipe)
	return r, args.Error(1)
}

// MockPantryRepository provides a mock implementation of PantryRepository
type MockPantryRepository struct {
	mock.Mock
}

func (m *MockPantryRepository) Create(ctx context.Context, item *pantry.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockPantryRepository) Update(ctx context.Context, item *pantry.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockPantryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPantryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*pantry.Item)
	return item, args.Error(1)
}

func (m *MockPantryRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*pantry.Item, error) {
	args := m.Called(ctx, ownerID)
	items, _ := args.Get(0).([]*pantry.Item)
	return items, args.Error(1)
}

func (m *MockPantryRepository) FindByCategory(ctx context.Context, ownerID uuid.UUID, category pantry.Category) ([]*pantry.Item, error) {
	args := m.Called(ctx, ownerID, category)
	items, _ := args.Get(0).([]*pantry.Item)
	return items, args.Error(1)
}

func (m *MockPantryRepository) FindExpiringBefore(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]*pantry.Item, error) {
	args := m.Called(ctx, ownerID, before)
	items, _ := args.Get(0).([]*pantry.Item)
	return items, args.Error(1)
}

// MockMealPlanRepository provides a mock implementation of MealPlanRepository
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) Create(ctx context.Context, e *mealplan.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockMealPlanRepository) Update(ctx context.Context, e *mealplan.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockMealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.Entry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*mealplan.Entry)
	return e, args.Error(1)
}

func (m *MockMealPlanRepository) FindByDateRange(ctx context.Context, ownerID uuid.UUID, r mealplan.DateRange) ([]*mealplan.Entry, error) {
	args := m.Called(ctx, ownerID, r)
	entries, _ := args.Get(0).([]*mealplan.Entry)
	return entries, args.Error(1)
}

// MockShoppingListRepository provides a mock implementation of ShoppingListRepository
type MockShoppingListRepository struct {
	mock.Mock
}

func (m *MockShoppingListRepository) Create(ctx context.Context, l *shopping.List) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockShoppingListRepository) Update(ctx context.Context, l *shopping.List) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockShoppingListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockShoppingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.List, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*shopping.List)
	return l, args.Error(1)
}

func (m *MockShoppingListRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, status *shopping.Status) ([]*shopping.List, error) {
	args := m.Called(ctx, ownerID, status)
	lists, _ := args.Get(0).([]*shopping.List)
	return lists, args.Error(1)
}

// MockGoalRepository provides a mock implementation of GoalRepository
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockGoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*goal.Goal)
	return g, args.Error(1)
}

func (m *MockGoalRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*goal.Goal, error) {
	args := m.Called(ctx, ownerID)
	goals, _ := args.Get(0).([]*goal.Goal)
	return goals, args.Error(1)
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockNutritionEstimator provides a mock implementation of NutritionEstimator
type MockNutritionEstimator struct {
	mock.Mock
}

func (m *MockNutritionEstimator) EstimateNutrition(ctx context.Context, req outbound.NutritionEstimateRequest) (recipe.NutritionInfo, error) {
	args := m.Called(ctx, req)
	info, _ := args.Get(0).(recipe.NutritionInfo)
	return info, args.Error(1)
}

// MockRecipeAssistant provides a mock implementation of RecipeAssistant
type MockRecipeAssistant struct {
	mock.Mock
}

func (m *MockRecipeAssistant) GenerateRecipes(ctx context.Context, req outbound.RecipeGenerationRequest) ([]outbound.GeneratedRecipe, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).([]outbound.GeneratedRecipe)
	return r, args.Error(1)
}

func (m *MockRecipeAssistant) SuggestRecipes(ctx context.Context, query string, limit int) ([]string, error) {
	args := m.Called(ctx, query, limit)
	r, _ := args.Get(0).([]string)
	return r, args.Error(1)
}

func (m *MockRecipeAssistant) AnalyzeImage(ctx context.Context, req outbound.ImageAnalysisRequest) (outbound.ImageAnalysis, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(outbound.ImageAnalysis)
	return r, args.Error(1)
}

// RecordingDispatcher is an EventDispatcher that keeps every dispatched event
type RecordingDispatcher struct {
	Dispatched []shared.DomainEvent
}

func (d *RecordingDispatcher) Dispatch(event shared.DomainEvent) error {
	d.Dispatched = append(d.Dispatched, event)
	return nil
}

func (d *RecordingDispatcher) Register(string, shared.EventHandler) {}

// Names returns the names of the dispatched events in order
func (d *RecordingDispatcher) Names() []string {
	names := make([]string, 0, len(d.Dispatched))
	for _, e := range d.Dispatched {
		names = append(names, e.EventName())
	}
	return names
}
