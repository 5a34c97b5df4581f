package goal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoal(t *testing.T) {
	g, err := New(uuid.New(), TypeProtein, 120, "", PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, "g", g.Unit())
	assert.Equal(t, 0.0, g.CurrentValue())

	_, err = New(uuid.New(), Type("sleep"), 8, "h", PeriodDaily)
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = New(uuid.New(), TypeSteps, 0, "", PeriodDaily)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = New(uuid.New(), TypeSteps, 10000, "", Period("yearly"))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestIncrementDecrement(t *testing.T) {
	t.Run("WaterUsesGlassSteps", func(t *testing.T) {
		g, _ := New(uuid.New(), TypeWater, 2000, "ml", PeriodDaily)

		g.Increment()
		g.Increment()

		assert.Equal(t, 500.0, g.CurrentValue())
	})

	t.Run("OtherTypesUseHundred", func(t *testing.T) {
		g, _ := New(uuid.New(), TypeCalories, 2000, "kcal", PeriodDaily)

		g.Increment()

		assert.Equal(t, 100.0, g.CurrentValue())
	})

	t.Run("DecrementFloorsAtZero", func(t *testing.T) {
		g, _ := New(uuid.New(), TypeWater, 2000, "ml", PeriodDaily)
		require.NoError(t, g.SetProgress(100))

		g.Decrement()

		assert.Equal(t, 0.0, g.CurrentValue())
	})
}

func TestProgressAndReachedEvent(t *testing.T) {
	g, _ := New(uuid.New(), TypeCalories, 2000, "kcal", PeriodDaily)

	require.NoError(t, g.SetProgress(1000))
	assert.Equal(t, 50.0, g.Progress())
	assert.Empty(t, g.Events())

	require.NoError(t, g.SetProgress(2500))
	assert.Equal(t, 100.0, g.Progress())
	assert.True(t, g.IsCompleted())
	assert.Len(t, g.Events(), 1)

	require.NoError(t, g.SetProgress(3000))
	assert.Empty(t, g.Events())

	assert.ErrorIs(t, g.SetProgress(-1), ErrNegativeProgress)
}

func TestSummarize(t *testing.T) {
	goals := []*Goal{
		Rehydrate(Snapshot{ID: uuid.New(), Type: TypeCalories, TargetValue: 2000, CurrentValue: 3000}),
		Rehydrate(Snapshot{ID: uuid.New(), Type: TypeWater, TargetValue: 2000, CurrentValue: 1000}),
		Rehydrate(Snapshot{ID: uuid.New(), Type: TypeSteps, TargetValue: 10000, CurrentValue: 0}),
	}

	s := Summarize(goals)

	assert.Equal(t, 3, s.TotalGoals)
	assert.Equal(t, 1, s.CompletedGoals)
	// (100 + 50 + 0) / 3, with the over-achieved goal capped
	assert.Equal(t, 50.0, s.AverageProgress)
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestFirstOfType(t *testing.T) {
	first := Rehydrate(Snapshot{ID: uuid.New(), Type: TypeFat})
	second := Rehydrate(Snapshot{ID: uuid.New(), Type: TypeFat})

	assert.Same(t, first, FirstOfType([]*Goal{first, second}, TypeFat))
	assert.Nil(t, FirstOfType([]*Goal{first}, TypeProtein))
}
