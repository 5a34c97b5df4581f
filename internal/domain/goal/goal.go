// Package goal models numeric nutrition and activity targets.
package goal

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/api/internal/domain/nutrition"
	"github.com/pantryplan/api/internal/domain/shared"
)

// Type is what a goal measures
type Type string

const (
	TypeCalories Type = "calories"
	TypeProtein  Type = "protein"
	TypeCarbs    Type = "carbs"
	TypeFat      Type = "fat"
	TypeWater    Type = "water"
	TypeSteps    Type = "steps"
	TypeWeight   Type = "weight"
)

// IsValid reports whether t is a known goal type
func (t Type) IsValid() bool {
	switch t {
	case TypeCalories, TypeProtein, TypeCarbs, TypeFat, TypeWater, TypeSteps, TypeWeight:
		return true
	}
	return false
}

// Step is the amount a single increment or decrement changes current value by.
func (t Type) Step() float64 {
	if t == TypeWater {
		return 250
	}
	return 100
}

// DefaultUnit is the unit suggested for a goal type
func (t Type) DefaultUnit() string {
	switch t {
	case TypeCalories:
		return "kcal"
	case TypeProtein, TypeCarbs, TypeFat:
		return "g"
	case TypeWater:
		return "ml"
	case TypeSteps:
		return "steps"
	case TypeWeight:
		return "kg"
	}
	return ""
}

// Period is the time span a goal applies to
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// IsValid reports whether p is a known period
func (p Period) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// Goal is a numeric target with the value reached so far
type Goal struct {
	shared.AggregateRoot

	id           uuid.UUID
	ownerID      uuid.UUID
	goalType     Type
	targetValue  float64
	currentValue float64
	unit         string
	period       Period
	createdAt    time.Time
	updatedAt    time.Time
}

// New creates a goal with current value 0
func New(ownerID uuid.UUID, goalType Type, target float64, unit string, period Period) (*Goal, error) {
	if !goalType.IsValid() {
		return nil, ErrInvalidType
	}
	if target <= 0 {
		return nil, ErrInvalidTarget
	}
	if !period.IsValid() {
		return nil, ErrInvalidPeriod
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = goalType.DefaultUnit()
	}

	now := time.Now().UTC()
	return &Goal{
		id:          uuid.New(),
		ownerID:     ownerID,
		goalType:    goalType,
		targetValue: target,
		unit:        unit,
		period:      period,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Snapshot is the flat, persistable form of a Goal
type Snapshot struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Type         Type
	TargetValue  float64
	CurrentValue float64
	Unit         string
	Period       Period
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Rehydrate rebuilds a Goal from storage
func Rehydrate(s Snapshot) *Goal {
	return &Goal{
		id:           s.ID,
		ownerID:      s.OwnerID,
		goalType:     s.Type,
		targetValue:  s.TargetValue,
		currentValue: s.CurrentValue,
		unit:         s.Unit,
		period:       s.Period,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}

// Snapshot returns the persistable form of the goal
func (g *Goal) Snapshot() Snapshot {
	return Snapshot{
		ID:           g.id,
		OwnerID:      g.ownerID,
		Type:         g.goalType,
		TargetValue:  g.targetValue,
		CurrentValue: g.currentValue,
		Unit:         g.unit,
		Period:       g.period,
		CreatedAt:    g.createdAt,
		UpdatedAt:    g.updatedAt,
	}
}

func (g *Goal) ID() uuid.UUID         { return g.id }
func (g *Goal) OwnerID() uuid.UUID    { return g.ownerID }
func (g *Goal) Type() Type            { return g.goalType }
func (g *Goal) TargetValue() float64  { return g.targetValue }
func (g *Goal) CurrentValue() float64 { return g.currentValue }
func (g *Goal) Unit() string          { return g.unit }
func (g *Goal) Period() Period        { return g.period }
func (g *Goal) CreatedAt() time.Time  { return g.createdAt }
func (g *Goal) UpdatedAt() time.Time  { return g.updatedAt }

// Progress is the percentage of the target reached, capped at 100
func (g *Goal) Progress() float64 {
	return nutrition.GoalProgress(g.currentValue, g.targetValue)
}

// IsCompleted reports whether the target has been reached
func (g *Goal) IsCompleted() bool {
	return g.Progress() >= 100
}

// SetTarget changes the target value
func (g *Goal) SetTarget(target float64) error {
	if target <= 0 {
		return ErrInvalidTarget
	}
	g.targetValue = target
	g.touch()
	return nil
}

// SetType changes what the goal measures
func (g *Goal) SetType(t Type) error {
	if !t.IsValid() {
		return ErrInvalidType
	}
	g.goalType = t
	g.touch()
	return nil
}

// SetPeriod changes the goal period
func (g *Goal) SetPeriod(p Period) error {
	if !p.IsValid() {
		return ErrInvalidPeriod
	}
	g.period = p
	g.touch()
	return nil
}

// SetUnit changes the unit label
func (g *Goal) SetUnit(unit string) {
	g.unit = strings.TrimSpace(unit)
	g.touch()
}

// SetProgress sets the current value
func (g *Goal) SetProgress(current float64) error {
	if current < 0 {
		return ErrNegativeProgress
	}
	wasCompleted := g.IsCompleted()
	g.currentValue = current
	g.touch()
	if !wasCompleted && g.IsCompleted() {
		g.AddEvent(GoalReachedEvent{GoalID: g.id, Type: g.goalType, ReachedAt: g.updatedAt})
	}
	return nil
}

// Increment adds one type-specific step to the current value
func (g *Goal) Increment() {
	_ = g.SetProgress(g.currentValue + g.goalType.Step())
}

// Decrement subtracts one step, never going below zero
func (g *Goal) Decrement() {
	_ = g.SetProgress(math.Max(g.currentValue-g.goalType.Step(), 0))
}

func (g *Goal) touch() {
	g.updatedAt = time.Now().UTC()
}

// Summary aggregates progress over a set of goals
type Summary struct {
	TotalGoals      int     `json:"total_goals"`
	CompletedGoals  int     `json:"completed_goals"`
	AverageProgress float64 `json:"average_progress"`
}

// Summarize counts completed goals and averages the capped progress,
// rounded to a whole percent.
func Summarize(goals []*Goal) Summary {
	s := Summary{TotalGoals: len(goals)}
	if len(goals) == 0 {
		return s
	}
	var total float64
	for _, g := range goals {
		p := g.Progress()
		total += p
		if p >= 100 {
			s.CompletedGoals++
		}
	}
	s.AverageProgress = math.Round(total / float64(len(goals)))
	return s
}

// FirstOfType returns the first goal of type t, or nil
func FirstOfType(goals []*Goal, t Type) *Goal {
	for _, g := range goals {
		if g.goalType == t {
			return g
		}
	}
	return nil
}
