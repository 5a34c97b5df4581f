// Package mealplan models the assignment of recipes to calendar slots.
package mealplan

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shared"
)

// DateLayout is the calendar-date format used for plan dates
const DateLayout = "2006-01-02"

// MealType is the meal slot of an entry
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// IsValid reports whether m is a known meal slot
func (m MealType) IsValid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// ParseMealType parses a meal type name, case-insensitively.
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", ErrInvalidMealType
	}
	return m, nil
}

// Entry assigns a recipe to a date and meal slot with a planned serving count.
type Entry struct {
	shared.AggregateRoot

	id       uuid.UUID
	ownerID  uuid.UUID
	recipeID uuid.UUID
	recipe   *recipe.Recipe

	date      time.Time
	mealType  MealType
	servings  int
	completed bool
	notes     string

	createdAt time.Time
	updatedAt time.Time
}

// New plans a recipe for a date
func New(ownerID, recipeID uuid.UUID, date time.Time, mealType MealType, servings int, notes string) (*Entry, error) {
	if recipeID == uuid.Nil {
		return nil, ErrMissingRecipe
	}
	if date.IsZero() {
		return nil, ErrMissingDate
	}
	if !mealType.IsValid() {
		return nil, ErrInvalidMealType
	}
	if servings <= 0 {
		return nil, ErrInvalidServings
	}

	now := time.Now().UTC()
	e := &Entry{
		id:        uuid.New(),
		ownerID:   ownerID,
		recipeID:  recipeID,
		date:      TruncateDay(date),
		mealType:  mealType,
		servings:  servings,
		notes:     strings.TrimSpace(notes),
		createdAt: now,
		updatedAt: now,
	}
	e.AddEvent(EntryPlannedEvent{EntryID: e.id, RecipeID: recipeID, Date: e.date, PlannedAt: now})
	return e, nil
}

// Snapshot is the flat, persistable form of an Entry
type Snapshot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	RecipeID  uuid.UUID
	Date      time.Time
	MealType  MealType
	Servings  int
	Completed bool
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rehydrate rebuilds an Entry from storage. The recipe is attached separately.
func Rehydrate(s Snapshot) *Entry {
	return &Entry{
		id:        s.ID,
		ownerID:   s.OwnerID,
		recipeID:  s.RecipeID,
		date:      TruncateDay(s.Date),
		mealType:  s.MealType,
		servings:  s.Servings,
		completed: s.Completed,
		notes:     s.Notes,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}
}

// Snapshot returns the persistable form of the entry
func (e *Entry) Snapshot() Snapshot {
	return Snapshot{
		ID:        e.id,
		OwnerID:   e.ownerID,
		RecipeID:  e.recipeID,
		Date:      e.date,
		MealType:  e.mealType,
		Servings:  e.servings,
		Completed: e.completed,
		Notes:     e.notes,
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
	}
}

func (e *Entry) ID() uuid.UUID        { return e.id }
func (e *Entry) OwnerID() uuid.UUID   { return e.ownerID }
func (e *Entry) RecipeID() uuid.UUID  { return e.recipeID }
func (e *Entry) Date() time.Time      { return e.date }
func (e *Entry) MealType() MealType   { return e.mealType }
func (e *Entry) Servings() int        { return e.servings }
func (e *Entry) IsCompleted() bool    { return e.completed }
func (e *Entry) Notes() string        { return e.notes }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
func (e *Entry) UpdatedAt() time.Time { return e.updatedAt }

// Recipe returns the resolved recipe, or nil when it was not loaded
func (e *Entry) Recipe() *recipe.Recipe { return e.recipe }

// AttachRecipe sets the resolved recipe. A recipe with a different ID is ignored.
func (e *Entry) AttachRecipe(r *recipe.Recipe) {
	if r == nil || r.ID() != e.recipeID {
		return
	}
	e.recipe = r
}

// ServingMultiplier is planned servings divided by the recipe's native servings.
func (e *Entry) ServingMultiplier() (float64, error) {
	if e.recipe == nil {
		return 0, ErrRecipeNotAttached
	}
	native := e.recipe.Servings()
	if native <= 0 {
		return 0, fmt.Errorf("%w: recipe %s has %d servings", ErrInvalidRecipeServings, e.recipe.ID(), native)
	}
	return float64(e.servings) / float64(native), nil
}

// SetCompleted marks the entry as cooked or not
func (e *Entry) SetCompleted(completed bool) {
	if e.completed == completed {
		return
	}
	e.completed = completed
	e.touch()
	if completed {
		e.AddEvent(EntryCompletedEvent{EntryID: e.id, RecipeID: e.recipeID, CompletedAt: e.updatedAt})
	}
}

// ToggleCompleted flips the completion flag
func (e *Entry) ToggleCompleted() {
	e.SetCompleted(!e.completed)
}

// Reschedule moves the entry to another date
func (e *Entry) Reschedule(date time.Time) error {
	if date.IsZero() {
		return ErrMissingDate
	}
	e.date = TruncateDay(date)
	e.touch()
	return nil
}

// SetMealType changes the meal slot
func (e *Entry) SetMealType(m MealType) error {
	if !m.IsValid() {
		return ErrInvalidMealType
	}
	e.mealType = m
	e.touch()
	return nil
}

// SetServings changes the planned serving count
func (e *Entry) SetServings(servings int) error {
	if servings <= 0 {
		return ErrInvalidServings
	}
	e.servings = servings
	e.touch()
	return nil
}

// SetNotes replaces the free-text note
func (e *Entry) SetNotes(notes string) {
	e.notes = strings.TrimSpace(notes)
	e.touch()
}

func (e *Entry) touch() {
	e.updatedAt = time.Now().UTC()
}
