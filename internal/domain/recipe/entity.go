// Package recipe contains the recipe aggregate: ingredients calibrated for a
// native serving count plus optional per-serving nutrition.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pantryplan/api/internal/domain/shared"
)

// Recipe represents the core recipe entity in our domain.
type Recipe struct {
	shared.AggregateRoot

	id      uuid.UUID
	ownerID uuid.UUID

	title        string
	description  string
	ingredients  []Ingredient
	instructions []string

	// servings is the count the ingredient quantities are calibrated for
	servings  int
	calories  *float64
	nutrition *NutritionInfo

	prepTime   int // minutes
	cookTime   int // minutes
	difficulty Difficulty
	tags       []string
	imageURL   string
	rating     float64

	createdAt time.Time
	updatedAt time.Time
}

// New creates a Recipe and validates everything that enters from outside.
func New(ownerID uuid.UUID, title, description string, servings int, ingredients []Ingredient) (*Recipe, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if len(description) > 2000 {
		return nil, ErrDescriptionTooLong
	}
	if servings <= 0 {
		return nil, ErrInvalidServings
	}
	if err := validateIngredients(ingredients); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &Recipe{
		id:          uuid.New(),
		ownerID:     ownerID,
		title:       title,
		description: description,
		ingredients: append([]Ingredient(nil), ingredients...),
		servings:    servings,
		difficulty:  DifficultyEasy,
		createdAt:   now,
		updatedAt:   now,
	}

	r.AddEvent(RecipeCreatedEvent{
		RecipeID:  r.id,
		OwnerID:   ownerID,
		Title:     title,
		CreatedAt: now,
	})

	return r, nil
}

// Snapshot is the flat, persistable form of a Recipe.
type Snapshot struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	Description  string
	Ingredients  []Ingredient
	Instructions []string
	Servings     int
	Calories     *float64
	Nutrition    *NutritionInfo
	PrepTime     int
	CookTime     int
	Difficulty   Difficulty
	Tags         []string
	ImageURL     string
	Rating       float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Rehydrate rebuilds a Recipe from storage. Stored values are trusted as-is,
// including a non-positive servings count, which the meal plan calculations
// report instead of hiding.
func Rehydrate(s Snapshot) *Recipe {
	return &Recipe{
		id:           s.ID,
		ownerID:      s.OwnerID,
		title:        s.Title,
		description:  s.Description,
		ingredients:  s.Ingredients,
		instructions: s.Instructions,
		servings:     s.Servings,
		calories:     s.Calories,
		nutrition:    s.Nutrition,
		prepTime:     s.PrepTime,
		cookTime:     s.CookTime,
		difficulty:   s.Difficulty,
		tags:         s.Tags,
		imageURL:     s.ImageURL,
		rating:       s.Rating,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}

// Snapshot returns the persistable form of the recipe
func (r *Recipe) Snapshot() Snapshot {
	return Snapshot{
		ID:           r.id,
		OwnerID:      r.ownerID,
		Title:        r.title,
		Description:  r.description,
		Ingredients:  r.Ingredients(),
		Instructions: r.Instructions(),
		Servings:     r.servings,
		Calories:     r.calories,
		Nutrition:    r.nutrition,
		PrepTime:     r.prepTime,
		CookTime:     r.cookTime,
		Difficulty:   r.difficulty,
		Tags:         r.Tags(),
		ImageURL:     r.imageURL,
		Rating:       r.rating,
		CreatedAt:    r.createdAt,
		UpdatedAt:    r.updatedAt,
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID { return r.id }

// OwnerID returns the ID of the user who owns the recipe
func (r *Recipe) OwnerID() uuid.UUID { return r.ownerID }

func (r *Recipe) Title() string       { return r.title }
func (r *Recipe) Description() string { return r.description }

// Ingredients returns a copy of the ingredient list
func (r *Recipe) Ingredients() []Ingredient {
	return append([]Ingredient(nil), r.ingredients...)
}

// Instructions returns a copy of the instruction steps
func (r *Recipe) Instructions() []string {
	return append([]string(nil), r.instructions...)
}

// Servings returns the serving count the ingredient quantities are written for
func (r *Recipe) Servings() int { return r.servings }

// Calories returns per-serving calories and whether they are known
func (r *Recipe) Calories() (float64, bool) {
	if r.calories == nil {
		return 0, false
	}
	return *r.calories, true
}

// Nutrition returns per-serving nutrition and whether it is known
func (r *Recipe) Nutrition() (NutritionInfo, bool) {
	if r.nutrition == nil {
		return NutritionInfo{}, false
	}
	return *r.nutrition, true
}

func (r *Recipe) PrepTime() int          { return r.prepTime }
func (r *Recipe) CookTime() int          { return r.cookTime }
func (r *Recipe) TotalTime() int         { return r.prepTime + r.cookTime }
func (r *Recipe) Difficulty() Difficulty { return r.difficulty }
func (r *Recipe) Tags() []string         { return append([]string(nil), r.tags...) }
func (r *Recipe) ImageURL() string       { return r.imageURL }
func (r *Recipe) Rating() float64        { return r.rating }
func (r *Recipe) CreatedAt() time.Time   { return r.createdAt }
func (r *Recipe) UpdatedAt() time.Time   { return r.updatedAt }

// IsOwnedBy reports whether userID owns the recipe
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.ownerID == userID
}

// UpdateDetails changes title and description
func (r *Recipe) UpdateDetails(title, description string) error {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return err
	}
	if len(description) > 2000 {
		return ErrDescriptionTooLong
	}
	r.title = title
	r.description = description
	r.touch()
	return nil
}

// SetServings changes the native serving count
func (r *Recipe) SetServings(servings int) error {
	if servings <= 0 {
		return ErrInvalidServings
	}
	r.servings = servings
	r.touch()
	return nil
}

// SetIngredients replaces the ingredient list
func (r *Recipe) SetIngredients(ingredients []Ingredient) error {
	if err := validateIngredients(ingredients); err != nil {
		return err
	}
	r.ingredients = append([]Ingredient(nil), ingredients...)
	r.touch()
	return nil
}

// SetInstructions replaces the instruction steps, dropping blank ones
func (r *Recipe) SetInstructions(steps []string) {
	cleaned := make([]string, 0, len(steps))
	for _, step := range steps {
		if s := strings.TrimSpace(step); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	r.instructions = cleaned
	r.touch()
}

// SetTimes sets prep and cook time in minutes
func (r *Recipe) SetTimes(prep, cook int) error {
	if prep < 0 || cook < 0 {
		return ErrInvalidTime
	}
	r.prepTime = prep
	r.cookTime = cook
	r.touch()
	return nil
}

// SetDifficulty sets the difficulty level
func (r *Recipe) SetDifficulty(d Difficulty) error {
	if !d.IsValid() {
		return ErrInvalidDifficulty
	}
	r.difficulty = d
	r.touch()
	return nil
}

// SetCalories sets per-serving calories; nil clears them.
func (r *Recipe) SetCalories(calories *float64) error {
	if calories != nil && *calories < 0 {
		return ErrInvalidCalories
	}
	r.calories = cloneFloat(calories)
	r.touch()
	return nil
}

// SetNutrition sets per-serving nutrition; nil clears it.
func (r *Recipe) SetNutrition(info *NutritionInfo) error {
	if info != nil {
		if err := info.Validate(); err != nil {
			return err
		}
		copied := *info
		info = &copied
	}
	r.nutrition = info
	r.touch()
	return nil
}

// ApplyEstimatedNutrition stores estimated nutrition and fills calories when
// the recipe has none yet.
func (r *Recipe) ApplyEstimatedNutrition(info NutritionInfo) error {
	if err := r.SetNutrition(&info); err != nil {
		return err
	}
	if r.calories == nil {
		c := info.Calories
		r.calories = &c
	}
	r.AddEvent(NutritionEstimatedEvent{
		RecipeID:    r.id,
		Calories:    info.Calories,
		EstimatedAt: r.updatedAt,
	})
	return nil
}

// SetTags replaces tags, lowercased and deduplicated
func (r *Recipe) SetTags(tags []string) {
	seen := make(map[string]struct{}, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		cleaned = append(cleaned, t)
	}
	r.tags = cleaned
	r.touch()
}

// SetImageURL sets the image URL
func (r *Recipe) SetImageURL(url string) {
	r.imageURL = strings.TrimSpace(url)
	r.touch()
}

// SetRating sets the rating (0-5)
func (r *Recipe) SetRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return ErrInvalidRating
	}
	r.rating = rating
	r.touch()
	return nil
}

// MarkUpdated records a content update event
func (r *Recipe) MarkUpdated() {
	r.AddEvent(RecipeUpdatedEvent{RecipeID: r.id, UpdatedAt: r.updatedAt})
}

func (r *Recipe) touch() {
	r.updatedAt = time.Now().UTC()
}

func validateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}

func validateIngredients(ingredients []Ingredient) error {
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
