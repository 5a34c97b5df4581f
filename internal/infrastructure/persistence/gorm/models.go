// Package gorm provides GORM model definitions and repositories
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryplan/api/internal/domain/recipe"
	"github.com/pantryplan/api/internal/domain/shopping"
)

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:char(36);not null;index"`
	Title       string    `gorm:"type:varchar(200);not null;index"`
	Description string    `gorm:"type:text"`

	Ingredients  IngredientList `gorm:"type:json"`
	Instructions StringSlice    `gorm:"type:json"`
	Nutrition    NullNutrition  `gorm:"type:json"`

	Servings int      `gorm:"not null"`
	Calories *float64 `gorm:"index"`

	// Timing (stored in minutes)
	PrepTimeMinutes int `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int `gorm:"column:cook_time_minutes;default:0"`

	Difficulty string      `gorm:"type:varchar(20);index"`
	Tags       StringSlice `gorm:"type:json"`
	ImageURL   string      `gorm:"type:text"`
	Rating     float64     `gorm:"default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// PantryItemModel represents the GORM model for pantry items
type PantryItemModel struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey"`
	OwnerID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	Name       string     `gorm:"type:varchar(255);not null"`
	Quantity   float64    `gorm:"not null;default:0"`
	Unit       string     `gorm:"type:varchar(50)"`
	Category   string     `gorm:"type:varchar(50);index"`
	ExpiryDate *time.Time `gorm:"index"`
	PhotoURL   string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"index"`
	UpdatedAt  time.Time
}

// MealPlanModel represents the GORM model for meal plan entries
type MealPlanModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:char(36);not null;index:idx_meal_plans_owner_date,priority:1"`
	RecipeID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Date      time.Time `gorm:"not null;index:idx_meal_plans_owner_date,priority:2"`
	MealType  string    `gorm:"type:varchar(20);not null"`
	Servings  int       `gorm:"not null"`
	Completed bool      `gorm:"default:false"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Recipe *RecipeModel `gorm:"foreignKey:RecipeID"`
}

// ShoppingListModel represents the GORM model for shopping lists
type ShoppingListModel struct {
	ID        uuid.UUID        `gorm:"type:char(36);primaryKey"`
	OwnerID   uuid.UUID        `gorm:"type:char(36);not null;index"`
	Name      string           `gorm:"type:varchar(255);not null"`
	Items     ShoppingItemList `gorm:"type:json"`
	Status    string           `gorm:"type:varchar(20);default:'active';index"`
	CreatedAt time.Time        `gorm:"index"`
	UpdatedAt time.Time
}

// GoalModel represents the GORM model for nutrition and health goals
type GoalModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	OwnerID      uuid.UUID `gorm:"type:char(36);not null;index"`
	Type         string    `gorm:"type:varchar(20);not null"`
	TargetValue  float64   `gorm:"not null"`
	CurrentValue float64   `gorm:"default:0"`
	Unit         string    `gorm:"type:varchar(20)"`
	Period       string    `gorm:"type:varchar(20);default:'daily'"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName methods for custom table names
func (RecipeModel) TableName() string {
	return "recipes"
}

func (PantryItemModel) TableName() string {
	return "pantry_items"
}

func (MealPlanModel) TableName() string {
	return "meal_plans"
}

func (ShoppingListModel) TableName() string {
	return "shopping_lists"
}

func (GoalModel) TableName() string {
	return "goals"
}

// AllModels lists every model for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&RecipeModel{},
		&PantryItemModel{},
		&MealPlanModel{},
		&ShoppingListModel{},
		&GoalModel{},
	}
}

// scanJSON decodes a JSON column that drivers return as []byte or string
func scanJSON(value interface{}, dest interface{}, typeName string) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into %s", value, typeName)
	}
}

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	return scanJSON(value, s, "StringSlice")
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return jsonValue([]string(s))
}

// IngredientList stores recipe ingredients as a JSON array
type IngredientList []recipe.Ingredient

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}
	return scanJSON(value, l, "IngredientList")
}

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return jsonValue([]recipe.Ingredient(l))
}

// ShoppingItemList stores shopping list items as a JSON array
type ShoppingItemList []shopping.Item

// Scan implements the sql.Scanner interface
func (l *ShoppingItemList) Scan(value interface{}) error {
	if value == nil {
		*l = ShoppingItemList{}
		return nil
	}
	return scanJSON(value, l, "ShoppingItemList")
}

// Value implements the driver.Valuer interface
func (l ShoppingItemList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return jsonValue([]shopping.Item(l))
}

// NullNutrition is a nullable JSON nutrition column, in the manner of sql.NullString
type NullNutrition struct {
	Info  recipe.NutritionInfo
	Valid bool
}

// Scan implements the sql.Scanner interface
func (n *NullNutrition) Scan(value interface{}) error {
	if value == nil {
		n.Info, n.Valid = recipe.NutritionInfo{}, false
		return nil
	}
	if err := scanJSON(value, &n.Info, "NullNutrition"); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the driver.Valuer interface
func (n NullNutrition) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return jsonValue(n.Info)
}

// AutoMigrate creates or updates every table from the models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
