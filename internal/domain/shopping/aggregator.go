package shopping

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pantryplan/api/internal/domain/mealplan"
)

// IDSet is a set of meal plan entry IDs
type IDSet map[uuid.UUID]struct{}

// NewIDSet builds a set from ids
func NewIDSet(ids ...uuid.UUID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set
func (s IDSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// UnitConflict records an ingredient whose contributions used more than one
// unit. Their quantities were summed anyway.
type UnitConflict struct {
	Name  string   `json:"name"`
	Units []string `json:"units"`
}

// Aggregate merges the scaled ingredients of the selected entries into one
// shopping item per ingredient name.
//
// Entries not in selected, or without a resolved recipe, are skipped. Names
// are merged case-insensitively after trimming; quantities are summed without
// unit conversion and keep the unit of the first contributor. Items come out
// in first-occurrence order. A recipe with servings <= 0 fails the whole call
// with mealplan.ErrInvalidRecipeServings.
func Aggregate(entries []*mealplan.Entry, selected IDSet) ([]Item, error) {
	items, _, err := AggregateWithReport(entries, selected)
	return items, err
}

// AggregateWithReport is Aggregate plus the list of names whose contributions
// disagreed on unit.
func AggregateWithReport(entries []*mealplan.Entry, selected IDSet) ([]Item, []UnitConflict, error) {
	if len(selected) == 0 {
		return []Item{}, nil, nil
	}

	var (
		items []Item
		keys  []string
		index = make(map[string]int)
		units = make(map[string][]string)
	)

	for _, entry := range entries {
		if entry == nil || !selected.Has(entry.ID()) || entry.Recipe() == nil {
			continue
		}

		multiplier, err := entry.ServingMultiplier()
		if err != nil {
			return nil, nil, err
		}

		for _, ing := range entry.Recipe().Ingredients() {
			key := strings.ToLower(strings.TrimSpace(ing.Name))
			if key == "" {
				continue
			}
			scaled := ing.Quantity * multiplier

			if i, ok := index[key]; ok {
				items[i].Quantity += scaled
				if !containsString(units[key], ing.Unit) {
					units[key] = append(units[key], ing.Unit)
				}
				continue
			}

			index[key] = len(items)
			keys = append(keys, key)
			units[key] = []string{ing.Unit}
			items = append(items, Item{
				Name:     capitalize(key),
				Quantity: scaled,
				Unit:     ing.Unit,
			})
		}
	}

	if items == nil {
		items = []Item{}
	}

	var conflicts []UnitConflict
	for i, key := range keys {
		if u := units[key]; len(u) > 1 {
			conflicts = append(conflicts, UnitConflict{Name: items[i].Name, Units: u})
		}
	}

	return items, conflicts, nil
}

// capitalize upper-cases the first character and leaves the rest unchanged
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
