// ABOUTME: Calorie entry resolvers.
// ABOUTME: Entries cannot be dated in the future.
package fitness

import (
	"context"
	"sort"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

const kindCalorieEntry = "Calorie entry"

// NewCalorieEntryInput carries the fields for AddCalorieEntry. An empty Date means today.
type NewCalorieEntryInput struct {
	UserID   string
	Food     string
	Calories int
	Protein  float64
	Carbs    float64
	Fats     float64
	Date     string
}

// CalorieEntryPatch lists editable calorie entry fields.
type CalorieEntryPatch struct {
	Food     *string
	Calories *int
	Protein  *float64
	Carbs    *float64
	Fats     *float64
	Date     *string
}

// IsEmpty reports whether no field is set.
func (p CalorieEntryPatch) IsEmpty() bool {
	return p.Food == nil && p.Calories == nil && p.Protein == nil &&
		p.Carbs == nil && p.Fats == nil && p.Date == nil
}

// validateMacros checks the supplied macronutrients. Nil values are skipped.
func validateMacros(protein, carbs, fats *float64) error {
	fields := []struct {
		name  string
		value *float64
	}{
		{"Protein", protein},
		{"Carbs", carbs},
		{"Fats", fats},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := requirePositive(f.name, *f.value); err != nil {
			return err
		}
	}
	return nil
}

// AddCalorieEntry logs a food for a user.
func (s *Service) AddCalorieEntry(ctx context.Context, in NewCalorieEntryInput) (*models.CalorieEntry, error) {
	userID, err := requireID(kindUser, in.UserID)
	if err != nil {
		return nil, err
	}
	food, err := requireText("Food", in.Food)
	if err != nil {
		return nil, err
	}
	if err := requirePositiveInt("Calories", in.Calories); err != nil {
		return nil, err
	}
	if err := validateMacros(&in.Protein, &in.Carbs, &in.Fats); err != nil {
		return nil, err
	}
	date := s.today()
	if in.Date != "" {
		if date, err = s.requirePastDate("Date", in.Date); err != nil {
			return nil, err
		}
	}

	entry := models.NewCalorieEntry(userID, food, in.Calories,
		models.Macros{Protein: in.Protein, Carbs: in.Carbs, Fats: in.Fats}, date)
	if _, err := s.calories.Insert(ctx, entry); err != nil {
		return nil, internal("add calorie entry", err)
	}
	s.cacheSet(ctx, calorieKey(entry.ID), entry)
	s.cacheDel(ctx, userCaloriesKey(userID))
	return entry, nil
}

// EditCalorieEntry applies patch to the entry.
func (s *Service) EditCalorieEntry(ctx context.Context, rawID string, patch CalorieEntryPatch) (*models.CalorieEntry, error) {
	id, err := requireID(kindCalorieEntry, rawID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, badInput("No fields provided to update.")
	}

	var food, date string
	if patch.Food != nil {
		if food, err = requireText("Food", *patch.Food); err != nil {
			return nil, err
		}
	}
	if patch.Calories != nil {
		if err := requirePositiveInt("Calories", *patch.Calories); err != nil {
			return nil, err
		}
	}
	if err := validateMacros(patch.Protein, patch.Carbs, patch.Fats); err != nil {
		return nil, err
	}
	if patch.Date != nil {
		if date, err = s.requirePastDate("Date", *patch.Date); err != nil {
			return nil, err
		}
	}

	entry, err := load(ctx, s.calories, kindCalorieEntry, id)
	if err != nil {
		return nil, err
	}
	if patch.Food != nil {
		entry.Food = food
	}
	if patch.Calories != nil {
		entry.Calories = *patch.Calories
	}
	if patch.Protein != nil {
		entry.Protein = *patch.Protein
	}
	if patch.Carbs != nil {
		entry.Carbs = *patch.Carbs
	}
	if patch.Fats != nil {
		entry.Fats = *patch.Fats
	}
	if patch.Date != nil {
		entry.Date = date
	}

	updated, err := replace(ctx, s, s.calories, kindCalorieEntry, id, entry, calorieKey(id))
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, userCaloriesKey(entry.User))
	return updated, nil
}

// RemoveCalorieEntry deletes an entry.
func (s *Service) RemoveCalorieEntry(ctx context.Context, rawID string) (*models.CalorieEntry, error) {
	id, err := requireID(kindCalorieEntry, rawID)
	if err != nil {
		return nil, err
	}
	entry, err := remove(ctx, s.calories, kindCalorieEntry, id)
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, calorieKey(id), userCaloriesKey(entry.User))
	return entry, nil
}

// ListCalorieEntries returns the user's entries, newest date first.
func (s *Service) ListCalorieEntries(ctx context.Context, rawUserID string) ([]*models.CalorieEntry, error) {
	userID, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	return listCached(ctx, s, s.calories, userCaloriesKey(userID), store.Filter{"user": userID},
		func(entries []*models.CalorieEntry) {
			sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
		})
}

// GetCalorieEntry returns one entry.
func (s *Service) GetCalorieEntry(ctx context.Context, rawID string) (*models.CalorieEntry, error) {
	return getCached(ctx, s, s.calories, kindCalorieEntry, rawID, calorieKey)
}

// CalorieEntryUser resolves the owner of an entry.
func (s *Service) CalorieEntryUser(ctx context.Context, e *models.CalorieEntry) (*models.User, error) {
	return s.GetUser(ctx, e.User)
}
