// ABOUTME: Field validation shared by all resolvers.
// ABOUTME: Every check runs before any store write and reports BAD_USER_INPUT.
package fitness

import (
	"math"
	"strings"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

func requireText(field, v string) (string, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", badInput("%s cannot be empty or just spaces.", field)
	}
	return trimmed, nil
}

func requirePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return badInput("%s must be greater than 0.", field)
	}
	return nil
}

func requirePositiveInt(field string, v int) error {
	if v <= 0 {
		return badInput("%s must be greater than 0.", field)
	}
	return nil
}

func requireNonNegativeInt(field string, v int) error {
	if v < 0 {
		return badInput("%s cannot be less than 0.", field)
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return badInput("%s cannot be less than 0.", field)
	}
	return nil
}

func requireDate(field, v string) (string, error) {
	d, err := models.ParseDate(v)
	if err != nil {
		return "", badInput("%s must be a valid date.", field)
	}
	return d, nil
}

// requirePastDate additionally rejects dates after today.
func (s *Service) requirePastDate(field, v string) (string, error) {
	d, err := requireDate(field, v)
	if err != nil {
		return "", err
	}
	if models.DateAfter(d, s.today()) {
		return "", badInput("%s cannot be in the future.", field)
	}
	return d, nil
}

// requireID converts a caller supplied id. Unusable ids are NOT_FOUND.
func requireID(kind, raw string) (string, error) {
	id, err := store.ParseID(strings.TrimSpace(raw))
	if err != nil {
		return "", notFound(kind)
	}
	return id, nil
}

func validateSet(set models.Set) error {
	if err := requirePositive("Weight", set.Weight); err != nil {
		return err
	}
	if err := requirePositiveInt("Reps", set.Reps); err != nil {
		return err
	}
	return requireNonNegativeInt("RIR", set.RIR)
}

func validateSets(sets []models.Set) error {
	if len(sets) == 0 {
		return badInput("Sets cannot be empty.")
	}
	for _, set := range sets {
		if err := validateSet(set); err != nil {
			return err
		}
	}
	return nil
}

// validateTemplateExercises checks and trims a template exercise list in place.
func validateTemplateExercises(exercises []models.TemplateExercise) error {
	if len(exercises) == 0 {
		return badInput("Exercises cannot be empty.")
	}
	for i := range exercises {
		name, err := requireText("Exercise name", exercises[i].Name)
		if err != nil {
			return err
		}
		if err := validateSets(exercises[i].Sets); err != nil {
			return err
		}
		exercises[i].Name = name
	}
	return nil
}

// validateDays checks and trims routine days in place.
func validateDays(days []models.RoutineDay) error {
	if len(days) == 0 {
		return badInput("Days cannot be empty.")
	}
	for i := range days {
		name, err := requireText("Day name", days[i].Name)
		if err != nil {
			return err
		}
		days[i].Name = name
		for j := range days[i].Exercises {
			if err := validateRoutineExercise(&days[i].Exercises[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRoutineExercise(e *models.RoutineExercise) error {
	name, err := requireText("Exercise name", e.Name)
	if err != nil {
		return err
	}
	e.Name = name
	if err := requirePositiveInt("Sets", e.Sets); err != nil {
		return err
	}
	for i, m := range e.Muscles {
		muscle, err := requireText("Muscle", m)
		if err != nil {
			return err
		}
		e.Muscles[i] = muscle
	}
	if len(e.Reps) > e.Sets || len(e.Weight) > e.Sets || len(e.RIR) > e.Sets {
		return badInput("Logged values cannot exceed the number of sets.")
	}
	for _, r := range e.Reps {
		if err := requireNonNegativeInt("Reps", r); err != nil {
			return err
		}
	}
	for _, w := range e.Weight {
		if err := requireNonNegative("Weight", w); err != nil {
			return err
		}
	}
	for _, r := range e.RIR {
		if err := requireNonNegativeInt("RIR", r); err != nil {
			return err
		}
	}
	return nil
}

func checkIndex(field string, index, length int) error {
	if index < 0 || index >= length {
		return badInput("%s index %d is out of range.", field, index)
	}
	return nil
}
