// ABOUTME: Workout template resolvers with positional exercise and set edits.
// ABOUTME: Templates are rewritten whole after each positional change.
package fitness

import (
	"context"
	"sort"
	"strings"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

const kindTemplate = "Workout template"

// NewTemplateInput carries the fields for CreateWorkoutTemplate.
type NewTemplateInput struct {
	UserID    string
	Name      string
	Exercises []models.TemplateExercise
}

// TemplateExercisePatch lists editable template exercise fields. A nil Sets slice is absent.
type TemplateExercisePatch struct {
	Name *string
	Sets []models.Set
}

// IsEmpty reports whether no field is set.
func (p TemplateExercisePatch) IsEmpty() bool {
	return p.Name == nil && p.Sets == nil
}

// CreateWorkoutTemplate stores a new template.
func (s *Service) CreateWorkoutTemplate(ctx context.Context, in NewTemplateInput) (*models.WorkoutTemplate, error) {
	userID, err := requireID(kindUser, in.UserID)
	if err != nil {
		return nil, err
	}
	name, err := requireText("Name", in.Name)
	if err != nil {
		return nil, err
	}
	exercises := models.CloneTemplateExercises(in.Exercises)
	if err := validateTemplateExercises(exercises); err != nil {
		return nil, err
	}

	t := models.NewWorkoutTemplate(userID, name, exercises)
	if _, err := s.templates.Insert(ctx, t); err != nil {
		return nil, internal("create workout template", err)
	}
	s.cacheSet(ctx, templateKey(t.ID), t)
	s.cacheDel(ctx, userTemplatesKey(userID))
	return t, nil
}

// EditWorkoutTemplate renames a template.
func (s *Service) EditWorkoutTemplate(ctx context.Context, rawID string, name *string) (*models.WorkoutTemplate, error) {
	id, err := requireID(kindTemplate, rawID)
	if err != nil {
		return nil, err
	}
	if name == nil {
		return nil, badInput("No fields provided to update.")
	}
	trimmed, err := requireText("Name", *name)
	if err != nil {
		return nil, err
	}

	t, err := load(ctx, s.templates, kindTemplate, id)
	if err != nil {
		return nil, err
	}
	t.Name = trimmed
	return s.saveTemplate(ctx, t)
}

// RemoveWorkoutTemplate deletes a template. Workouts scheduled from it are kept.
func (s *Service) RemoveWorkoutTemplate(ctx context.Context, rawID string) (*models.WorkoutTemplate, error) {
	id, err := requireID(kindTemplate, rawID)
	if err != nil {
		return nil, err
	}
	t, err := remove(ctx, s.templates, kindTemplate, id)
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, templateKey(id), userTemplatesKey(t.User))
	return t, nil
}

// ListWorkoutTemplates returns the user's templates ordered by name.
func (s *Service) ListWorkoutTemplates(ctx context.Context, rawUserID string) ([]*models.WorkoutTemplate, error) {
	userID, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	return listCached(ctx, s, s.templates, userTemplatesKey(userID), store.Filter{"user": userID},
		func(ts []*models.WorkoutTemplate) {
			sort.SliceStable(ts, func(i, j int) bool {
				return strings.ToLower(ts[i].Name) < strings.ToLower(ts[j].Name)
			})
		})
}

// GetWorkoutTemplate returns one template.
func (s *Service) GetWorkoutTemplate(ctx context.Context, rawID string) (*models.WorkoutTemplate, error) {
	return getCached(ctx, s, s.templates, kindTemplate, rawID, templateKey)
}

// AddTemplateExercise appends an exercise to the template.
func (s *Service) AddTemplateExercise(ctx context.Context, rawTemplateID string, exercise models.TemplateExercise) (*models.WorkoutTemplate, error) {
	id, err := requireID(kindTemplate, rawTemplateID)
	if err != nil {
		return nil, err
	}
	added := models.CloneTemplateExercises([]models.TemplateExercise{exercise})
	if err := validateTemplateExercises(added); err != nil {
		return nil, err
	}

	t, err := load(ctx, s.templates, kindTemplate, id)
	if err != nil {
		return nil, err
	}
	t.Exercises = append(t.Exercises, added[0])
	return s.saveTemplate(ctx, t)
}

// EditTemplateExercise updates the exercise at index.
func (s *Service) EditTemplateExercise(ctx context.Context, rawTemplateID string, index int, patch TemplateExercisePatch) (*models.WorkoutTemplate, error) {
	id, err := requireID(kindTemplate, rawTemplateID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, badInput("No fields provided to update.")
	}
	var name string
	if patch.Name != nil {
		if name, err = requireText("Exercise name", *patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Sets != nil {
		if err := validateSets(patch.Sets); err != nil {
			return nil, err
		}
	}

	t, err := load(ctx, s.templates, kindTemplate, id)
	if err != nil {
		return nil, err
	}
	if err := checkIndex("Exercise", index, len(t.Exercises)); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		t.Exercises[index].Name = name
	}
	if patch.Sets != nil {
		t.Exercises[index].Sets = models.CloneSets(patch.Sets)
	}
	return s.saveTemplate(ctx, t)
}

// RemoveTemplateExercise deletes the exercise at index.
func (s *Service) RemoveTemplateExercise(ctx context.Context, rawTemplateID string, index int) (*models.WorkoutTemplate, error) {
	id, err := requireID(kindTemplate, rawTemplateID)
	if err != nil {
		return nil, err
	}
	t, err := load(ctx, s.templates, kindTemplate, id)
	if err != nil {
		return nil, err
	}
	if err := checkIndex("Exercise", index, len(t.Exercises)); err != nil {
		return nil, err
	}
	t.Exercises = removeAt(t.Exercises, index)
	return s.saveTemplate(ctx, t)
}

// AddTemplateSet appends a set to the template exercise at exerciseIndex.
func (s *Service) AddTemplateSet(ctx context.Context, rawTemplateID string, exerciseIndex int, set models.Set) (*models.WorkoutTemplate, error) {
	id, err := requireID(kindTemplate, rawTemplateID)
	if err != nil {
		return nil, err
	}
	if err := validateSet(set); err != nil {
		return nil, err
	}
	t, err := load(ctx, s.templates, kindTemplate, id)
	if err != nil {
		return nil, err
	}
	if err := checkIndex("Exercise", exerciseIndex, len(t.Exercises)); err != nil {
		return nil, err
	}
	ex := &t.Exercises[exerciseIndex]
	ex.Sets = append(ex.Sets, set)
	return s.saveTemplate(ctx, t)
}

// EditTemplateSet updates one set of a template exercise.
func (s *Service) EditTemplateSet(ctx context.Context, rawTemplateID string, exerciseIndex, setIndex int, patch SetPatch) (*models.WorkoutTemplate, error) {
	id, err := requireID(kindTemplate, rawTemplateID)
	if err != nil {
		return nil, err
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}
	t, err := load(ctx, s.templates, kindTemplate, id)
	if err != nil {
		return nil, err
	}
	if err := checkIndex("Exercise", exerciseIndex, len(t.Exercises)); err != nil {
		return nil, err
	}
	ex := &t.Exercises[exerciseIndex]
	if err := checkIndex("Set", setIndex, len(ex.Sets)); err != nil {
		return nil, err
	}
	patch.apply(&ex.Sets[setIndex])
	return s.saveTemplate(ctx, t)
}

// RemoveTemplateSet deletes one set of a template exercise.
func (s *Service) RemoveTemplateSet(ctx context.Context, rawTemplateID string, exerciseIndex, setIndex int) (*models.WorkoutTemplate, error) {
	id, err := requireID(kindTemplate, rawTemplateID)
	if err != nil {
		return nil, err
	}
	t, err := load(ctx, s.templates, kindTemplate, id)
	if err != nil {
		return nil, err
	}
	if err := checkIndex("Exercise", exerciseIndex, len(t.Exercises)); err != nil {
		return nil, err
	}
	ex := &t.Exercises[exerciseIndex]
	if err := checkIndex("Set", setIndex, len(ex.Sets)); err != nil {
		return nil, err
	}
	ex.Sets = removeAt(ex.Sets, setIndex)
	return s.saveTemplate(ctx, t)
}

func (s *Service) saveTemplate(ctx context.Context, t *models.WorkoutTemplate) (*models.WorkoutTemplate, error) {
	updated, err := replace(ctx, s, s.templates, kindTemplate, t.ID, t, templateKey(t.ID))
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, userTemplatesKey(t.User))
	return updated, nil
}
