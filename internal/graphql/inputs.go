// ABOUTME: GraphQL argument and input object types.
// ABOUTME: Converts wire inputs into service models and patches.
package graphql

import (
	"github.com/harperreed/fittrack/internal/fitness"
	"github.com/harperreed/fittrack/internal/models"
)

type setInput struct {
	Weight float64
	Reps   int32
	RIR    int32
}

func (in setInput) model() models.Set {
	return models.Set{Weight: in.Weight, Reps: int(in.Reps), RIR: int(in.RIR)}
}

type setPatchInput struct {
	Weight *float64
	Reps   *int32
	RIR    *int32
}

func (in setPatchInput) patch() fitness.SetPatch {
	return fitness.SetPatch{Weight: in.Weight, Reps: intPtr(in.Reps), RIR: intPtr(in.RIR)}
}

type exerciseInput struct {
	Name string
	Sets []setInput
}

func (in exerciseInput) model() models.TemplateExercise {
	return models.TemplateExercise{Name: in.Name, Sets: toSets(in.Sets)}
}

type routineExerciseInput struct {
	Name    string
	Sets    int32
	Muscles []string
	Reps    *[]int32
	Weight  *[]float64
	RIR     *[]int32
}

type routineDayInput struct {
	Name      string
	Exercises []routineExerciseInput
}

// toSets never returns nil so a supplied empty list stays distinguishable from an absent one.
func toSets(in []setInput) []models.Set {
	out := make([]models.Set, 0, len(in))
	for _, s := range in {
		out = append(out, s.model())
	}
	return out
}

func toTemplateExercises(in []exerciseInput) []models.TemplateExercise {
	out := make([]models.TemplateExercise, 0, len(in))
	for _, e := range in {
		out = append(out, e.model())
	}
	return out
}

func toDays(in []routineDayInput) []models.RoutineDay {
	days := make([]models.RoutineDay, 0, len(in))
	for _, d := range in {
		exercises := make([]models.RoutineExercise, 0, len(d.Exercises))
		for _, e := range d.Exercises {
			re := models.RoutineExercise{
				Name:    e.Name,
				Sets:    int(e.Sets),
				Muscles: append([]string{}, e.Muscles...),
			}
			if e.Reps != nil {
				re.Reps = toInts(*e.Reps)
			}
			if e.Weight != nil {
				re.Weight = append([]float64{}, (*e.Weight)...)
			}
			if e.RIR != nil {
				re.RIR = toInts(*e.RIR)
			}
			exercises = append(exercises, re)
		}
		days = append(days, models.RoutineDay{Name: d.Name, Exercises: exercises})
	}
	return days
}

func toInts(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	i := int32(*v)
	return &i
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
