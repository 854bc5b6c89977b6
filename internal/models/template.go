// ABOUTME: WorkoutTemplate model for reusable workout plans.
// ABOUTME: Template exercises and their sets are positional sub-documents.
package models

// WorkoutTemplate is a named plan that can be instantiated into workouts.
type WorkoutTemplate struct {
	ID        string             `json:"_id" yaml:"id"`
	User      string             `json:"user" yaml:"user"`
	Name      string             `json:"name" yaml:"name"`
	Exercises []TemplateExercise `json:"exercises" yaml:"exercises"`
}

// TemplateExercise is an exercise prescription inside a template.
type TemplateExercise struct {
	Name string `json:"name" yaml:"name"`
	Sets []Set  `json:"sets" yaml:"sets"`
}

// NewWorkoutTemplate creates a template owned by userID. The exercises are deep-copied.
func NewWorkoutTemplate(userID, name string, exercises []TemplateExercise) *WorkoutTemplate {
	return &WorkoutTemplate{
		User:      userID,
		Name:      name,
		Exercises: CloneTemplateExercises(exercises),
	}
}

// CloneTemplateExercises deep-copies template exercises including their sets.
func CloneTemplateExercises(exercises []TemplateExercise) []TemplateExercise {
	out := make([]TemplateExercise, len(exercises))
	for i, e := range exercises {
		out[i] = TemplateExercise{Name: e.Name, Sets: CloneSets(e.Sets)}
	}
	return out
}
