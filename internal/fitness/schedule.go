// ABOUTME: Template instantiation into a dated workout.
// ABOUTME: Copies the template's exercises and sets without modifying the template.
package fitness

import (
	"context"

	"github.com/harperreed/fittrack/internal/models"
)

// ScheduleWorkout creates a workout on date from the template and one exercise per
// template exercise. A failure part way leaves the workout and earlier exercises stored.
func (s *Service) ScheduleWorkout(ctx context.Context, rawUserID, rawDate, rawTemplateID string) (*models.Workout, error) {
	userID, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	date, err := requireDate("Date", rawDate)
	if err != nil {
		return nil, err
	}
	templateID, err := requireID(kindTemplate, rawTemplateID)
	if err != nil {
		return nil, err
	}

	t, err := load(ctx, s.templates, kindTemplate, templateID)
	if err != nil {
		return nil, err
	}

	w, err := s.insertWorkout(ctx, models.NewWorkout(userID, t.Name, date).WithTemplate(t.ID))
	if err != nil {
		return nil, err
	}
	if err := s.insertExercises(ctx, w.ID, models.CloneTemplateExercises(t.Exercises)); err != nil {
		s.log.Warnw("scheduled workout is missing exercises", "workout", w.ID, "template", t.ID, "error", err)
		return nil, err
	}
	return w, nil
}
