// ABOUTME: User goals resolvers.
// ABOUTME: Goals are upserted, one document per user.
package fitness

import (
	"context"
	"errors"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

const kindGoals = "User goals"

// GoalsPatch lists the goal fields to set. Nil fields are left unchanged.
type GoalsPatch struct {
	DailyCalorieTarget *int
	ProteinTarget      *float64
	CarbTarget         *float64
	FatTarget          *float64
	WeightGoal         *float64
	GoalType           *string
}

// IsEmpty reports whether no field is set.
func (p GoalsPatch) IsEmpty() bool {
	return p.DailyCalorieTarget == nil && p.ProteinTarget == nil && p.CarbTarget == nil &&
		p.FatTarget == nil && p.WeightGoal == nil && p.GoalType == nil
}

func (p GoalsPatch) validate() (goalType string, err error) {
	if p.IsEmpty() {
		return "", badInput("No fields provided to update.")
	}
	if p.DailyCalorieTarget != nil {
		if err := requirePositiveInt("Daily calorie target", *p.DailyCalorieTarget); err != nil {
			return "", err
		}
	}
	targets := []struct {
		name  string
		value *float64
	}{
		{"Protein target", p.ProteinTarget},
		{"Carb target", p.CarbTarget},
		{"Fat target", p.FatTarget},
		{"Weight goal", p.WeightGoal},
	}
	for _, t := range targets {
		if t.value == nil {
			continue
		}
		if err := requirePositive(t.name, *t.value); err != nil {
			return "", err
		}
	}
	if p.GoalType != nil {
		return requireText("Goal type", *p.GoalType)
	}
	return "", nil
}

// SetUserGoals creates or updates the user's goals with the supplied fields.
func (s *Service) SetUserGoals(ctx context.Context, rawUserID string, patch GoalsPatch) (*models.UserGoals, error) {
	userID, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	goalType, err := patch.validate()
	if err != nil {
		return nil, err
	}

	g, err := s.goals.FindOne(ctx, store.Filter{"user": userID})
	exists := err == nil
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, internal("load user goals", err)
	}
	if !exists {
		g = &models.UserGoals{User: userID}
	}

	if patch.DailyCalorieTarget != nil {
		v := *patch.DailyCalorieTarget
		g.DailyCalorieTarget = &v
	}
	g.ProteinTarget = pick(patch.ProteinTarget, g.ProteinTarget)
	g.CarbTarget = pick(patch.CarbTarget, g.CarbTarget)
	g.FatTarget = pick(patch.FatTarget, g.FatTarget)
	g.WeightGoal = pick(patch.WeightGoal, g.WeightGoal)
	if patch.GoalType != nil {
		g.GoalType = &goalType
	}

	if exists {
		g, err = replace(ctx, s, s.goals, kindGoals, g.ID, g, userGoalsKey(userID))
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	if _, err := s.goals.Insert(ctx, g); err != nil {
		return nil, internal("set user goals", err)
	}
	s.cacheSet(ctx, userGoalsKey(userID), g)
	return g, nil
}

// GetUserGoals returns the user's goals, or nil when none were set.
func (s *Service) GetUserGoals(ctx context.Context, rawUserID string) (*models.UserGoals, error) {
	userID, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}

	var cached models.UserGoals
	if s.cacheGet(ctx, userGoalsKey(userID), &cached) {
		return &cached, nil
	}

	g, err := s.goals.FindOne(ctx, store.Filter{"user": userID})
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internal("load user goals", err)
	}
	s.cacheSet(ctx, userGoalsKey(userID), g)
	return g, nil
}

func pick(patch, current *float64) *float64 {
	if patch == nil {
		return current
	}
	v := *patch
	return &v
}
