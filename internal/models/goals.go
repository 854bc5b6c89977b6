// ABOUTME: UserGoals model holding nutrition and body weight targets.
// ABOUTME: Each user has at most one goals document.
package models

// UserGoals stores optional targets for a user.
type UserGoals struct {
	ID                 string   `json:"_id" yaml:"id"`
	User               string   `json:"user" yaml:"user"`
	DailyCalorieTarget *int     `json:"dailyCalorieTarget,omitempty" yaml:"daily_calorie_target,omitempty"`
	ProteinTarget      *float64 `json:"proteinTarget,omitempty" yaml:"protein_target,omitempty"`
	CarbTarget         *float64 `json:"carbTarget,omitempty" yaml:"carb_target,omitempty"`
	FatTarget          *float64 `json:"fatTarget,omitempty" yaml:"fat_target,omitempty"`
	WeightGoal         *float64 `json:"weightGoal,omitempty" yaml:"weight_goal,omitempty"`
	GoalType           *string  `json:"goalType,omitempty" yaml:"goal_type,omitempty"`
}
