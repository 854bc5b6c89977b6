// ABOUTME: CalorieEntry and BodyWeightEntry models for daily logs.
// ABOUTME: Both are dated per-user entries used by the graph queries.
package models

import "time"

// CalorieEntry is one logged food with its macronutrients.
type CalorieEntry struct {
	ID        string    `json:"_id" yaml:"id"`
	User      string    `json:"user" yaml:"user"`
	Food      string    `json:"food" yaml:"food"`
	Calories  int       `json:"calories" yaml:"calories"`
	Protein   float64   `json:"protein" yaml:"protein"`
	Carbs     float64   `json:"carbs" yaml:"carbs"`
	Fats      float64   `json:"fats" yaml:"fats"`
	Date      string    `json:"date" yaml:"date"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// Macros groups the macronutrient values of a calorie entry.
type Macros struct {
	Protein float64
	Carbs   float64
	Fats    float64
}

// NewCalorieEntry creates a CalorieEntry for the given user.
func NewCalorieEntry(userID, food string, calories int, m Macros, date string) *CalorieEntry {
	return &CalorieEntry{
		User:      userID,
		Food:      food,
		Calories:  calories,
		Protein:   m.Protein,
		Carbs:     m.Carbs,
		Fats:      m.Fats,
		Date:      date,
		CreatedAt: time.Now(),
	}
}

// BodyWeightEntry is one body weight reading.
type BodyWeightEntry struct {
	ID        string    `json:"_id" yaml:"id"`
	User      string    `json:"user" yaml:"user"`
	Weight    float64   `json:"weight" yaml:"weight"`
	Date      string    `json:"date" yaml:"date"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// NewBodyWeightEntry creates a BodyWeightEntry for the given user.
func NewBodyWeightEntry(userID string, weight float64, date string) *BodyWeightEntry {
	return &BodyWeightEntry{
		User:      userID,
		Weight:    weight,
		Date:      date,
		CreatedAt: time.Now(),
	}
}
