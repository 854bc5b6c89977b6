// ABOUTME: Read-only analytics over body weight, calorie and exercise history.
// ABOUTME: Graph ranges are inclusive calendar dates.
package fitness

import (
	"context"
	"sort"
	"strings"
)

// WeightPoint is one body weight reading on a graph.
type WeightPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// CaloriePoint sums every calorie entry logged on one date.
type CaloriePoint struct {
	Date     string  `json:"date"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// PersonalRecord is the best performance logged for one exercise name.
type PersonalRecord struct {
	ExerciseName string  `json:"exerciseName"`
	MaxWeight    float64 `json:"maxWeight"`
	MaxReps      int     `json:"maxReps"`
	DateAchieved string  `json:"dateAchieved"`
}

func requireRange(start, end string) (string, string, error) {
	from, err := requireDate("Start date", start)
	if err != nil {
		return "", "", err
	}
	to, err := requireDate("End date", end)
	if err != nil {
		return "", "", err
	}
	if from > to {
		return "", "", badInput("Start date cannot be after end date.")
	}
	return from, to, nil
}

// WeightGraph returns the user's body weight readings between start and end, oldest first.
func (s *Service) WeightGraph(ctx context.Context, rawUserID, start, end string) ([]WeightPoint, error) {
	from, to, err := requireRange(start, end)
	if err != nil {
		return nil, err
	}
	entries, err := s.ListBodyWeightEntries(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	points := make([]WeightPoint, 0, len(entries))
	for _, e := range entries {
		if e.Date < from || e.Date > to {
			continue
		}
		points = append(points, WeightPoint{Date: e.Date, Weight: e.Weight})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

// CalorieGraph returns per-date calorie and macro totals between start and end, oldest first.
func (s *Service) CalorieGraph(ctx context.Context, rawUserID, start, end string) ([]CaloriePoint, error) {
	from, to, err := requireRange(start, end)
	if err != nil {
		return nil, err
	}
	entries, err := s.ListCalorieEntries(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*CaloriePoint)
	for _, e := range entries {
		if e.Date < from || e.Date > to {
			continue
		}
		p, ok := byDate[e.Date]
		if !ok {
			p = &CaloriePoint{Date: e.Date}
			byDate[e.Date] = p
		}
		p.Calories += e.Calories
		p.Protein += e.Protein
		p.Carbs += e.Carbs
		p.Fats += e.Fats
	}

	points := make([]CaloriePoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

// PersonalRecords returns the heaviest weight and most reps per exercise name across the
// user's workouts. DateAchieved is the earliest workout date of the heaviest set.
func (s *Service) PersonalRecords(ctx context.Context, rawUserID string) ([]PersonalRecord, error) {
	workouts, err := s.ListWorkouts(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	records := make(map[string]*PersonalRecord)
	for _, w := range workouts {
		exercises, err := s.ListExercises(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range exercises {
			r, ok := records[e.Name]
			if !ok {
				r = &PersonalRecord{ExerciseName: e.Name}
				records[e.Name] = r
			}
			for _, set := range e.Sets {
				switch {
				case set.Weight > r.MaxWeight:
					r.MaxWeight = set.Weight
					r.DateAchieved = w.Date
				case set.Weight == r.MaxWeight && w.Date < r.DateAchieved:
					r.DateAchieved = w.Date
				}
				if set.Reps > r.MaxReps {
					r.MaxReps = set.Reps
				}
			}
		}
	}

	out := make([]PersonalRecord, 0, len(records))
	for _, r := range records {
		if r.DateAchieved == "" {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].ExerciseName), strings.ToLower(out[j].ExerciseName)
		if a == b {
			return out[i].ExerciseName < out[j].ExerciseName
		}
		return a < b
	})
	return out, nil
}
