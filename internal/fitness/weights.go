// ABOUTME: Body weight entry resolvers.
// ABOUTME: Entries cannot be dated in the future.
package fitness

import (
	"context"
	"sort"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

const kindBodyWeightEntry = "Body weight entry"

// NewBodyWeightEntryInput carries the fields for AddBodyWeightEntry. An empty Date means today.
type NewBodyWeightEntryInput struct {
	UserID string
	Weight float64
	Date   string
}

// BodyWeightEntryPatch lists editable body weight entry fields.
type BodyWeightEntryPatch struct {
	Weight *float64
	Date   *string
}

// IsEmpty reports whether no field is set.
func (p BodyWeightEntryPatch) IsEmpty() bool {
	return p.Weight == nil && p.Date == nil
}

// AddBodyWeightEntry logs a body weight reading.
func (s *Service) AddBodyWeightEntry(ctx context.Context, in NewBodyWeightEntryInput) (*models.BodyWeightEntry, error) {
	userID, err := requireID(kindUser, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("Weight", in.Weight); err != nil {
		return nil, err
	}
	date := s.today()
	if in.Date != "" {
		if date, err = s.requirePastDate("Date", in.Date); err != nil {
			return nil, err
		}
	}

	entry := models.NewBodyWeightEntry(userID, in.Weight, date)
	if _, err := s.weights.Insert(ctx, entry); err != nil {
		return nil, internal("add body weight entry", err)
	}
	s.cacheSet(ctx, weightKey(entry.ID), entry)
	s.cacheDel(ctx, userWeightsKey(userID))
	return entry, nil
}

// EditBodyWeightEntry applies patch to the entry.
func (s *Service) EditBodyWeightEntry(ctx context.Context, rawID string, patch BodyWeightEntryPatch) (*models.BodyWeightEntry, error) {
	id, err := requireID(kindBodyWeightEntry, rawID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, badInput("No fields provided to update.")
	}

	var date string
	if patch.Weight != nil {
		if err := requirePositive("Weight", *patch.Weight); err != nil {
			return nil, err
		}
	}
	if patch.Date != nil {
		if date, err = s.requirePastDate("Date", *patch.Date); err != nil {
			return nil, err
		}
	}

	entry, err := load(ctx, s.weights, kindBodyWeightEntry, id)
	if err != nil {
		return nil, err
	}
	if patch.Weight != nil {
		entry.Weight = *patch.Weight
	}
	if patch.Date != nil {
		entry.Date = date
	}

	updated, err := replace(ctx, s, s.weights, kindBodyWeightEntry, id, entry, weightKey(id))
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, userWeightsKey(entry.User))
	return updated, nil
}

// RemoveBodyWeightEntry deletes an entry.
func (s *Service) RemoveBodyWeightEntry(ctx context.Context, rawID string) (*models.BodyWeightEntry, error) {
	id, err := requireID(kindBodyWeightEntry, rawID)
	if err != nil {
		return nil, err
	}
	entry, err := remove(ctx, s.weights, kindBodyWeightEntry, id)
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, weightKey(id), userWeightsKey(entry.User))
	return entry, nil
}

// ListBodyWeightEntries returns the user's entries, newest date first.
func (s *Service) ListBodyWeightEntries(ctx context.Context, rawUserID string) ([]*models.BodyWeightEntry, error) {
	userID, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	return listCached(ctx, s, s.weights, userWeightsKey(userID), store.Filter{"user": userID},
		func(entries []*models.BodyWeightEntry) {
			sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
		})
}

// GetBodyWeightEntry returns one entry.
func (s *Service) GetBodyWeightEntry(ctx context.Context, rawID string) (*models.BodyWeightEntry, error) {
	return getCached(ctx, s, s.weights, kindBodyWeightEntry, rawID, weightKey)
}

// BodyWeightEntryUser resolves the owner of an entry.
func (s *Service) BodyWeightEntryUser(ctx context.Context, e *models.BodyWeightEntry) (*models.User, error) {
	return s.GetUser(ctx, e.User)
}
