// ABOUTME: User resolvers including friends and the account cascade.
// ABOUTME: Removing a user deletes their workouts and nutrition logs.
package fitness

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

const kindUser = "User"

// NewUserInput carries the fields for AddUser.
type NewUserInput struct {
	Name        string
	BodyWeight  float64
	FirebaseUID string
}

// UserPatch lists editable user fields. Nil fields are left unchanged.
type UserPatch struct {
	Name       *string
	BodyWeight *float64
	Photo      *string
}

// IsEmpty reports whether no field is set.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.BodyWeight == nil && p.Photo == nil
}

// AddUser creates a user.
func (s *Service) AddUser(ctx context.Context, in NewUserInput) (*models.User, error) {
	name, err := requireText("Name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("Bodyweight", in.BodyWeight); err != nil {
		return nil, err
	}

	u := models.NewUser(name, in.BodyWeight)
	if uid := strings.TrimSpace(in.FirebaseUID); uid != "" {
		u.WithFirebaseUID(uid)
	}
	if _, err := s.users.Insert(ctx, u); err != nil {
		return nil, internal("add user", err)
	}

	s.cacheSet(ctx, userKey(u.ID), u)
	s.cacheDel(ctx, usersKey)
	return u, nil
}

// EditUser applies patch to the user.
func (s *Service) EditUser(ctx context.Context, rawID string, patch UserPatch) (*models.User, error) {
	id, err := requireID(kindUser, rawID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, badInput("No fields provided to update.")
	}

	var name, photo string
	if patch.Name != nil {
		if name, err = requireText("Name", *patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.BodyWeight != nil {
		if err := requirePositive("Bodyweight", *patch.BodyWeight); err != nil {
			return nil, err
		}
	}
	if patch.Photo != nil {
		if photo, err = requireText("Photo", *patch.Photo); err != nil {
			return nil, err
		}
	}

	u, err := load(ctx, s.users, kindUser, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		u.Name = name
	}
	if patch.BodyWeight != nil {
		u.BodyWeight = *patch.BodyWeight
	}
	if patch.Photo != nil {
		u.Photo = &photo
	}

	updated, err := replace(ctx, s, s.users, kindUser, id, u, userKey(id))
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, usersKey)
	return updated, nil
}

// RemoveUser deletes the user with their workouts, calorie entries and body weight entries.
// Exercises of the deleted workouts are not removed.
func (s *Service) RemoveUser(ctx context.Context, rawID string) (*models.User, error) {
	id, err := requireID(kindUser, rawID)
	if err != nil {
		return nil, err
	}

	u, err := remove(ctx, s.users, kindUser, id)
	if err != nil {
		return nil, err
	}

	keys := []string{
		usersKey,
		userKey(id),
		userWorkoutsKey(id),
		userCaloriesKey(id),
		userWeightsKey(id),
	}
	// Invalidate whatever was removed so far even if a later step fails.
	defer func() { s.cacheDel(ctx, keys...) }()

	owned := store.Filter{"user": id}
	workouts, err := s.workouts.Find(ctx, owned)
	if err != nil {
		return nil, internal("remove user workouts", err)
	}
	for _, w := range workouts {
		if err := s.workouts.Delete(ctx, w.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, internal("remove user workouts", err)
		}
		keys = append(keys, workoutKey(w.ID), scheduledKey(id, w.Date))
	}

	calorieIDs, err := s.calories.DeleteMany(ctx, owned)
	for _, cid := range calorieIDs {
		keys = append(keys, calorieKey(cid))
	}
	if err != nil {
		return nil, internal("remove user calorie entries", err)
	}

	weightIDs, err := s.weights.DeleteMany(ctx, owned)
	for _, wid := range weightIDs {
		keys = append(keys, weightKey(wid))
	}
	if err != nil {
		return nil, internal("remove user body weight entries", err)
	}

	s.log.Infow("removed user",
		"user", id,
		"workouts", len(workouts),
		"calorieEntries", len(calorieIDs),
		"bodyWeightEntries", len(weightIDs),
	)
	return u, nil
}

// ListUsers returns every user ordered by name.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return listCached(ctx, s, s.users, usersKey, nil, func(users []*models.User) {
		sort.SliceStable(users, func(i, j int) bool {
			return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
		})
	})
}

// GetUser returns one user.
func (s *Service) GetUser(ctx context.Context, rawID string) (*models.User, error) {
	return getCached(ctx, s, s.users, kindUser, rawID, userKey)
}

// GetUserByFirebaseUID finds the user linked to an external identity.
func (s *Service) GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, notFound(kindUser)
	}
	u, err := s.users.FindOne(ctx, store.Filter{"firebaseUid": uid})
	if err != nil {
		return nil, storeErr(err, kindUser, "load user")
	}
	return u, nil
}

// AddFriend links friendID into the user's friend list.
func (s *Service) AddFriend(ctx context.Context, rawUserID, rawFriendID string) (*models.User, error) {
	id, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	friendID, err := requireID(kindUser, rawFriendID)
	if err != nil {
		return nil, err
	}
	if id == friendID {
		return nil, badInput("Users cannot befriend themselves.")
	}

	u, err := load(ctx, s.users, kindUser, id)
	if err != nil {
		return nil, err
	}
	if _, err := load(ctx, s.users, kindUser, friendID); err != nil {
		return nil, err
	}
	if u.HasFriend(friendID) {
		return nil, badInput("Users are already friends.")
	}
	u.Friends = append(u.Friends, friendID)

	updated, err := replace(ctx, s, s.users, kindUser, id, u, userKey(id))
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, usersKey)
	return updated, nil
}

// RemoveFriend unlinks friendID from the user's friend list.
func (s *Service) RemoveFriend(ctx context.Context, rawUserID, rawFriendID string) (*models.User, error) {
	id, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	friendID, err := requireID("Friend", rawFriendID)
	if err != nil {
		return nil, err
	}

	u, err := load(ctx, s.users, kindUser, id)
	if err != nil {
		return nil, err
	}
	if !u.RemoveFriend(friendID) {
		return nil, notFound("Friend")
	}

	updated, err := replace(ctx, s, s.users, kindUser, id, u, userKey(id))
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, usersKey)
	return updated, nil
}

// Friends resolves the user's friend list. A dangling friend id is NOT_FOUND.
func (s *Service) Friends(ctx context.Context, u *models.User) ([]*models.User, error) {
	friends := make([]*models.User, 0, len(u.Friends))
	for _, id := range u.Friends {
		f, err := s.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}
	return friends, nil
}
