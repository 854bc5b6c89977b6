// ABOUTME: User model for fitness tracking accounts.
// ABOUTME: Users own workouts, nutrition entries, templates, goals and routines.
package models

import "time"

// User is a tracked person. FirebaseUID links the account to the external identity provider.
type User struct {
	ID          string    `json:"_id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	BodyWeight  float64   `json:"bodyWeight" yaml:"body_weight"`
	FirebaseUID string    `json:"firebaseUid,omitempty" yaml:"firebase_uid,omitempty"`
	Photo       *string   `json:"photo,omitempty" yaml:"photo,omitempty"`
	Friends     []string  `json:"friends,omitempty" yaml:"friends,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
}

// NewUser creates a User stamped with the current time. The ID is assigned by the store.
func NewUser(name string, bodyWeight float64) *User {
	return &User{
		Name:       name,
		BodyWeight: bodyWeight,
		CreatedAt:  time.Now(),
	}
}

// WithFirebaseUID sets the external identity provider id.
func (u *User) WithFirebaseUID(uid string) *User {
	u.FirebaseUID = uid
	return u
}

// WithPhoto sets the profile photo reference.
func (u *User) WithPhoto(photo string) *User {
	u.Photo = &photo
	return u
}

// HasFriend reports whether id is in the user's friend list.
func (u *User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// RemoveFriend drops id from the friend list and reports whether it was present.
func (u *User) RemoveFriend(id string) bool {
	for i, f := range u.Friends {
		if f == id {
			u.Friends = append(u.Friends[:i:i], u.Friends[i+1:]...)
			return true
		}
	}
	return false
}
