// Package model defines the stored records of the service and the public JSON
// shapes they are serialized into.
//
// Stored records and public shapes are separate types. A handler never
// encodes a stored record directly; it goes through one of the Serialize
// functions, which copy an explicit allow-list of fields.
package model

import "time"

// User is a registered account.
//
// PasswordHash holds a bcrypt hash, never the plaintext password.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// UserJSON is the public representation of a User.
type UserJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SerializeUser copies the public fields of u.
func SerializeUser(u User) UserJSON {
	return UserJSON{
		ID:    u.ID,
		Email: u.Email,
	}
}

// SerializeUsers serializes a list of users. The result is never nil, so an
// empty list encodes as [] rather than null.
func SerializeUsers(users []User) []UserJSON {
	out := make([]UserJSON, 0, len(users))
	for _, u := range users {
		out = append(out, SerializeUser(u))
	}
	return out
}
