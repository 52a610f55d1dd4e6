package models

import "time"

// Identity is the minimal claim set carried by tokens and session records.
// It is immutable once issued and never contains secrets.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// User represents an application account with local credentials.
// PasswordHash is excluded from JSON so it can never leak through a response.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Identity returns the token/session claim set for the user.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email}
}

// PublicUser is the sanitized view returned by the API.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips everything that must not be serialized.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
