package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAvatarURL is used whenever a user has not set an avatar.
const DefaultAvatarURL = "https://upload.wikimedia.org/wikipedia/commons/2/2c/Default_pfp.svg"

// User represents a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Identity is the minimal public profile embedded in a session token and
// attached to authenticated requests. The ID is the canonical hex form of the
// user's ObjectID so ownership comparisons never depend on driver types.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Identity derives the public identity for this user, filling in the default
// avatar when none is set.
func (u *User) Identity() Identity {
	avatar := u.Avatar
	if avatar == "" {
		avatar = DefaultAvatarURL
	}
	return Identity{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Avatar:   avatar,
	}
}
