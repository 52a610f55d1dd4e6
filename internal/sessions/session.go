package sessions

import (
	"time"

	"github.com/peerdesk/peerdesk/backend/auth-service/internal/models"
)

// Session is a server-held authentication record referenced by an opaque
// id carried in a cookie. It stores only the identity subset, never the
// credential material.
type Session struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Email     string    `bson:"email" json:"email"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Identity returns the claim set recorded at login.
func (s *Session) Identity() models.Identity {
	return models.Identity{UserID: s.UserID, Email: s.Email}
}
