package entity

import (
	"time"

	"team-scheduler-api/core/entity"

	"github.com/google/uuid"
)

// GoogleCredential is the stored OAuth credential used to query a
// participant's calendar on their behalf. One row per email, upserted on
// every refresh (last successful refresh wins).
type GoogleCredential struct {
	entity.BaseEntity
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	Email        string     `db:"email" json:"email"`
	AccessToken  string     `db:"access_token" json:"-"`
	RefreshToken *string    `db:"refresh_token" json:"-"`
	ExpiresAt    *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	Scope        string     `db:"scope" json:"scope"`
}

// Usable reports whether the access token can be used as-is: expiry unknown,
// or still beyond the refresh buffer at the given instant.
func (c *GoogleCredential) Usable(now time.Time, buffer time.Duration) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return now.Add(buffer).Before(*c.ExpiresAt)
}
