package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office administrator. Accounts are created out of band;
// there is no public registration.
type User struct {
	ID               uuid.UUID
	Username         string
	Email            string
	PasswordHash     string
	ResetTokenHash   string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasActiveResetToken reports whether a password reset is pending at now.
func (u User) HasActiveResetToken(now time.Time) bool {
	return u.ResetTokenHash != "" && u.ResetTokenExpiry != nil && now.Before(*u.ResetTokenExpiry)
}
