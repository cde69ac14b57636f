package domain

import "time"

// AccessToken is the persisted half of a bearer token. The token string handed
// to clients carries ID as its identifier.
type AccessToken struct {
	ID         string
	UserID     uint
	CreatedAt  time.Time
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
}

func (t *AccessToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
