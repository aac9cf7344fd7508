package models

import "time"

// RefreshToken is an opaque, server-stored credential exchanged for a new
// access token.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
