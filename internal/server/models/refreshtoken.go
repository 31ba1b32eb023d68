package models

import "time"

// RefreshToken is a server-stored opaque token that can be exchanged for a
// new token pair until it expires. Tokens are rotated on every refresh.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
