package domain

import "time"

// Session is the credential bundle issued on sign-in or refresh: a short
// lived access JWT plus an opaque refresh token. Refresh tokens rotate on
// every use and are revoked on sign-out.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user,omitempty"`
}

// ExpiresWithin reports whether the session expires before now+lead.
func (s *Session) ExpiresWithin(now time.Time, lead time.Duration) bool {
	return !s.ExpiresAt.After(now.Add(lead))
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
