package types

import "time"

// Session is the per-client state carried in the encrypted session cookie.
// Reset exists only while a password reset is in progress and must be cleared
// on completion or abandonment.
type Session struct {
	Username string      `json:"username,omitempty"`
	Role     Role        `json:"role,omitempty"`
	Reset    *ResetState `json:"reset,omitempty"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Username != ""
}

func (s *Session) HasRole(role Role) bool {
	return s != nil && s.Role == role
}

// ResetState tracks an in-progress password reset. The OTP lives only here,
// inside the encrypted cookie; it is never persisted server-side.
type ResetState struct {
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	OTP       string    `json:"otp"`
	Verified  bool      `json:"verified"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}
