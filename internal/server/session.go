package server

import (
	"net/http"

	"smilingtears/pkg/types"
)

const sessionCookieName = "st_session"

func (s *Service) sessionFromRequest(r *http.Request) *types.Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	var session types.Session
	if err := s.cookie.Decode(sessionCookieName, cookie.Value, &session); err != nil {
		s.logger.WithError(err).Debug("failed to decode session cookie")
		return nil
	}

	return &session
}

func (s *Service) saveSession(w http.ResponseWriter, session *types.Session) {
	encoded, err := s.cookie.Encode(sessionCookieName, session)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode session cookie")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   s.config.SessionMaxAgeSec,
	})
}

// clearSession unconditionally wipes all session state.
func (s *Service) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
