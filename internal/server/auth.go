package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"smilingtears/internal/access"
	"smilingtears/pkg/types"
)

type AuthPageData struct {
	types.BasePageData
}

func (s *Service) handleGetSignup(w http.ResponseWriter, r *http.Request) {
	if sessionFromContext(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := &AuthPageData{}
	data.Title = "Sign Up"
	s.render(w, r, "page.signup", data)
}

func (s *Service) handlePostSignup(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if username == "" || email == "" || password == "" {
		s.redirectWithError(w, r, "/signup", "Username, email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := s.accessSvc.CreateAccount(ctx, username, email, password)
	switch {
	case err == nil:
		s.redirectWithNotice(w, r, "/login", "Signup successful! Please login.")
	case errors.Is(err, types.ErrNotAuthorized):
		s.redirectWithError(w, r, "/signup", "You must be an approved volunteer before signing up.")
	case errors.Is(err, types.ErrDuplicateAccount):
		s.redirectWithError(w, r, "/signup", "Account already exists.")
	default:
		s.logger.WithError(err).Error("failed to create account")
		s.redirectWithError(w, r, "/signup", "Unable to create your account right now.")
	}
}

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if session.IsAuthenticated() {
		http.Redirect(w, r, access.RedirectForRole(session.Role), http.StatusSeeOther)
		return
	}

	data := &AuthPageData{}
	data.Title = "Login"
	s.render(w, r, "page.login", data)
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, target, err := s.accessSvc.Authenticate(ctx, username, password)
	if err != nil {
		if !errors.Is(err, types.ErrInvalidCredentials) {
			s.logger.WithError(err).Error("login failed")
		}
		// One message for unknown user and wrong password alike.
		s.redirectWithError(w, r, "/login", "Invalid credentials.")
		return
	}

	s.saveSession(w, session)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	s.redirectWithNotice(w, r, "/login", "Logged out successfully.")
}
