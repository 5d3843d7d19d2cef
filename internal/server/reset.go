package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"smilingtears/pkg/types"
)

// Password reset walks Idle -> OtpRequested -> OtpVerified -> Completed. The
// state machine itself lives in the access service; these handlers move its
// state in and out of the session cookie.

func (s *Service) handleGetForgotPassword(w http.ResponseWriter, r *http.Request) {
	data := &AuthPageData{}
	data.Title = "Forgot Password"
	s.render(w, r, "page.forgot-password", data)
}

func (s *Service) handlePostForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		s.redirectWithError(w, r, "/forgot-password", "Email is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	state, err := s.accessSvc.RequestReset(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, types.ErrAccountNotFound):
		s.redirectWithError(w, r, "/forgot-password", "No account found with this email.")
		return
	case errors.Is(err, types.ErrSmsDispatch):
		s.redirectWithError(w, r, "/forgot-password", "We could not send the OTP. Please try again.")
		return
	default:
		s.logger.WithError(err).Error("failed to start password reset")
		s.redirectWithError(w, r, "/forgot-password", "Unable to start a password reset right now.")
		return
	}

	session := sessionFromContext(r.Context())
	if session == nil {
		session = &types.Session{}
	}
	session.Reset = state
	s.saveSession(w, session)

	s.redirectWithNotice(w, r, "/verify-otp", "OTP sent to your registered mobile number.")
}

func (s *Service) handleGetVerifyOTP(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if session == nil || session.Reset == nil {
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)
		return
	}

	data := &AuthPageData{}
	data.Title = "Verify OTP"
	s.render(w, r, "page.verify-otp", data)
}

func (s *Service) handlePostVerifyOTP(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if session == nil || session.Reset == nil {
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)
		return
	}

	code := strings.TrimSpace(r.FormValue("otp"))

	err := s.accessSvc.VerifyOTP(session.Reset, code)
	switch {
	case err == nil:
		s.saveSession(w, session)
		http.Redirect(w, r, "/reset-password", http.StatusSeeOther)
	case errors.Is(err, types.ErrOtpExpired):
		s.abandonReset(w, session)
		s.redirectWithError(w, r, "/forgot-password", "The OTP has expired. Please request a new one.")
	case errors.Is(err, types.ErrTooManyOtpAttempts):
		s.abandonReset(w, session)
		s.redirectWithError(w, r, "/forgot-password", "Too many incorrect attempts. Please request a new OTP.")
	default:
		// Attempt counter moved; persist it before re-prompting.
		s.saveSession(w, session)
		s.redirectWithError(w, r, "/verify-otp", "Invalid OTP. Please try again.")
	}
}

func (s *Service) handleGetResetPassword(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if session == nil || session.Reset == nil || !session.Reset.Verified {
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)
		return
	}

	data := &AuthPageData{}
	data.Title = "Reset Password"
	s.render(w, r, "page.reset-password", data)
}

func (s *Service) handlePostResetPassword(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if session == nil || session.Reset == nil || !session.Reset.Verified {
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)
		return
	}

	password := r.FormValue("password")
	if password == "" {
		s.redirectWithError(w, r, "/reset-password", "Password is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.accessSvc.CompletePasswordReset(ctx, session.Reset, password); err != nil {
		s.logger.WithError(err).Error("failed to complete password reset")
		s.redirectWithError(w, r, "/reset-password", "Unable to update your password right now.")
		return
	}

	// Completed is equivalent to idle: drop every reset field.
	s.abandonReset(w, session)
	s.redirectWithNotice(w, r, "/login", "Password updated successfully!")
}

func (s *Service) abandonReset(w http.ResponseWriter, session *types.Session) {
	session.Reset = nil
	if session.IsAuthenticated() {
		s.saveSession(w, session)
		return
	}
	s.clearSession(w)
}
