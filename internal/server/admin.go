package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"smilingtears/pkg/types"

	"github.com/alexedwards/flow"
)

// Every handler here sits behind RequireRole(admin) in the router.

type AdminDashboardData struct {
	types.BasePageData
	Applications []*types.VolunteerApplication
	Accounts     []*types.Account
	Donations    []*types.Donation
}

func (s *Service) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	apps, err := s.apps.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list applications")
		s.internalServerError(w)
		return
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list accounts")
		s.internalServerError(w)
		return
	}

	donations, err := s.donations.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list donations")
		s.internalServerError(w)
		return
	}

	data := &AdminDashboardData{
		Applications: apps,
		Accounts:     accounts,
		Donations:    donations,
	}
	data.Title = "Admin Dashboard"

	s.render(w, r, "page.admin-dashboard", data)
}

func (s *Service) handleApproveVolunteer(w http.ResponseWriter, r *http.Request) {
	s.setApplicationStatus(w, r, types.ApplicationStatusApproved, "Volunteer approved!")
}

func (s *Service) handleRejectVolunteer(w http.ResponseWriter, r *http.Request) {
	s.setApplicationStatus(w, r, types.ApplicationStatusRejected, "Volunteer application rejected.")
}

func (s *Service) setApplicationStatus(w http.ResponseWriter, r *http.Request, status types.ApplicationStatus, notice string) {
	id := flow.Param(r.Context(), "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.apps.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, types.ErrApplicationNotFound) {
			s.redirectWithError(w, r, "/admin/dashboard", "Application not found.")
			return
		}
		s.logger.WithError(err).WithField("application_id", id).Error("failed to update application status")
		s.redirectWithError(w, r, "/admin/dashboard", "Unable to update the application.")
		return
	}

	s.redirectWithNotice(w, r, "/admin/dashboard", notice)
}

func (s *Service) handleDeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.apps.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("application_id", id).Error("failed to delete application")
		s.redirectWithError(w, r, "/admin/dashboard", "Unable to delete the application.")
		return
	}

	s.redirectWithNotice(w, r, "/admin/dashboard", "Volunteer deleted.")
}

func (s *Service) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	email := flow.Param(r.Context(), "email")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.accounts.DeleteByEmail(ctx, email); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("failed to delete account")
		s.redirectWithError(w, r, "/admin/dashboard", "Unable to delete the user.")
		return
	}

	s.redirectWithNotice(w, r, "/admin/dashboard", "User deleted.")
}

func (s *Service) handleAddManager(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if username == "" || email == "" || password == "" {
		s.redirectWithError(w, r, "/admin/dashboard", "Username, email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := s.accessSvc.CreateManager(ctx, username, email, password)
	switch {
	case err == nil:
		s.redirectWithNotice(w, r, "/admin/dashboard", "Manager added successfully!")
	case errors.Is(err, types.ErrDuplicateAccount):
		s.redirectWithError(w, r, "/admin/dashboard", "Email already exists!")
	default:
		s.logger.WithError(err).Error("failed to add manager")
		s.redirectWithError(w, r, "/admin/dashboard", "Unable to add the manager right now.")
	}
}
