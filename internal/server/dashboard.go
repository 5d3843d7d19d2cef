package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"smilingtears/internal/content"
	"smilingtears/pkg/types"
)

type ManagerDashboardData struct {
	types.BasePageData
	Applications []*types.VolunteerApplication
	Donations    []*types.Donation
	Messages     []*types.ContactSubmission
}

func (s *Service) handleManagerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	apps, err := s.apps.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list applications")
		s.internalServerError(w)
		return
	}

	donations, err := s.donations.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list donations")
		s.internalServerError(w)
		return
	}

	messages, err := s.contacts.Latest(ctx, 50)
	if err != nil {
		s.logger.WithError(err).Error("failed to list contact submissions")
		s.internalServerError(w)
		return
	}

	data := &ManagerDashboardData{
		Applications: apps,
		Donations:    donations,
		Messages:     messages,
	}
	data.Title = "Manager Dashboard"

	s.render(w, r, "page.manager-dashboard", data)
}

type VolunteerDashboardData struct {
	types.BasePageData
	Account      *types.Account
	Applications []*types.VolunteerApplication
	Events       []types.Event
}

func (s *Service) handleVolunteerDashboard(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	account, err := s.accounts.ByUsername(ctx, session.Username)
	if err != nil {
		if errors.Is(err, types.ErrAccountNotFound) {
			s.clearSession(w)
			s.redirectWithError(w, r, "/login", "Please login again.")
			return
		}
		s.logger.WithError(err).Error("failed to load account")
		s.internalServerError(w)
		return
	}

	apps, err := s.apps.ByEmail(ctx, account.Email)
	if err != nil {
		s.logger.WithError(err).Error("failed to load applications")
		s.internalServerError(w)
		return
	}

	data := &VolunteerDashboardData{
		Account:      account,
		Applications: apps,
		Events:       content.EventsByStatus(s.content.Events(), "upcoming"),
	}
	data.Title = "Volunteer Dashboard"

	s.render(w, r, "page.volunteer-dashboard", data)
}
