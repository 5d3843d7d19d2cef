package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"smilingtears/pkg/types"

	"github.com/sirupsen/logrus"
)

type ContactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone" validate:"omitempty,min=7"`
	Message string `form:"message" validate:"required"`
}

type VolunteerForm struct {
	Name      string   `form:"name" validate:"required"`
	Email     string   `form:"email" validate:"required,email"`
	Phone     string   `form:"phone" validate:"required,min=7"`
	City      string   `form:"city" validate:"required"`
	Interests []string `form:"interests"`
	Message   string   `form:"message"`
}

type ContactPageData struct {
	types.BasePageData
}

type VolunteerPageData struct {
	types.BasePageData
	Benefits []string
}

func (s *Service) handleGetContact(w http.ResponseWriter, r *http.Request) {
	data := &ContactPageData{}
	data.Title = "Contact Us"
	s.render(w, r, "page.contact", data)
}

func (s *Service) handlePostContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/contact", "Invalid form payload.")
		return
	}

	var input ContactForm
	if err := decoder.Decode(&input, r.PostForm); err != nil {
		s.redirectWithError(w, r, "/contact", "Invalid form payload.")
		return
	}
	if err := validate.Struct(input); err != nil {
		s.redirectWithError(w, r, "/contact", "Please fill in your name, email and message.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.contacts.Create(ctx, input.Name, input.Email, input.Phone, input.Message); err != nil {
		s.logger.WithError(err).Error("failed to save contact submission")
		s.redirectWithError(w, r, "/contact", "Unable to submit your message right now.")
		return
	}

	// Notification is best-effort: the submission is already saved.
	if err := s.notifyContact(ctx, input); err != nil {
		s.logger.WithError(err).Error("failed to send contact notification email")
		s.redirectWithNotice(w, r, "/contact", "Your message has been received, but there was an issue with email notification.")
		return
	}

	s.redirectWithNotice(w, r, "/contact", "Thank you for contacting us! We will get back to you soon.")
}

func (s *Service) notifyContact(ctx context.Context, input ContactForm) error {
	if !s.mailer.Enabled() {
		return nil
	}

	body := fmt.Sprintf(
		"New contact form submission:\n\nName: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s\n",
		input.Name, input.Email, input.Phone, input.Message,
	)

	return s.mailer.Send(ctx, s.mailer.NotifyAddress(),
		fmt.Sprintf("New Contact Form Submission from %s", input.Name), body)
}

func (s *Service) handleGetVolunteer(w http.ResponseWriter, r *http.Request) {
	data := &VolunteerPageData{Benefits: s.content.Site().VolunteerBenefits}
	data.Title = "Volunteer With Us"
	s.render(w, r, "page.volunteer", data)
}

func (s *Service) handlePostVolunteer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/volunteer", "Invalid form payload.")
		return
	}

	var input VolunteerForm
	if err := decoder.Decode(&input, r.PostForm); err != nil {
		s.redirectWithError(w, r, "/volunteer", "Invalid form payload.")
		return
	}
	if err := validate.Struct(input); err != nil {
		s.redirectWithError(w, r, "/volunteer", "Please fill in your name, email, phone and city.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	app := &types.VolunteerApplication{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		City:      input.City,
		Interests: types.JoinInterests(input.Interests),
		Message:   input.Message,
	}

	if err := s.apps.Create(ctx, app); err != nil {
		s.logger.WithError(err).Error("failed to save volunteer application")
		s.redirectWithError(w, r, "/volunteer", "Unable to submit your application right now.")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": app.ID,
		"email":          app.Email,
	}).Info("volunteer application received")

	if err := s.sendVolunteerConfirmation(ctx, input.Name, input.Email); err != nil {
		s.logger.WithError(err).Error("failed to send volunteer confirmation email")
		s.redirectWithNotice(w, r, "/volunteer", "Your application has been received!")
		return
	}

	s.redirectWithNotice(w, r, "/volunteer", "Thank you for your interest in volunteering! We will contact you soon.")
}

func (s *Service) sendVolunteerConfirmation(ctx context.Context, name, email string) error {
	if !s.mailer.Enabled() {
		return nil
	}

	body := fmt.Sprintf(`Dear %s,

Thank you for your interest in volunteering with the Smiling Tears Foundation!

We have received your application and our team will review it shortly. We will contact you within 3-5 business days with next steps.

Thank you for your commitment to making a difference!

Best regards,
The Smiling Tears Foundation Team
`, name)

	return s.mailer.Send(ctx, email, "Thank you for volunteering with the Smiling Tears Foundation", body)
}
