package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"smilingtears/internal/receipt"
	"smilingtears/pkg/types"
)

type DonationForm struct {
	Amount        int64  `form:"amount" validate:"required,gt=0"`
	Program       string `form:"program" validate:"required"`
	Name          string `form:"name" validate:"required"`
	Email         string `form:"email" validate:"required,email"`
	Phone         string `form:"phone"`
	Anonymous     string `form:"anonymous"`
	PaymentStatus string `form:"payment_status"`
}

type DonatePageData struct {
	types.BasePageData
	DonationTiers  []types.DonationTier
	PaymentMethods []string
	Programs       []types.Program
}

func (s *Service) handleGetDonate(w http.ResponseWriter, r *http.Request) {
	site := s.content.Site()

	data := &DonatePageData{
		DonationTiers:  site.DonationTiers,
		PaymentMethods: site.PaymentMethods,
		Programs:       s.content.Programs(),
	}
	data.Title = "Donate"

	s.render(w, r, "page.donate", data)
}

func (s *Service) handlePostDonate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/donate", "Invalid form payload.")
		return
	}

	var input DonationForm
	if err := decoder.Decode(&input, r.PostForm); err != nil {
		s.redirectWithError(w, r, "/donate", "Invalid form payload.")
		return
	}
	if err := validate.Struct(input); err != nil {
		s.redirectWithError(w, r, "/donate", "Please fill in the amount, program, name and email.")
		return
	}

	isAnonymous := input.Anonymous == "on"
	donorName := input.Name
	if isAnonymous {
		donorName = "Anonymous"
	}

	donation := &types.Donation{
		AmountCents: input.Amount * 100,
		Program:     input.Program,
		DonorName:   donorName,
		DonorEmail:  input.Email,
		DonorPhone:  input.Phone,
		IsAnonymous: isAnonymous,
		Status:      types.DonationStatusSuccess,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	// With no payment processor configured the form's simulated status decides.
	if input.PaymentStatus == "failed" {
		s.redirectWithError(w, r, "/donate", "Payment was unsuccessful. Please try again.")
		return
	}

	transactionID, err := s.charger.Charge(ctx, donation.AmountCents, donation.Program, donation.DonorEmail)
	if err != nil {
		s.logger.WithError(err).Error("payment capture failed")
		s.redirectWithError(w, r, "/donate", "Payment was unsuccessful. Please try again.")
		return
	}
	donation.TransactionID = transactionID

	if err := s.donations.Create(ctx, donation); err != nil {
		s.logger.WithError(err).Error("failed to save donation")
		s.redirectWithError(w, r, "/donate", "Unable to record your donation right now.")
		return
	}

	pdf, err := receipt.Generate(donation, s.content.Site().SiteInfo)
	if err != nil {
		s.logger.WithError(err).WithField("donation_id", donation.ID).Error("failed to generate receipt")
		s.redirectWithNotice(w, r, "/donate", "Thank you! Your donation was recorded but the receipt could not be generated.")
		return
	}

	// Archive copy is best-effort; the donor still gets their download.
	if s.archive.Enabled() {
		if err := s.archive.Put(ctx, receipt.ArchiveKey(donation), pdf); err != nil {
			s.logger.WithError(err).WithField("donation_id", donation.ID).Warn("failed to archive receipt")
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.Filename(donation.ID)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	if _, err := w.Write(pdf); err != nil {
		s.logger.WithError(err).Error("failed to stream receipt")
	}
}
