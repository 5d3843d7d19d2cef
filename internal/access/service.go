// Package access implements the account and access workflow: converting
// approved volunteer applications into accounts, authenticating sessions, and
// the OTP-gated password reset flow. Workflow logic depends on narrow
// repository interfaces so handlers and tests can supply their own stores.
package access

import (
	"context"
	"fmt"
	"time"

	"smilingtears/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL         = 10 * time.Minute
	maxOtpAttempts = 5
)

// Applications is the slice of the application store the workflow needs.
type Applications interface {
	ApprovedByEmail(ctx context.Context, email string) (*types.VolunteerApplication, error)
}

// Accounts is the slice of the account store the workflow needs.
type Accounts interface {
	Create(ctx context.Context, account *types.Account) error
	ByUsername(ctx context.Context, username string) (*types.Account, error)
	ByEmail(ctx context.Context, email string) (*types.Account, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// SMSSender delivers a single message to a phone number. Implementations must
// return an error on dispatch failure; the reset flow blocks on it.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

type Service struct {
	logger       *logrus.Logger
	applications Applications
	accounts     Accounts
	sms          SMSSender

	now         func() time.Time
	generateOTP func() (string, error)
}

func NewService(logger *logrus.Logger, applications Applications, accounts Accounts, sms SMSSender) *Service {
	return &Service{
		logger:       logger,
		applications: applications,
		accounts:     accounts,
		sms:          sms,
		now:          time.Now,
		generateOTP:  GenerateOTP,
	}
}

// CreateAccount provisions a volunteer account. It succeeds only when an
// approved application exists for the email and no account holds it yet.
func (s *Service) CreateAccount(ctx context.Context, username, email, password string) error {
	app, err := s.applications.ApprovedByEmail(ctx, email)
	if err != nil {
		if err == types.ErrApplicationNotFound {
			return types.ErrNotAuthorized
		}
		return fmt.Errorf("check application approval: %w", err)
	}

	if err := s.requireNoAccount(ctx, email); err != nil {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	account := &types.Account{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     types.RoleVolunteer,
		Phone:    app.Phone,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"email":          email,
		"application_id": app.ID,
	}).Info("volunteer account provisioned")

	return nil
}

// CreateManager provisions a manager account directly. Admin-only; the caller
// enforces the role gate.
func (s *Service) CreateManager(ctx context.Context, username, email, password string) error {
	if err := s.requireNoAccount(ctx, email); err != nil {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	account := &types.Account{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     types.RoleManager,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return fmt.Errorf("create manager account: %w", err)
	}

	s.logger.WithField("email", email).Info("manager account provisioned")

	return nil
}

func (s *Service) requireNoAccount(ctx context.Context, email string) error {
	_, err := s.accounts.ByEmail(ctx, email)
	if err == nil {
		return types.ErrDuplicateAccount
	}
	if err != types.ErrAccountNotFound {
		return fmt.Errorf("check duplicate account: %w", err)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
