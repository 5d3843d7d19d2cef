package access

import (
	"context"
	"crypto/subtle"
	"fmt"

	"smilingtears/pkg/types"

	"github.com/sirupsen/logrus"
)

// RequestReset starts a password reset for the account holding this email.
// It generates a fresh OTP and dispatches it over SMS to the registered phone;
// dispatch failure blocks the flow rather than continuing silently. The
// returned state belongs in the caller's session and nowhere else.
func (s *Service) RequestReset(ctx context.Context, email string) (*types.ResetState, error) {
	account, err := s.accounts.ByEmail(ctx, email)
	if err != nil {
		if err == types.ErrAccountNotFound {
			return nil, types.ErrAccountNotFound
		}
		return nil, fmt.Errorf("fetch account for reset: %w", err)
	}

	otp, err := s.generateOTP()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	message := fmt.Sprintf("Your Smiling Tears password reset OTP is %s", otp)
	if err := s.sms.Send(ctx, account.Phone, message); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("failed to dispatch reset otp")
		return nil, fmt.Errorf("%w: %v", types.ErrSmsDispatch, err)
	}

	s.logger.WithField("email", email).Info("reset otp dispatched")

	return &types.ResetState{
		Email:     account.Email,
		Phone:     account.Phone,
		OTP:       otp,
		ExpiresAt: s.now().Add(otpTTL),
	}, nil
}

// VerifyOTP advances the reset state machine on an exact code match. A
// mismatch counts against the attempt budget and leaves the state otherwise
// untouched. Expired codes and exhausted budgets invalidate the state; the
// caller must drop it from the session and restart the flow.
func (s *Service) VerifyOTP(state *types.ResetState, code string) error {
	if state == nil || state.OTP == "" {
		return types.ErrInvalidOtp
	}

	if s.now().After(state.ExpiresAt) {
		return types.ErrOtpExpired
	}

	if state.Attempts >= maxOtpAttempts {
		return types.ErrTooManyOtpAttempts
	}

	if subtle.ConstantTimeCompare([]byte(state.OTP), []byte(code)) != 1 {
		state.Attempts++
		if state.Attempts >= maxOtpAttempts {
			return types.ErrTooManyOtpAttempts
		}
		return types.ErrInvalidOtp
	}

	state.Verified = true
	return nil
}

// CompletePasswordReset rewrites the account password. It is permitted only
// after VerifyOTP succeeded for this state; the caller clears the reset state
// afterwards, returning the session to idle.
func (s *Service) CompletePasswordReset(ctx context.Context, state *types.ResetState, newPassword string) error {
	if state == nil || !state.Verified {
		return types.ErrNotAuthorized
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePassword(ctx, state.Email, hash); err != nil {
		return fmt.Errorf("rewrite password: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"email": state.Email}).Info("password reset completed")

	return nil
}
