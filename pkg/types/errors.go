package types

import "errors"

var (
	// ErrNotAuthorized is returned when an email has no approved volunteer
	// application behind it, or when a role check fails.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrDuplicateAccount is returned when an account already exists for an email.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidCredentials is returned for both unknown usernames and password
	// mismatches so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotFound is returned when no account matches a lookup key.
	ErrAccountNotFound = errors.New("account not found")
	// ErrApplicationNotFound is returned when no volunteer application matches.
	ErrApplicationNotFound = errors.New("volunteer application not found")
	// ErrInvalidOtp is returned when a reset code does not match the one issued.
	ErrInvalidOtp = errors.New("invalid otp")
	// ErrOtpExpired is returned when the reset code's validity window has passed.
	ErrOtpExpired = errors.New("otp expired")
	// ErrTooManyOtpAttempts is returned once the verification attempt budget is spent.
	ErrTooManyOtpAttempts = errors.New("too many otp attempts")
	// ErrSmsDispatch is returned when the SMS channel fails to deliver an OTP.
	ErrSmsDispatch = errors.New("sms dispatch failed")
)
