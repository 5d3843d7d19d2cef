package access

import (
	"context"
	"io"
	"testing"
	"time"

	"smilingtears/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeApplications struct {
	apps map[string]*types.VolunteerApplication
}

func (f *fakeApplications) ApprovedByEmail(_ context.Context, email string) (*types.VolunteerApplication, error) {
	app, ok := f.apps[email]
	if !ok || app.Status != types.ApplicationStatusApproved {
		return nil, types.ErrApplicationNotFound
	}
	return app, nil
}

type fakeAccounts struct {
	byEmail map[string]*types.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: map[string]*types.Account{}}
}

func (f *fakeAccounts) Create(_ context.Context, account *types.Account) error {
	f.byEmail[account.Email] = account
	return nil
}

func (f *fakeAccounts) ByUsername(_ context.Context, username string) (*types.Account, error) {
	for _, a := range f.byEmail {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, types.ErrAccountNotFound
}

func (f *fakeAccounts) ByEmail(_ context.Context, email string) (*types.Account, error) {
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, types.ErrAccountNotFound
}

func (f *fakeAccounts) UpdatePassword(_ context.Context, email, hash string) error {
	a, ok := f.byEmail[email]
	if !ok {
		return types.ErrAccountNotFound
	}
	a.Password = hash
	return nil
}

type fakeSMS struct {
	sent []string
	fail bool
}

func (f *fakeSMS) Send(_ context.Context, phone, message string) error {
	if f.fail {
		return assert.AnError
	}
	f.sent = append(f.sent, message)
	return nil
}

func newTestService(apps *fakeApplications, accounts *fakeAccounts, sms *fakeSMS) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(logger, apps, accounts, sms)
}

func approvedApp(email, phone string) *fakeApplications {
	return &fakeApplications{apps: map[string]*types.VolunteerApplication{
		email: {
			ID:     "2501",
			Name:   "Asha",
			Email:  email,
			Phone:  phone,
			Status: types.ApplicationStatusApproved,
		},
	}}
}

func TestCreateAccountRequiresApprovedApplication(t *testing.T) {
	accounts := newFakeAccounts()
	svc := newTestService(&fakeApplications{apps: map[string]*types.VolunteerApplication{
		"pending@example.com": {Email: "pending@example.com", Status: types.ApplicationStatusPending},
	}}, accounts, &fakeSMS{})

	err := svc.CreateAccount(context.Background(), "asha", "pending@example.com", "secret123")
	assert.ErrorIs(t, err, types.ErrNotAuthorized)

	err = svc.CreateAccount(context.Background(), "asha", "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, types.ErrNotAuthorized)

	assert.Empty(t, accounts.byEmail)
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	accounts := newFakeAccounts()
	svc := newTestService(approvedApp("asha@example.com", "9876543210"), accounts, &fakeSMS{})

	require.NoError(t, svc.CreateAccount(context.Background(), "asha", "asha@example.com", "secret123"))

	err := svc.CreateAccount(context.Background(), "asha2", "asha@example.com", "secret123")
	assert.ErrorIs(t, err, types.ErrDuplicateAccount)
	assert.Len(t, accounts.byEmail, 1)
}

func TestCreateAccountStoresHashedPasswordAndVolunteerRole(t *testing.T) {
	accounts := newFakeAccounts()
	svc := newTestService(approvedApp("asha@example.com", "9876543210"), accounts, &fakeSMS{})

	require.NoError(t, svc.CreateAccount(context.Background(), "asha", "asha@example.com", "secret123"))

	account := accounts.byEmail["asha@example.com"]
	require.NotNil(t, account)
	assert.Equal(t, types.RoleVolunteer, account.Role)
	assert.Equal(t, "9876543210", account.Phone)
	assert.NotEqual(t, "secret123", account.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("secret123")))
}

func TestAuthenticateUniformErrorAndRedirects(t *testing.T) {
	accounts := newFakeAccounts()
	svc := newTestService(approvedApp("asha@example.com", "9876543210"), accounts, &fakeSMS{})
	require.NoError(t, svc.CreateAccount(context.Background(), "asha", "asha@example.com", "secret123"))

	_, _, unknownErr := svc.Authenticate(context.Background(), "bogus", "secret123")
	_, _, wrongErr := svc.Authenticate(context.Background(), "asha", "wrong")
	assert.ErrorIs(t, unknownErr, types.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, types.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	session, target, err := svc.Authenticate(context.Background(), "asha", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "asha", session.Username)
	assert.Equal(t, types.RoleVolunteer, session.Role)
	assert.Equal(t, "/volunteer/dashboard", target)
}

func TestRedirectForRole(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RedirectForRole(types.RoleAdmin))
	assert.Equal(t, "/manager/dashboard", RedirectForRole(types.RoleManager))
	assert.Equal(t, "/volunteer/dashboard", RedirectForRole(types.RoleVolunteer))
	assert.Equal(t, "/volunteer/dashboard", RedirectForRole(types.Role("")))
}

func TestApprovalToLoginScenario(t *testing.T) {
	// Application 2501 approved, signup with matching email, login as volunteer.
	accounts := newFakeAccounts()
	apps := approvedApp("asha@example.com", "9876543210")
	svc := newTestService(apps, accounts, &fakeSMS{})

	require.NoError(t, svc.CreateAccount(context.Background(), "asha", "asha@example.com", "secret123"))

	session, target, err := svc.Authenticate(context.Background(), "asha", "secret123")
	require.NoError(t, err)
	assert.Equal(t, types.RoleVolunteer, session.Role)
	assert.Equal(t, "/volunteer/dashboard", target)
}

func TestCreateManager(t *testing.T) {
	accounts := newFakeAccounts()
	svc := newTestService(&fakeApplications{apps: map[string]*types.VolunteerApplication{}}, accounts, &fakeSMS{})

	require.NoError(t, svc.CreateManager(context.Background(), "ravi", "ravi@example.com", "secret123"))
	assert.Equal(t, types.RoleManager, accounts.byEmail["ravi@example.com"].Role)

	err := svc.CreateManager(context.Background(), "ravi", "ravi@example.com", "secret123")
	assert.ErrorIs(t, err, types.ErrDuplicateAccount)
}

func TestRequestResetUnknownAccount(t *testing.T) {
	sms := &fakeSMS{}
	svc := newTestService(&fakeApplications{}, newFakeAccounts(), sms)

	state, err := svc.RequestReset(context.Background(), "x@x.com")
	assert.ErrorIs(t, err, types.ErrAccountNotFound)
	assert.Nil(t, state)
	assert.Empty(t, sms.sent)
}

func TestRequestResetDispatchFailureBlocksFlow(t *testing.T) {
	accounts := newFakeAccounts()
	svc := newTestService(approvedApp("asha@example.com", "9876543210"), accounts, &fakeSMS{fail: true})
	require.NoError(t, svc.CreateAccount(context.Background(), "asha", "asha@example.com", "secret123"))

	state, err := svc.RequestReset(context.Background(), "asha@example.com")
	assert.ErrorIs(t, err, types.ErrSmsDispatch)
	assert.Nil(t, state)
}

func TestRequestResetDispatchesOTP(t *testing.T) {
	accounts := newFakeAccounts()
	sms := &fakeSMS{}
	svc := newTestService(approvedApp("asha@example.com", "9876543210"), accounts, sms)
	require.NoError(t, svc.CreateAccount(context.Background(), "asha", "asha@example.com", "secret123"))

	state, err := svc.RequestReset(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Len(t, state.OTP, 6)
	assert.False(t, state.Verified)
	assert.Equal(t, "9876543210", state.Phone)
	assert.True(t, state.ExpiresAt.After(time.Now()))
	require.Len(t, sms.sent, 1)
	assert.Contains(t, sms.sent[0], state.OTP)
}
