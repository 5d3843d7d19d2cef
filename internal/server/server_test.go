package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"smilingtears/internal/access"
	"smilingtears/internal/content"
	"smilingtears/internal/payments"
	"smilingtears/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApplications struct {
	apps []*types.VolunteerApplication
}

func (s *stubApplications) ApprovedByEmail(_ context.Context, email string) (*types.VolunteerApplication, error) {
	for _, a := range s.apps {
		if a.Email == email && a.Status == types.ApplicationStatusApproved {
			return a, nil
		}
	}
	return nil, types.ErrApplicationNotFound
}

func (s *stubApplications) Create(_ context.Context, app *types.VolunteerApplication) error {
	s.apps = append(s.apps, app)
	return nil
}

func (s *stubApplications) SetStatus(_ context.Context, id string, status types.ApplicationStatus) error {
	for _, a := range s.apps {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return types.ErrApplicationNotFound
}

func (s *stubApplications) Delete(_ context.Context, id string) error {
	out := s.apps[:0]
	for _, a := range s.apps {
		if a.ID != id {
			out = append(out, a)
		}
	}
	s.apps = out
	return nil
}

func (s *stubApplications) List(_ context.Context) ([]*types.VolunteerApplication, error) {
	return s.apps, nil
}

func (s *stubApplications) ByEmail(_ context.Context, email string) ([]*types.VolunteerApplication, error) {
	out := make([]*types.VolunteerApplication, 0)
	for _, a := range s.apps {
		if a.Email == email {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubAccounts struct {
	accounts []*types.Account
}

func (s *stubAccounts) Create(_ context.Context, account *types.Account) error {
	s.accounts = append(s.accounts, account)
	return nil
}

func (s *stubAccounts) ByUsername(_ context.Context, username string) (*types.Account, error) {
	for _, a := range s.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, types.ErrAccountNotFound
}

func (s *stubAccounts) ByEmail(_ context.Context, email string) (*types.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, types.ErrAccountNotFound
}

func (s *stubAccounts) UpdatePassword(_ context.Context, email, hash string) error {
	for _, a := range s.accounts {
		if a.Email == email {
			a.Password = hash
			return nil
		}
	}
	return types.ErrAccountNotFound
}

func (s *stubAccounts) List(_ context.Context) ([]*types.Account, error) {
	return s.accounts, nil
}

func (s *stubAccounts) DeleteByEmail(_ context.Context, email string) error {
	out := s.accounts[:0]
	for _, a := range s.accounts {
		if a.Email != email {
			out = append(out, a)
		}
	}
	s.accounts = out
	return nil
}

type stubDonations struct {
	donations []*types.Donation
}

func (s *stubDonations) Create(_ context.Context, d *types.Donation) error {
	if d.ID == "" {
		d.ID = "20260101000000TEST"
	}
	if d.TransactionID == "" {
		d.TransactionID = "TXN" + d.ID
	}
	s.donations = append(s.donations, d)
	return nil
}

func (s *stubDonations) List(_ context.Context) ([]*types.Donation, error) {
	return s.donations, nil
}

type stubContacts struct {
	submissions []*types.ContactSubmission
}

func (s *stubContacts) Create(_ context.Context, name, email, phone, message string) error {
	s.submissions = append(s.submissions, &types.ContactSubmission{
		Name: name, Email: email, Phone: phone, Message: message,
	})
	return nil
}

func (s *stubContacts) Latest(_ context.Context, limit uint64) ([]*types.ContactSubmission, error) {
	return s.submissions, nil
}

type stubMailer struct{}

func (stubMailer) Enabled() bool                                      { return false }
func (stubMailer) NotifyAddress() string                              { return "" }
func (stubMailer) Send(_ context.Context, _, _, _ string) error       { return nil }

type stubSMS struct{}

func (stubSMS) Send(_ context.Context, _, _ string) error { return nil }

func newTestServer(t *testing.T) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("k"), 32))
	config := &types.Config{
		ServerPort:       0,
		ReadTimeoutSec:   5,
		WriteTimeoutSec:  5,
		CookieHashKey:    key,
		CookieBlockKey:   key,
		SessionMaxAgeSec: 3600,
		DataDir:          t.TempDir(),
	}

	apps := &stubApplications{}
	accounts := &stubAccounts{}

	svc, err := New(
		config,
		logger,
		content.NewLoader(config.DataDir, logger),
		apps,
		accounts,
		&stubDonations{},
		&stubContacts{},
		access.NewService(logger, apps, accounts, stubSMS{}),
		stubMailer{},
		payments.SimulatedCharger{},
		nil,
	)
	require.NoError(t, err)

	return svc
}

func setSessionCookie(t *testing.T, svc *Service, r *http.Request, session *types.Session) {
	t.Helper()

	w := httptest.NewRecorder()
	svc.saveSession(w, session)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	r.AddCookie(cookies[0])
}

func TestSessionCookieRoundTrip(t *testing.T) {
	svc := newTestServer(t)

	session := &types.Session{Username: "asha", Role: types.RoleVolunteer}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	setSessionCookie(t, svc, r, session)

	decoded := svc.sessionFromRequest(r)
	require.NotNil(t, decoded)
	assert.Equal(t, "asha", decoded.Username)
	assert.Equal(t, types.RoleVolunteer, decoded.Role)
	assert.True(t, decoded.IsAuthenticated())
	assert.Nil(t, decoded.Reset)
}

func TestSessionCookieCarriesResetState(t *testing.T) {
	svc := newTestServer(t)

	session := &types.Session{
		Reset: &types.ResetState{Email: "asha@example.com", OTP: "123456", Attempts: 2},
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	setSessionCookie(t, svc, r, session)

	decoded := svc.sessionFromRequest(r)
	require.NotNil(t, decoded)
	require.NotNil(t, decoded.Reset)
	assert.False(t, decoded.IsAuthenticated())
	assert.Equal(t, "asha@example.com", decoded.Reset.Email)
	assert.Equal(t, 2, decoded.Reset.Attempts)
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	svc := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	w := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
	assert.Contains(t, w.Header().Get("Location"), "error=")
}

func TestAdminRoutesRejectLowerRoles(t *testing.T) {
	svc := newTestServer(t)

	for _, role := range []types.Role{types.RoleVolunteer, types.RoleManager} {
		r := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		setSessionCookie(t, svc, r, &types.Session{Username: "u", Role: role})

		w := httptest.NewRecorder()
		svc.server.Handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code, "role %s should be rejected", role)
		assert.Contains(t, w.Header().Get("Location"), "/login")
	}
}

func TestAdminDashboardRendersForAdmin(t *testing.T) {
	svc := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	setSessionCookie(t, svc, r, &types.Session{Username: "root", Role: types.RoleAdmin})

	w := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin Dashboard")
}

func TestApproveVolunteerIsIdempotent(t *testing.T) {
	svc := newTestServer(t)

	stubApps := svc.apps.(*stubApplications)
	stubApps.apps = append(stubApps.apps, &types.VolunteerApplication{
		ID:     "2501",
		Email:  "asha@example.com",
		Status: types.ApplicationStatusPending,
	})

	for range 2 {
		r := httptest.NewRequest(http.MethodPost, "/admin/approve/2501", nil)
		setSessionCookie(t, svc, r, &types.Session{Username: "root", Role: types.RoleAdmin})

		w := httptest.NewRecorder()
		svc.server.Handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "/admin/dashboard")
		assert.Equal(t, types.ApplicationStatusApproved, stubApps.apps[0].Status)
	}
	require.Len(t, stubApps.apps, 1)
}

func TestManagerRoutesRejectAdmin(t *testing.T) {
	// Roles do not inherit: the manager dashboard is managers only.
	svc := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/manager/dashboard", nil)
	setSessionCookie(t, svc, r, &types.Session{Username: "root", Role: types.RoleAdmin})

	w := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestVolunteerDashboardAllowsAnyAuthenticated(t *testing.T) {
	svc := newTestServer(t)

	stubAcc := svc.accounts.(*stubAccounts)
	stubAcc.accounts = append(stubAcc.accounts, &types.Account{
		Username: "asha",
		Email:    "asha@example.com",
		Role:     types.RoleVolunteer,
	})

	r := httptest.NewRequest(http.MethodGet, "/volunteer/dashboard", nil)
	setSessionCookie(t, svc, r, &types.Session{Username: "asha", Role: types.RoleVolunteer})

	w := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "asha")
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	svc := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/logout", nil)
	setSessionCookie(t, svc, r, &types.Session{Username: "asha", Role: types.RoleVolunteer})

	w := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestHealthz(t *testing.T) {
	svc := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestHomeRendersWithEmptyContent(t *testing.T) {
	svc := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownProgramIs404(t *testing.T) {
	svc := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/programs/no-such-program", nil)
	w := httptest.NewRecorder()
	svc.server.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
