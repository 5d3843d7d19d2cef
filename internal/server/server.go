package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"smilingtears/internal/access"
	"smilingtears/internal/content"
	"smilingtears/internal/payments"
	"smilingtears/internal/receipt"
	"smilingtears/internal/storage"
	"smilingtears/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS

var (
	decoder  = form.NewDecoder()
	validate = validator.New()
)

// ApplicationStore is what the handlers need from the application repository.
type ApplicationStore interface {
	access.Applications
	Create(ctx context.Context, app *types.VolunteerApplication) error
	SetStatus(ctx context.Context, id string, status types.ApplicationStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*types.VolunteerApplication, error)
	ByEmail(ctx context.Context, email string) ([]*types.VolunteerApplication, error)
}

type AccountStore interface {
	access.Accounts
	List(ctx context.Context) ([]*types.Account, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type DonationStore interface {
	Create(ctx context.Context, donation *types.Donation) error
	List(ctx context.Context) ([]*types.Donation, error)
}

type ContactStore interface {
	Create(ctx context.Context, name, email, phone, message string) error
	Latest(ctx context.Context, limit uint64) ([]*types.ContactSubmission, error)
}

// Mailer sends best-effort notifications; failures never fail the request.
type Mailer interface {
	Enabled() bool
	NotifyAddress() string
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	content   *content.Loader
	templates *template.Template

	apps      ApplicationStore
	accounts  AccountStore
	donations DonationStore
	contacts  ContactStore

	accessSvc *access.Service
	mailer    Mailer
	charger   payments.Charger
	archive   *storage.ReceiptArchive

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	loader *content.Loader,
	apps ApplicationStore,
	accounts AccountStore,
	donations DonationStore,
	contacts ContactStore,
	accessSvc *access.Service,
	mailer Mailer,
	charger payments.Charger,
	archive *storage.ReceiptArchive,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:  logger,
		config:  config,
		content: loader,
		cookie:  securecookie.New(hashKey, blockKey),

		apps:      apps,
		accounts:  accounts,
		donations: donations,
		contacts:  contacts,

		accessSvc: accessSvc,
		mailer:    mailer,
		charger:   charger,
		archive:   archive,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)
	r.Use(s.WithSession)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/about", s.handleAbout, http.MethodGet)
	r.HandleFunc("/programs", s.handlePrograms, http.MethodGet)
	r.HandleFunc("/programs/:slug", s.handleProgramDetail, http.MethodGet)
	r.HandleFunc("/events", s.handleEvents, http.MethodGet)
	r.HandleFunc("/events/:slug", s.handleEventDetail, http.MethodGet)
	r.HandleFunc("/blog", s.handleBlog, http.MethodGet)
	r.HandleFunc("/blog/:slug", s.handleBlogDetail, http.MethodGet)

	r.HandleFunc("/contact", s.handleGetContact, http.MethodGet)
	r.HandleFunc("/contact", s.handlePostContact, http.MethodPost)
	r.HandleFunc("/volunteer", s.handleGetVolunteer, http.MethodGet)
	r.HandleFunc("/volunteer", s.handlePostVolunteer, http.MethodPost)
	r.HandleFunc("/donate", s.handleGetDonate, http.MethodGet)
	r.HandleFunc("/donate", s.handlePostDonate, http.MethodPost)

	r.HandleFunc("/signup", s.handleGetSignup, http.MethodGet)
	r.HandleFunc("/signup", s.handlePostSignup, http.MethodPost)
	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout, http.MethodGet)

	r.HandleFunc("/forgot-password", s.handleGetForgotPassword, http.MethodGet)
	r.HandleFunc("/forgot-password", s.handlePostForgotPassword, http.MethodPost)
	r.HandleFunc("/verify-otp", s.handleGetVerifyOTP, http.MethodGet)
	r.HandleFunc("/verify-otp", s.handlePostVerifyOTP, http.MethodPost)
	r.HandleFunc("/reset-password", s.handleGetResetPassword, http.MethodGet)
	r.HandleFunc("/reset-password", s.handlePostResetPassword, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireRole(types.RoleAdmin))

		r.HandleFunc("/admin/dashboard", s.handleAdminDashboard, http.MethodGet)
		r.HandleFunc("/admin/approve/:id", s.handleApproveVolunteer, http.MethodPost)
		r.HandleFunc("/admin/reject/:id", s.handleRejectVolunteer, http.MethodPost)
		r.HandleFunc("/admin/delete_volunteer/:id", s.handleDeleteVolunteer, http.MethodPost)
		r.HandleFunc("/admin/delete_user/:email", s.handleDeleteUser, http.MethodPost)
		r.HandleFunc("/admin/add_manager", s.handleAddManager, http.MethodPost)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireRole(types.RoleManager))
		r.HandleFunc("/manager/dashboard", s.handleManagerDashboard, http.MethodGet)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.HandleFunc("/volunteer/dashboard", s.handleVolunteerDashboard, http.MethodGet)
	})

	r.HandleFunc("/api/programs", s.handleAPIPrograms, http.MethodGet)
	r.HandleFunc("/api/programs/:id", s.handleAPIProgramDetail, http.MethodGet)
	r.HandleFunc("/api/events", s.handleAPIEvents, http.MethodGet)
	r.HandleFunc("/api/events/:id", s.handleAPIEventDetail, http.MethodGet)
	r.HandleFunc("/api/blog", s.handleAPIBlog, http.MethodGet)
	r.HandleFunc("/api/stats", s.handleAPIStats, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"formatCurrency": func(cents int64) string {
			return "₹" + receipt.FormatAmount(cents)
		},
		"rupees": func(cents int64) int64 {
			return cents / 100
		},
		"formatDate": func(date string) string {
			parsed, err := time.Parse(time.RFC3339, date)
			if err != nil {
				if parsed, err = time.Parse("2006-01-02", date); err != nil {
					return date
				}
			}
			return parsed.Format("January 2, 2006")
		},
		"formatTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
