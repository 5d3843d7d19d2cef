package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smilingtears/pkg/types"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const contextKeySession contextKey = "session"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// WithSession decodes the session cookie, if any, into the request context.
// Every handler reads the session from here rather than re-parsing cookies.
func (s *Service) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := s.sessionFromRequest(r)
		if session != nil {
			ctx := context.WithValue(r.Context(), contextKeySession, session)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth gates routes that need any signed-in account.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r.Context())
		if !session.IsAuthenticated() {
			s.redirectWithError(w, r, "/login", "Please log in first.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole gates sensitive operations server-side. A missing session or a
// session with any other role gets an access-denied notice and a redirect to
// the login entry point; the underlying state is untouched.
func (s *Service) RequireRole(role types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromContext(r.Context())
			if !session.HasRole(role) {
				if session.IsAuthenticated() {
					s.logger.WithFields(logrus.Fields{
						"username": session.Username,
						"role":     session.Role,
						"path":     r.URL.Path,
					}).Warn("role check failed")
				}
				s.redirectWithError(w, r, "/login", "Access denied!")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")
			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func sessionFromContext(ctx context.Context) *types.Session {
	session, _ := ctx.Value(contextKeySession).(*types.Session)
	return session
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, target, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, target+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, target, msg string) {
	v := url.Values{}
	v.Set("error", msg)
	http.Redirect(w, r, target+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
