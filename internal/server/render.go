package server

import (
	"net/http"
	"time"

	"smilingtears/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	session := sessionFromContext(r.Context())
	site := s.content.Site()

	if setter, ok := data.(types.GlobalsSetter); ok {
		g := types.Globals{
			Notice:      r.URL.Query().Get("notice"),
			Error:       r.URL.Query().Get("error"),
			SiteInfo:    site.SiteInfo,
			Contact:     site.Contact,
			SocialMedia: site.SocialMedia,
			CurrentYear: time.Now().Year(),
		}
		if session.IsAuthenticated() {
			g.IsAuthenticated = true
			g.Username = session.Username
			g.Role = session.Role
		}
		setter.SetGlobals(g)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.templates.ExecuteTemplate(w, templateName, data)
}

func (s *Service) render(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	if err := s.renderTemplate(w, r, templateName, data); err != nil {
		s.logger.WithError(err).WithField("template", templateName).Error("failed to render page")
		s.internalServerError(w)
	}
}

func (s *Service) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	data := &types.BasePageData{Title: "Page Not Found"}
	if err := s.renderTemplate(w, r, "page.404", data); err != nil {
		s.logger.WithError(err).Error("failed to render 404 page")
	}
}
