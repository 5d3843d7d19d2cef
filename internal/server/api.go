package server

import (
	"encoding/json"
	"net/http"

	"smilingtears/internal/content"

	"github.com/alexedwards/flow"
)

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode json response")
	}
}

func (s *Service) handleAPIPrograms(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"programs": s.content.Programs()})
}

func (s *Service) handleAPIProgramDetail(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	program, ok := content.ProgramByID(s.content.Programs(), id)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Program not found"})
		return
	}

	s.writeJSON(w, http.StatusOK, program)
}

func (s *Service) handleAPIEvents(w http.ResponseWriter, r *http.Request) {
	events := s.content.Events()

	if status := r.URL.Query().Get("status"); status != "" {
		events = content.EventsByStatus(events, status)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Service) handleAPIEventDetail(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	event, ok := content.EventByID(s.content.Events(), id)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Event not found"})
		return
	}

	s.writeJSON(w, http.StatusOK, event)
}

func (s *Service) handleAPIBlog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"posts": s.content.Posts()})
}

func (s *Service) handleAPIStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.content.Site().Stats)
}
