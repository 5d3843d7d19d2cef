package server

import (
	"net/http"

	"smilingtears/internal/content"
	"smilingtears/pkg/types"

	"github.com/alexedwards/flow"
)

type HomePageData struct {
	types.BasePageData
	Hero             types.Hero
	Stats            types.SiteStats
	Mission          types.Mission
	FeaturedPrograms []types.Program
	UpcomingEvents   []types.Event
	LatestPosts      []types.BlogPost
}

type AboutPageData struct {
	types.BasePageData
	About types.About
	Team  []types.TeamMember
}

type ProgramsPageData struct {
	types.BasePageData
	Programs []types.Program
}

type ProgramDetailPageData struct {
	types.BasePageData
	Program types.Program
}

type EventsPageData struct {
	types.BasePageData
	UpcomingEvents []types.Event
	PastEvents     []types.Event
}

type EventDetailPageData struct {
	types.BasePageData
	Event types.Event
}

type BlogPageData struct {
	types.BasePageData
	Posts            []types.BlogPost
	SelectedCategory string
}

type BlogDetailPageData struct {
	types.BasePageData
	Post         types.BlogPost
	RelatedPosts []types.BlogPost
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	site := s.content.Site()

	data := &HomePageData{
		Hero:             site.Hero,
		Stats:            site.Stats,
		Mission:          site.Mission,
		FeaturedPrograms: content.FirstN(s.content.Programs(), 2),
		UpcomingEvents:   content.FirstN(content.EventsByStatus(s.content.Events(), "upcoming"), 3),
		LatestPosts:      content.FirstN(s.content.Posts(), 3),
	}

	s.render(w, r, "page.home", data)
}

func (s *Service) handleAbout(w http.ResponseWriter, r *http.Request) {
	site := s.content.Site()

	data := &AboutPageData{
		About: site.About,
		Team:  s.content.Team(),
	}
	data.Title = "About Us"

	s.render(w, r, "page.about", data)
}

func (s *Service) handlePrograms(w http.ResponseWriter, r *http.Request) {
	data := &ProgramsPageData{Programs: s.content.Programs()}
	data.Title = "Our Programs"

	s.render(w, r, "page.programs", data)
}

func (s *Service) handleProgramDetail(w http.ResponseWriter, r *http.Request) {
	slug := flow.Param(r.Context(), "slug")

	program, ok := content.ProgramBySlug(s.content.Programs(), slug)
	if !ok {
		s.notFound(w, r)
		return
	}

	data := &ProgramDetailPageData{Program: program}
	data.Title = program.Title

	s.render(w, r, "page.program-detail", data)
}

func (s *Service) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := s.content.Events()

	data := &EventsPageData{
		UpcomingEvents: content.EventsByStatus(events, "upcoming"),
		PastEvents:     content.EventsByStatus(events, "past"),
	}
	data.Title = "Events"

	s.render(w, r, "page.events", data)
}

func (s *Service) handleEventDetail(w http.ResponseWriter, r *http.Request) {
	slug := flow.Param(r.Context(), "slug")

	event, ok := content.EventBySlug(s.content.Events(), slug)
	if !ok {
		s.notFound(w, r)
		return
	}

	data := &EventDetailPageData{Event: event}
	data.Title = event.Title

	s.render(w, r, "page.event-detail", data)
}

func (s *Service) handleBlog(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	data := &BlogPageData{
		Posts:            content.PostsByCategory(s.content.Posts(), category),
		SelectedCategory: category,
	}
	data.Title = "Blog"

	s.render(w, r, "page.blog", data)
}

func (s *Service) handleBlogDetail(w http.ResponseWriter, r *http.Request) {
	slug := flow.Param(r.Context(), "slug")

	posts := s.content.Posts()
	post, ok := content.PostBySlug(posts, slug)
	if !ok {
		s.notFound(w, r)
		return
	}

	data := &BlogDetailPageData{
		Post:         post,
		RelatedPosts: content.RelatedPosts(posts, post, 3),
	}
	data.Title = post.Title

	s.render(w, r, "page.blog-detail", data)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
