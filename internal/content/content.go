// Package content loads the static JSON files that drive the marketing pages.
// Content problems never fail a page: a missing or malformed file simply
// renders as empty content.
package content

import (
	"encoding/json"
	"os"
	"path/filepath"

	"smilingtears/pkg/types"

	"github.com/sirupsen/logrus"
)

type Loader struct {
	dir    string
	logger *logrus.Logger
}

func NewLoader(dir string, logger *logrus.Logger) *Loader {
	return &Loader{dir: dir, logger: logger}
}

func (l *Loader) load(filename string, v any) {
	data, err := os.ReadFile(filepath.Join(l.dir, filename))
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.WithError(err).WithField("file", filename).Warn("failed to read content file")
		}
		return
	}

	if err := json.Unmarshal(data, v); err != nil {
		l.logger.WithError(err).WithField("file", filename).Warn("failed to parse content file")
	}
}

func (l *Loader) Site() types.SiteConfig {
	var cfg types.SiteConfig
	l.load("config.json", &cfg)
	return cfg
}

func (l *Loader) Programs() []types.Program {
	var doc struct {
		Programs []types.Program `json:"programs"`
	}
	l.load("programs.json", &doc)
	return doc.Programs
}

func (l *Loader) Events() []types.Event {
	var doc struct {
		Events []types.Event `json:"events"`
	}
	l.load("events.json", &doc)
	return doc.Events
}

func (l *Loader) Posts() []types.BlogPost {
	var doc struct {
		Posts []types.BlogPost `json:"posts"`
	}
	l.load("blog-posts.json", &doc)
	return doc.Posts
}

func (l *Loader) Team() []types.TeamMember {
	var doc struct {
		Team []types.TeamMember `json:"team"`
	}
	l.load("team-members.json", &doc)
	return doc.Team
}

func ProgramBySlug(programs []types.Program, slug string) (types.Program, bool) {
	for _, p := range programs {
		if p.Slug == slug {
			return p, true
		}
	}
	return types.Program{}, false
}

func ProgramByID(programs []types.Program, id string) (types.Program, bool) {
	for _, p := range programs {
		if p.ID == id {
			return p, true
		}
	}
	return types.Program{}, false
}

func EventBySlug(events []types.Event, slug string) (types.Event, bool) {
	for _, e := range events {
		if e.Slug == slug {
			return e, true
		}
	}
	return types.Event{}, false
}

func EventByID(events []types.Event, id string) (types.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return types.Event{}, false
}

func EventsByStatus(events []types.Event, status string) []types.Event {
	out := make([]types.Event, 0, len(events))
	for _, e := range events {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

func PostBySlug(posts []types.BlogPost, slug string) (types.BlogPost, bool) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return types.BlogPost{}, false
}

func PostsByCategory(posts []types.BlogPost, category string) []types.BlogPost {
	if category == "" {
		return posts
	}
	out := make([]types.BlogPost, 0, len(posts))
	for _, p := range posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// RelatedPosts returns up to limit posts sharing the category, excluding the
// post itself.
func RelatedPosts(posts []types.BlogPost, post types.BlogPost, limit int) []types.BlogPost {
	out := make([]types.BlogPost, 0, limit)
	for _, p := range posts {
		if p.Category == post.Category && p.ID != post.ID {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func FirstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
