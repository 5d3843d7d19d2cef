package content

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"smilingtears/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestLoaderMissingDirYieldsEmptyContent(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "nope"), testLogger())

	assert.Empty(t, l.Programs())
	assert.Empty(t, l.Events())
	assert.Empty(t, l.Posts())
	assert.Empty(t, l.Team())
	assert.Equal(t, types.SiteConfig{}, l.Site())
}

func TestLoaderMalformedFileYieldsEmptyContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "programs.json"), []byte("{not json"), 0o644))

	l := NewLoader(dir, testLogger())
	assert.Empty(t, l.Programs())
}

func TestLoaderParsesContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{
		"siteInfo": {"name": "Smiling Tears Foundation", "regNo": "1234"},
		"stats": {"volunteers": 120},
		"donationTiers": [{"amount": 50000, "label": "Supporter"}]
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.json"), []byte(`{
		"events": [
			{"id": "e1", "slug": "health-camp", "title": "Health Camp", "status": "upcoming"},
			{"id": "e2", "slug": "winter-drive", "title": "Winter Drive", "status": "past"}
		]
	}`), 0o644))

	l := NewLoader(dir, testLogger())

	site := l.Site()
	assert.Equal(t, "Smiling Tears Foundation", site.SiteInfo.Name)
	assert.Equal(t, 120, site.Stats.Volunteers)
	require.Len(t, site.DonationTiers, 1)
	assert.Equal(t, int64(50000), site.DonationTiers[0].Amount)

	events := l.Events()
	require.Len(t, events, 2)

	upcoming := EventsByStatus(events, "upcoming")
	require.Len(t, upcoming, 1)
	assert.Equal(t, "health-camp", upcoming[0].Slug)

	_, ok := EventBySlug(events, "winter-drive")
	assert.True(t, ok)
	_, ok = EventBySlug(events, "missing")
	assert.False(t, ok)
}

func TestPostFilters(t *testing.T) {
	posts := []types.BlogPost{
		{ID: "1", Slug: "a", Category: "impact"},
		{ID: "2", Slug: "b", Category: "impact"},
		{ID: "3", Slug: "c", Category: "news"},
		{ID: "4", Slug: "d", Category: "impact"},
	}

	assert.Len(t, PostsByCategory(posts, "impact"), 3)
	assert.Len(t, PostsByCategory(posts, ""), 4)

	related := RelatedPosts(posts, posts[0], 3)
	require.Len(t, related, 2)
	for _, p := range related {
		assert.NotEqual(t, "1", p.ID)
		assert.Equal(t, "impact", p.Category)
	}

	assert.Len(t, FirstN(posts, 2), 2)
	assert.Len(t, FirstN(posts, 10), 4)
}
