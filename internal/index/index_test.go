package index

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluna/site/internal/domain/content"
	domainerr "github.com/verluna/site/internal/domain/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "index.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func meta(slug string, date time.Time, cat content.Category, tags []string, featured bool) content.PostMeta {
	return content.PostMeta{
		Slug:        slug,
		Title:       "Title " + slug,
		Description: "Description " + slug,
		Date:        date,
		Author:      "jonas",
		Category:    cat,
		Tags:        tags,
		Featured:    featured,
	}
}

func slugs(metas []content.PostMeta) []string {
	out := make([]string, len(metas))
	for i, m := range metas {
		out[i] = m.Slug
	}
	return out
}

func TestList_DefaultOrder(t *testing.T) {
	s := openTestStore(t)

	// B is featured but older than both A and C; featured wins, then
	// recency among the rest.
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("a", day(2025, 2, 1), content.CategoryAutomation, []string{"n8n"}, false),
		meta("b", day(2024, 12, 1), content.CategoryGTMEngineering, []string{"clay"}, true),
		meta("c", day(2025, 1, 15), content.CategoryTutorial, nil, false),
	}))

	got, err := s.List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, slugs(got))
}

func TestList_EqualDateTieBreaksOnSlug(t *testing.T) {
	s := openTestStore(t)
	d := day(2025, 3, 1)
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("zebra", d, content.CategoryTutorial, nil, false),
		meta("apple", d, content.CategoryTutorial, nil, false),
		meta("mango", d, content.CategoryTutorial, nil, false),
	}))

	got, err := s.List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "mango", "zebra"}, slugs(got))
}

func TestList_ExcludesDrafts(t *testing.T) {
	s := openTestStore(t)
	draft := meta("wip", day(2025, 5, 1), content.CategoryTutorial, nil, false)
	draft.Draft = true
	require.NoError(t, s.Rebuild([]content.PostMeta{
		draft,
		meta("live", day(2025, 4, 1), content.CategoryTutorial, nil, false),
	}))

	got, err := s.List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, slugs(got))

	got, err = s.List(ListOptions{IncludeDrafts: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"wip", "live"}, slugs(got))
}

func TestList_Filters(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("a", day(2025, 2, 1), content.CategoryAutomation, []string{"n8n", "clay"}, false),
		meta("b", day(2025, 1, 1), content.CategoryGTMEngineering, []string{"clay"}, true),
		meta("c", day(2024, 12, 1), content.CategoryAutomation, []string{"zapier"}, false),
	}))

	byCat, err := s.List(ListOptions{Category: content.CategoryAutomation})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, slugs(byCat))

	byTag, err := s.List(ListOptions{Tag: "clay"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, slugs(byTag))

	featured, err := s.List(ListOptions{FeaturedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, slugs(featured))

	limited, err := s.List(ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, slugs(limited))
}

func TestList_UnknownTagYieldsEmpty(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("a", day(2025, 2, 1), content.CategoryAutomation, []string{"n8n"}, false),
	}))

	got, err := s.List(ListOptions{Tag: "nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetMeta(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("a", day(2025, 2, 1), content.CategoryAutomation, []string{"n8n"}, false),
	}))

	m, err := s.GetMeta("a")
	require.NoError(t, err)
	assert.Equal(t, "Title a", m.Title)

	_, err = s.GetMeta("missing")
	assert.ErrorIs(t, err, domainerr.ErrNotFound)

	_, err = s.GetMeta("  ")
	assert.ErrorIs(t, err, domainerr.ErrNotFound)
}

func TestRebuild_ReplacesPreviousCorpus(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("old", day(2024, 1, 1), content.CategoryTutorial, nil, false),
	}))
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("new", day(2025, 1, 1), content.CategoryTutorial, nil, false),
	}))

	_, err := s.GetMeta("old")
	assert.ErrorIs(t, err, domainerr.ErrNotFound)

	got, err := s.List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, slugs(got))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCounts(t *testing.T) {
	s := openTestStore(t)
	draft := meta("wip", day(2025, 5, 1), content.CategoryCaseStudy, []string{"clay"}, false)
	draft.Draft = true
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("a", day(2025, 2, 1), content.CategoryAutomation, []string{"n8n", "clay"}, false),
		meta("b", day(2025, 1, 1), content.CategoryAutomation, []string{"clay"}, false),
		meta("c", day(2024, 12, 1), content.CategoryTutorial, []string{"n8n"}, false),
		draft,
	}))

	cats, err := s.CategoryCounts()
	require.NoError(t, err)
	require.Len(t, cats, 2) // the draft's category does not appear
	assert.Equal(t, CategoryCount{Category: content.CategoryAutomation, Label: "Automation", Count: 2}, cats[0])
	assert.Equal(t, CategoryCount{Category: content.CategoryTutorial, Label: "Tutorial", Count: 1}, cats[1])

	tags, err := s.TagCounts()
	require.NoError(t, err)
	assert.Equal(t, []TagCount{{Tag: "clay", Count: 2}, {Tag: "n8n", Count: 2}}, tags)
}

func TestRelated(t *testing.T) {
	s := openTestStore(t)
	// b shares the category plus one tag, c shares one tag, d nothing
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("source", day(2025, 3, 1), content.CategoryGTMEngineering, []string{"clay", "outbound"}, false),
		meta("b", day(2025, 1, 1), content.CategoryGTMEngineering, []string{"clay"}, false),
		meta("c", day(2025, 2, 1), content.CategoryAutomation, []string{"outbound"}, false),
		meta("d", day(2025, 2, 15), content.CategoryTutorial, []string{"unrelated"}, false),
	}))

	got, err := s.Related("source", content.CategoryGTMEngineering, []string{"clay", "outbound"}, DefaultRelatedLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, slugs(got))
}

func TestRelated_ExcludesSourceAndCaps(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("source", day(2025, 3, 1), content.CategoryTutorial, nil, false),
		meta("a", day(2025, 2, 1), content.CategoryTutorial, nil, false),
		meta("b", day(2025, 1, 1), content.CategoryTutorial, nil, false),
		meta("c", day(2024, 12, 1), content.CategoryTutorial, nil, false),
		meta("d", day(2024, 11, 1), content.CategoryTutorial, nil, false),
	}))

	got, err := s.Related("source", content.CategoryTutorial, nil, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.NotContains(t, slugs(got), "source")
	// equally relevant posts fall back to recency
	assert.Equal(t, []string{"a", "b", "c"}, slugs(got))
}

func TestList_PreEpochDateSortsOldest(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Rebuild([]content.PostMeta{
		meta("vintage", day(1969, 12, 31), content.CategoryTutorial, nil, false),
		meta("recent", day(2025, 1, 1), content.CategoryTutorial, nil, false),
		meta("older", day(2020, 1, 1), content.CategoryTutorial, nil, false),
	}))

	got, err := s.List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"recent", "older", "vintage"}, slugs(got))
}

func TestRankKeyRoundTrip(t *testing.T) {
	k := makeRankKey(true, day(2025, 3, 1).UnixNano(), "some-post")
	assert.Equal(t, "some-post", slugFromRankKey(k))
	assert.Equal(t, "", slugFromRankKey([]byte("short")))
}
