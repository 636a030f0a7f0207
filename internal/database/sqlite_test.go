package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelgrove/ingest/internal/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "assets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testAsset() *model.ImageAsset {
	return &model.ImageAsset{
		Title:        "Summer gala",
		Alt:          "Crowd at the summer gala",
		Category:     model.CategoryEvents,
		StorageKey:   "events/1700000000-abcd1234.jpg",
		URL:          "http://localhost:9000/images/events/1700000000-abcd1234.jpg",
		ThumbnailURL: "http://localhost:9000/images/events/thumbnails/1700000000-abcd1234.jpg",
		SizeBytes:    12345,
		MIMEType:     "image/jpeg",
		Active:       true,
	}
}

func TestCreateAndFind(t *testing.T) {
	s := testStore(t)

	a := testAsset()
	require.NoError(t, s.Create(a))
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := s.FindActiveByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, a.StorageKey, got.StorageKey)
	assert.Equal(t, a.URL, got.URL)
	assert.Equal(t, model.CategoryEvents, got.Category)
	assert.True(t, got.Active)
}

func TestCreate_DefaultsAndClamping(t *testing.T) {
	s := testStore(t)

	a := testAsset()
	a.Category = ""
	a.Priority = 9999
	require.NoError(t, s.Create(a))

	got, err := s.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGeneral, got.Category)
	assert.Equal(t, model.MaxPriority, got.Priority)
}

func TestCreate_RejectsInvalid(t *testing.T) {
	s := testStore(t)

	a := testAsset()
	a.Alt = ""
	assert.Error(t, s.Create(a))

	b := testAsset()
	b.Category = "unlisted"
	assert.Error(t, s.Create(b))
}

func TestCreate_ResponsiveURLsRoundTrip(t *testing.T) {
	s := testStore(t)

	a := testAsset()
	a.ResponsiveURLs = []string{"http://x/400w.jpg", "http://x/800w.jpg"}
	require.NoError(t, s.Create(a))

	got, err := s.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ResponsiveURLs, got.ResponsiveURLs)
}

func TestUpdate(t *testing.T) {
	s := testStore(t)

	a := testAsset()
	require.NoError(t, s.Create(a))

	title := "Winter gala"
	priority := 5
	got, err := s.Update(a.ID, model.AssetPatch{Title: &title, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, "Winter gala", got.Title)
	assert.Equal(t, 5, got.Priority)
	// Untouched fields stay put.
	assert.Equal(t, a.Alt, got.Alt)

	reloaded, err := s.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Winter gala", reloaded.Title)
}

func TestUpdate_NotFound(t *testing.T) {
	s := testStore(t)

	title := "x"
	_, err := s.Update("missing-id", model.AssetPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_InactiveRecordNotFound(t *testing.T) {
	s := testStore(t)

	a := testAsset()
	require.NoError(t, s.Create(a))

	inactive := false
	_, err := s.Update(a.ID, model.AssetPatch{Active: &inactive})
	require.NoError(t, err)

	// Soft-deleted records are invisible to further updates.
	title := "x"
	_, err = s.Update(a.ID, model.AssetPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	// But still reachable via FindByID.
	got, err := s.FindByID(a.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestDelete(t *testing.T) {
	s := testStore(t)

	a := testAsset()
	require.NoError(t, s.Create(a))
	require.NoError(t, s.Delete(a.ID))

	_, err := s.FindByID(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(a.ID), ErrNotFound)
}

func TestList(t *testing.T) {
	s := testStore(t)

	for i := 0; i < 3; i++ {
		a := testAsset()
		a.Priority = i
		require.NoError(t, s.Create(a))
	}
	blog := testAsset()
	blog.Category = model.CategoryBlog
	require.NoError(t, s.Create(blog))

	inactive := testAsset()
	inactive.Active = false
	require.NoError(t, s.Create(inactive))

	all, total, err := s.List("", false, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, all, 4)
	// Highest priority first.
	assert.Equal(t, 2, all[0].Priority)

	events, total, err := s.List(model.CategoryEvents, false, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, events, 3)

	withInactive, total, err := s.List("", true, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, withInactive, 5)

	paged, total, err := s.List("", false, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, paged, 2)
}
