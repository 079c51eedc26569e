package metaengine

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test_content.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetItem(t *testing.T) {
	s := setupTestStore(t)

	updated := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	item := ContentItem{
		Slug:      "test-item",
		Type:      "post",
		Title:     "Test Item",
		Date:      "2024-01-15",
		Body:      "# Test Content\n\nThis is test content.",
		Thumbnail: "/public/uploads/test.jpg",
		Updated:   updated,
		Published: true,
	}

	if err := s.SaveItem(item); err != nil {
		t.Fatalf("SaveItem failed: %v", err)
	}

	got, err := s.GetItem("test-item")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}

	if got.Slug != item.Slug {
		t.Errorf("Slug = %q, want %q", got.Slug, item.Slug)
	}
	if got.Type != "post" {
		t.Errorf("Type = %q, want post", got.Type)
	}
	if got.Title != item.Title {
		t.Errorf("Title = %q, want %q", got.Title, item.Title)
	}
	if got.Body != item.Body {
		t.Errorf("Body = %q, want %q", got.Body, item.Body)
	}
	if got.Thumbnail != item.Thumbnail {
		t.Errorf("Thumbnail = %q, want %q", got.Thumbnail, item.Thumbnail)
	}
	if !got.Updated.Equal(updated) {
		t.Errorf("Updated = %v, want %v", got.Updated, updated)
	}
	if !got.Published {
		t.Error("Published should be true")
	}
}

func TestSaveItemDefaultsType(t *testing.T) {
	s := setupTestStore(t)

	item := ContentItem{Slug: "untyped", Title: "Untyped", Date: "2024-01-01", Body: "b", Published: true}
	if err := s.SaveItem(item); err != nil {
		t.Fatalf("SaveItem failed: %v", err)
	}

	got, err := s.GetItem("untyped")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Type != DefaultType {
		t.Errorf("Type = %q, want %q", got.Type, DefaultType)
	}
	if !got.Updated.IsZero() {
		t.Errorf("Updated = %v, want zero", got.Updated)
	}
}

func TestGetItemNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetItem("nonexistent")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestGetItemUnpublished(t *testing.T) {
	s := setupTestStore(t)

	item := ContentItem{Slug: "draft", Title: "Draft", Date: "2024-01-01", Body: "b", Published: false}
	if err := s.SaveItem(item); err != nil {
		t.Fatalf("SaveItem failed: %v", err)
	}

	if _, err := s.GetItem("draft"); err != sql.ErrNoRows {
		t.Errorf("GetItem should return ErrNoRows for unpublished, got %v", err)
	}

	got, err := s.GetItemAny("draft")
	if err != nil {
		t.Fatalf("GetItemAny failed: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
}

func TestListItemsByType(t *testing.T) {
	s := setupTestStore(t)

	items := []ContentItem{
		{Slug: "post-1", Type: "post", Title: "Post 1", Date: "2024-01-01", Body: "b", Published: true},
		{Slug: "post-2", Type: "post", Title: "Post 2", Date: "2024-01-02", Body: "b", Published: true},
		{Slug: "recipe-1", Type: "recipe", Title: "Recipe 1", Date: "2024-01-03", Body: "b", Published: true},
		{Slug: "draft-1", Type: "post", Title: "Draft", Date: "2024-01-04", Body: "b", Published: false},
	}
	for _, item := range items {
		if err := s.SaveItem(item); err != nil {
			t.Fatalf("SaveItem failed: %v", err)
		}
	}

	got, err := s.ListItems("")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("ListItems count = %d, want 3 (excluding unpublished)", len(got))
	}
	// Ordered by date DESC
	if got[0].Slug != "recipe-1" {
		t.Errorf("first item = %s, want recipe-1 (latest)", got[0].Slug)
	}

	got, err = s.ListItems("recipe")
	if err != nil {
		t.Fatalf("ListItems(recipe) failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "recipe-1" {
		t.Errorf("ListItems(recipe) = %v", got)
	}

	all, err := s.ListAllItems()
	if err != nil {
		t.Fatalf("ListAllItems failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListAllItems count = %d, want 4 (including drafts)", len(all))
	}
}

func TestOverridesRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	ov := Overrides{
		Title:        "Custom",
		Description:  "Stored description",
		OGImage:      "/og.png",
		TwitterTitle: "TW Title",
	}
	if err := s.SaveOverrides("some-item", ov); err != nil {
		t.Fatalf("SaveOverrides failed: %v", err)
	}

	got, err := s.GetOverrides("some-item")
	if err != nil {
		t.Fatalf("GetOverrides failed: %v", err)
	}
	if got != ov {
		t.Errorf("GetOverrides = %+v, want %+v", got, ov)
	}

	// Re-saving with fewer fields clears the dropped ones.
	if err := s.SaveOverrides("some-item", Overrides{Title: "Only Title"}); err != nil {
		t.Fatalf("SaveOverrides failed: %v", err)
	}
	got, err = s.GetOverrides("some-item")
	if err != nil {
		t.Fatalf("GetOverrides failed: %v", err)
	}
	if got != (Overrides{Title: "Only Title"}) {
		t.Errorf("GetOverrides after re-save = %+v", got)
	}
}

func TestGetOverridesAbsent(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.GetOverrides("never-stored")
	if err != nil {
		t.Fatalf("GetOverrides failed: %v", err)
	}
	if got != (Overrides{}) {
		t.Errorf("GetOverrides = %+v, want zero value", got)
	}
}

func TestListOverrides(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveOverrides("a", Overrides{Title: "A"}); err != nil {
		t.Fatalf("SaveOverrides failed: %v", err)
	}
	if err := s.SaveOverrides("b", Overrides{Description: "B"}); err != nil {
		t.Fatalf("SaveOverrides failed: %v", err)
	}

	got, err := s.ListOverrides()
	if err != nil {
		t.Fatalf("ListOverrides failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListOverrides count = %d, want 2", len(got))
	}
	if got["a"].Title != "A" || got["b"].Description != "B" {
		t.Errorf("ListOverrides = %+v", got)
	}
}

func TestDeleteItemCascadesOverrides(t *testing.T) {
	s := setupTestStore(t)

	item := ContentItem{Slug: "to-delete", Title: "To Delete", Date: "2024-01-01", Body: "b", Published: true}
	if err := s.SaveItem(item); err != nil {
		t.Fatalf("SaveItem failed: %v", err)
	}
	if err := s.SaveOverrides("to-delete", Overrides{Title: "Custom"}); err != nil {
		t.Fatalf("SaveOverrides failed: %v", err)
	}

	if err := s.DeleteItem("to-delete"); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}

	if _, err := s.GetItem("to-delete"); err != sql.ErrNoRows {
		t.Errorf("item should be gone, got err: %v", err)
	}
	got, err := s.GetOverrides("to-delete")
	if err != nil {
		t.Fatalf("GetOverrides failed: %v", err)
	}
	if got != (Overrides{}) {
		t.Errorf("overrides should be gone, got %+v", got)
	}
}

func TestSettings(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.GetSetting("logo_path")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if got != "" {
		t.Errorf("unset setting = %q, want empty", got)
	}

	if err := s.SetSetting("logo_path", "/public/uploads/logo.jpg"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	got, err = s.GetSetting("logo_path")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if got != "/public/uploads/logo.jpg" {
		t.Errorf("GetSetting = %q", got)
	}

	if err := s.SetSetting("logo_path", "/public/uploads/logo-2.jpg"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	got, _ = s.GetSetting("logo_path")
	if got != "/public/uploads/logo-2.jpg" {
		t.Errorf("GetSetting after overwrite = %q", got)
	}
}
