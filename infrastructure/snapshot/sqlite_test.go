package snapshot

import (
	"context"
	"database/sql"
	"testing"
	"time"

	domainPost "github.com/postdeck/domains/post"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	// Purely in-memory database, isolated per connection.
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cache, err := NewWithDB(db)
	if err != nil {
		t.Fatalf("failed to init cache: %v", err)
	}
	return cache
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := openTestCache(t)

	posts := []domainPost.Post{
		{
			ID:            "42",
			TextContent:   "Hello",
			Platforms:     []domainPost.Platform{domainPost.PlatformTwitter, domainPost.PlatformInstagram},
			ScheduledTime: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			ImagePath:     "statics/posts/a.png",
			Status:        domainPost.StatusPublished,
		},
		{
			ID:            "43",
			TextContent:   "Later",
			Platforms:     []domainPost.Platform{domainPost.PlatformTwitter},
			ScheduledTime: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
			Status:        domainPost.StatusPending,
		},
	}

	if err := cache.Save(ctx, posts); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	loaded, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(loaded))
	}

	// Descending by scheduled time.
	if loaded[0].ID != "43" || loaded[1].ID != "42" {
		t.Fatalf("unexpected order: %s, %s", loaded[0].ID, loaded[1].ID)
	}
	if len(loaded[1].Platforms) != 2 {
		t.Fatalf("expected 2 platforms, got %#v", loaded[1].Platforms)
	}
	if !loaded[1].ScheduledTime.Equal(posts[0].ScheduledTime) {
		t.Fatalf("unexpected scheduled time: %v", loaded[1].ScheduledTime)
	}
	if loaded[1].Status != domainPost.StatusPublished {
		t.Fatalf("unexpected status: %q", loaded[1].Status)
	}

	if _, ok := cache.SavedAt(ctx); !ok {
		t.Fatal("expected saved_at to be recorded")
	}
}

func TestSave_ReplacesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	cache := openTestCache(t)

	first := []domainPost.Post{{
		ID:            "1",
		Platforms:     []domainPost.Platform{domainPost.PlatformTwitter},
		ScheduledTime: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:        domainPost.StatusPending,
	}}
	second := []domainPost.Post{{
		ID:            "2",
		Platforms:     []domainPost.Platform{domainPost.PlatformTwitter},
		ScheduledTime: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		Status:        domainPost.StatusPending,
	}}

	if err := cache.Save(ctx, first); err != nil {
		t.Fatalf("first Save() failed: %v", err)
	}
	if err := cache.Save(ctx, second); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	loaded, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "2" {
		t.Fatalf("expected only post 2, got %#v", loaded)
	}
}

func TestLoad_EmptyCache(t *testing.T) {
	ctx := context.Background()
	cache := openTestCache(t)

	loaded, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty snapshot, got %d posts", len(loaded))
	}
	if _, ok := cache.SavedAt(ctx); ok {
		t.Fatal("expected no saved_at before first Save")
	}
}
