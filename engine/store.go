package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domainPost "github.com/postdeck/domains/post"
)

// DateLayout is the calendar-day key format used by the date index.
const DateLayout = "2006-01-02"

// Store holds the authoritative in-memory view of scheduled posts together
// with its derived date index. Mutation happens in exactly two places:
// OptimisticInsert on submission and Reconcile on snapshot pull. The index is
// rebuilt wholesale on every mutation, never patched incrementally, so it can
// never drift from the post collection.
type Store struct {
	mu       sync.RWMutex
	posts    []domainPost.Post // scheduledTime descending, optimistic entries at head
	byDate   map[string][]string
	byID     map[string]domainPost.Post
	lastSync time.Time
}

func NewStore() *Store {
	return &Store{
		byDate: make(map[string][]string),
		byID:   make(map[string]domainPost.Post),
	}
}

// OptimisticInsert builds a pending post with a locally generated id, puts it
// at the head of the collection and returns it. No I/O happens here; the UI
// can render the post before the backend ever sees it.
func (s *Store) OptimisticInsert(draft domainPost.Draft) domainPost.Post {
	p := domainPost.Post{
		ID:            domainPost.OptimisticIDPrefix + uuid.NewString(),
		TextContent:   draft.TextContent,
		Platforms:     draft.Platforms,
		ScheduledTime: draft.ScheduledTime,
		ImagePath:     draft.ImagePath,
		Status:        domainPost.StatusPending,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append([]domainPost.Post{p}, s.posts...)
	s.rebuildIndexLocked()

	return p
}

// Reconcile replaces the whole collection with the remote snapshot. Entries
// missing required fields are skipped and counted, never fatal. Returns the
// number of skipped entries.
func (s *Store) Reconcile(snapshot []domainPost.Post) int {
	valid := make([]domainPost.Post, 0, len(snapshot))
	seen := make(map[string]struct{}, len(snapshot))
	skipped := 0

	for _, p := range snapshot {
		if p.ID == "" || p.ScheduledTime.IsZero() || len(p.Platforms) == 0 {
			skipped++
			continue
		}
		if _, dup := seen[p.ID]; dup {
			skipped++
			continue
		}
		seen[p.ID] = struct{}{}
		valid = append(valid, p)
	}

	// Newest first for the feed view.
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].ScheduledTime.After(valid[j].ScheduledTime)
	})

	s.mu.Lock()
	s.posts = valid
	s.rebuildIndexLocked()
	s.lastSync = time.Now().UTC()
	s.mu.Unlock()

	if skipped > 0 {
		logrus.Warnf("[STORE] Reconcile skipped %d malformed snapshot entries", skipped)
	}

	return skipped
}

// rebuildIndexLocked recomputes byID and byDate from s.posts. Buckets are
// keyed by UTC calendar day and ordered ascending by scheduled time.
func (s *Store) rebuildIndexLocked() {
	s.byID = make(map[string]domainPost.Post, len(s.posts))
	buckets := make(map[string][]domainPost.Post)

	for _, p := range s.posts {
		s.byID[p.ID] = p
		day := p.ScheduledTime.UTC().Format(DateLayout)
		buckets[day] = append(buckets[day], p)
	}

	s.byDate = make(map[string][]string, len(buckets))
	for day, posts := range buckets {
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].ScheduledTime.Before(posts[j].ScheduledTime)
		})
		ids := make([]string, len(posts))
		for i, p := range posts {
			ids[i] = p.ID
		}
		s.byDate[day] = ids
	}
}

// AllPosts returns the display-ordered collection (scheduledTime descending,
// optimistic posts first).
func (s *Store) AllPosts() []domainPost.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domainPost.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// PostsForDate returns the posts bucketed under the given YYYY-MM-DD day,
// ascending by scheduled time. The bucket lookup is O(1).
func (s *Store) PostsForDate(date string) []domainPost.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byDate[date]
	out := make([]domainPost.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PostByID resolves a single post.
func (s *Store) PostByID(id string) (domainPost.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	return p, ok
}

// Dates returns every day that currently has at least one post.
func (s *Store) Dates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.byDate))
	for day := range s.byDate {
		out = append(out, day)
	}
	sort.Strings(out)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// LastSyncAt reports when the last successful reconciliation was applied.
// Zero until the first pull lands.
func (s *Store) LastSyncAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}
