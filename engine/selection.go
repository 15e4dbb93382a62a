package engine

import (
	"sync"

	domainPost "github.com/postdeck/domains/post"
	domainSelection "github.com/postdeck/domains/selection"
)

// NoPostsNotice is emitted when the user clicks a day without posts.
const NoPostsNotice = "No posts scheduled for this day."

// SelectionController tracks which date and posts the user is inspecting.
// Pure state transitions, no I/O; it only reads the store.
type SelectionController struct {
	mu    sync.RWMutex
	store *Store
	state domainSelection.State
}

func NewSelectionController(store *Store) *SelectionController {
	return &SelectionController{store: store}
}

// SelectDate highlights a calendar day. The highlight sticks even when the day
// is empty; the detail view only opens when the day has posts.
func (c *SelectionController) SelectDate(date string) domainSelection.State {
	posts := c.store.PostsForDate(date)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SelectedDate = date
	if len(posts) == 0 {
		c.state.SelectedPosts = nil
		c.state.DetailOpen = false
		c.state.Notice = NoPostsNotice
	} else {
		c.state.SelectedPosts = posts
		c.state.DetailOpen = true
		c.state.Notice = ""
	}
	return c.snapshotLocked()
}

// SelectPost opens the detail view on a single post, independent of the
// currently selected date.
func (c *SelectionController) SelectPost(p domainPost.Post) domainSelection.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SelectedPosts = []domainPost.Post{p}
	c.state.DetailOpen = true
	c.state.Notice = ""
	return c.snapshotLocked()
}

// Close hides the detail view but keeps the last selection, so reopening shows
// it again without recomputation.
func (c *SelectionController) Close() domainSelection.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.DetailOpen = false
	return c.snapshotLocked()
}

func (c *SelectionController) State() domainSelection.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *SelectionController) snapshotLocked() domainSelection.State {
	out := c.state
	out.SelectedPosts = make([]domainPost.Post, len(c.state.SelectedPosts))
	copy(out.SelectedPosts, c.state.SelectedPosts)
	return out
}
