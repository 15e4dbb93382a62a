package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPost "github.com/postdeck/domains/post"
	domainRemote "github.com/postdeck/domains/remote"
)

type fakeGateway struct {
	mu      sync.Mutex
	calls   int
	posts   []domainPost.Post
	err     error
	entered chan struct{} // closed on first call, if set
	release chan struct{} // blocks the call until closed, if set
}

func (g *fakeGateway) ListPosts(ctx context.Context) ([]domainPost.Post, error) {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()

	if first && g.entered != nil {
		close(g.entered)
	}
	if g.release != nil {
		<-g.release
	}
	return g.posts, g.err
}

func (g *fakeGateway) CreatePost(ctx context.Context, draft domainPost.Draft) (domainPost.Post, error) {
	return domainPost.Post{}, errors.New("not implemented")
}

func (g *fakeGateway) FetchStats(ctx context.Context) (domainRemote.Stats, error) {
	return domainRemote.Stats{}, nil
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Publish(e Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *recordingSink) codes() []EventCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EventCode, len(s.events))
	for i, e := range s.events {
		out[i] = e.Code
	}
	return out
}

func TestSyncNow_AppliesSnapshot(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	gw := &fakeGateway{posts: []domainPost.Post{serverPost("42", at, domainPost.StatusPublished)}}
	store := NewStore()
	sink := &recordingSink{}
	loop := NewSyncLoop(gw, store, time.Second, sink)

	ok := loop.SyncNow(context.Background())

	require.True(t, ok)
	assert.Equal(t, 1, store.Len())
	assert.Empty(t, loop.LastError())
	assert.Equal(t, []EventCode{EventPostsReconciled}, sink.codes())
}

func TestSyncNow_SingleFlight(t *testing.T) {
	gw := &fakeGateway{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	loop := NewSyncLoop(gw, NewStore(), time.Second, nil)

	ctx := context.Background()
	done := make(chan bool, 1)
	go func() { done <- loop.SyncNow(ctx) }()

	<-gw.entered

	// Two more attempts while the first pull is in flight: both coalesced.
	assert.False(t, loop.SyncNow(ctx))
	assert.False(t, loop.SyncNow(ctx))

	close(gw.release)
	require.True(t, <-done)
	assert.Equal(t, 1, gw.callCount())
}

func TestSyncNow_FailureLeavesStoreUnchanged(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Reconcile([]domainPost.Post{serverPost("1", at, domainPost.StatusPending)})

	gw := &fakeGateway{err: errors.New("connection refused")}
	sink := &recordingSink{}
	loop := NewSyncLoop(gw, store, time.Second, sink)

	ok := loop.SyncNow(context.Background())

	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "connection refused", loop.LastError())
	assert.Equal(t, []EventCode{EventSyncFailed}, sink.codes())

	// The next successful pull clears the transient error.
	gw.err = nil
	gw.posts = []domainPost.Post{serverPost("2", at, domainPost.StatusPublished)}
	require.True(t, loop.SyncNow(context.Background()))
	assert.Empty(t, loop.LastError())
}

func TestSyncNow_DiscardsResultAfterTeardown(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	gw := &fakeGateway{
		posts:   []domainPost.Post{serverPost("42", at, domainPost.StatusPublished)},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := NewStore()
	loop := NewSyncLoop(gw, store, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() { done <- loop.SyncNow(ctx) }()

	<-gw.entered
	cancel()
	close(gw.release)

	assert.False(t, <-done)
	assert.Zero(t, store.Len())
}

func TestTrigger_CoalescesPendingRequests(t *testing.T) {
	loop := NewSyncLoop(&fakeGateway{}, NewStore(), time.Second, nil)

	loop.Trigger()
	loop.Trigger()
	loop.Trigger()

	assert.Equal(t, 1, len(loop.trigger))
}

func TestNewSyncLoop_Defaults(t *testing.T) {
	loop := NewSyncLoop(&fakeGateway{}, NewStore(), 0, nil)
	assert.Equal(t, DefaultSyncInterval, loop.interval)
}
