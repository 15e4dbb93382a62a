package snapshot

import (
	domainPost "github.com/postdeck/domains/post"
	"github.com/postdeck/engine"
)

// postSource is the slice of the store the sink reads.
type postSource interface {
	AllPosts() []domainPost.Post
}

// Sink persists the store after every successful reconciliation and forwards
// all events to the next sink in the chain.
type Sink struct {
	cache *Cache
	store postSource
	next  engine.Sink
}

func NewSink(cache *Cache, store postSource, next engine.Sink) *Sink {
	if next == nil {
		next = engine.DiscardSink()
	}
	return &Sink{cache: cache, store: store, next: next}
}

func (s *Sink) Publish(event engine.Event) {
	if event.Code == engine.EventPostsReconciled && s.cache != nil {
		s.cache.SaveAsync(s.store.AllPosts())
	}
	s.next.Publish(event)
}
