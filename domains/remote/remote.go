package remote

import (
	"context"

	domainPost "github.com/postdeck/domains/post"
)

// Stats mirrors the backend's analytics counters.
type Stats struct {
	PostsPublished int `json:"posts_published"`
	PostsScheduled int `json:"posts_scheduled"`
	PostsFailed    int `json:"posts_failed"`
}

// IRemoteGateway is the contract against the remote scheduling backend. The
// sync loop pulls full snapshots through it; submissions and analytics go
// through it as well.
type IRemoteGateway interface {
	ListPosts(ctx context.Context) ([]domainPost.Post, error)
	CreatePost(ctx context.Context, draft domainPost.Draft) (domainPost.Post, error)
	FetchStats(ctx context.Context) (Stats, error)
}
