package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainAssistant "github.com/postdeck/domains/assistant"
	domainPost "github.com/postdeck/domains/post"
	domainRemote "github.com/postdeck/domains/remote"
	pkgError "github.com/postdeck/pkg/error"
)

type statsGateway struct {
	stats domainRemote.Stats
	err   error
}

func (g statsGateway) ListPosts(ctx context.Context) ([]domainPost.Post, error) { return nil, nil }

func (g statsGateway) CreatePost(ctx context.Context, draft domainPost.Draft) (domainPost.Post, error) {
	return domainPost.Post{}, nil
}

func (g statsGateway) FetchStats(ctx context.Context) (domainRemote.Stats, error) {
	return g.stats, g.err
}

func TestAnalyticsInsight_FeedsCountsToAssistant(t *testing.T) {
	gateway := statsGateway{stats: domainRemote.Stats{PostsPublished: 3, PostsScheduled: 1, PostsFailed: 2}}
	service := NewAnalyticsService(gateway, NewAssistantService(&stubProvider{}))

	insight, err := service.Insight(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, domainAssistant.ProvenanceLocal, insight.Provenance)
	assert.Contains(t, insight.Insight, "2 failed posts")
}

func TestAnalyticsInsight_BackendFailurePropagates(t *testing.T) {
	gateway := statsGateway{err: pkgError.NetworkError("backend unreachable")}
	service := NewAnalyticsService(gateway, NewAssistantService(&stubProvider{}))

	_, err := service.Insight(context.Background(), "")
	require.Error(t, err)
	_, ok := err.(pkgError.NetworkError)
	assert.True(t, ok, "expected a network error, got %T", err)
}

func TestAnalyticsStats_PassThrough(t *testing.T) {
	gateway := statsGateway{stats: domainRemote.Stats{PostsScheduled: 5}}
	service := NewAnalyticsService(gateway, NewAssistantService(&stubProvider{}))

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.PostsScheduled)
}
