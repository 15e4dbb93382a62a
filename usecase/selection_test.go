package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPost "github.com/postdeck/domains/post"
	"github.com/postdeck/engine"
	pkgError "github.com/postdeck/pkg/error"
)

func TestSelection_SelectDateAndPost(t *testing.T) {
	ctx := context.Background()
	store := engine.NewStore()
	store.Reconcile([]domainPost.Post{
		{
			ID:            "1",
			Platforms:     []domainPost.Platform{domainPost.PlatformTwitter},
			ScheduledTime: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			Status:        domainPost.StatusPending,
		},
	})
	service := NewSelectionService(store, engine.NewSelectionController(store))

	state, err := service.SelectDate(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.True(t, state.DetailOpen)
	require.Len(t, state.SelectedPosts, 1)

	state, err = service.SelectPost(ctx, "1")
	require.NoError(t, err)
	assert.True(t, state.DetailOpen)

	_, err = service.SelectPost(ctx, "missing")
	require.Error(t, err)
	_, ok := err.(pkgError.NotFoundError)
	assert.True(t, ok, "expected not found, got %T", err)
}

func TestSelection_RejectsMalformedDate(t *testing.T) {
	store := engine.NewStore()
	service := NewSelectionService(store, engine.NewSelectionController(store))

	_, err := service.SelectDate(context.Background(), "March 1st")
	require.Error(t, err)
	_, ok := err.(pkgError.ValidationError)
	assert.True(t, ok, "expected a validation error, got %T", err)
}
