package usecase

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPost "github.com/postdeck/domains/post"
	domainRemote "github.com/postdeck/domains/remote"
	"github.com/postdeck/engine"
	"github.com/postdeck/pkg/taskworker"
)

type fakeCreateGateway struct {
	mu      sync.Mutex
	created []domainPost.Draft
	entered chan struct{}
	release chan struct{}
}

func newFakeCreateGateway() *fakeCreateGateway {
	return &fakeCreateGateway{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *fakeCreateGateway) ListPosts(ctx context.Context) ([]domainPost.Post, error) {
	return nil, nil
}

func (g *fakeCreateGateway) CreatePost(ctx context.Context, draft domainPost.Draft) (domainPost.Post, error) {
	close(g.entered)
	<-g.release
	g.mu.Lock()
	g.created = append(g.created, draft)
	g.mu.Unlock()
	return domainPost.Post{ID: "7"}, nil
}

func (g *fakeCreateGateway) FetchStats(ctx context.Context) (domainRemote.Stats, error) {
	return domainRemote.Stats{}, nil
}

type fakeSync struct {
	mu        sync.Mutex
	triggered int
	notify    chan struct{}
}

func (s *fakeSync) Trigger() {
	s.mu.Lock()
	s.triggered++
	s.mu.Unlock()
	if s.notify != nil {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
}

func (s *fakeSync) LastError() string { return "" }

func pngUpload(t *testing.T) *multipart.FileHeader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("image_file", "upload.png")
	require.NoError(t, err)
	_, err = part.Write(encoded.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&form, writer.Boundary())
	parsed, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { parsed.RemoveAll() })

	return parsed.File["image_file"][0]
}

func TestSubmit_ReturnsBeforeRemoteCreate(t *testing.T) {
	store := engine.NewStore()
	gateway := newFakeCreateGateway()
	syncer := &fakeSync{notify: make(chan struct{}, 1)}
	pool := taskworker.NewPool(1, 4)
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)

	service := NewPostService(store, gateway, syncer, pool, nil, t.TempDir(), 1<<20, 64)

	request := domainPost.CreatePostRequest{
		TextContent:   "Hello world",
		Platforms:     "twitter,instagram",
		ScheduledTime: "2025-03-01T10:00:00Z",
		ImageFile:     pngUpload(t),
	}

	created, err := service.Submit(context.Background(), request)
	require.NoError(t, err)

	// The gateway is still blocked, yet the post is already readable.
	assert.True(t, created.IsOptimistic())
	assert.Equal(t, domainPost.StatusPending, created.Status)
	assert.Len(t, store.AllPosts(), 1)

	stored, ok := store.PostByID(created.ID)
	require.True(t, ok)
	assert.FileExists(t, stored.ImagePath)

	<-gateway.entered
	close(gateway.release)

	select {
	case <-syncer.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a sync trigger after the remote create finished")
	}

	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	require.Len(t, gateway.created, 1)
	assert.Equal(t, "Hello world", gateway.created[0].TextContent)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), gateway.created[0].ScheduledTime)
}

func TestSubmit_RejectsInvalidRequests(t *testing.T) {
	store := engine.NewStore()
	gateway := newFakeCreateGateway()
	service := NewPostService(store, gateway, &fakeSync{}, nil, nil, t.TempDir(), 1<<20, 64)

	_, err := service.Submit(context.Background(), domainPost.CreatePostRequest{
		TextContent:   "",
		Platforms:     "twitter",
		ScheduledTime: "2025-03-01T10:00:00Z",
		ImageFile:     pngUpload(t),
	})
	require.Error(t, err)
	assert.Empty(t, store.AllPosts(), "nothing may be inserted for an invalid request")
}

func TestSubmit_RejectsOversizedImage(t *testing.T) {
	store := engine.NewStore()
	imageDir := t.TempDir()
	service := NewPostService(store, newFakeCreateGateway(), &fakeSync{}, nil, nil, imageDir, 16, 64)

	_, err := service.Submit(context.Background(), domainPost.CreatePostRequest{
		TextContent:   "big picture",
		Platforms:     "twitter",
		ScheduledTime: "2025-03-01T10:00:00Z",
		ImageFile:     pngUpload(t),
	})
	require.Error(t, err)
	assert.Empty(t, store.AllPosts())

	entries, readErr := os.ReadDir(imageDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestListForDate_ValidatesFormat(t *testing.T) {
	store := engine.NewStore()
	service := NewPostService(store, newFakeCreateGateway(), &fakeSync{}, nil, nil, t.TempDir(), 1<<20, 64)

	_, err := service.ListForDate(context.Background(), "03/01/2025")
	require.Error(t, err)

	posts, err := service.ListForDate(context.Background(), "2025-03-01")
	require.NoError(t, err)
	assert.Empty(t, posts)
}
