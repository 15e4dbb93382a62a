package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	domainPost "github.com/postdeck/domains/post"
	domainRemote "github.com/postdeck/domains/remote"
	"github.com/postdeck/engine"
	pkgError "github.com/postdeck/pkg/error"
	"github.com/postdeck/pkg/imageprep"
	"github.com/postdeck/pkg/taskworker"
	"github.com/postdeck/validations"
)

// syncControl is the slice of the sync loop the post service needs.
type syncControl interface {
	Trigger()
	LastError() string
}

type servicePost struct {
	store         *engine.Store
	gateway       domainRemote.IRemoteGateway
	sync          syncControl
	pool          *taskworker.Pool
	events        engine.Sink
	imageDir      string
	maxImageBytes int64
	thumbWidth    int
}

func NewPostService(store *engine.Store, gateway domainRemote.IRemoteGateway, sync syncControl, pool *taskworker.Pool, events engine.Sink, imageDir string, maxImageBytes int64, thumbWidth int) domainPost.IPostUsecase {
	if events == nil {
		events = engine.DiscardSink()
	}
	return &servicePost{
		store:         store,
		gateway:       gateway,
		sync:          sync,
		pool:          pool,
		events:        events,
		imageDir:      imageDir,
		maxImageBytes: maxImageBytes,
		thumbWidth:    thumbWidth,
	}
}

// Submit validates the request, stores the image, inserts the post
// optimistically and hands the remote create to a background worker. The
// returned post is visible to readers before any network traffic happens.
func (service servicePost) Submit(ctx context.Context, request domainPost.CreatePostRequest) (domainPost.Post, error) {
	if err := validations.ValidateCreatePost(ctx, request); err != nil {
		return domainPost.Post{}, err
	}

	scheduled, err := time.Parse(time.RFC3339, request.ScheduledTime)
	if err != nil {
		return domainPost.Post{}, pkgError.ValidationError("scheduled_time: must be a valid RFC 3339 timestamp.")
	}

	var platforms []domainPost.Platform
	for _, name := range strings.Split(request.Platforms, ",") {
		if name = strings.TrimSpace(name); name != "" {
			platforms = append(platforms, domainPost.Platform(name))
		}
	}

	imagePath, err := imageprep.SaveUpload(request.ImageFile, service.imageDir, service.maxImageBytes)
	if err != nil {
		return domainPost.Post{}, err
	}

	draft := domainPost.Draft{
		TextContent:   request.TextContent,
		Platforms:     platforms,
		ScheduledTime: scheduled.UTC(),
		ImagePath:     imagePath,
	}

	optimistic := service.store.OptimisticInsert(draft)
	service.events.Publish(engine.Event{
		Code:    engine.EventPostCreated,
		Message: "Post queued for publishing",
		Result:  optimistic,
	})

	service.dispatchRemoteCreate(optimistic.ID, draft)

	go func() {
		if _, err := imageprep.Thumbnail(imagePath, service.thumbWidth); err != nil {
			logrus.WithError(err).Warnf("[POST] Failed to generate thumbnail for %s", imagePath)
		}
	}()

	return optimistic, nil
}

// dispatchRemoteCreate runs the backend create off the request path. The
// optimistic entry stays in the store either way; the next pull replaces it
// with the server copy or drops it when the create never landed.
func (service servicePost) dispatchRemoteCreate(optimisticID string, draft domainPost.Draft) {
	job := taskworker.Job{
		Key: optimisticID,
		Handler: func(workerCtx context.Context) error {
			createCtx, cancel := context.WithTimeout(workerCtx, 30*time.Second)
			defer cancel()

			if _, err := service.gateway.CreatePost(createCtx, draft); err != nil {
				logrus.WithError(err).Errorf("[POST] Remote create failed for %s", optimisticID)
			}
			service.sync.Trigger()
			return nil
		},
	}

	if service.pool == nil || !service.pool.TryDispatch(job) {
		go func() {
			_ = job.Handler(context.Background())
		}()
	}
}

func (service servicePost) List(ctx context.Context) []domainPost.Post {
	return service.store.AllPosts()
}

func (service servicePost) ListForDate(ctx context.Context, date string) ([]domainPost.Post, error) {
	if _, err := time.Parse(engine.DateLayout, date); err != nil {
		return nil, pkgError.ValidationError("date: must use the YYYY-MM-DD format.")
	}
	return service.store.PostsForDate(date), nil
}

func (service servicePost) TriggerSync(ctx context.Context) {
	service.sync.Trigger()
}

func (service servicePost) LastSyncError(ctx context.Context) string {
	return service.sync.LastError()
}
