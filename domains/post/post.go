package post

import (
	"context"
	"mime/multipart"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
)

type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
)

// OptimisticIDPrefix marks locally generated ids that have not been confirmed
// by the backend yet.
const OptimisticIDPrefix = "local-"

type Post struct {
	ID            string     `json:"id"`
	TextContent   string     `json:"text_content"`
	Platforms     []Platform `json:"platforms"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	ImagePath     string     `json:"image_path"`
	Status        Status     `json:"status"`
}

// IsOptimistic reports whether this post still carries a locally generated id.
func (p Post) IsOptimistic() bool {
	return strings.HasPrefix(p.ID, OptimisticIDPrefix)
}

// Draft is a validated post submission, ready for optimistic insertion and the
// remote create call.
type Draft struct {
	TextContent   string
	Platforms     []Platform
	ScheduledTime time.Time
	ImagePath     string
}

type CreatePostRequest struct {
	TextContent   string                `json:"text_content" form:"text_content"`
	Platforms     string                `json:"platforms" form:"platforms"` // comma separated
	ScheduledTime string                `json:"scheduled_time" form:"scheduled_time"`
	ImageFile     *multipart.FileHeader `json:"-" form:"-"`
}

type IPostUsecase interface {
	Submit(ctx context.Context, request CreatePostRequest) (Post, error)
	List(ctx context.Context) []Post
	ListForDate(ctx context.Context, date string) ([]Post, error)
	TriggerSync(ctx context.Context)
	LastSyncError(ctx context.Context) string
}
