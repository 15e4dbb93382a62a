package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	AppVersion             = "v1.2.0"
	AppPort                = "3000"
	AppDebug               = false
	AppBasePath            = ""
	AppBasicAuthCredential []string
	AppTrustedProxies      []string

	PathStatics  = "statics"
	PathPosts    = "statics/posts"
	PathStorages = "storages"

	// Remote scheduling backend this daemon reconciles against.
	BackendBaseURL = "http://localhost:8000"

	SyncIntervalSeconds = 5

	AIProvider     = "gemini" // gemini | openai
	AIModel        = ""
	GeminiAPIKey   string
	OpenAIAPIKey   string
	MaxImageBytes  int64 = 8 * 1024 * 1024
	ThumbnailWidth       = 512
)

func init() {
	if v := strings.TrimSpace(os.Getenv("BACKEND_BASE_URL")); v != "" {
		BackendBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("SYNC_INTERVAL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			SyncIntervalSeconds = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("AI_PROVIDER")); v != "" {
		AIProvider = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("AI_MODEL")); v != "" {
		AIModel = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		GeminiAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		OpenAIAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("MAX_IMAGE_BYTES")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			MaxImageBytes = n
		}
	}
}
