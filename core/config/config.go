package config

import (
	"path/filepath"
	"strings"

	flatConfig "github.com/postdeck/config"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App     AppConfig
	Paths   PathsConfig
	Backend BackendConfig
	Sync    SyncConfig
	AI      AIConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasicAuth          []string
	BasePath           string
	TrustedProxies     []string
	BaseUrl            string
	CorsAllowedOrigins []string
}

type PathsConfig struct {
	Statics  string
	Posts    string
	Storages string
	Snapshot string
}

type BackendConfig struct {
	BaseURL string
}

type SyncConfig struct {
	IntervalSeconds int
}

type AIConfig struct {
	Provider      string
	Model         string
	GeminiKey     string
	OpenAIKey     string
	MaxImageBytes int64
	ThumbWidth    int
}

// Global provides access to the loaded configuration globally.
var Global *Config

// LoadConfig builds the structured configuration from environment variables
// on top of the flat package defaults (which CLI flags may already have
// overridden).
func LoadConfig() (*Config, error) {
	var basicAuth []string
	if v := getEnv("APP_BASIC_AUTH", ""); v != "" {
		basicAuth = strings.Split(v, ",")
	} else {
		basicAuth = flatConfig.AppBasicAuthCredential
	}

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := getEnv("APP_CORS_ALLOWED_ORIGINS", ""); v != "" {
		corsOrigins = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Version:            flatConfig.AppVersion,
		Port:               getEnv("APP_PORT", flatConfig.AppPort),
		Debug:              getEnvBool("APP_DEBUG", flatConfig.AppDebug),
		Environment:        getEnv("APP_ENV", "development"),
		BasicAuth:          basicAuth,
		BasePath:           getEnv("APP_BASE_PATH", flatConfig.AppBasePath),
		BaseUrl:            getEnv("APP_BASE_URL", "http://localhost:"+getEnv("APP_PORT", flatConfig.AppPort)),
		CorsAllowedOrigins: corsOrigins,
	}
	if v := getEnv("APP_TRUSTED_PROXIES", ""); v != "" {
		appCfg.TrustedProxies = strings.Split(v, ",")
	} else {
		appCfg.TrustedProxies = flatConfig.AppTrustedProxies
	}

	pathsCfg := PathsConfig{
		Statics:  getEnv("PATH_STATICS", flatConfig.PathStatics),
		Posts:    getEnv("PATH_POSTS", flatConfig.PathPosts),
		Storages: getEnv("PATH_STORAGES", flatConfig.PathStorages),
	}
	pathsCfg.Snapshot = getEnv("PATH_SNAPSHOT_DB", filepath.Join(pathsCfg.Storages, "snapshot.db"))

	cfg := &Config{
		App:     appCfg,
		Paths:   pathsCfg,
		Backend: BackendConfig{BaseURL: strings.TrimRight(getEnv("BACKEND_BASE_URL", flatConfig.BackendBaseURL), "/")},
		Sync:    SyncConfig{IntervalSeconds: getEnvInt("SYNC_INTERVAL_SECONDS", flatConfig.SyncIntervalSeconds)},
		AI: AIConfig{
			Provider:      getEnv("AI_PROVIDER", flatConfig.AIProvider),
			Model:         getEnv("AI_MODEL", flatConfig.AIModel),
			GeminiKey:     getEnv("GEMINI_API_KEY", flatConfig.GeminiAPIKey),
			OpenAIKey:     getEnv("OPENAI_API_KEY", flatConfig.OpenAIAPIKey),
			MaxImageBytes: getEnvInt64("MAX_IMAGE_BYTES", flatConfig.MaxImageBytes),
			ThumbWidth:    getEnvInt("THUMBNAIL_WIDTH", flatConfig.ThumbnailWidth),
		},
	}

	Global = cfg
	return cfg, nil
}
