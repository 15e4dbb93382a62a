package config

import (
	"os"
	"strconv"
	"strings"
)

// GetAllSettings returns a map of the dynamic settings currently loaded in
// memory, for the monitoring endpoint.
func GetAllSettings() map[string]any {
	if Global == nil {
		return map[string]any{}
	}
	return map[string]any{
		"app_version":           Global.App.Version,
		"app_debug":             Global.App.Debug,
		"backend_base_url":      Global.Backend.BaseURL,
		"sync_interval_seconds": Global.Sync.IntervalSeconds,
		"ai_provider":           Global.AI.Provider,
		"ai_model":              Global.AI.Model,
		"max_image_bytes":       Global.AI.MaxImageBytes,
	}
}

// Helpers
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		vLower := strings.ToLower(v)
		return vLower == "1" || vLower == "true" || vLower == "yes" || vLower == "on"
	}
	return fallback
}
