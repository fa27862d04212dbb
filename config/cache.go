package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// LocationCache holds the states/districts dropdown lists. These are
	// derived once from the loaded datasets and never change afterwards.
	LocationCache *cache.Cache

	// ChatCache absorbs repeated identical chat prompts so quick dashboard
	// retries do not re-hit the Gemini API.
	ChatCache *cache.Cache
)

const (
	locationCacheDuration   = 24 * time.Hour
	locationCleanupInterval = 48 * time.Hour
	chatCleanupInterval     = 30 * time.Minute
)

func InitCache() {
	LocationCache = cache.New(locationCacheDuration, locationCleanupInterval)
	ChatCache = cache.New(ChatCacheTTL(), chatCleanupInterval)
}

// ChatCacheTTL is how long an identical chat prompt is answered from cache.
func ChatCacheTTL() time.Duration {
	return time.Duration(getEnvAsInt("CHAT_CACHE_TTL_MINUTES", 10)) * time.Minute
}

func ClearAllCaches() {
	LocationCache.Flush()
	ChatCache.Flush()
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
