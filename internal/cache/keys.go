package cache

import "strings"

const (
	GlobalKeyPrefix = "skillquest"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// LeaderboardKey is the key of the cached top-users list.
func LeaderboardKey() string {
	return GenerateCacheKey("user", "leaderboard", "top")
}

// ModuleLessonsKey is the key of the cached ordered lesson list of a module.
func ModuleLessonsKey(moduleID string) string {
	return GenerateCacheKey("content", "lessons", moduleID)
}

// ActiveModulesKey is the key of the cached active module list.
func ActiveModulesKey() string {
	return GenerateCacheKey("content", "modules", "active")
}
