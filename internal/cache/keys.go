package cache

import "strings"

const (
	GlobalKeyPrefix = "quizbank"
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

// PracticeSessionKey is where a practice session is kept between requests.
func PracticeSessionKey(sessionID string) string {
	return GenerateCacheKey("practice", "session", sessionID)
}

// PracticeSessionLockKey guards a session while an answer is being recorded.
func PracticeSessionLockKey(sessionID string) string {
	return GenerateCacheKey("practice", "session", sessionID, "lock")
}

// CategoriesKey holds the cached list of distinct question categories.
func CategoriesKey() string {
	return GenerateCacheKey("question", "categories", "all")
}
