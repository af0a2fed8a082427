package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "wikiquiz"
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

// QuizPayloadKey builds the cache key for a generated quiz payload. Article
// URLs are hashed so the key stays short and free of separator characters.
func QuizPayloadKey(wikipediaURL string) string {
	sum := sha256.Sum256([]byte(wikipediaURL))
	return GenerateCacheKey("generation", "payload", hex.EncodeToString(sum[:]))
}
