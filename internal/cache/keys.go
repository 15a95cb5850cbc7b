package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const keyPrefix = "edugen"

// GenerateCacheKey builds a namespaced cache key from an entity name
// and its identifying parts.
func GenerateCacheKey(entity string, parts ...string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, entity, strings.Join(parts, ":"))
}

// ContentHash returns a short stable digest of content, used to key
// cached derivations (summaries, topic lists) of the same document.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:16])
}
