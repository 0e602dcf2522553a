package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashKey returns a stable, filesystem-safe identifier for an arbitrary cache key.
func HashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CacheKey joins key parts into the canonical "kind:part:part" form.
// Parts are lower-cased and trimmed so equivalent lookups share one entry.
func CacheKey(kind string, parts ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(kind))
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(strings.ToLower(strings.TrimSpace(p)))
	}
	return b.String()
}
