package util

import (
	"errors"
	"path"
	"strings"
)

// ErrInvalidStorageKey is returned for keys that escape the store root.
var ErrInvalidStorageKey = errors.New("invalid storage key")

// SanitizeStorageKey cleans a slash-separated object key and rejects traversal patterns.
func SanitizeStorageKey(key string) (string, error) {
	s := strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if s == "" || strings.Contains(s, "..") || strings.HasPrefix(s, "/") {
		return "", ErrInvalidStorageKey
	}
	clean := path.Clean(s)
	if clean == "." {
		return "", ErrInvalidStorageKey
	}
	return clean, nil
}
