package cache

import (
	"fmt"
	"os"
)

// SourceKey builds a cache key for an analysis of a file-backed source.
// The key changes whenever the file is replaced or appended to, so stale
// results age out on write rather than on TTL alone. Non-file sources
// (or stat failures) fall back to the location string itself, leaving
// TTL as the only invalidation.
func SourceKey(kind, location string, horizon int) string {
	info, err := os.Stat(location)
	if err != nil {
		return fmt.Sprintf("%s:%s:%d", kind, location, horizon)
	}
	return fmt.Sprintf("%s:%s:%d:%d:%d", kind, location, info.ModTime().UnixNano(), info.Size(), horizon)
}
