package selection

import (
	"context"
	"io"
	"strings"
)

// StorageCloser is a Storage that owns a connection.
type StorageCloser interface {
	Storage
	io.Closer
}

// Open returns Redis storage for redis:// and rediss:// locations and
// SQLite storage for anything else, treated as a file path. namespace only
// applies to Redis.
func Open(ctx context.Context, location, namespace string) (StorageCloser, error) {
	if strings.HasPrefix(location, "redis://") || strings.HasPrefix(location, "rediss://") {
		return OpenRedis(ctx, location, namespace)
	}
	return OpenSQLite(ctx, location)
}
