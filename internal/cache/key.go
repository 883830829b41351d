package cache

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Key derives the cache key for a file from its path and modification time.
// Identity is path+mtime, not content: any later mtime change produces a
// different key, which silently invalidates the old entry (it lingers until
// evicted). The same (path, mtime) pair always yields the same key.
func Key(path string, mtime time.Time) string {
	h := xxhash.New()
	_, _ = h.WriteString(path)
	_, _ = h.Write([]byte{0})

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(mtime.UnixNano()))
	_, _ = h.Write(buf[:])

	return fmt.Sprintf("%016x", h.Sum64())
}
