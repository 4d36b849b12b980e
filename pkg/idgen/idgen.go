// Package idgen assigns record identifiers. IDs are unix-millisecond
// timestamps with a monotonic guard, so they are unique within a process
// and never reused after deletion.
package idgen

import (
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	last int64
)

// Next returns a new record identifier. Successive calls always return
// strictly increasing values, even when the clock resolution collapses
// two calls into the same millisecond.
func Next() int64 {
	mu.Lock()
	defer mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	last = id
	return id
}
