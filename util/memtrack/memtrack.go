// Package memtrack keeps a process-wide count of bytes held by all
// arenas. It is advisory diagnostics only: arenas never consult it
// for capacity decisions, and while disabled (the default) every
// operation is a no-op.
package memtrack

import (
	"sync"
	"time"

	"linear-arena/util/logger"
)

const logInterval = 5 * time.Second

var (
	mu         sync.Mutex
	enabled    bool
	total      int64
	lastLogged time.Time
)

func Enable() {
	mu.Lock()
	enabled = true
	mu.Unlock()
}

func Disable() {
	mu.Lock()
	enabled = false
	mu.Unlock()
}

// Add records size bytes taken from the system allocator.
func Add(size int) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	total += int64(size)
	logUsageLocked()
}

// Remove records size bytes returned to the system allocator.
func Remove(size int) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	total -= int64(size)
	logUsageLocked()
}

// Total returns the bytes currently tracked across the process.
func Total() int64 {
	mu.Lock()
	defer mu.Unlock()
	return total
}

// logUsageLocked reports usage at most once per logInterval.
func logUsageLocked() {
	now := time.Now()
	if now.Sub(lastLogged) < logInterval {
		return
	}
	lastLogged = now
	logger.L.Debugf("total memory usage: %d kb", total/1024)
}
