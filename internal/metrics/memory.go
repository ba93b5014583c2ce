// Package metrics provides process-level runtime statistics surfaced by the
// health endpoint and the TUI dashboard.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 `json:"heap_alloc"`     // bytes in use by application
	HeapSys      uint64 `json:"heap_sys"`       // bytes obtained from OS for heap
	Sys          uint64 `json:"sys"`            // total bytes obtained from OS
	NumGC        uint32 `json:"num_gc"`         // number of completed GC cycles
	PauseTotalNs uint64 `json:"pause_total_ns"` // cumulative GC pause time
	HeapObjects  uint64 `json:"heap_objects"`   // number of allocated heap objects
	Goroutines   int    `json:"goroutines"`     // currently live goroutines
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
		Goroutines:   runtime.NumGoroutine(),
	}
}
