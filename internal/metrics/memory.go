package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is a reading of the Go heap. The Session fields count only
// what happened since the collector was created, which is what the REPL and
// the TUI report for an interactive session.
type MemorySnapshot struct {
	HeapAlloc    uint64 // live heap bytes
	HeapSys      uint64 // heap bytes obtained from the OS
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32 // GC cycles since process start
	PauseTotalNs uint64 // cumulative GC pause since process start
	HeapObjects  uint64 // live heap objects

	SessionGC    uint32
	SessionPause time.Duration
}

// MemoryCollector reads runtime memory statistics relative to a baseline
// taken when it was created.
type MemoryCollector struct {
	baseGC    uint32
	basePause uint64
}

// NewMemoryCollector records the current GC counters as the session baseline.
func NewMemoryCollector() *MemoryCollector {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &MemoryCollector{baseGC: m.NumGC, basePause: m.PauseTotalNs}
}

// Snapshot reads the current statistics. It stops the world briefly, so
// callers sample it on a timer rather than per evaluation.
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
		SessionGC:    m.NumGC - mc.baseGC,
		SessionPause: time.Duration(m.PauseTotalNs - mc.basePause),
	}
}
