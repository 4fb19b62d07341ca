package metrics

import (
	"runtime"
	"testing"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	// Allocate some memory
	_ = make([]byte, 1024*1024) // 1 MB

	after := mc.Snapshot()

	// Sys should not decrease between snapshots
	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}
}

func TestMemoryCollector_SessionCounters(t *testing.T) {
	mc := NewMemoryCollector()
	runtime.GC()
	runtime.GC()

	snap := mc.Snapshot()
	if snap.SessionGC < 2 {
		t.Errorf("SessionGC = %d after two forced collections", snap.SessionGC)
	}
	if snap.SessionGC > snap.NumGC {
		t.Errorf("SessionGC %d exceeds NumGC %d", snap.SessionGC, snap.NumGC)
	}
	if snap.SessionPause < 0 || uint64(snap.SessionPause) > snap.PauseTotalNs {
		t.Errorf("SessionPause = %s, total %dns", snap.SessionPause, snap.PauseTotalNs)
	}
}

func TestCollectRuntimeInfo(t *testing.T) {
	t.Parallel()

	info := CollectRuntimeInfo()
	if info.GoVersion == "" || info.OS == "" || info.Arch == "" {
		t.Errorf("incomplete runtime info: %+v", info)
	}
	if info.NumCPU < 1 || info.Goroutines < 1 {
		t.Errorf("NumCPU = %d, Goroutines = %d", info.NumCPU, info.Goroutines)
	}
	for _, f := range info.CPUFeatures {
		if f == "" {
			t.Error("empty feature name")
		}
	}
}

func TestSampleSystem_Ranges(t *testing.T) {
	s := SampleSystem()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}
