package metrics

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemStats is a host-wide CPU and memory reading, as opposed to the
// process heap figures in MemorySnapshot.
type SystemStats struct {
	CPUPercent float64 `json:"cpu_percent"` // 0.0 .. 100.0
	MemPercent float64 `json:"mem_percent"` // 0.0 .. 100.0
	MemTotal   uint64  `json:"mem_total"`
}

// SampleSystem reads host CPU and memory usage. CPU is measured since the
// previous call (interval 0), so the first reading may be 0. Fields that
// cannot be read are left at zero.
func SampleSystem() SystemStats {
	var s SystemStats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemTotal = vm.Total
	}
	return s
}
