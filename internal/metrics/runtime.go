package metrics

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// RuntimeInfo describes the process environment shown by the REPL status
// command and the server's health endpoint.
type RuntimeInfo struct {
	GoVersion   string   `json:"go_version"`
	OS          string   `json:"os"`
	Arch        string   `json:"arch"`
	NumCPU      int      `json:"num_cpu"`
	Goroutines  int      `json:"goroutines"`
	CPUFeatures []string `json:"cpu_features"`
}

// CollectRuntimeInfo reads the current runtime information.
func CollectRuntimeInfo() RuntimeInfo {
	return RuntimeInfo{
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		NumCPU:      runtime.NumCPU(),
		Goroutines:  runtime.NumGoroutine(),
		CPUFeatures: CPUFeatures(),
	}
}

// CPUFeatures lists the instruction set extensions relevant to limb
// arithmetic that the host CPU reports. The list is empty on architectures
// without feature detection.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE2, "sse2")
		add(cpu.X86.HasSSE41, "sse4.1")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasADX, "adx")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasPMULL, "pmull")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return features
}
