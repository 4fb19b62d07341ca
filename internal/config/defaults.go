package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (BIGCALC_WORKERS)
//   3. Config file key (workers)
//   4. Hardware estimation (this file)

// ApplyAdaptiveDefaults fills in settings left at their zero value with
// estimates derived from the host. Values the user set explicitly are kept.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkers()
	}
	return cfg
}

// EstimateWorkers returns the number of batch workers to use when none was
// requested. Expression evaluation is CPU bound, so one worker per core is
// the starting point, capped to keep memory use predictable on large hosts.
func EstimateWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 1:
		return 1
	case numCPU <= 16:
		return numCPU
	default:
		return 16
	}
}
