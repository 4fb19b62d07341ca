// Package metrics reads process memory statistics and host information.
package metrics
