package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders an evaluation time in the largest unit
// that keeps it readable. Most expressions finish in micro- or nanoseconds,
// so those units print as whole numbers; times of a second or more are
// rounded to the millisecond, and a minute or more to the second.
//
//	850ns  42µs  17ms  1.234s  2m5s
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < 0:
		return "-" + FormatExecutionDuration(-d)
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
