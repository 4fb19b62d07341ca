// Value rendering shared by the REPL, the batch table and result files.

package cli

import (
	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/format"
)

// digitCount returns the number of decimal digits of v, excluding the sign.
func digitCount(v *bigint.Int) int {
	n := len(v.String())
	if v.Sign() < 0 {
		n--
	}
	return n
}

// FormatValue renders v in decimal, shortened to maxDigits digits when
// maxDigits > 0. The second result reports whether shortening happened.
func FormatValue(v *bigint.Int, maxDigits int) (string, bool) {
	s := v.String()
	t := format.Truncate(s, maxDigits)
	return t, len(t) != len(s)
}
