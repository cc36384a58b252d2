// Package format renders metric values for terminal output.
package format

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// Bytes renders a byte count human-readable (IEC units). Negative counts
// come back from absent attributes and are printed as-is.
func Bytes(n int64) string {
	if n < 0 {
		return strconv.FormatInt(n, 10)
	}
	return humanize.IBytes(uint64(n))
}
