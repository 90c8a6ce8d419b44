// Package formatting provides parsing utilities for model output and
// human-readable value formats.
package formatting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

var bytesRegex = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// FormatBytes renders a byte count with base-1024 units, e.g. "2.5 MB".
func FormatBytes(n int64) string {
	f := float64(n)
	unit := 0
	for f >= 1024 && unit < len(byteUnits)-1 {
		f /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %s", f, byteUnits[unit])
}

// ParseBytes converts a size string such as "50MB" or "1.5 GB" to a byte
// count. A bare number is taken as bytes.
func ParseBytes(s string) (int64, error) {
	m := bytesRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	unit := strings.ToUpper(m[2])
	if unit == "" {
		unit = "B"
	}

	for i, u := range byteUnits {
		if u == unit {
			for range i {
				n *= 1024
			}
			return int64(n), nil
		}
	}

	return 0, fmt.Errorf("unknown byte unit: %q", m[2])
}
