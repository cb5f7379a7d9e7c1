// internal/utils/price.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePrice extracts the integer đồng amount from a formatted price string
// by stripping every non-digit rune: "100.000đ" -> 100000. Unparsable input
// (no digits at all) yields 0; the caller never sees an error. This mirrors
// how the storefront has always read catalog price strings, so a malformed
// string silently contributes a diminished or zero amount to totals.
func ParsePrice(formatted string) int64 {
	var b strings.Builder
	for _, r := range formatted {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatPrice renders an integer đồng amount with dot thousand separators and
// the đ suffix: 100000 -> "100.000đ".
func FormatPrice(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, ".")
	if neg {
		out = "-" + out
	}
	return fmt.Sprintf("%sđ", out)
}
