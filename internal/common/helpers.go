package common

import (
	"fmt"
	"strconv"
	"strings"
)

// XLMDecimals is the number of decimals of the ledger's native asset
// (1 XLM = 10^7 stroops).
const XLMDecimals = 7

// DecimalsForScale converts a minor-unit scale factor (e.g. 10000000) to a
// decimal count (7). Returns an error if scale is not a power of ten.
func DecimalsForScale(scale int64) (int, error) {
	if scale <= 0 {
		return 0, fmt.Errorf("scale must be positive")
	}
	decimals := 0
	for scale > 1 {
		if scale%10 != 0 {
			return 0, fmt.Errorf("scale must be a power of ten")
		}
		scale /= 10
		decimals++
	}
	return decimals, nil
}

// FormatMinor converts minor units to a decimal string without float precision loss
func FormatMinor(value uint64, decimals int) string {
	return formatWithDecimals(value, decimals)
}

// ParseMinor converts a decimal string to minor units without float precision loss
func ParseMinor(s string, decimals int) (uint64, error) {
	return parseWithDecimals(s, decimals)
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(125000000, 7) = "12.5000000"
func formatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("12.5", 7) = 125000000
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		// No decimal point - multiply by 10^decimals
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, err
		}
		for i := 0; i < decimals; i++ {
			n *= 10
		}
		return n, nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	// Combine and parse
	combined := whole + frac
	return strconv.ParseUint(combined, 10, 64)
}

// CompareAmounts compares two decimal string amounts without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareAmounts(a, b string, decimals int) (int, error) {
	aVal, err := parseWithDecimals(a, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := parseWithDecimals(b, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	if aVal < bVal {
		return -1, nil
	}
	if aVal > bVal {
		return 1, nil
	}
	return 0, nil
}
