package models

import (
	"math"
	"strconv"
	"strings"
)

// ParseQuantity converts stock quantity from upstream text into non-negative integer.
//
// Empty and non-numeric values return 0. Fractional values are rounded half away
// from zero, so "2.5" is 3 and "2.4" is 2. Negative values return 0.
// Comma is accepted as decimal separator when there is no dot.
func ParseQuantity(raw string) int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0
	}

	if strings.Contains(value, ",") && !strings.Contains(value, ".") {
		value = strings.ReplaceAll(value, ",", ".")
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}

	rounded := math.Round(parsed)
	if rounded <= 0 {
		return 0
	}
	if rounded > math.MaxInt32 {
		return math.MaxInt32
	}

	return int(rounded)
}
