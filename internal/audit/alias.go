package audit

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// sizeOptions are storefront option names holding variant size, in priority order.
var sizeOptions = []string{"Size", "Beden", "Size/Quantity", "Beden/Stok", "Option1"}

// colorOptions are storefront option names holding variant color, in priority order.
var colorOptions = []string{"Color", "Renk", "Renk/Desen", "Option2"}

// StorefrontSize returns size of storefront variant from its options.
func StorefrontSize(options map[string]string) (string, bool) {
	return resolveOption(options, sizeOptions)
}

// StorefrontColor returns color of storefront variant from its options.
func StorefrontColor(options map[string]string) (string, bool) {
	return resolveOption(options, colorOptions)
}

// resolveOption returns first non-empty option value for aliases.
// Option names are compared ignoring case and spaces.
func resolveOption(options map[string]string, aliases []string) (string, bool) {
	if len(options) == 0 {
		return "", false
	}

	normalized := make(map[string]string, len(options))
	for name, value := range options {
		key := optionKey(name)
		if _, ok := normalized[key]; !ok {
			normalized[key] = strings.TrimSpace(value)
		}
	}

	for _, alias := range aliases {
		if value := normalized[optionKey(alias)]; value != "" {
			return value, true
		}
	}

	return "", false
}

func optionKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

// normalize returns label lower-cased with Turkish rules and trimmed.
func normalize(label string) string {
	return strings.TrimSpace(cases.Lower(language.Turkish).String(label))
}

// colorsOverlap reports whether any color of one list contains any color of the other.
// Missing color on any side doesn't prevent match.
func colorsOverlap(a, b string) bool {
	left, right := splitColors(a), splitColors(b)
	if len(left) == 0 || len(right) == 0 {
		return true
	}

	for _, l := range left {
		for _, r := range right {
			if strings.Contains(l, r) || strings.Contains(r, l) {
				return true
			}
		}
	}

	return false
}

// sameColors reports whether both color lists hold the same colors.
func sameColors(a, b string) bool {
	left, right := splitColors(a), splitColors(b)
	if len(left) != len(right) {
		return false
	}

	slices.Sort(left)
	slices.Sort(right)

	return slices.Equal(left, right)
}

func splitColors(colors string) []string {
	parts := strings.FieldsFunc(normalize(colors), func(r rune) bool { return r == ',' || r == '/' })

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}

	return result
}
