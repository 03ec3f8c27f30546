package matcher

import (
	"strings"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
)

// normalizationPrefix is leading digit ERP adds to some codes which storefront SKUs don't carry.
const normalizationPrefix = "2"

// queryVariants returns ordered queries to try for code.
func queryVariants(code string) []string {
	queries := []string{code}
	if stripped, ok := strings.CutPrefix(code, normalizationPrefix); ok && stripped != "" {
		queries = append(queries, stripped)
	}

	return queries
}

// selectVariant returns product and variant best matching query with its tier. Products must not be empty.
// SKUs are compared case-sensitively.
func selectVariant(products []models.StorefrontProduct, query string) (models.StorefrontProduct, *models.StorefrontVariant, models.MatchTier) {
	if product, variant, ok := findVariant(products, func(sku string) bool {
		return sku == query
	}); ok {
		return product, variant, models.MatchTierExactSku
	}

	if product, variant, ok := findVariant(products, func(sku string) bool {
		return strings.Contains(sku, query)
	}); ok {
		return product, variant, models.MatchTierPartialSku
	}

	return products[0], nil, models.MatchTierDefaultFirst
}

// findVariant returns first variant in result order which SKU satisfies predicate.
func findVariant(
	products []models.StorefrontProduct,
	predicate func(sku string) bool,
) (models.StorefrontProduct, *models.StorefrontVariant, bool) {
	for _, product := range products {
		for ix := range product.Variants {
			if product.Variants[ix].SKU != "" && predicate(product.Variants[ix].SKU) {
				variant := product.Variants[ix]
				return product, &variant, true
			}
		}
	}

	return models.StorefrontProduct{}, nil, false
}
