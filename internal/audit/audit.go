package audit

import (
	"math"
	"slices"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
)

// Epsilon is tolerance of stock totals comparison.
const Epsilon = 1e-6

// row is working entry of variant diff keyed by normalized size and color.
type row struct {
	diff     models.VariantDiff
	barcodes []string
	matched  bool
}

// MergeVariants returns per-size stock comparison of ERP variants and storefront variants.
// ERP variants of the same size and color share a row, so a size sold in several colors
// gets a row per color. Storefront variant is paired with ERP row by barcode, then by size
// and loosely matching color. Rows keep order of ERP variants, storefront-only sizes are appended.
func MergeVariants(erpVariants []models.Variant, storefrontVariants []models.StorefrontVariant) []models.VariantDiff {
	rows := make([]*row, 0, len(erpVariants)+len(storefrontVariants))
	byKey := make(map[string]*row, len(erpVariants))
	bySize := make(map[string][]*row, len(erpVariants))

	for _, variant := range erpVariants {
		size := normalize(variant.SizeLabel)
		key := size + "|" + normalize(variant.Color)
		if r, ok := byKey[key]; ok {
			r.diff.ErpStock += variant.Quantity
			r.barcodes = appendBarcode(r.barcodes, variant.Barcode)
			continue
		}

		r := &row{
			diff: models.VariantDiff{
				Size:       variant.SizeLabel,
				Color:      variant.Color,
				ErpBarcode: variant.Barcode,
				ErpStock:   variant.Quantity,
				Status:     models.VariantStatusMissingInStorefront,
				MatchKind:  models.MatchKindNone,
			},
			barcodes: appendBarcode(nil, variant.Barcode),
		}
		byKey[key] = r
		bySize[size] = append(bySize[size], r)
		rows = append(rows, r)
	}

	for _, variant := range storefrontVariants {
		size, _ := StorefrontSize(variant.Options)
		color, _ := StorefrontColor(variant.Options)

		r, kind := pair(rows, bySize, variant, size, color)
		if r == nil {
			rows = append(rows, &row{
				diff: models.VariantDiff{
					Size:              size,
					Color:             color,
					StorefrontBarcode: variant.Barcode,
					StorefrontSKU:     variant.SKU,
					StorefrontStock:   variant.Inventory,
					Status:            models.VariantStatusMissingInErp,
					MatchKind:         models.MatchKindNone,
				},
				matched: true,
			})
			continue
		}

		if r.matched {
			r.diff.StorefrontStock += variant.Inventory
		} else {
			r.diff.StorefrontStock = variant.Inventory
			r.diff.StorefrontBarcode = variant.Barcode
			r.diff.StorefrontSKU = variant.SKU
			r.diff.MatchKind = kind
			r.matched = true
		}
		// any inferred pairing marks the whole row as inferred
		if kind == models.MatchKindHeuristic {
			r.diff.MatchKind = kind
		}
		r.diff.Status = variantStatus(r.diff.ErpStock, r.diff.StorefrontStock)
	}

	diffs := make([]models.VariantDiff, 0, len(rows))
	for _, r := range rows {
		diffs = append(diffs, r.diff)
	}

	return diffs
}

// pair returns ERP row for storefront variant and how it was paired. Nil row means no ERP row fits.
// Among rows of the same size, row with equal color wins over row with overlapping color.
func pair(
	rows []*row,
	bySize map[string][]*row,
	variant models.StorefrontVariant,
	size, color string,
) (*row, models.MatchKind) {
	if variant.Barcode != "" {
		for _, r := range rows {
			if slices.Contains(r.barcodes, variant.Barcode) {
				return r, models.MatchKindBarcode
			}
		}
	}

	candidates := bySize[normalize(size)]
	for _, r := range candidates {
		if sameColors(r.diff.Color, color) {
			return r, models.MatchKindHeuristic
		}
	}

	for _, r := range candidates {
		if colorsOverlap(r.diff.Color, color) {
			return r, models.MatchKindHeuristic
		}
	}

	return nil, models.MatchKindNone
}

// CalculateAuditScore classifies product stock against its storefront match.
func CalculateAuditScore(product models.ProductAggregate, match models.MatchResult) models.AuditRow {
	auditRow := models.AuditRow{
		Code:          product.Code,
		Name:          product.Name,
		HamurStock:    ErpTotal(product.Data.Metas),
		MatchTier:     match.MatchTier,
		ProductHandle: match.ProductHandle,
	}

	if !match.Found {
		auditRow.Status = models.AuditStatusNotMapped
		auditRow.Variants = MergeVariants(product.Data.Metas, nil)
		return auditRow
	}

	auditRow.StorefrontStock = StorefrontTotal(match.Variants)
	auditRow.Variants = MergeVariants(product.Data.Metas, match.Variants)
	auditRow.Status = models.AuditStatusMatch
	if math.Abs(float64(auditRow.HamurStock-auditRow.StorefrontStock)) > Epsilon {
		auditRow.Status = models.AuditStatusMismatch
	}

	return auditRow
}

// ErpTotal returns sum of ERP variant quantities.
func ErpTotal(variants []models.Variant) int {
	total := 0
	for _, variant := range variants {
		total += variant.Quantity
	}

	return total
}

// StorefrontTotal returns sum of storefront variant inventories.
func StorefrontTotal(variants []models.StorefrontVariant) int {
	total := 0
	for _, variant := range variants {
		total += variant.Inventory
	}

	return total
}

func variantStatus(erpStock, storefrontStock int) models.VariantStatus {
	if erpStock == storefrontStock {
		return models.VariantStatusMatch
	}

	return models.VariantStatusMismatch
}

func appendBarcode(barcodes []string, barcode string) []string {
	if barcode == "" || slices.Contains(barcodes, barcode) {
		return barcodes
	}

	return append(barcodes, barcode)
}
