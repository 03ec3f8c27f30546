package aggregator

import (
	"maps"
	"slices"
	"strings"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/samber/lo"
)

const brandOption = "Marka"

// colorOptions are option names holding product color, in priority order.
var colorOptions = []string{"Ana Renk", "Color", "Renk"}

// ResolveColor returns product color from options, falling back to provided color.
func ResolveColor(options map[string]string, fallback string) string {
	for _, name := range colorOptions {
		if color := strings.TrimSpace(options[name]); color != "" {
			return color
		}
	}

	return strings.TrimSpace(fallback)
}

// mergeRecord merges record into product. Scalar fields are overwritten only by present values.
func mergeRecord(product *models.ProductAggregate, record models.RawRecord, first bool) {
	if name := lo.Ternary(record.Name != "", record.Name, record.Title); name != "" {
		product.Name = name
		product.Data.Name = name
	}

	barcode := record.Barcode
	if barcode == "" && len(record.Metas) > 0 {
		barcode = record.Metas[0].Barcode
	}
	if barcode != "" {
		product.Barcode = lo.ToPtr(barcode)
		product.Data.Barcode = barcode
	}

	brand := lo.Ternary(record.Brand != "", record.Brand, record.Options[brandOption])
	if brand != "" {
		product.Brand = lo.ToPtr(brand)
		product.Data.Brand = brand
	}

	if record.SellingPrice != nil {
		price := record.SellingPrice.String()
		product.Price = lo.ToPtr(price)
		product.Data.SellingPrice = price
	}

	if len(record.Categories) > 0 {
		if first || product.Category == nil {
			product.Category = lo.ToPtr(record.Categories[0])
		}
		product.Data.Categories = lo.Uniq(append(product.Data.Categories, record.Categories...))
	}

	product.Data.Options = mergeOptions(product.Data.Options, record.Options)
	product.Data.Images = mergeImages(product.Data.Images, record.Images)
	color := ResolveColor(record.Options, record.Color)
	if color == "" {
		color = ResolveColor(product.Data.Options, "")
	}
	product.Data.Metas = mergeVariants(product.Data.Metas, withColor(record.Metas, color))

	if record.IsInStock {
		product.StockStatus = models.InStock
		product.Data.IsInStock = true
	}
}

// mergeOptions merges incoming options into existing ones per option name.
func mergeOptions(existing, incoming map[string]string) map[string]string {
	if len(incoming) == 0 {
		return existing
	}

	if existing == nil {
		existing = make(map[string]string, len(incoming))
	}

	for name, value := range incoming {
		existing[name] = mergeOption(existing[name], value)
	}

	return existing
}

// mergeOption joins two option values. Values are joined unless existing value
// already contains incoming one, so repeated merges never grow the value.
func mergeOption(existing, incoming string) string {
	existing = strings.TrimSpace(existing)
	incoming = strings.TrimSpace(incoming)

	switch {
	case incoming == "":
		return existing
	case existing == "":
		return incoming
	case strings.Contains(existing, incoming):
		return existing
	default:
		return existing + ", " + incoming
	}
}

// mergeImages returns set union of images keeping order of first observation.
func mergeImages(existing, incoming []string) []string {
	merged := slices.Clone(existing)
	for _, image := range incoming {
		if image != "" && !slices.Contains(merged, image) {
			merged = append(merged, image)
		}
	}

	return merged
}

// mergeVariants returns identity-keyed union of variants. Incoming variant replaces existing one with the same key.
func mergeVariants(existing, incoming []models.Variant) []models.Variant {
	merged := slices.Clone(existing)
	index := make(map[string]int, len(merged))
	for ix, variant := range merged {
		index[VariantKey(variant)] = ix
	}

	for _, variant := range incoming {
		key := VariantKey(variant)
		if ix, ok := index[key]; ok {
			merged[ix] = variant
			continue
		}
		index[key] = len(merged)
		merged = append(merged, variant)
	}

	return merged
}

// VariantKey returns identity key of variant: id, barcode or size and color when both are missing.
func VariantKey(variant models.Variant) string {
	switch {
	case variant.ID != "":
		return "id:" + variant.ID
	case variant.Barcode != "":
		return "barcode:" + variant.Barcode
	default:
		return "content:" + strings.ToLower(variant.SizeLabel) + "|" + strings.ToLower(variant.Color)
	}
}

// withColor returns copy of variants with empty color set to provided one.
func withColor(variants []models.Variant, color string) []models.Variant {
	colored := slices.Clone(variants)
	for ix := range colored {
		if colored[ix].Color == "" {
			colored[ix].Color = color
		}
	}

	return colored
}

// copyAggregate returns deep copy of product.
func copyAggregate(product models.ProductAggregate) models.ProductAggregate {
	product.Barcode = copyPtr(product.Barcode)
	product.Brand = copyPtr(product.Brand)
	product.Price = copyPtr(product.Price)
	product.Category = copyPtr(product.Category)
	product.Data.Categories = slices.Clone(product.Data.Categories)
	product.Data.Options = maps.Clone(product.Data.Options)
	product.Data.Images = slices.Clone(product.Data.Images)
	product.Data.Metas = slices.Clone(product.Data.Metas)

	return product
}

func copyPtr(s *string) *string {
	if s == nil {
		return nil
	}

	return lo.ToPtr(*s)
}
