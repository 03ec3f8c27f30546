package decoder

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// page is ERP product list response. Items come either under "results" or "data".
type page struct {
	Results []Product `json:"results"`
	Data    []Product `json:"data"`
}

// Product is model for product items in ERP list responses.
type Product struct {
	Code         text            `json:"code"`
	SKU          text            `json:"sku"`
	Name         text            `json:"name"`
	Title        text            `json:"title"`
	Barcode      text            `json:"barcode"`
	Brand        text            `json:"brand"`
	Color        text            `json:"color"`
	SellingPrice text            `json:"selling_price"`
	Categories   []text          `json:"categories"`
	Options      map[string]text `json:"options"`
	Images       []image         `json:"images"`
	Metas        []Meta          `json:"metas"`
	IsStock      text            `json:"is_stock"`
}

// Meta is model for product variants in ERP list responses.
// Size label is sent under "value", "size" or "name" depending on product type.
type Meta struct {
	ID       text `json:"id"`
	Value    text `json:"value"`
	Size     text `json:"size"`
	Name     text `json:"name"`
	Barcode  text `json:"barcode"`
	Quantity text `json:"quantity"`
	Color    text `json:"color"`
}

// text accepts JSON strings, numbers, booleans and null and keeps them as string.
type text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(strings.TrimSpace(s))
		return nil
	}

	if data[0] == '{' || data[0] == '[' {
		*t = ""
		return nil
	}

	*t = text(data)
	return nil
}

// image accepts plain URL or object with "url" field.
type image string

// UnmarshalJSON implements json.Unmarshaler.
func (i *image) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			URL text `json:"url"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*i = image(obj.URL)
		return nil
	}

	var t text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = image(t)
	return nil
}

func (t text) String() string {
	return string(t)
}

func (t text) Bool() bool {
	switch strings.ToLower(string(t)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func toAppRecord(product *Product) *models.RawRecord {
	return &models.RawRecord{
		Code:         product.Code.String(),
		SKU:          product.SKU.String(),
		Name:         product.Name.String(),
		Title:        product.Title.String(),
		Barcode:      product.Barcode.String(),
		Brand:        product.Brand.String(),
		Color:        product.Color.String(),
		SellingPrice: toAppPrice(product.SellingPrice),
		Categories:   toAppStrings(product.Categories),
		Options:      toAppOptions(product.Options),
		Images:       toAppImages(product.Images),
		Metas:        toAppVariants(product.Metas),
		IsInStock:    product.IsStock.Bool(),
	}
}

func toAppPrice(price text) *decimal.Decimal {
	if price == "" {
		return nil
	}
	parsed, err := decimal.NewFromString(strings.ReplaceAll(price.String(), ",", "."))
	if err != nil {
		return nil
	}
	return &parsed
}

func toAppStrings(values []text) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			result = append(result, v.String())
		}
	}
	return result
}

func toAppOptions(options map[string]text) map[string]string {
	if len(options) == 0 {
		return nil
	}
	result := make(map[string]string, len(options))
	for key, value := range options {
		if value != "" {
			result[key] = value.String()
		}
	}
	return result
}

func toAppImages(images []image) []string {
	if len(images) == 0 {
		return nil
	}
	urls := lo.FilterMap(images, func(img image, _ int) (string, bool) {
		return string(img), img != ""
	})
	return lo.Uniq(urls)
}

func toAppVariants(metas []Meta) []models.Variant {
	if len(metas) == 0 {
		return nil
	}
	variants := make([]models.Variant, 0, len(metas))
	for ix := range metas {
		variants = append(variants, *toAppVariant(&metas[ix]))
	}
	return variants
}

func toAppVariant(meta *Meta) *models.Variant {
	return &models.Variant{
		ID:        meta.ID.String(),
		SizeLabel: sizeLabel(meta),
		Barcode:   meta.Barcode.String(),
		Quantity:  models.ParseQuantity(meta.Quantity.String()),
		Color:     meta.Color.String(),
	}
}

// sizeLabel returns first non-empty of size label aliases in priority order.
func sizeLabel(meta *Meta) string {
	for _, alias := range []text{meta.Value, meta.Size, meta.Name} {
		if alias != "" {
			return alias.String()
		}
	}
	return ""
}
