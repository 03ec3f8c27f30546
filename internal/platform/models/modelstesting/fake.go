package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FakeRawRecord returns models.RawRecord with fake data and random number of fake variants.
func FakeRawRecord(ops ...func(r *models.RawRecord)) models.RawRecord {
	record := models.RawRecord{
		Code:         faker.Word(),
		Name:         faker.Word(),
		Barcode:      faker.Word(),
		Brand:        faker.Word(),
		SellingPrice: lo.ToPtr(decimal.NewFromInt(int64(rand.Intn(1000) + 1))),
		Categories:   []string{faker.Word()},
		Options:      map[string]string{"Ana Renk": faker.Word()},
		Images:       fakeImages(),
		Metas:        fakeVariants(),
		IsInStock:    rand.Intn(2) == 0,
	}

	for _, op := range ops {
		op(&record)
	}

	return record
}

// FakeVariant returns models.Variant with fake data.
func FakeVariant(ops ...func(v *models.Variant)) models.Variant {
	variant := models.Variant{
		ID:        faker.UUIDDigit(),
		SizeLabel: faker.Word(),
		Barcode:   faker.Word(),
		Quantity:  rand.Intn(20),
	}

	for _, op := range ops {
		op(&variant)
	}

	return variant
}

// FakeAggregate returns models.ProductAggregate with fake data.
func FakeAggregate(ops ...func(p *models.ProductAggregate)) models.ProductAggregate {
	code := faker.Word()
	name := faker.Word()
	product := models.ProductAggregate{
		Code:        code,
		Name:        name,
		Barcode:     lo.ToPtr(faker.Word()),
		Brand:       lo.ToPtr(faker.Word()),
		Price:       lo.ToPtr(decimal.NewFromInt(int64(rand.Intn(1000) + 1)).String()),
		StockStatus: models.InStock,
		Category:    lo.ToPtr(faker.Word()),
		Data: models.ProductData{
			Code:    code,
			Name:    name,
			Options: map[string]string{"Ana Renk": faker.Word()},
			Images:  fakeImages(),
			Metas:   fakeVariants(),
		},
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeStorefrontVariant returns models.StorefrontVariant with fake data.
func FakeStorefrontVariant(ops ...func(v *models.StorefrontVariant)) models.StorefrontVariant {
	variant := models.StorefrontVariant{
		ID:        faker.UUIDDigit(),
		SKU:       faker.Word(),
		Barcode:   faker.Word(),
		Price:     lo.ToPtr(decimal.NewFromInt(int64(rand.Intn(1000) + 1))),
		Inventory: rand.Intn(20),
		Options:   map[string]string{"Size": faker.Word()},
	}

	for _, op := range ops {
		op(&variant)
	}

	return variant
}

// FakeStorefrontProduct returns models.StorefrontProduct with fake data and provided variants.
func FakeStorefrontProduct(variants []models.StorefrontVariant, ops ...func(p *models.StorefrontProduct)) models.StorefrontProduct {
	product := models.StorefrontProduct{
		ID:       faker.UUIDDigit(),
		Handle:   faker.Word(),
		Title:    faker.Word(),
		Variants: variants,
		Images:   fakeImages(),
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

func fakeImages() []string {
	imagesLen := rand.Intn(4)
	images := make([]string, 0, imagesLen)
	for range imagesLen {
		images = append(images, faker.URL())
	}

	return images
}

func fakeVariants() []models.Variant {
	variantsLen := rand.Intn(4) + 1
	variants := make([]models.Variant, 0, variantsLen)
	for range variantsLen {
		variants = append(variants, FakeVariant())
	}

	return variants
}
