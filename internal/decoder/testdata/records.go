package testdata

import (
	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ResultsPageRecords are records decoded from page_results.json.
var ResultsPageRecords = []models.RawRecord{
	{
		Code:         "B00041",
		Name:         "Kadın Triko Kazak & Hırka",
		Barcode:      "8680001000411",
		Brand:        "Ugurlar",
		SellingPrice: lo.ToPtr(decimal.RequireFromString("1299.90")),
		Categories:   []string{"Triko", "Kadın"},
		Options:      map[string]string{"Ana Renk": "Ekru", "Marka": "Ugurlar", "Sezon/Yil": "2024"},
		Images:       []string{"https://cdn.example.com/b00041-1.jpg", "https://cdn.example.com/b00041-2.jpg"},
		Metas: []models.Variant{
			{ID: "101", SizeLabel: "S", Barcode: "8680001000428", Quantity: 3},
			{ID: "102", SizeLabel: "M", Barcode: "8680001000435", Quantity: 6},
			{SizeLabel: "L", Quantity: 0},
		},
		IsInStock: true,
	},
	{
		SKU:          "C00077",
		Title:        "Erkek Gömlek",
		SellingPrice: lo.ToPtr(decimal.RequireFromString("499")),
	},
}

// DataPageRecords are records decoded from page_data.json.
var DataPageRecords = []models.RawRecord{
	{
		Code:         "D00012",
		Name:         "Deri Ceket",
		SellingPrice: lo.ToPtr(decimal.RequireFromString("3499.50")),
		Metas: []models.Variant{
			{ID: "9001", SizeLabel: "XL", Quantity: 0},
		},
		IsInStock: true,
	},
}
