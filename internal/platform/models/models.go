package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus is canonical product stock flag.
type StockStatus string

const (
	// InStock means at least one observed ERP record was in stock.
	InStock StockStatus = "InStock"
	// OutOfStock means no observed ERP record was in stock.
	OutOfStock StockStatus = "OutOfStock"
)

// MatchTier is specificity level at which ERP code was resolved to storefront product.
type MatchTier string

const (
	// MatchTierOverride is used when operator recorded manual code to handle mapping.
	MatchTierOverride MatchTier = "Override"
	// MatchTierExactSku is used when some variant SKU equals queried code.
	MatchTierExactSku MatchTier = "ExactSku"
	// MatchTierPartialSku is used when some variant SKU contains queried code.
	MatchTierPartialSku MatchTier = "PartialSku"
	// MatchTierDefaultFirst is used when first search result was taken without variant selection.
	MatchTierDefaultFirst MatchTier = "DefaultFirst"
	// MatchTierNotFound is used when search returned no products.
	MatchTierNotFound MatchTier = "NotFound"
)

// AuditStatus is classification of single audited product.
type AuditStatus string

const (
	AuditStatusMatch     AuditStatus = "Match"
	AuditStatusMismatch  AuditStatus = "Mismatch"
	AuditStatusNotMapped AuditStatus = "NotMapped"
)

// VariantStatus is classification of single size row in variant diff.
type VariantStatus string

const (
	VariantStatusMatch               VariantStatus = "Match"
	VariantStatusMismatch            VariantStatus = "Mismatch"
	VariantStatusMissingInStorefront VariantStatus = "MissingInStorefront"
	VariantStatusMissingInErp        VariantStatus = "MissingInErp"
)

// MatchKind tells how storefront variant was paired with ERP variant.
type MatchKind string

const (
	MatchKindNone      MatchKind = "None"
	MatchKindBarcode   MatchKind = "Barcode"
	MatchKindHeuristic MatchKind = "Heuristic"
)

// RawRecord is single product item of ERP catalog page.
type RawRecord struct {
	Code         string
	SKU          string
	Name         string
	Title        string
	Barcode      string
	Brand        string
	Color        string
	SellingPrice *decimal.Decimal
	Categories   []string
	Options      map[string]string
	Images       []string
	Metas        []Variant
	IsInStock    bool
}

// Variant is single size line of ERP product.
type Variant struct {
	ID        string `json:"id,omitempty"`
	SizeLabel string `json:"size"`
	Barcode   string `json:"barcode,omitempty"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
}

// ProductData is enriched raw shape stored with canonical product.
type ProductData struct {
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	Barcode      string            `json:"barcode,omitempty"`
	Brand        string            `json:"brand,omitempty"`
	SellingPrice string            `json:"selling_price,omitempty"`
	Categories   []string          `json:"categories,omitempty"`
	Options      map[string]string `json:"options,omitempty"`
	Images       []string          `json:"images,omitempty"`
	Metas        []Variant         `json:"metas,omitempty"`
	IsInStock    bool              `json:"is_stock"`
}

// ProductAggregate is canonical, merge-resolved product keyed by Code.
type ProductAggregate struct {
	Code        string
	Name        string
	Barcode     *string
	Brand       *string
	Price       *string
	StockStatus StockStatus
	Category    *string
	Data        ProductData
	UpdatedAt   time.Time
}

// ProductPage is single page of canonical catalog listing.
type ProductPage struct {
	Products []ProductAggregate
	// Total is number of all products in catalog, not only on this page.
	Total int
}

// StorefrontProduct is storefront search result.
type StorefrontProduct struct {
	ID             string
	Handle         string
	Title          string
	OnlineStoreURL string
	Variants       []StorefrontVariant
	Images         []string
}

// StorefrontVariant is single storefront product variant.
type StorefrontVariant struct {
	ID             string
	SKU            string
	Barcode        string
	Price          *decimal.Decimal
	CompareAtPrice *decimal.Decimal
	Inventory      int
	Options        map[string]string
}

// MatchResult is outcome of resolving ERP code against storefront.
type MatchResult struct {
	Code            string
	Query           string
	Found           bool
	ProductHandle   string
	ProductURL      string
	Title           string
	Images          []string
	Variants        []StorefrontVariant
	SelectedVariant *StorefrontVariant
	Price           *decimal.Decimal
	CompareAtPrice  *decimal.Decimal
	MatchTier       MatchTier
}

// VariantDiff is per-size stock comparison between ERP and storefront.
type VariantDiff struct {
	Size              string
	Color             string
	ErpBarcode        string
	StorefrontBarcode string
	StorefrontSKU     string
	ErpStock          int
	StorefrontStock   int
	Status            VariantStatus
	MatchKind         MatchKind
}

// AuditRow is classified stock comparison of single product.
type AuditRow struct {
	Code            string
	Name            string
	HamurStock      int
	StorefrontStock int
	Status          AuditStatus
	MatchTier       MatchTier
	ProductHandle   string
	// LookupFailed is set when storefront could not be queried, so NotMapped is not confirmed absence.
	LookupFailed bool
	Variants     []VariantDiff
}

// SyncKind is kind of ERP synchronization run.
type SyncKind string

const (
	SyncKindFull        SyncKind = "full"
	SyncKindIncremental SyncKind = "incremental"
	SyncKindForce       SyncKind = "force"
)

// SyncRun is ERP synchronization run model.
type SyncRun struct {
	ID               int
	Kind             SyncKind
	CreatedAt        time.Time
	FinishedAt       *time.Time
	IsSuccess        *bool
	StatusMessage    *string
	FetchedRecords   *int32
	UpsertedProducts *int32
	ChangedCodes     []string
}

// MismatchDiagnostic is diagnostic entry recorded for operator review.
type MismatchDiagnostic struct {
	Code             string
	StorefrontHandle string
	Query            string
	Reason           string
	CreatedAt        time.Time
}

// MatchOverride is manual code to storefront handle mapping.
type MatchOverride struct {
	Code             string
	StorefrontHandle string
	CreatedAt        time.Time
}

// SystemEvent is system log entry.
type SystemEvent struct {
	Severity  string
	Message   string
	Context   map[string]any
	CreatedAt time.Time
}
