package aggregator

import (
	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/google/uuid"
)

// SyntheticCodePrefix prefixes codes generated for records without any code.
const SyntheticCodePrefix = "unknown-"

// Pass is single merge pass folding raw ERP records into product aggregates.
// Aggregates are seeded from the canonical store state when available,
// so re-synchronization never drops previously observed variants and images.
type Pass struct {
	existing map[string]models.ProductAggregate
	products map[string]*models.ProductAggregate
	order    []string
}

// NewPass returns new Pass seeded with existing aggregates. Existing aggregates are never modified.
func NewPass(existing []models.ProductAggregate) *Pass {
	p := &Pass{
		existing: make(map[string]models.ProductAggregate, len(existing)),
		products: make(map[string]*models.ProductAggregate),
	}

	for _, product := range existing {
		p.existing[product.Code] = product
	}

	return p
}

// Aggregate merges records into aggregates in single pass and returns one aggregate per distinct code.
func Aggregate(records []models.RawRecord, existing []models.ProductAggregate) []models.ProductAggregate {
	p := NewPass(existing)
	p.Merge(records...)

	return p.Results()
}

// RecordCode returns business key of record or empty string when record has none.
func RecordCode(record models.RawRecord) string {
	if record.Code != "" {
		return record.Code
	}

	return record.SKU
}

// Merge merges records into pass in provided order.
func (p *Pass) Merge(records ...models.RawRecord) {
	for _, record := range records {
		p.merge(record)
	}
}

// Len returns number of distinct codes seen in pass.
func (p *Pass) Len() int {
	return len(p.order)
}

// Results returns copies of aggregates in order of first observation.
func (p *Pass) Results() []models.ProductAggregate {
	results := make([]models.ProductAggregate, 0, len(p.order))
	for _, code := range p.order {
		results = append(results, copyAggregate(*p.products[code]))
	}

	return results
}

func (p *Pass) merge(record models.RawRecord) {
	code := RecordCode(record)
	if code == "" {
		code = SyntheticCodePrefix + uuid.NewString()
	}

	product, seen := p.products[code]
	if !seen {
		product = p.seed(code, record)
		p.products[code] = product
		p.order = append(p.order, code)
	}

	mergeRecord(product, record, !seen)
}

// seed creates aggregate for code observed first time in pass.
func (p *Pass) seed(code string, record models.RawRecord) *models.ProductAggregate {
	if existing, ok := p.existing[code]; ok {
		product := copyAggregate(existing)
		product.StockStatus = models.OutOfStock
		product.Data.IsInStock = false
		product.Data.Metas = withColor(product.Data.Metas, ResolveColor(product.Data.Options, ""))
		return &product
	}

	return &models.ProductAggregate{
		Code:        code,
		Name:        "-",
		StockStatus: models.OutOfStock,
		Data: models.ProductData{
			Code: code,
			Name: "-",
		},
	}
}
