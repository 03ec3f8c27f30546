package decoder

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
)

// Decoder decodes ERP product list responses into raw records.
type Decoder struct{}

// Decode decodes single ERP page from reader. Items are read from "results" or,
// when it is empty, from "data" key. Page without any of them decodes into empty slice.
func (d Decoder) Decode(ctx context.Context, reader io.Reader) ([]models.RawRecord, error) {
	var p page
	if err := json.NewDecoder(reader).Decode(&p); err != nil {
		return nil, fmt.Errorf("can't decode ERP page: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := p.Results
	if len(products) == 0 {
		products = p.Data
	}

	records := make([]models.RawRecord, 0, len(products))
	for ix := range products {
		unescapeProductFields(&products[ix])
		records = append(records, *toAppRecord(&products[ix]))
	}

	return records, nil
}

// unescapeProductFields unescapes html characters from product name and title.
func unescapeProductFields(product *Product) {
	product.Name = text(html.UnescapeString(product.Name.String()))
	product.Title = text(html.UnescapeString(product.Title.String()))
}
