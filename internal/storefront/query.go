package storefront

import (
	"strings"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// searchQuery returns up to 5 products with their variants and images.
const searchQuery = `query SearchProducts($query: String!) {
  products(first: 5, query: $query) {
    edges {
      node {
        id
        handle
        title
        onlineStoreUrl
        variants(first: 50) {
          edges {
            node {
              id
              sku
              price
              compareAtPrice
              inventoryQuantity
              barcode
              selectedOptions { name value }
            }
          }
        }
        images(first: 5) {
          edges { node { url } }
        }
      }
    }
  }
}`

const throttledCode = "THROTTLED"

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type response struct {
	Data   *searchData `json:"data"`
	Errors []apiError  `json:"errors"`
}

type apiError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

func (e apiError) throttled() bool {
	return e.Extensions.Code == throttledCode || strings.Contains(e.Message, "Throttled")
}

type searchData struct {
	Products struct {
		Edges []struct {
			Node product `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

type product struct {
	ID             string `json:"id"`
	Handle         string `json:"handle"`
	Title          string `json:"title"`
	OnlineStoreURL string `json:"onlineStoreUrl"`
	Variants       struct {
		Edges []struct {
			Node variant `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
	Images struct {
		Edges []struct {
			Node struct {
				URL string `json:"url"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"images"`
}

type variant struct {
	ID                string           `json:"id"`
	SKU               string           `json:"sku"`
	Price             *decimal.Decimal `json:"price"`
	CompareAtPrice    *decimal.Decimal `json:"compareAtPrice"`
	InventoryQuantity int              `json:"inventoryQuantity"`
	Barcode           string           `json:"barcode"`
	SelectedOptions   []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
}

// toAppProducts converts search response into app products.
func toAppProducts(data *searchData) []models.StorefrontProduct {
	if data == nil {
		return []models.StorefrontProduct{}
	}

	products := make([]models.StorefrontProduct, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		products = append(products, toAppProduct(edge.Node))
	}

	return products
}

func toAppProduct(p product) models.StorefrontProduct {
	images := make([]string, 0, len(p.Images.Edges))
	for _, edge := range p.Images.Edges {
		if edge.Node.URL != "" {
			images = append(images, edge.Node.URL)
		}
	}

	variants := make([]models.StorefrontVariant, 0, len(p.Variants.Edges))
	for _, edge := range p.Variants.Edges {
		variants = append(variants, toAppVariant(edge.Node))
	}

	return models.StorefrontProduct{
		ID:             p.ID,
		Handle:         p.Handle,
		Title:          p.Title,
		OnlineStoreURL: p.OnlineStoreURL,
		Variants:       variants,
		Images:         lo.Uniq(images),
	}
}

func toAppVariant(v variant) models.StorefrontVariant {
	options := make(map[string]string, len(v.SelectedOptions))
	for _, option := range v.SelectedOptions {
		options[option.Name] = option.Value
	}

	return models.StorefrontVariant{
		ID:             v.ID,
		SKU:            v.SKU,
		Barcode:        v.Barcode,
		Price:          v.Price,
		CompareAtPrice: v.CompareAtPrice,
		Inventory:      v.InventoryQuantity,
		Options:        options,
	}
}
