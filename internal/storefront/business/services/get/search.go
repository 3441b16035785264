package get

import (
	"context"
	"strings"

	"storefront_api/internal/storefront/business/models"
	"storefront_api/pkg/business/service"
)

// SearchWindow is how many products a search looks at. Products past it are never found.
const SearchWindow = ListingWindow

type SearchEngine struct {
	products *ProductEngine
	text     service.ITextService
}

func NewSearchEngine(products *ProductEngine, text service.ITextService) *SearchEngine {
	if text == nil {
		text = service.NewTextService()
	}
	return &SearchEngine{products: products, text: text}
}

// SearchProducts matches the folded query as a substring of each folded title.
// A blank query returns no products without calling upstream.
func (s *SearchEngine) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}, nil
	}

	products, err := s.products.FetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	found := []models.Product{}
	for _, p := range products {
		if s.text.ContainsFolded(p.Title, query) {
			found = append(found, p)
		}
	}
	return found, nil
}
