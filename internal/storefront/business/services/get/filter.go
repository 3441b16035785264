package get

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"storefront_api/internal/storefront/business/models"
)

type ProductFilter struct {
	Vendor      string
	ProductType string
	Tag         string
	MinPrice    int64
	// MaxPrice of 0 means no upper bound.
	MaxPrice    int64
	VisibleOnly bool
}

func (f ProductFilter) match(p models.Product) bool {
	if f.VisibleOnly && !p.IsVisible() {
		return false
	}
	if f.Vendor != "" && !strings.EqualFold(p.Vendor, f.Vendor) {
		return false
	}
	if f.ProductType != "" && !strings.EqualFold(p.ProductType, f.ProductType) {
		return false
	}
	if f.Tag != "" && !p.HasTag(f.Tag) {
		return false
	}
	price := p.Price()
	if f.MinPrice > 0 && price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && price > f.MaxPrice {
		return false
	}
	return true
}

// FilterProducts returns the matching products in a new slice; the input is not modified.
func FilterProducts(products []models.Product, f ProductFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out
}

type SortKey string

const (
	SortDefault   SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
	SortTitle     SortKey = "title"
)

func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(s); key {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortNewest, SortTitle:
		return key, nil
	default:
		return SortDefault, fmt.Errorf("unknown sort %q", s)
	}
}

// SortProducts returns a sorted copy. Ties keep upstream order.
// Titles are compared with Vietnamese collation.
func SortProducts(products []models.Product, key SortKey) []models.Product {
	out := append([]models.Product(nil), products...)
	if out == nil {
		out = []models.Product{}
	}

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price() < out[j].Price() })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price() > out[j].Price() })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	case SortTitle:
		c := collate.New(language.Vietnamese, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Title, out[j].Title) < 0 })
	}
	return out
}
