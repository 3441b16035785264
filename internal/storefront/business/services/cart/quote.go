package cart

import (
	"context"

	"storefront_api/internal/storefront/business/models"
	"storefront_api/pkg/logger"
	"storefront_api/pkg/pool"
)

// lookupConcurrency matches the collection resolver.
const lookupConcurrency = 4

type Line struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type ProductLookup interface {
	FetchAllProducts(ctx context.Context) ([]models.Product, error)
	FetchProduct(ctx context.Context, id int64) (*models.Product, error)
}

// Quoter prices a list of product ids the same way the mini app cart does.
type Quoter struct {
	products ProductLookup
	log      logger.Logger
}

func NewQuoter(products ProductLookup, log logger.Logger) *Quoter {
	return &Quoter{products: products, log: logger.OrDiscard(log)}
}

// Quote fails only on a non-positive quantity or a cancelled context.
// Products that cannot be found are listed in Missing and left out of the totals.
func (q *Quoter) Quote(ctx context.Context, lines []Line) (models.Quote, error) {
	for _, l := range lines {
		if l.Quantity <= 0 {
			return models.Quote{}, ErrInvalidQuantity
		}
	}

	byID := map[int64]models.Product{}
	all, err := q.products.FetchAllProducts(ctx)
	if err != nil {
		q.log.Warn("quote: listing unavailable: %s", err)
	}
	for _, p := range all {
		byID[p.ID] = p
	}

	var unknown []int64
	seen := map[int64]struct{}{}
	for _, l := range lines {
		if _, ok := byID[l.ProductID]; ok {
			continue
		}
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		unknown = append(unknown, l.ProductID)
	}
	fetched, err := pool.Map(ctx, unknown, lookupConcurrency, func(ctx context.Context, id int64) (models.Product, error) {
		p, err := q.products.FetchProduct(ctx, id)
		if err != nil {
			return models.Product{}, err
		}
		return *p, nil
	})
	if err != nil {
		return models.Quote{}, err
	}
	for i, p := range fetched {
		if p != nil {
			byID[unknown[i]] = *p
		}
	}

	c := New()
	var missing []int64
	reported := map[int64]struct{}{}
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			if _, dup := reported[l.ProductID]; !dup {
				reported[l.ProductID] = struct{}{}
				missing = append(missing, l.ProductID)
			}
			continue
		}
		if err := c.Add(p, l.Quantity); err != nil {
			return models.Quote{}, err
		}
	}

	quote := c.Quote()
	quote.Missing = missing
	return quote, nil
}
