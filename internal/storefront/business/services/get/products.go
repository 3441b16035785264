package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront_api/internal/storefront/business/dto/responses"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/services/parse"
	"storefront_api/pkg/cache"
	"storefront_api/pkg/logger"
)

const (
	// ListingWindow is the page size used to pull the whole catalogue in one request.
	ListingWindow = 1000
	// AllProductsKey caches the full listing.
	AllProductsKey = "products:all"
)

var (
	ErrInvalidPagination = errors.New("page and per page must be positive")
	ErrProductNotFound   = errors.New("product not found")
)

type ProductSource interface {
	FetchPage(ctx context.Context, page, limit int) (json.RawMessage, error)
	FetchOne(ctx context.Context, id int64) (json.RawMessage, error)
}

// ProductEngine fetches products and normalizes them to the canonical shape.
type ProductEngine struct {
	source ProductSource
	parser parse.ProductParser
	cache  *cache.Manager
	ttl    time.Duration
	log    logger.Logger
}

func NewProductEngine(source ProductSource, parser parse.ProductParser, c *cache.Manager, ttl time.Duration, log logger.Logger) *ProductEngine {
	if parser == nil {
		parser = parse.NewProductEngine(nil)
	}
	return &ProductEngine{source: source, parser: parser, cache: c, ttl: ttl, log: logger.OrDiscard(log)}
}

// FetchProductsPage returns one page of the listing, at most perPage products long.
// Unrecognized envelopes give an empty page; upstream failures are returned as is.
func (e *ProductEngine) FetchProductsPage(ctx context.Context, page, perPage int) (*models.ProductPage, error) {
	if page < 1 || perPage < 1 {
		return nil, ErrInvalidPagination
	}
	key := fmt.Sprintf("products:page:%d:%d", page, perPage)
	result, err := cached(ctx, e.cache, key, e.ttl, func(ctx context.Context) (models.ProductPage, error) {
		return e.fetchPage(ctx, page, perPage)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (e *ProductEngine) fetchPage(ctx context.Context, page, perPage int) (models.ProductPage, error) {
	body, err := e.source.FetchPage(ctx, page, perPage)
	if err != nil {
		return models.ProductPage{}, err
	}

	res := responses.DecodeList[responses.RawProduct](body, "products")
	if !res.Recognized() {
		degrade(e.log, "products_envelope", "page %d: unrecognized listing envelope", page)
	}
	products, dropped := e.parser.Products(res.Items)
	if dropped+res.Skipped > 0 {
		degrade(e.log, "product_shape", "page %d: dropped %d products", page, dropped+res.Skipped)
	}
	if len(products) > perPage {
		products = products[:perPage]
	}

	result := models.ProductPage{Products: products, Page: page, PerPage: perPage}
	if total, ok := responses.NumberField(res.Meta, "total"); ok {
		result.Total = &total
	}
	if pages, ok := responses.NumberField(res.Meta, "total_pages"); ok {
		result.TotalPages = &pages
	}
	return result, nil
}

// FetchProduct returns ErrProductNotFound for a body that is not a product.
func (e *ProductEngine) FetchProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := cached(ctx, e.cache, fmt.Sprintf("product:%d", id), e.ttl, func(ctx context.Context) (models.Product, error) {
		body, err := e.source.FetchOne(ctx, id)
		if err != nil {
			return models.Product{}, err
		}
		raw, _, ok := responses.DecodeObject[responses.RawProduct](body, "product")
		if !ok {
			degrade(e.log, "product_envelope", "product %d: unrecognized envelope", id)
			return models.Product{}, ErrProductNotFound
		}
		p, ok := e.parser.Product(raw)
		if !ok {
			degrade(e.log, "product_shape", "product %d: unknown shape", id)
			return models.Product{}, ErrProductNotFound
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchAllProducts returns the first ListingWindow products, cached under AllProductsKey.
func (e *ProductEngine) FetchAllProducts(ctx context.Context) ([]models.Product, error) {
	return cached(ctx, e.cache, AllProductsKey, e.ttl, func(ctx context.Context) ([]models.Product, error) {
		page, err := e.fetchPage(ctx, 1, ListingWindow)
		if err != nil {
			return nil, err
		}
		return page.Products, nil
	})
}
