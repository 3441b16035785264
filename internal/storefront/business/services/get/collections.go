package get

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"storefront_api/internal/storefront/business/dto/responses"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/services/parse"
	"storefront_api/metrics"
	"storefront_api/pkg/cache"
	"storefront_api/pkg/logger"
	"storefront_api/pkg/pool"
)

// ResolveConcurrency bounds the individual product fetches of one collection.
const ResolveConcurrency = 4

type CollectionSource interface {
	FetchCollections(ctx context.Context) (json.RawMessage, error)
	FetchCollects(ctx context.Context, collectionID int64) (json.RawMessage, error)
}

// CollectionEngine resolves collection membership into products.
type CollectionEngine struct {
	source   CollectionSource
	products *ProductEngine
	parser   parse.CollectionParser
	cache    *cache.Manager
	ttl      time.Duration
	log      logger.Logger
	metrics  *metrics.ResolveMetrics
}

func NewCollectionEngine(source CollectionSource, products *ProductEngine, c *cache.Manager, ttl time.Duration, log logger.Logger) *CollectionEngine {
	return &CollectionEngine{
		source:   source,
		products: products,
		parser:   parse.NewCollectionEngine(),
		cache:    c,
		ttl:      ttl,
		log:      logger.OrDiscard(log),
		metrics:  &metrics.ResolveMetrics{},
	}
}

func (e *CollectionEngine) Metrics() metrics.ResolveSnapshot {
	return e.metrics.Snapshot()
}

// FetchCollections accepts {collections}, {custom_collections, smart_collections} or a bare array.
func (e *CollectionEngine) FetchCollections(ctx context.Context) ([]models.Collection, error) {
	return cached(ctx, e.cache, "collections", e.ttl, func(ctx context.Context) ([]models.Collection, error) {
		body, err := e.source.FetchCollections(ctx)
		if err != nil {
			return nil, err
		}
		res := responses.DecodeList[responses.RawCollection](body, "collections")
		if !res.Recognized() {
			res = responses.DecodeMergedList[responses.RawCollection](body, "custom_collections", "smart_collections")
		}
		if !res.Recognized() {
			degrade(e.log, "collections_envelope", "unrecognized collections envelope")
		}
		collections := make([]models.Collection, 0, len(res.Items))
		for _, raw := range res.Items {
			collections = append(collections, e.parser.Collection(raw))
		}
		return collections, nil
	})
}

// FetchCollects returns the collects of one collection. Upstream filtering is not trusted.
func (e *CollectionEngine) FetchCollects(ctx context.Context, collectionID int64) ([]models.Collect, error) {
	body, err := e.source.FetchCollects(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	res := responses.DecodeList[responses.RawCollect](body, "collects")
	if !res.Recognized() {
		degrade(e.log, "collects_envelope", "collection %d: unrecognized collects envelope", collectionID)
	}
	collects := make([]models.Collect, 0, len(res.Items))
	for _, raw := range res.Items {
		c := e.parser.Collect(raw)
		if c.CollectionID == collectionID {
			collects = append(collects, c)
		}
	}
	return collects, nil
}

// FetchProductsByCollection returns the products of a collection in first-appearance
// order of their collects. Products are taken from the cached full listing; the
// rest are fetched one by one with ResolveConcurrency workers, and the ones that
// fail are left out. Only a failure to fetch the collects fails the call.
func (e *CollectionEngine) FetchProductsByCollection(ctx context.Context, collectionID int64) ([]models.Product, error) {
	collects, err := e.FetchCollects(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	ids := distinctProductIDs(collects)
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	byID := make(map[string]models.Product)
	all, err := e.products.FetchAllProducts(ctx)
	if err != nil {
		e.metrics.ListingErrors.Add(1)
		e.log.Warn("collection %d: listing unavailable, fetching %d products individually: %s", collectionID, len(ids), err)
	}
	for _, p := range all {
		byID[strconv.FormatInt(p.ID, 10)] = p
	}

	resolved := make([]*models.Product, len(ids))
	var misses []int
	for i, id := range ids {
		if p, ok := byID[strconv.FormatInt(id, 10)]; ok {
			p := p
			resolved[i] = &p
			e.metrics.ListingHits.Add(1)
			continue
		}
		misses = append(misses, i)
	}

	if len(misses) > 0 {
		fetched, err := pool.Map(ctx, misses, ResolveConcurrency, func(ctx context.Context, idx int) (models.Product, error) {
			p, err := e.products.FetchProduct(ctx, ids[idx])
			if err != nil {
				e.log.Warn("collection %d: product %d: %s", collectionID, ids[idx], err)
				return models.Product{}, err
			}
			return *p, nil
		})
		if err != nil {
			return nil, err
		}
		failed := 0
		for i, p := range fetched {
			if p == nil {
				failed++
				continue
			}
			resolved[misses[i]] = p
		}
		e.metrics.FetchedMisses.Add(int32(len(misses) - failed))
		e.metrics.FailedMisses.Add(int32(failed))
		if failed > 0 {
			degrade(e.log, "collection_partial", "collection %d: %d of %d products could not be resolved", collectionID, failed, len(ids))
		}
	}

	return pool.Compact(resolved), nil
}

func distinctProductIDs(collects []models.Collect) []int64 {
	seen := make(map[int64]struct{}, len(collects))
	ids := make([]int64, 0, len(collects))
	for _, c := range collects {
		if _, ok := seen[c.ProductID]; ok {
			continue
		}
		seen[c.ProductID] = struct{}{}
		ids = append(ids, c.ProductID)
	}
	return ids
}
