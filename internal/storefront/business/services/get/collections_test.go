package get

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/storefront/pkg/clients"
)

func (u *upstream) collectionEngine() *CollectionEngine {
	base := u.base()
	products := NewProductEngine(clients.NewProductClient(base), nil, nil, 0, nil)
	return NewCollectionEngine(clients.NewCollectionClient(base), products, nil, 0, nil)
}

func TestFetchProductsByCollection_ListingAndMisses(t *testing.T) {
	u := newUpstream(t)
	u.json("GET /api/collect", `{"collects":[
		{"product_id":3,"collection_id":7},
		{"product_id":1,"collection_id":7},
		{"product_id":3,"collection_id":7},
		{"product_id":9,"collection_id":8},
		{"product_id":5,"collection_id":7}
	]}`)
	u.json("GET /api/product", `{"products":[{"id":1,"title":"Một"},{"id":3,"title":"Ba"}]}`)
	u.json("GET /api/product/5", `{"id":5,"title":"Năm"}`)
	engine := u.collectionEngine()

	products, err := engine.FetchProductsByCollection(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 1, 5}, ids(products))
	assert.Equal(t, 1, u.count("GET /api/product/5"))
	snap := engine.Metrics()
	assert.Equal(t, int32(2), snap.ListingHits)
	assert.Equal(t, int32(1), snap.FetchedMisses)
	assert.Zero(t, snap.FailedMisses)
}

func TestFetchProductsByCollection_FailedItemsAreDropped(t *testing.T) {
	u := newUpstream(t)
	u.json("GET /api/collect", `[{"product_id":10,"collection_id":1},{"product_id":11,"collection_id":1},{"product_id":12,"collection_id":1}]`)
	u.json("GET /api/product", `[]`)
	u.json("GET /api/product/10", `{"product":{"id":10,"title":"X"}}`)
	u.status("GET /api/product/11", http.StatusInternalServerError)
	u.json("GET /api/product/12", `{"product":{"id":12,"title":"Z"}}`)
	engine := u.collectionEngine()

	products, err := engine.FetchProductsByCollection(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{10, 12}, ids(products))
	assert.Equal(t, int32(1), engine.Metrics().FailedMisses)
}

func TestFetchProductsByCollection_ListingUnavailable(t *testing.T) {
	u := newUpstream(t)
	u.json("GET /api/collect", `{"collects":[{"product_id":2,"collection_id":4},{"product_id":1,"collection_id":4}]}`)
	u.status("GET /api/product", http.StatusBadGateway)
	u.json("GET /api/product/1", `{"id":1,"title":"A"}`)
	u.json("GET /api/product/2", `{"id":2,"title":"B"}`)
	engine := u.collectionEngine()

	products, err := engine.FetchProductsByCollection(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 1}, ids(products))
	assert.Equal(t, int32(1), engine.Metrics().ListingErrors)
}

func TestFetchProductsByCollection_CollectsError(t *testing.T) {
	u := newUpstream(t)
	u.status("GET /api/collect", http.StatusServiceUnavailable)
	u.json("GET /api/product", `[]`)

	_, err := u.collectionEngine().FetchProductsByCollection(context.Background(), 4)

	var fe *clients.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, u.count("GET /api/product"))
}

func TestFetchProductsByCollection_Empty(t *testing.T) {
	u := newUpstream(t)
	u.json("GET /api/collect", `{"collects":[{"product_id":1,"collection_id":99}]}`)
	u.json("GET /api/product", `[]`)

	products, err := u.collectionEngine().FetchProductsByCollection(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, ids(products))
	assert.NotNil(t, products)
	assert.Zero(t, u.count("GET /api/product"))
}

func TestFetchProductsByCollection_BoundedConcurrency(t *testing.T) {
	const n = 12
	u := newUpstream(t)

	collects := "["
	for i := 1; i <= n; i++ {
		if i > 1 {
			collects += ","
		}
		collects += fmt.Sprintf(`{"product_id":%d,"collection_id":1}`, i)
	}
	u.json("GET /api/collect", collects+"]")
	u.json("GET /api/product", `[]`)

	var inflight, peak atomic.Int32
	u.handle("GET /api/product/{id}", func(w http.ResponseWriter, r *http.Request) {
		cur := inflight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inflight.Add(-1)
		_, _ = fmt.Fprintf(w, `{"id":%s,"title":"P"}`, r.PathValue("id"))
	})

	products, err := u.collectionEngine().FetchProductsByCollection(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, products, n)
	for i, p := range products {
		assert.Equal(t, int64(i+1), p.ID)
	}
	assert.LessOrEqual(t, peak.Load(), int32(ResolveConcurrency))
	assert.Positive(t, peak.Load())
}

func TestFetchCollections_Envelopes(t *testing.T) {
	tests := map[string]string{
		"wrapped": `{"collections":[{"id":1,"title":"Sale"},{"id":2,"title":"Mới"}]}`,
		"split":   `{"custom_collections":[{"id":1,"title":"Sale"}],"smart_collections":[{"id":2,"title":"Mới"}]}`,
		"bare":    `[{"id":1,"title":"Sale"},{"id":2,"title":"Mới","image":{"src":"m.jpg"}}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			u := newUpstream(t)
			u.json("GET /api/collection", body)

			collections, err := u.collectionEngine().FetchCollections(context.Background())
			require.NoError(t, err)
			require.Len(t, collections, 2)
			assert.Equal(t, "Sale", collections[0].Title)
			assert.Equal(t, int64(2), collections[1].ID)
		})
	}
}
