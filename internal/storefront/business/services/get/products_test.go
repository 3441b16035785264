package get

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/pkg/cache"
)

func TestFetchProductsPage_WrappedEnvelope(t *testing.T) {
	u := newUpstream(t)
	u.handle("GET /api/product", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"products":[{"id":1,"title":"A"},{"id":2,"title":"B"},{"id":3,"title":"C"}],"total":30,"total_pages":"15"}`))
	})

	page, err := u.productEngine().FetchProductsPage(context.Background(), 2, 2)
	require.NoError(t, err)

	require.Len(t, page.Products, 2)
	assert.Equal(t, int64(1), page.Products[0].ID)
	require.NotNil(t, page.Total)
	assert.Equal(t, 30, *page.Total)
	assert.Nil(t, page.TotalPages)
	assert.True(t, page.HasMore())
}

func TestFetchProductsPage_BareArray(t *testing.T) {
	u := newUpstream(t)
	u.json("GET /api/product", `[{"id":5,"name":"Legacy","price":1000}]`)

	page, err := u.productEngine().FetchProductsPage(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Legacy", page.Products[0].Title)
	assert.Nil(t, page.Total)
	assert.False(t, page.HasMore())
}

func TestFetchProductsPage_UnknownEnvelope(t *testing.T) {
	u := newUpstream(t)
	u.json("GET /api/product", `{"data":[{"id":1,"title":"A"}]}`)

	page, err := u.productEngine().FetchProductsPage(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
}

func TestFetchProductsPage_UpstreamError(t *testing.T) {
	u := newUpstream(t)
	u.status("GET /api/product", http.StatusInternalServerError)

	_, err := u.productEngine().FetchProductsPage(context.Background(), 1, 20)

	var fe *clients.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusInternalServerError, fe.Status)
	assert.Equal(t, 1, u.count("GET /api/product"))
}

func TestFetchProductsPage_InvalidPagination(t *testing.T) {
	u := newUpstream(t)
	u.json("GET /api/product", `[]`)
	engine := u.productEngine()

	_, err := engine.FetchProductsPage(context.Background(), 0, 20)
	assert.ErrorIs(t, err, ErrInvalidPagination)
	_, err = engine.FetchProductsPage(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidPagination)
	assert.Zero(t, u.count("GET /api/product"))
}

func TestFetchProduct(t *testing.T) {
	u := newUpstream(t)
	u.json("GET /api/product/7", `{"product":{"id":7,"title":"Bảy","variants":[{"price":70000}]}}`)
	u.status("GET /api/product/8", http.StatusNotFound)
	u.json("GET /api/product/9", `{"product":{"id":9}}`)
	engine := u.productEngine()

	p, err := engine.FetchProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Bảy", p.Title)
	assert.Equal(t, int64(70000), p.Price())

	_, err = engine.FetchProduct(context.Background(), 8)
	assert.True(t, clients.IsNotFound(err))

	_, err = engine.FetchProduct(context.Background(), 9)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFetchAllProducts_UsesCache(t *testing.T) {
	u := newUpstream(t)
	u.handle("GET /api/product", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"products":[{"id":1,"title":"A"}]}`))
	})
	manager := cache.New()
	engine := NewProductEngine(clients.NewProductClient(u.base()), nil, manager, 0, nil)

	for i := 0; i < 3; i++ {
		products, err := engine.FetchAllProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 1)
	}
	assert.Equal(t, 1, u.count("GET /api/product"))

	cachedProducts, ok := cache.Get[[]models.Product](context.Background(), manager, AllProductsKey)
	assert.True(t, ok)
	assert.Len(t, cachedProducts, 1)
}
