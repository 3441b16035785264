package handlers

import (
	"net/http"

	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/services/get"
	"storefront_api/pkg/logger"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 250
	// MaxPage bounds the page numbers a client can turn into cache keys.
	MaxPage         = 1000
)

type ProductHandler struct {
	products *get.ProductEngine
	search   *get.SearchEngine
	log      logger.Logger
}

func NewProductHandler(products *get.ProductEngine, search *get.SearchEngine, log logger.Logger) *ProductHandler {
	return &ProductHandler{products: products, search: search, log: logger.OrDiscard(log)}
}

type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	Total      *int             `json:"total,omitempty"`
	TotalPages *int             `json:"total_pages,omitempty"`
	HasMore    bool             `json:"has_more"`
}

type ProductSearchResponse struct {
	Query    string           `json:"query"`
	Count    int              `json:"count"`
	Products []models.Product `json:"products"`
}

// ListProducts serves one upstream page, filtered and sorted locally.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := intQuery(r, "page", 1)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if page > MaxPage {
		writeError(w, r, h.log, invalidParam("page", r.URL.Query().Get("page")))
		return
	}
	limit, err := intQuery(r, "limit", DefaultPageSize)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	filter, sortKey, err := productQuery(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	result, err := h.products.FetchProductsPage(r.Context(), int(page), int(limit))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, ProductListResponse{
		Products:   get.SortProducts(get.FilterProducts(result.Products, filter), sortKey),
		Page:       result.Page,
		PerPage:    result.PerPage,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		HasMore:    result.HasMore(),
	})
}

func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	found, err := h.search.SearchProducts(r.Context(), query)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, ProductSearchResponse{Query: query, Count: len(found), Products: found})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	product, err := h.products.FetchProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]interface{}{"product": product})
}

func productQuery(r *http.Request) (get.ProductFilter, get.SortKey, error) {
	q := r.URL.Query()
	minPrice, err := intQuery(r, "min_price", 0)
	if err != nil {
		return get.ProductFilter{}, "", err
	}
	maxPrice, err := intQuery(r, "max_price", 0)
	if err != nil {
		return get.ProductFilter{}, "", err
	}
	sortKey, err := get.ParseSortKey(q.Get("sort"))
	if err != nil {
		return get.ProductFilter{}, "", invalidParam("sort", q.Get("sort"))
	}
	return get.ProductFilter{
		Vendor:      q.Get("vendor"),
		ProductType: q.Get("product_type"),
		Tag:         q.Get("tag"),
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		VisibleOnly: true,
	}, sortKey, nil
}
