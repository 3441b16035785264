package handlers

import (
	"net/http"

	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/services/get"
	"storefront_api/pkg/logger"
)

type CollectionHandler struct {
	collections *get.CollectionEngine
	log         logger.Logger
}

func NewCollectionHandler(collections *get.CollectionEngine, log logger.Logger) *CollectionHandler {
	return &CollectionHandler{collections: collections, log: logger.OrDiscard(log)}
}

type CollectionProductsResponse struct {
	CollectionID int64            `json:"collection_id"`
	Count        int              `json:"count"`
	Products     []models.Product `json:"products"`
}

func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.collections.FetchCollections(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]interface{}{"collections": collections})
}

func (h *CollectionHandler) CollectionProducts(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "collectionID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	filter, sortKey, err := productQuery(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	products, err := h.collections.FetchProductsByCollection(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	products = get.SortProducts(get.FilterProducts(products, filter), sortKey)
	writeJSON(w, h.log, http.StatusOK, CollectionProductsResponse{CollectionID: id, Count: len(products), Products: products})
}
