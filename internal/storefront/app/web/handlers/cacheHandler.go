package handlers

import (
	"net/http"

	"storefront_api/internal/storefront/business/services/get"
	"storefront_api/metrics"
	"storefront_api/pkg/cache"
	"storefront_api/pkg/logger"
)

type CacheHandler struct {
	cache       *cache.Manager
	collections *get.CollectionEngine
	log         logger.Logger
}

func NewCacheHandler(c *cache.Manager, collections *get.CollectionEngine, log logger.Logger) *CacheHandler {
	return &CacheHandler{cache: c, collections: collections, log: logger.OrDiscard(log)}
}

type CacheStatsResponse struct {
	Cache   cache.StatsSnapshot     `json:"cache"`
	Resolve metrics.ResolveSnapshot `json:"resolve"`
}

func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, CacheStatsResponse{
		Cache:   h.cache.Stats(),
		Resolve: h.collections.Metrics(),
	})
}

// Clear drops both cache tiers.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Clear(r.Context()); err != nil {
		h.log.Error("clear cache: %v", err)
		writeJSON(w, h.log, http.StatusInternalServerError, ErrorResponse{
			Error:   "cache_error",
			Message: "Không thể xoá bộ nhớ đệm",
			Status:  http.StatusInternalServerError,
		})
		return
	}
	h.log.Log("cache cleared")
	w.WriteHeader(http.StatusNoContent)
}
