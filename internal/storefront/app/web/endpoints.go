package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"storefront_api/internal/auth"
	"storefront_api/internal/storefront/app/web/handlers"
	"storefront_api/metrics"
	"storefront_api/pkg/middleware"
)

type Handlers struct {
	Products    *handlers.ProductHandler
	Collections *handlers.CollectionHandler
	Blogs       *handlers.BlogHandler
	Cart        *handlers.CartHandler
	Cache       *handlers.CacheHandler
}

// SetupRoutes builds the public API. Cache clearing requires an admin token signed with jwtSecret.
func SetupRoutes(h Handlers, jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.MetricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.ListProducts)
			r.Get("/search", h.Products.SearchProducts)
			r.Get("/{productID}", h.Products.GetProduct)
		})

		r.Get("/collections", h.Collections.ListCollections)
		r.Get("/collections/{collectionID}/products", h.Collections.CollectionProducts)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.Blogs.ListBlogs)
			r.Get("/{blogID}/articles", h.Blogs.ListArticles)
			r.Get("/{blogID}/articles/{articleID}", h.Blogs.GetArticle)
			r.Get("/{blogID}/count", h.Blogs.CountArticles)
		})

		r.Post("/cart/quote", h.Cart.Quote)

		r.Get("/cache/stats", h.Cache.Stats)
		r.With(auth.AuthMiddleware(jwtSecret), auth.RoleMiddleware(auth.RoleAdmin)).
			Delete("/cache", h.Cache.Clear)
	})

	return r
}
