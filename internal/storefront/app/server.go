package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"storefront_api/config"
	"storefront_api/internal/storefront/app/web"
	"storefront_api/internal/storefront/app/web/handlers"
	"storefront_api/internal/storefront/business/services/cart"
	"storefront_api/internal/storefront/business/services/get"
	"storefront_api/internal/storefront/business/services/parse"
	"storefront_api/internal/storefront/pkg/clients"
	cachemigrations "storefront_api/migrations/cache"
	"storefront_api/pkg/business/service"
	"storefront_api/pkg/cache"
	"storefront_api/pkg/dbconnect"
	"storefront_api/pkg/dbconnect/migration"
	"storefront_api/pkg/dbconnect/postgres"
	"storefront_api/pkg/logger"
)

type StorefrontServer struct {
	config *config.AppConfig
	log    logger.Logger
	writer io.Writer

	cache   *cache.Manager
	closers []func() error

	mu         sync.Mutex
	httpServer *http.Server
}

func NewStorefrontServer(cfg *config.AppConfig, writer io.Writer) *StorefrontServer {
	return &StorefrontServer{
		config: cfg,
		log:    logger.NewLogger(writer, "[StorefrontServer]"),
		writer: writer,
	}
}

// Setup connects the cache backend and wires clients, engines and routes.
func (s *StorefrontServer) Setup(ctx context.Context) (http.Handler, error) {
	store, err := s.openStore(ctx)
	if err != nil {
		return nil, err
	}

	cacheCfg := s.config.Cache
	s.cache = cache.New(
		cache.WithStore(store),
		cache.WithPrefix(cacheCfg.Prefix),
		cache.WithDefaultTTL(cacheCfg.TTL),
		cache.WithLogger(logger.NewLogger(s.writer, "[Cache]")),
	)

	base := clients.NewBaseClient(s.config.Upstream.BaseURL, s.writer, "[Upstream]",
		clients.WithHTTPClient(&http.Client{Timeout: s.config.Upstream.Timeout}),
		clients.WithRateLimit(s.config.Upstream.RateLimit, s.config.Upstream.Burst),
	)

	text := service.NewTextService()
	engineLog := logger.NewLogger(s.writer, "[Engine]")
	products := get.NewProductEngine(clients.NewProductClient(base), parse.NewProductEngine(text),
		s.cache, cacheCfg.TTLFor(cacheCfg.ProductTTL), engineLog)
	search := get.NewSearchEngine(products, text)
	collections := get.NewCollectionEngine(clients.NewCollectionClient(base), products,
		s.cache, cacheCfg.TTLFor(cacheCfg.CollectionTTL), engineLog)
	blogs := get.NewBlogEngine(clients.NewBlogClient(base), text,
		s.cache, cacheCfg.TTLFor(cacheCfg.BlogTTL), engineLog)

	handlerLog := logger.NewLogger(s.writer, "[HTTP]")
	router := web.SetupRoutes(web.Handlers{
		Products:    handlers.NewProductHandler(products, search, handlerLog),
		Collections: handlers.NewCollectionHandler(collections, handlerLog),
		Blogs:       handlers.NewBlogHandler(blogs, handlerLog),
		Cart:        handlers.NewCartHandler(cart.NewQuoter(products, handlerLog), handlerLog),
		Cache:       handlers.NewCacheHandler(s.cache, collections, handlerLog),
	}, s.config.Auth.JWTSecret)

	return router, nil
}

// openStore returns the persisted cache tier selected by cache.backend.
func (s *StorefrontServer) openStore(ctx context.Context) (cache.Store, error) {
	switch s.config.Cache.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     s.config.Redis.Addr,
			Password: s.config.Redis.Password,
			DB:       s.config.Redis.DB,
		})
		store := cache.NewRedisStore(client)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis %s: %w", s.config.Redis.Addr, err)
		}
		s.closers = append(s.closers, store.Close)
		s.log.Log("cache backend: redis %s", s.config.Redis.Addr)
		return store, nil

	case "postgres":
		var connector dbconnect.Database = postgres.NewPgConnector(s.config.Postgres, logger.NewLogger(s.writer, "[Postgres]"))
		db, err := connector.Connect()
		if err != nil {
			return nil, err
		}
		if err := migration.Apply(db, cachemigrations.All()...); err != nil {
			_ = connector.Close()
			return nil, err
		}
		s.closers = append(s.closers, connector.Close)
		s.log.Log("cache backend: postgres, migrations applied")
		return cache.NewPostgresStore(db), nil

	default:
		s.log.Log("cache backend: memory, quota %d bytes", s.config.Cache.QuotaBytes)
		return cache.NewMemoryStore(s.config.Cache.QuotaBytes), nil
	}
}

// Run serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *StorefrontServer) Run(ctx context.Context) error {
	handler, err := s.Setup(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()
	s.log.Log("listening on %s, upstream %s", srv.Addr, s.config.Upstream.BaseURL)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and releases the cache backend.
func (s *StorefrontServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	var errs []error
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	s.log.Log("stopped")
	return errors.Join(errs...)
}
