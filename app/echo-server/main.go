package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopLens/app/echo-server/router"
	cartService "shopLens/business/cart"
	"shopLens/business/search"
	userService "shopLens/business/user"
	"shopLens/domain"
	"shopLens/internal/cache"
	"shopLens/internal/middleware"
	"shopLens/internal/repository/catalog"
	"shopLens/internal/repository/encoder"
	"shopLens/internal/repository/images"
	psqlRepo "shopLens/internal/repository/postgres"
	"shopLens/internal/repository/vectorstore"
	"shopLens/internal/rest"
	"shopLens/pkg/config"
	"shopLens/pkg/database"
	redisdb "shopLens/pkg/database/redis"
	"shopLens/pkg/logger"
	"shopLens/pkg/metrics"
	"shopLens/pkg/utils"
)

// fetcherAdapter lets the search service consume the catalog aggregator
// without depending on the catalog package types.
type fetcherAdapter struct {
	agg *catalog.Aggregator
}

func (f fetcherAdapter) FetchAll(ctx context.Context, query string, sources []string) search.FetchResult {
	res := f.agg.FetchAll(ctx, query, sources)

	return search.FetchResult{
		Candidates: res.Candidates,
		Queried:    res.Queried,
		Failed:     res.Failed,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()

	logger.Info("Starting ShopLens", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey, cfg.JWT.ExpiryMinutes)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init cache
	var store cache.Store
	if cfg.Cache.Backend == "redis" {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer redisdb.CloseRedisClient(redisClient)

		store = cache.NewRedisStore(redisClient)
		logger.Info("Cache backend: redis")
	} else {
		store = cache.NewMemoryStore(cfg.Cache.MaxEntries)
		logger.Info("Cache backend: memory", "max_entries", cfg.Cache.MaxEntries)
	}

	// Init encoder client and image downloader
	encoderClient := encoder.NewClient(
		cfg.Encoder.BaseURL,
		cfg.Encoder.APIKey,
		cfg.Encoder.Timeout,
		store,
		cfg.Cache.ImageTTL,
	)

	downloader := images.NewDownloader(
		cfg.Search.DownloadTimeout,
		int64(cfg.Search.MaxConcurrentDownloads),
		store,
		cfg.Cache.ImageTTL,
	)

	// Init catalog sources
	sources := []catalog.Source{
		catalog.NewAmazonSource(),
		catalog.NewFlipkartSource(),
		catalog.NewMyntraSource(),
		catalog.NewIKEASource(),
		catalog.NewMeeshoSource(),
	}
	aggregator := catalog.NewAggregator(sources, cfg.Search.LimitPerSource, cfg.Search.SourceTimeout)

	// Optional pre-built catalog index
	var index search.Index
	if cfg.Vector.Enabled {
		vectorClient, err := vectorstore.New(vectorstore.Config{
			URL:            cfg.Vector.URL,
			CollectionName: cfg.Vector.CollectionName,
			APIKey:         cfg.Vector.APIKey,
		})
		if err != nil {
			logger.Fatal("Failed to connect to vector index", "error", err)
		}
		defer vectorClient.Close()

		index = vectorClient
		logger.Info("Catalog index connected", "collection", cfg.Vector.CollectionName)
	}

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)

	// Init service
	searchSvc := search.NewService(
		fetcherAdapter{agg: aggregator},
		encoderClient,
		downloader,
		index,
		store,
		search.Options{
			MaxConcurrentAnalysis: cfg.Search.MaxConcurrentAnalysis,
			SnapshotTTL:           cfg.Cache.SearchTTL,
		},
	)
	userSvc := userService.NewService(userRepo)
	cartSvc := cartService.NewService(cartRepo, ordersRepo)

	// Init handler
	searchHandler := rest.NewSearchHandler(searchSvc)
	userHandler := rest.NewUserHandler(userSvc)
	cartHandler := rest.NewCartHandler(cartSvc)
	cacheHandler := rest.NewCacheHandler(store)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"version": cfg.App.Version,
			"components": map[string]interface{}{
				"cache_backend": cfg.Cache.Backend,
				"vector_index":  cfg.Vector.Enabled,
				"sources":       len(sources),
			},
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupSearchRoutes(api, searchHandler)
	router.SetupAuthRoutes(api, userHandler, authRequired)
	router.SetupCartRoutes(api, cartHandler)
	router.SetupCacheRoutes(api, cacheHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
