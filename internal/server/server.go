// Package server boots the catalog: configuration, MongoDB, Redis, storage,
// background workers, event listeners, routes, and the HTTP listener with
// graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kantor012/Product-Catalog/app/controllers"
	"github.com/Kantor012/Product-Catalog/app/repositories"
	"github.com/Kantor012/Product-Catalog/app/routes"
	"github.com/Kantor012/Product-Catalog/app/services"
	"github.com/Kantor012/Product-Catalog/config"
	"github.com/Kantor012/Product-Catalog/pkg/cache"
	"github.com/Kantor012/Product-Catalog/pkg/database"
	"github.com/Kantor012/Product-Catalog/pkg/event"
	"github.com/Kantor012/Product-Catalog/pkg/logger"
	"github.com/Kantor012/Product-Catalog/pkg/metrics"
	"github.com/Kantor012/Product-Catalog/pkg/middleware"
	"github.com/Kantor012/Product-Catalog/pkg/reqid"
	"github.com/Kantor012/Product-Catalog/pkg/router"
	"github.com/Kantor012/Product-Catalog/pkg/schedule"
	"github.com/Kantor012/Product-Catalog/pkg/storage"
	"github.com/Kantor012/Product-Catalog/pkg/workerpool"
	"github.com/Kantor012/Product-Catalog/pkg/ws"
)

const (
	bootTimeout     = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	mailWorkers     = 8
)

// Start boots every subsystem and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), bootTimeout)
	defer cancelBoot()

	client, db, err := database.Connect(bootCtx)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	if err := database.EnsureIndexes(bootCtx, db); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err)
	}
	storage.Connect()

	// In production, request logs also land in the catalog database.
	var mongoLog *logger.MongoHandler
	if env := config.AppEnv(); env == "production" || env == "prod" {
		mongoLog = logger.NewMongoHandler(db.Collection("logs"), slog.LevelInfo)
		logger.Use(slog.New(logger.NewMultiHandler(logger.L.Handler(), mongoLog)))
		defer mongoLog.Close()
	}

	pool := workerpool.New(mailWorkers)
	defer pool.Shutdown()

	hub := ws.NewHub()
	go hub.Run()

	// Repositories → services → controllers.
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	userRepo := repositories.NewUserRepository(db)
	recentRepo := repositories.NewRecentlyAddedRepository(db, config.RecentMax())

	productSvc := services.NewProductService(productRepo, categoryRepo, recentRepo)
	categorySvc := services.NewCategoryService(categoryRepo, productRepo)
	userSvc := services.NewUserService(userRepo, pool)
	recentSvc := services.NewRecentlyAddedService(recentRepo)

	registerListeners(hub)

	schedule.EveryMinute().Name("recently-added-sweep").Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := recentSvc.Sweep(ctx); err != nil {
			logger.Error("recently-added sweep failed", "error", err)
		}
	})

	bgCtx, cancelBg := context.WithCancel(context.Background())
	defer cancelBg()
	schedule.Start(bgCtx)

	r := buildRouter(routes.Controllers{
		Products:      controllers.NewProductController(productSvc),
		Categories:    controllers.NewCategoryController(categorySvc),
		Users:         controllers.NewUserController(userSvc),
		RecentlyAdded: controllers.NewRecentlyAddedController(recentSvc),
	}, userRepo, hub)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// buildRouter assembles the middleware stack and route table.
func buildRouter(c routes.Controllers, users middleware.UserLoader, hub *ws.Hub) *router.Router {
	r := router.New()

	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	routes.RegisterAPI(r, c, users)

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})
	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())
	r.Handle(http.MethodGet, "/ws/feed", "ws.feed",
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ws.Upgrade(w, req, hub)
		}))

	// Locally stored product images are served straight from disk.
	if config.StorageDefault() == "local" {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot())))
		r.Handle(http.MethodGet, "/storage/*", "storage", fs)
	}

	return r
}

// registerListeners wires product mutations to cache invalidation and the
// live feed.
func registerListeners(hub *ws.Hub) {
	bust := func(interface{}) {
		_ = cache.Del(services.PromotionalCacheKey, services.FeedCacheKey)
	}
	event.Listen(event.ProductCreated, bust)
	event.Listen(event.ProductUpdated, bust)
	event.Listen(event.ProductDeleted, bust)

	event.Listen(event.ProductCreated, func(payload interface{}) {
		msg, err := json.Marshal(map[string]interface{}{
			"event":   event.ProductCreated,
			"product": payload,
		})
		if err != nil {
			return
		}
		select {
		case hub.Broadcast <- msg:
		default:
		}
	})
}
