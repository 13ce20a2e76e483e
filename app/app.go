package app

import (
	"context"
	"fmt"

	"burger-shop/config"
	"burger-shop/controllers"
	"burger-shop/libs"
	"burger-shop/middleware"
	"burger-shop/repositories"
	"burger-shop/routes"
	"burger-shop/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Router *gin.Engine
	Store  repositories.Store

	pool  *pgxpool.Pool
	redis *redis.Client
}

// New connects the store and cache selected by cfg and wires every service and route.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := libs.NewLogger(cfg)
	a := &App{Config: cfg, Log: log}

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		a.Store = repositories.NewMemoryStore(repositories.SeedCatalog()...)
	default:
		if cfg.RunMigrations {
			if err := config.RunMigrations(cfg.DSN(), cfg.MigrationsDir); err != nil {
				return nil, err
			}
			log.Info("database migrations applied")
		}
		pool, err := config.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		a.Store = repositories.NewPostgresStore(pool)
		log.Info("database connected")
	}

	var cache libs.Cache = libs.NoopCache{}
	client, err := config.ConnectRedis(ctx, cfg)
	switch {
	case err != nil:
		log.WithError(err).Warn("redis unavailable, running without cache")
	case client != nil:
		a.redis = client
		cache = libs.NewRedisCache(client)
		log.Info("redis connected")
	}

	a.Router = NewRouter(cfg, log, a.Store, cache)
	return a, nil
}

// NewRouter builds the gin engine over an already connected store.
func NewRouter(cfg *config.Config, log *logrus.Logger, store repositories.Store, cache libs.Cache) *gin.Engine {
	pricing := services.NewPricingEngine(log)

	handlers := routes.Handlers{
		Auth:    controllers.NewAuthController(services.NewAuthService(store, cfg.JWTSecret, cfg.JWTExpiry)),
		User:    controllers.NewUserController(services.NewUserService(store)),
		Product: controllers.NewProductController(services.NewCatalogService(store, cache, cfg.CatalogCacheTTL, log)),
		Cart:    controllers.NewCartController(services.NewCartService(store, pricing, log)),
		Order: controllers.NewOrderController(services.NewOrderService(store, pricing, log,
			services.WithNotifier(services.NewNotifier(cfg)))),
		Address:   controllers.NewAddressController(services.NewAddressService(store)),
		JWTSecret: cfg.JWTSecret,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))
	routes.SetupRoutes(router, handlers)
	return router
}

func (a *App) Close() error {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}
	return nil
}
