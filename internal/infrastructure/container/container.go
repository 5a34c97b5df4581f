// Package container wires the application together with Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pantryplan/api/internal/application/assistant"
	"github.com/pantryplan/api/internal/application/goal"
	"github.com/pantryplan/api/internal/application/mealplan"
	"github.com/pantryplan/api/internal/application/nutrition"
	"github.com/pantryplan/api/internal/application/pantry"
	"github.com/pantryplan/api/internal/application/recipe"
	"github.com/pantryplan/api/internal/application/shopping"
	"github.com/pantryplan/api/internal/domain/shared"
	"github.com/pantryplan/api/internal/infrastructure/ai/gemini"
	"github.com/pantryplan/api/internal/infrastructure/cache"
	"github.com/pantryplan/api/internal/infrastructure/config"
	"github.com/pantryplan/api/internal/infrastructure/events"
	"github.com/pantryplan/api/internal/infrastructure/http/handlers"
	"github.com/pantryplan/api/internal/infrastructure/http/middleware"
	"github.com/pantryplan/api/internal/infrastructure/http/server"
	"github.com/pantryplan/api/internal/infrastructure/monitoring"
	gormrepo "github.com/pantryplan/api/internal/infrastructure/persistence/gorm"
	"github.com/pantryplan/api/internal/infrastructure/persistence/memory"
	"github.com/pantryplan/api/internal/infrastructure/persistence/postgres"
	redisrepo "github.com/pantryplan/api/internal/infrastructure/persistence/redis"
	"github.com/pantryplan/api/internal/infrastructure/persistence/sqlite"
	"github.com/pantryplan/api/internal/ports/inbound"
	"github.com/pantryplan/api/internal/ports/outbound"
	"github.com/pantryplan/api/pkg/healthcheck"
	"github.com/pantryplan/api/pkg/logger"
)

// ConfigPath is the config file to load. Empty searches the default locations.
type ConfigPath string

// Module provides all dependency injection modules
func Module(configPath string) fx.Option {
	return fx.Options(
		fx.Supply(ConfigPath(configPath)),
		ConfigModule,
		LoggerModule,
		MonitoringModule,
		DatabaseModule,
		CacheModule,
		RepositoryModule,
		EventModule,
		AIModule,
		ServiceModule,
		HTTPModule,
		HealthModule,
		LifecycleModule,
	)
}

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Options(
	fx.Provide(func(cfg *config.Config) (*zap.Logger, zap.AtomicLevel) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	}),
	fx.Invoke(watchLogLevel),
)

// watchLogLevel applies app.log_level changes from the config file without a restart
func watchLogLevel(cfg *config.Config, level zap.AtomicLevel, log *zap.Logger) {
	watching := cfg.Watch(func(next *config.Config) {
		newLevel := logger.ParseLevel(next.App.LogLevel)
		if newLevel != level.Level() {
			level.SetLevel(newLevel)
			log.Info("Log level changed", zap.String("level", newLevel.String()))
		}
	}, func(err error) {
		log.Warn("Ignoring invalid config reload", zap.Error(err))
	})
	if watching {
		log.Debug("Watching config file for changes")
	}
}

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		return monitoring.NewTracingProvider(monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			OTLPInsecure:   cfg.Monitoring.OTLPInsecure,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
	},
)

// DatabaseModule provides the database connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) (*gorm.DB, error) {
		gormLogger := gormrepo.NewZapLogger(log, cfg.Database.SlowQueryThreshold, metrics).
			LogMode(gormrepo.ParseLogLevel(cfg.Database.LogLevel))

		switch cfg.Database.Driver {
		case "postgres":
			return postgres.Open(cfg.Database, cfg.GetDSN(), gormLogger, log)
		case "sqlite":
			return sqlite.Open(cfg.Database, gormLogger, log)
		default:
			return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
		}
	},
)

// cacheBackend is the configured cache with the resources it owns
type cacheBackend struct {
	repo  outbound.CacheRepository
	redis goredis.UniversalClient
	close func() error
}

// CacheModule provides caching
var CacheModule = fx.Provide(
	newCacheBackend,
	func(b *cacheBackend) outbound.CacheRepository { return b.repo },
)

func newCacheBackend(cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) (*cacheBackend, error) {
	if cfg.Cache.Driver == "redis" {
		client, err := redisrepo.NewClient(cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		return &cacheBackend{
			repo:  cache.NewInstrumented(redisrepo.NewCacheRepository(client, cfg.Redis.KeyPrefix, log), "redis", metrics),
			redis: client,
			close: client.Close,
		}, nil
	}

	mem := memory.NewCacheRepository(cfg.Cache.CleanupInterval)
	log.Info("Using in-memory cache")
	return &cacheBackend{
		repo:  cache.NewInstrumented(mem, "memory", metrics),
		close: mem.Close,
	}, nil
}

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewRecipeRepository,
	gormrepo.NewPantryRepository,
	gormrepo.NewMealPlanRepository,
	gormrepo.NewShoppingListRepository,
	gormrepo.NewGoalRepository,
)

// EventModule provides the in-process event dispatcher
var EventModule = fx.Options(
	fx.Provide(
		fx.Annotate(
			func(metrics *monitoring.MetricsCollector, log *zap.Logger) *events.Dispatcher {
				return events.NewDispatcher(metrics, log)
			},
			fx.As(new(shared.EventDispatcher)),
		),
	),
	fx.Invoke(func(d shared.EventDispatcher, metrics *monitoring.MetricsCollector, log *zap.Logger) {
		events.RegisterDefaultHandlers(d, metrics, log)
	}),
)

// AIModule provides the Gemini client behind the nutrition estimator and
// recipe assistant ports. Both ports are nil when no provider is configured.
var AIModule = fx.Provide(
	newAIClient,
	newEstimator,
	newAssistant,
)

func newAIClient(
	lc fx.Lifecycle,
	cfg *config.Config,
	metrics *monitoring.MetricsCollector,
	tracing *monitoring.TracingProvider,
	log *zap.Logger,
) (*gemini.Client, error) {
	if !cfg.AIEnabled() {
		log.Info("AI features disabled", zap.String("provider", cfg.AI.Provider))
		return nil, nil
	}

	client, err := gemini.NewClient(context.Background(), gemini.Config{
		APIKey:  cfg.AI.GeminiAPIKey,
		Model:   cfg.AI.GeminiModel,
		Timeout: cfg.AI.Timeout,
	}, metrics, tracing, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

// a nil *gemini.Client must become a nil interface, not a typed nil
func newEstimator(client *gemini.Client) outbound.NutritionEstimator {
	if client == nil {
		return nil
	}
	return client
}

func newAssistant(client *gemini.Client) outbound.RecipeAssistant {
	if client == nil {
		return nil
	}
	return client
}

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		func(
			repo outbound.RecipeRepository,
			cacheRepo outbound.CacheRepository,
			estimator outbound.NutritionEstimator,
			dispatcher shared.EventDispatcher,
			cfg *config.Config,
			log *zap.Logger,
		) *recipe.RecipeService {
			return recipe.NewRecipeService(repo, cacheRepo, estimator, dispatcher, recipe.Options{CacheTTL: cfg.Cache.TTL}, log)
		},
		fx.As(new(inbound.RecipeService)),
	),
	fx.Annotate(pantry.NewPantryService, fx.As(new(inbound.PantryService))),
	fx.Annotate(mealplan.NewMealPlanService, fx.As(new(inbound.MealPlanService))),
	fx.Annotate(shopping.NewShoppingListService, fx.As(new(inbound.ShoppingListService))),
	fx.Annotate(goal.NewGoalService, fx.As(new(inbound.GoalService))),
	fx.Annotate(nutrition.NewNutritionService, fx.As(new(inbound.NutritionService))),
	fx.Annotate(
		func(
			ai outbound.RecipeAssistant,
			recipes inbound.RecipeService,
			pantry inbound.PantryService,
			log *zap.Logger,
		) *assistant.AssistantService {
			return assistant.NewAssistantService(ai, recipes, pantry, log)
		},
		fx.As(new(inbound.AssistantService)),
	),
)

// HTTPModule provides the HTTP server, router and handlers
var HTTPModule = fx.Provide(
	middleware.New,
	handlers.NewRecipeHandlers,
	handlers.NewPantryHandlers,
	handlers.NewMealPlanHandlers,
	handlers.NewShoppingHandlers,
	handlers.NewGoalHandlers,
	handlers.NewNutritionHandlers,
	handlers.NewAIHandlers,
	newRouter,
	func(cfg *config.Config, router *gin.Engine, log *zap.Logger) *server.Server {
		return server.NewServer(cfg, router, log)
	},
)

type routerParams struct {
	fx.In

	Config     *config.Config
	Middleware *middleware.Middleware
	Health     *healthcheck.Registry
	Metrics    *monitoring.MetricsCollector
	Recipes    *handlers.RecipeHandlers
	Pantry     *handlers.PantryHandlers
	MealPlans  *handlers.MealPlanHandlers
	Shopping   *handlers.ShoppingHandlers
	Goals      *handlers.GoalHandlers
	Nutrition  *handlers.NutritionHandlers
	AI         *handlers.AIHandlers
}

func newRouter(p routerParams) *gin.Engine {
	return server.NewRouter(p.Config, p.Middleware, server.Handlers{
		Recipes:   p.Recipes,
		Pantry:    p.Pantry,
		MealPlans: p.MealPlans,
		Shopping:  p.Shopping,
		Goals:     p.Goals,
		Nutrition: p.Nutrition,
		AI:        p.AI,
	}, p.Health, p.Metrics)
}

// HealthModule provides the health checker with a check per dependency
var HealthModule = fx.Provide(newHealthCheck)

func newHealthCheck(
	cfg *config.Config,
	db *gorm.DB,
	backend *cacheBackend,
	estimator outbound.NutritionEstimator,
	log *zap.Logger,
) (*healthcheck.Registry, error) {
	hc := healthcheck.New(cfg.App.Version, log)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	hc.Require("database", healthcheck.NewSQLChecker(sqlDB))

	if backend.redis != nil {
		hc.Observe("redis", healthcheck.NewRedisChecker(backend.redis))
	}

	hc.Observe("nutrition_estimator", healthcheck.CheckFunc(
		func(ctx context.Context) (healthcheck.Status, string, map[string]interface{}) {
			details := map[string]interface{}{"provider": cfg.AI.Provider}
			if estimator == nil {
				return healthcheck.StatusHealthy, "not configured", details
			}
			details["model"] = cfg.AI.GeminiModel
			return healthcheck.StatusHealthy, "configured", details
		}))

	return hc, nil
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(RegisterLifecycleHooks)

// RegisterLifecycleHooks starts the HTTP server and releases resources on stop
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	backend *cacheBackend,
	tracing *monitoring.TracingProvider,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting PantryPlan API",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database", cfg.Database.Driver),
				zap.String("cache", cfg.Cache.Driver),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down PantryPlan API")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if err := tracing.Shutdown(ctx); err != nil {
				log.Error("Failed to flush traces", zap.Error(err))
			}

			if err := backend.close(); err != nil {
				log.Error("Failed to close cache", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
