package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"movie-streaming-service/internal/auth"
	"movie-streaming-service/internal/config"
	"movie-streaming-service/internal/database"
	"movie-streaming-service/internal/handler"
	"movie-streaming-service/internal/jobs"
	"movie-streaming-service/internal/middleware"
	"movie-streaming-service/internal/repository"
	"movie-streaming-service/internal/repository/memory"
	"movie-streaming-service/internal/service"
	"movie-streaming-service/internal/tmdb"
)

// stores is the set of repositories behind the services.
type stores struct {
	movies       repository.MovieStore
	categories   repository.NamedStore
	regions      repository.NamedStore
	carousels    repository.CarouselStore
	users        repository.UserStore
	orders       repository.OrderStore
	interactions repository.InteractionStore
	collections  repository.CollectionStore
	messages     repository.MessageStore
}

func postgresStores(db *sql.DB) stores {
	return stores{
		movies:       repository.NewMovieRepository(db),
		categories:   repository.NewNamedRepository(db, repository.TableCategories),
		regions:      repository.NewNamedRepository(db, repository.TableRegions),
		carousels:    repository.NewCarouselRepository(db),
		users:        repository.NewUserRepository(db),
		orders:       repository.NewOrderRepository(db),
		interactions: repository.NewInteractionRepository(db),
		collections:  repository.NewCollectionRepository(db),
		messages:     repository.NewMessageRepository(db),
	}
}

func memoryStores() stores {
	m := memory.New()
	return stores{
		movies:       m,
		categories:   m.Categories(),
		regions:      m.Regions(),
		carousels:    m,
		users:        m,
		orders:       m,
		interactions: m,
		collections:  m,
		messages:     m,
	}
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancelStartup := context.WithTimeout(ctx, 30*time.Second)
	defer cancelStartup()

	var st stores
	var db *sql.DB
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		st = memoryStores()
	default:
		db, err = database.NewPostgres(startupCtx, cfg.DB)
		if err != nil {
			slog.Error("failed to connect to PostgreSQL", "error", err)
			os.Exit(1)
		}
		st = postgresStores(db)
	}

	// Redis is optional: without it there is no cache and no rate limiting.
	var rdb *redis.Client
	if client, err := database.NewRedis(startupCtx, cfg.Redis); err != nil {
		slog.Warn("Redis unavailable, running without cache and rate limiting", "error", err)
	} else {
		rdb = client
	}
	cache := service.NewCache(rdb)

	jwtManager, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		slog.Error("failed to create JWT manager", "error", err)
		os.Exit(1)
	}

	var tmdbSource service.TMDBSource
	if cfg.TMDB.Enabled() {
		tmdbSource = tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)
	} else {
		slog.Info("TMDB_API_KEY not set, TMDB import disabled")
	}

	orderService := service.NewOrderService(st.orders, st.movies)
	svcs := handler.Services{
		Users:           service.NewUserService(st.users, jwtManager),
		Movies:          service.NewMovieService(st.movies, st.regions, tmdbSource, cache),
		Categories:      service.NewLookupService(st.categories, "category"),
		Regions:         service.NewLookupService(st.regions, "region"),
		Carousels:       service.NewCarouselService(st.carousels, st.movies),
		Orders:          orderService,
		Interactions:    service.NewInteractionService(st.interactions, st.movies, cache),
		Collections:     service.NewCollectionService(st.collections, st.movies),
		Messages:        service.NewMessageService(st.messages),
		Recommendations: service.NewRecommendationService(st.movies, st.interactions, cache),
		Statistics:      service.NewStatisticsService(st.users, st.movies, st.orders, st.interactions),
	}

	if err := svcs.Users.EnsureAdmin(startupCtx, cfg.Auth.AdminPassword); err != nil {
		slog.Error("failed to ensure admin account", "error", err)
		os.Exit(1)
	}
	cancelStartup()

	sweeper := jobs.NewManager(orderService, cfg.EntitlementSweepInterval)
	sweeper.Start()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Streaming Service",
		ServerHeader: "Movie-Streaming-Service",
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds).Handler())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	app.Get("/health", handler.Health)
	handler.RegisterRoutes(app, svcs, jwtManager)

	go func() {
		addr := ":" + cfg.Port
		slog.Info("starting movie streaming service", "addr", addr, "store", cfg.StoreDriver)
		if err := app.Listen(addr); err != nil {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down movie streaming service...")

	// Stop accepting requests before tearing down what they depend on.
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("error shutting down HTTP server", "error", err)
	}
	sweeper.Stop()

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("error closing Redis connection", "error", err)
		}
	}
	if db != nil {
		if err := db.Close(); err != nil {
			slog.Error("error closing PostgreSQL connection", "error", err)
		}
	}

	slog.Info("shutdown complete")
}
