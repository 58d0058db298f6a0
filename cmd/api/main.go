// Package main is the entrypoint for the Falcı API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/falci/falci/internal/cache"
	"github.com/falci/falci/internal/config"
	"github.com/falci/falci/internal/gemini"
	"github.com/falci/falci/internal/handler"
	"github.com/falci/falci/internal/media"
	"github.com/falci/falci/internal/metrics"
	"github.com/falci/falci/internal/middleware"
	"github.com/falci/falci/internal/server"
	"github.com/falci/falci/internal/service"
	"github.com/falci/falci/internal/storage"
)

func main() {
	ctx := context.Background()

	// Load .env in development; ignore when absent
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Select the store: Postgres when configured, volatile memory otherwise
	var store storage.Store
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		store = pg
		logger.Info("connected to database")
	} else {
		store = storage.NewMemory()
		logger.Warn("DATABASE_URL not set, using in-memory store; fortunes will not survive restarts")
	}

	// Redis is optional; without it the rate limiter stays off
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to Redis")
	} else {
		logger.Info("REDIS_URL not set, rate limiting disabled")
	}

	geminiClient := gemini.NewClient(&http.Client{}, gemini.Options{
		APIKey:      cfg.GeminiAPIKey,
		BaseURL:     cfg.GeminiBaseURL,
		TextModel:   cfg.GeminiTextModel,
		VisionModel: cfg.GeminiVisionModel,
		Timeout:     cfg.GeminiTimeout,
	}, logger)

	var archiver service.ImageArchiver
	if cfg.CloudinaryEnabled() {
		cloudinaryArchiver, err := media.NewCloudinary(
			cfg.CloudinaryCloudName,
			cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret,
		)
		if err != nil {
			logger.Error("failed to initialize Cloudinary", slog.String("error", err.Error()))
			os.Exit(1)
		}
		archiver = cloudinaryArchiver
		logger.Info("coffee image archival enabled")
	}

	metricsRecorder := metrics.NewInMemory()

	fortuneService := service.NewFortuneService(store, geminiClient, archiver, metricsRecorder, logger)
	userService := service.NewUserService(store, logger)

	h := handler.New()
	// Pass an untyped nil when Redis is off so Readyz reports "not configured"
	// instead of pinging through a nil client.
	var cacheChecker handler.HealthChecker
	if cacheClient != nil {
		cacheChecker = cacheClient
	}
	healthHandler := handler.NewHealthHandler(store, cacheChecker)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)
	tarotHandler := handler.NewTarotHandler(fortuneService, logger)
	coffeeHandler := handler.NewCoffeeHandler(fortuneService, logger)
	horoscopeHandler := handler.NewHoroscopeHandler(fortuneService, logger)
	dreamHandler := handler.NewDreamHandler(fortuneService, logger)
	fortuneHandler := handler.NewFortuneHandler(fortuneService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	r := setupRouter(routerDeps{
		base:      h,
		health:    healthHandler,
		metrics:   metricsHandler,
		tarot:     tarotHandler,
		coffee:    coffeeHandler,
		horoscope: horoscopeHandler,
		dream:     dreamHandler,
		fortune:   fortuneHandler,
		user:      userHandler,
	}, cacheClient, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("store", func(ctx context.Context) error {
		store.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles the handlers wired into the router.
type routerDeps struct {
	base      *handler.Handler
	health    *handler.HealthHandler
	metrics   *handler.MetricsHandler
	tarot     *handler.TarotHandler
	coffee    *handler.CoffeeHandler
	horoscope *handler.HoroscopeHandler
	dream     *handler.DreamHandler
	fortune   *handler.FortuneHandler
	user      *handler.UserHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps, cacheClient *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health and metrics endpoints
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	// Generation endpoints are throttled per IP; each call costs provider quota
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Enabled: cfg.RateLimitEnabled && cacheClient != nil,
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/tarot/cards", deps.tarot.Cards)
		r.Get("/tarot/cards/random", deps.tarot.RandomCards)
		r.Get("/horoscope/signs", deps.horoscope.Signs)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitIP(rateLimitCfg))
			r.Post("/tarot/interpret", deps.tarot.Interpret)
			r.Post("/coffee/analyze", deps.coffee.Analyze)
			r.Post("/horoscope/daily", deps.horoscope.Daily)
			r.Post("/dreams/interpret", deps.dream.Interpret)
		})

		r.Route("/fortunes", func(r chi.Router) {
			r.Get("/", deps.fortune.List)
			r.Get("/{id}", deps.fortune.Get)
			r.Delete("/{id}", deps.fortune.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", deps.user.Create)
			r.Post("/login", deps.user.Login)
			r.Get("/{id}", deps.user.Get)
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
