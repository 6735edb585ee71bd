package server

import (
	"log/slog"
	"os"

	"dentapp/internal/cache"
	"dentapp/internal/config"
	"dentapp/internal/database"
	"dentapp/internal/domain/auth"
	"dentapp/internal/migrations"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Start initializes and starts the HTTP server
func Start(cfg *config.Config, env *config.Environment) error {
	initLogger(cfg.Logging.Level)

	codec, err := auth.NewTokenCodec(env.JWTSecret, env.AccessTokenTTL, env.RefreshTokenTTL)
	if err != nil {
		slog.Error("Failed to initialize token codec", "error", err)
		return err
	}

	if err := database.ConnectDB(cfg); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		return err
	}
	slog.Info("Database connected successfully")

	if err := migrations.RunMigrations(database.DB); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return err
	}
	slog.Info("Migrations completed successfully")

	var revocations *cache.SessionRevocationCache
	if cfg.Redis.Enabled {
		if err := cache.ConnectRedis(&cfg.Redis); err != nil {
			slog.Error("Failed to connect to redis", "error", err)
			return err
		}
		slog.Info("Redis connected successfully")
		revocations = cache.NewSessionRevocationCache(cache.RedisClient)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(fiberlog.New())
	app.Use(cors.New())

	SetupRoutes(app, database.DB, codec, revocations, cfg.Auth)

	addr := cfg.Server.Address()
	slog.Info("Server starting", "address", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("Failed to start server", "error", err)
		return err
	}

	return nil
}

func initLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewTextHandler(os.Stdout, opts)
	slog.SetDefault(slog.New(handler))
}
