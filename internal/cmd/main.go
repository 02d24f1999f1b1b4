package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RomanSlack/Orchestrator-Arena/internal/reconciler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	setupLogging()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment variable is required")
	}
	cronSecret := os.Getenv("CRON_SECRET")
	if cronSecret == "" {
		log.Fatal().Msg("CRON_SECRET environment variable is required")
	}

	config := defaultConfig()
	if path := os.Getenv("ARENA_CONFIG"); path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to load config")
		}
		config = loaded
	}

	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	defer database.Close()

	redisClient := setupRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	natsConn := setupNATS()
	if natsConn != nil {
		defer natsConn.Close()
	}

	clock := clockwork.NewRealClock()
	services := setupServices(database, redisClient, natsConn, clock, jwtSecret)
	server := setupServer(services, config, jwtSecret, cronSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := reconciler.NewRunner(services.ReconcilerApp, clock, config.ReconcileInterval())
	go runner.Run(ctx)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if getEnv("LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(level)
	}
}

// setupRedis connects the optional leaderboard cache. Without REDIS_ADDR the
// service runs straight off Postgres.
func setupRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, leaderboard cache disabled")
		client.Close()
		return nil
	}

	log.Info().Str("addr", addr).Msg("connected to redis")
	return client
}

// setupNATS connects the optional status event bus.
func setupNATS() *nats.Conn {
	url := os.Getenv("NATS_URL")
	if url == "" {
		return nil
	}

	conn, err := nats.Connect(url, nats.Name("orchestrator-arena"))
	if err != nil {
		log.Warn().Err(err).Msg("nats unreachable, status events disabled")
		return nil
	}

	log.Info().Str("url", url).Msg("connected to nats")
	return conn
}
