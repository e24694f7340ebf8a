package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shindesiddhant-415/Honeypot/internal/api"
	"github.com/shindesiddhant-415/Honeypot/internal/auth"
	"github.com/shindesiddhant-415/Honeypot/internal/config"
	"github.com/shindesiddhant-415/Honeypot/internal/engage"
	"github.com/shindesiddhant-415/Honeypot/internal/reply"
	"github.com/shindesiddhant-415/Honeypot/internal/report"
	"github.com/shindesiddhant-415/Honeypot/internal/store"
	"github.com/shindesiddhant-415/Honeypot/internal/voice"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()

	keys := auth.NewKeyring(cfg.APIKeys, cfg.APIKeyHashes)
	if keys.Empty() {
		logger.Warn().Msg("no API keys configured, all requests will be rejected")
	}

	// Session store: Redis when configured, process-lifetime map
	// otherwise.
	var sessions store.SessionStore
	var redisStore *store.RedisStore
	if cfg.RedisURL != "" {
		var err error
		redisStore, err = store.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		sessions = redisStore
		logger.Info().Msg("using Redis session store")
	} else {
		sessions = store.NewMemoryStore()
		logger.Info().Msg("using in-memory session store")
	}
	defer sessions.Close()

	// Report archive: Postgres when configured, SQLite otherwise,
	// nothing when disabled.
	var archive store.ReportArchive
	if cfg.ArchiveEnabled {
		var err error
		if cfg.DatabaseURL != "" {
			archive, err = store.NewPostgresArchive(ctx, cfg.DatabaseURL)
			if err != nil {
				logger.Fatal().Err(err).Msg("postgres connection failed")
			}
			logger.Info().Msg("archiving reports to PostgreSQL")
		} else {
			archive, err = store.NewSQLiteArchive(ctx, cfg.SQLitePath)
			if err != nil {
				logger.Fatal().Err(err).Msg("sqlite open failed")
			}
			logger.Info().Str("path", cfg.SQLitePath).Msg("archiving reports to SQLite")
		}
		defer archive.Close()
	}

	if cfg.CallbackURL == "" {
		logger.Warn().Msg("no CALLBACK_URL configured, report delivery will fail")
	}

	var voiceClient *voice.Client
	if cfg.VoiceAPIURL != "" {
		voiceClient = voice.NewClient(cfg.VoiceAPIURL, cfg.VoiceAPIKey)
		logger.Info().Str("url", cfg.VoiceAPIURL).Msg("voice detection service configured")
	}

	dispatcher := report.NewDispatcher(cfg.CallbackURL, cfg.CallbackTimeout, archive, logger)
	strategist := reply.NewStrategist(rand.New(rand.NewSource(time.Now().UnixNano())))
	engine := engage.NewEngine(sessions, strategist, dispatcher, cfg.ReportThreshold, logger)

	deps := api.Deps{
		Keys:               keys,
		Engine:             engine,
		Sessions:           sessions,
		Archive:            archive,
		Voice:              voiceClient,
		RateLimitWhitelist: cfg.RateLimitWhitelist,
	}
	if redisStore != nil {
		deps.RedisClient = redisStore.Client()
	}

	router := api.NewRouter(logger, deps)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting honeypot server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
