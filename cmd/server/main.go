package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dealsense/buybox/internal/config"
	"github.com/dealsense/buybox/internal/handler"
	"github.com/dealsense/buybox/internal/middleware"
	"github.com/dealsense/buybox/internal/repository"
	"github.com/dealsense/buybox/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out = os.Stdout
	logger := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", "buybox-engine").
		Logger()
	if cfg.Logging.Format == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out})
	}

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting buybox engine")

	gin.SetMode(cfg.Server.GinMode)

	// Optional activity log; everything runs without a database.
	var activity *repository.ActivityLog
	if cfg.Postgres.DSN != "" {
		activity, err = repository.NewActivityLog(
			cfg.Postgres.DSN,
			cfg.Postgres.MaxConnections,
			cfg.Postgres.MaxIdleConnections,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer activity.Close()
		logger.Info().Msg("activity logging enabled")
	} else {
		logger.Info().Msg("no DATABASE_URL set, activity logging disabled")
	}

	// LLM client is optional too; the local deterministic parser covers
	// every request when it is absent.
	var chatClient service.ChatClient
	if cfg.OpenAI.Enabled {
		chatClient = service.NewOpenAIClient(&cfg.OpenAI, logger)
		logger.Info().
			Str("api_base", cfg.OpenAI.APIBase).
			Str("model", cfg.OpenAI.ChatModel).
			Int("timeout_s", cfg.OpenAI.Timeout).
			Msg("LLM parsing enabled")
	} else {
		logger.Info().Msg("OPENAI_API_KEY not set, using local deterministic parser only")
	}

	remoteParser := service.NewRemoteParser(chatClient, logger)
	firmIntel := service.NewFirmIntelService(chatClient, &cfg.FirmIntel, logger)

	h := handler.New(remoteParser, firmIntel, activity, logger, cfg.Synth.DefaultCount, cfg.Synth.MaxCount)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.DefaultConfig()
	if cfg.Server.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", h.Health)
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/parse", h.Parse)
		apiV1.POST("/parse/stream", h.ParseStream)
		apiV1.POST("/prospects", h.Prospects)
		apiV1.POST("/refine-plan", h.RefinePlan)
		apiV1.POST("/firm-intel", h.FirmIntelLookup)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
