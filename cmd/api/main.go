package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/providers/identity"
	"server/internal/providers/imagegen"
	"server/internal/providers/media"
	"server/internal/providers/text"
	"server/internal/quota"
	"server/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	identityClient, err := identity.NewClient(identity.Options{
		APIKey:  cfg.IdentityAPIKey,
		BaseURL: cfg.IdentityBaseURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("identity client init failed")
	}
	textClient, err := text.NewClient(text.Options{
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("text client init failed")
	}
	imageClient, err := imagegen.NewClient(imagegen.Options{
		APIKey:  cfg.ClipdropAPIKey,
		BaseURL: cfg.ClipdropBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("image client init failed")
	}
	mediaClient, err := media.NewClient(media.Options{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		BaseURL:   cfg.CloudinaryBaseURL,
		Timeout:   cfg.ProviderTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("media client init failed")
	}

	sqlRunner := infra.NewSQLRunner(dbpool, logger)
	creations := repo.NewCreationRepository(sqlRunner)
	gate := quota.NewGate(identityClient, logger)

	ai := &service.AI{
		Text:      textClient,
		Images:    imageClient,
		Media:     mediaClient,
		Creations: creations,
		Gate:      gate,
		Models:    service.Models{Completion: cfg.AIModel, Review: cfg.AIReviewModel},
		Timeout:   cfg.ProviderTimeout,
		Logger:    logger,
	}

	app := handlers.NewApp(ai, creations, logger)
	router := httpapi.NewRouter(httpapi.Options{
		App:             app,
		Identity:        identityClient,
		JWTSecret:       cfg.JWTSecret,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("api listening")
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
