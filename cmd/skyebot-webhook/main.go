package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobbyohyeah/skyebot-support/internal/api"
	"github.com/bobbyohyeah/skyebot-support/internal/config"
	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"github.com/bobbyohyeah/skyebot-support/internal/drive"
	"github.com/bobbyohyeah/skyebot-support/internal/gemini"
	"github.com/bobbyohyeah/skyebot-support/internal/service"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	refresh    = flag.Bool("refresh", false, "Force a refresh of the document cache")
	modelTier  = flag.String("m", "flash", "Model tier: flash, flash-lite or pro")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	prompts, err := config.LoadPrompts(cfg.Prompts.Path)
	if err != nil {
		logger.Fatal("Failed to load prompts", zap.Error(err))
	}
	instruction, err := prompts.For(domain.ModalityEmail)
	if err != nil {
		logger.Fatal("No system instruction for email", zap.Error(err))
	}

	model, err := cfg.GenAI.Model(*modelTier)
	if err != nil {
		logger.Fatal("Invalid model tier", zap.Error(err))
	}

	bootstrap := service.NewBootstrap(func(ctx context.Context) (service.Engine, []domain.ContextRef, error) {
		store, err := drive.NewStore(ctx, cfg.Drive.CredentialsPath, cfg.Drive.TokenPath)
		if err != nil {
			return nil, nil, err
		}
		fetcher := drive.NewFetcher(store, cfg.Drive.CacheDir, logger)

		engine, err := gemini.NewClient(ctx, cfg.GenAI.APIKey, logger)
		if err != nil {
			return nil, nil, err
		}

		preparer := service.NewPreparer(fetcher, engine, cfg.Drive.CacheDir, logger)
		refs, err := preparer.Prepare(ctx, config.Documents(), *refresh)
		if err != nil {
			return nil, nil, err
		}
		return engine, refs, nil
	}, logger)

	// Serve immediately; requests get 503 until initialization finishes.
	go bootstrap.Init(context.Background())

	handler := api.NewHandler(bootstrap, instruction, model, logger)
	router := api.SetupRouter(handler, logger)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting SkyeBot webhook server", zap.String("address", cfg.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
