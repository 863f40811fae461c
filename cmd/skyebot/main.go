package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

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
	inquiry    = flag.String("i", "", "Initial inquiry to send before the interactive loop")
	refresh    = flag.Bool("refresh", false, "Force a refresh of the document cache")
	modelTier  = flag.String("m", "flash", "Model tier: flash, flash-lite or pro")
	format     = flag.String("format", "email", "Response format: email or chat")
)

func main() {
	flag.Parse()

	// Missing .env is fine, variables may come from the environment.
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

	modality := domain.Modality(*format)
	if modality != domain.ModalityEmail && modality != domain.ModalityChat {
		logger.Fatal("Invalid format", zap.String("format", *format))
	}

	prompts, err := config.LoadPrompts(cfg.Prompts.Path)
	if err != nil {
		logger.Fatal("Failed to load prompts", zap.Error(err))
	}
	instruction, err := prompts.For(modality)
	if err != nil {
		logger.Fatal("No system instruction for modality", zap.Error(err))
	}

	model, err := cfg.GenAI.Model(*modelTier)
	if err != nil {
		logger.Fatal("Invalid model tier", zap.Error(err))
	}

	ctx := context.Background()

	store, err := drive.NewStore(ctx, cfg.Drive.CredentialsPath, cfg.Drive.TokenPath)
	if err != nil {
		logger.Fatal("Failed to connect to Drive", zap.Error(err))
	}
	fetcher := drive.NewFetcher(store, cfg.Drive.CacheDir, logger)

	engine, err := gemini.NewClient(ctx, cfg.GenAI.APIKey, logger)
	if err != nil {
		logger.Fatal("Failed to create engine client", zap.Error(err))
	}

	preparer := service.NewPreparer(fetcher, engine, cfg.Drive.CacheDir, logger)
	refs, err := preparer.Prepare(ctx, config.Documents(), *refresh)
	if err != nil {
		logger.Fatal("Failed to prepare document context", zap.Error(err))
	}

	sess := service.NewSession(instruction, refs)
	responder := service.NewResponder(engine, logger)

	fmt.Printf("SkyeBot support assistant (%s, %s). Type 'q' to quit.\n", modality, model)

	if *inquiry != "" {
		runTurn(ctx, responder, sess, model, *inquiry)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Println("Please enter an inquiry.")
			continue
		}
		if input == "q" {
			break
		}
		runTurn(ctx, responder, sess, model, input)
	}
	fmt.Println("Goodbye.")
}

func runTurn(ctx context.Context, responder *service.Responder, sess *service.Session, model, inquiry string) {
	fmt.Print("\nSkyeBot: ")
	start := time.Now()
	reply, err := responder.StreamTurn(ctx, sess, model, inquiry, service.Sink{
		Text: func(text string) { fmt.Print(text) },
	})
	fmt.Println()
	if err != nil {
		fmt.Printf("[reply interrupted: %v]\n", err)
	}
	if reply.Usage != nil {
		fmt.Printf("[%.1fs, %d in / %d out / %d total tokens]\n",
			time.Since(start).Seconds(),
			reply.Usage.InputTokens, reply.Usage.OutputTokens, reply.Usage.TotalTokens)
	} else {
		fmt.Printf("[%.1fs]\n", time.Since(start).Seconds())
	}
}
