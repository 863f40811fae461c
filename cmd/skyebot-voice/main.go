package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bobbyohyeah/skyebot-support/internal/config"
	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"github.com/bobbyohyeah/skyebot-support/internal/drive"
	"github.com/bobbyohyeah/skyebot-support/internal/gemini"
	"github.com/bobbyohyeah/skyebot-support/internal/service"
	"github.com/bobbyohyeah/skyebot-support/internal/speech"
	"github.com/bobbyohyeah/skyebot-support/internal/stream"
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
	instruction, err := prompts.For(domain.ModalityVoice)
	if err != nil {
		logger.Fatal("No system instruction for voice", zap.Error(err))
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

	synth := speech.NewGoogleSynthesizer(cfg.Speech.APIKey, speech.SynthesizerOptions{
		Voice:        cfg.Speech.Voice,
		LanguageCode: cfg.Speech.LanguageCode,
		SpeakingRate: cfg.Speech.SpeakingRate,
	}, logger)
	transcriber := speech.NewGoogleTranscriber(cfg.Speech.APIKey, cfg.Speech.LanguageCode, cfg.Speech.RecordSampleRate, logger)
	recorder := speech.NewCommandRecorder(cfg.Speech.RecordSeconds, cfg.Speech.RecordSampleRate, logger)
	player := speech.NewCommandPlayer("", logger)

	sess := service.NewSession(instruction, refs)
	responder := service.NewResponder(engine, logger)

	fmt.Printf("SkyeBot voice assistant (%s). Press Enter to speak, type to send text, 'q' to quit.\n", model)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "q" {
			break
		}
		if input == "" {
			input, err = listen(ctx, recorder, transcriber)
			if err != nil {
				fmt.Printf("Could not understand, please try again (%v).\n", err)
				continue
			}
			fmt.Printf("You said: %s\n", input)
		}

		pipeline := speech.NewPipeline(synth, player, logger)
		pipeline.Start(ctx)

		fmt.Print("\nSkyeBot: ")
		_, err := responder.StreamTurn(ctx, sess, model, input, service.Sink{
			Text:  func(text string) { fmt.Print(text) },
			Chunk: func(c stream.Chunk) { pipeline.Enqueue(c.Text) },
		})
		fmt.Println()
		if err != nil {
			fmt.Printf("[reply interrupted: %v]\n", err)
		}

		pipeline.Close()
		pipeline.Wait()
	}
	fmt.Println("Goodbye.")
}

func listen(ctx context.Context, recorder speech.Recorder, transcriber speech.Transcriber) (string, error) {
	audio, err := recorder.Record(ctx)
	if err != nil {
		return "", err
	}
	return transcriber.Transcribe(ctx, audio)
}
