package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/tweetlate/internal/archive"
	"codeberg.org/snonux/tweetlate/internal/cli"
	"codeberg.org/snonux/tweetlate/internal/guard"
	"codeberg.org/snonux/tweetlate/internal/langdetect"
	"codeberg.org/snonux/tweetlate/internal/logging"
	"codeberg.org/snonux/tweetlate/internal/models"
	"codeberg.org/snonux/tweetlate/internal/pipeline"
	"codeberg.org/snonux/tweetlate/internal/processor"
	"codeberg.org/snonux/tweetlate/internal/translation"
	"codeberg.org/snonux/tweetlate/internal/transliteration"
)

func main() {
	// API keys may live in a local .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cli.ApplyConfig(flags)
	if len(args) > 0 {
		flags.InputFile = args[0]
	}

	// Handle --archive flag
	if flags.Archive {
		if _, err := archive.ArchiveParts(flags.OutputPrefix); err != nil {
			return fmt.Errorf("failed to archive part files: %w", err)
		}
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(cmd.Context(), os.Stdout)
	}

	if err := flags.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  flags.LogLevel,
		Format: flags.LogFormat,
		Output: os.Stderr,
	})
	if err != nil {
		return err
	}

	texts, cleanup, err := buildPipeline(flags, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := processor.NewProcessor(flags, texts, logger)
	if _, err := proc.ProcessParts(ctx); err != nil {
		return err
	}

	fmt.Printf("\nDone! Part files written with prefix: %s\n", flags.OutputPrefix)
	return nil
}

// buildPipeline wires detector, guard, cache and the remote services once
func buildPipeline(flags *cli.Flags, logger *logrus.Logger) (*pipeline.Pipeline, func(), error) {
	cleanup := func() {}

	identifier, err := langdetect.NewIdentifier(flags.Detector)
	if err != nil {
		return nil, cleanup, err
	}
	detector := langdetect.NewDetector(identifier, cli.DetectorThresholds(), logger.WithField("component", "langdetect"))

	guardCfg := guard.DefaultConfig("inference")
	guardCfg.RequestsPerSecond = flags.Rate
	guardCfg.Logger = logger
	apiGuard := guard.New(guardCfg)

	var store translation.Store
	if flags.CacheDB != "" {
		sqliteStore, err := translation.OpenSQLiteStore(flags.CacheDB)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() {
			if err := sqliteStore.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close translation cache")
			}
		}
		store = sqliteStore
	}

	translator, err := translation.NewService(translation.Options{
		Provider:  flags.Provider,
		Model:     flags.Model,
		OpenAIKey: cli.GetOpenAIKey(),
		GeminiKey: cli.GetGeminiKey(),
		Guard:     apiGuard,
		Store:     store,
		Logger:    logger,
	})
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	transliterator := transliteration.NewOpenAITransliterator(transliteration.Config{
		APIKey:    cli.GetOpenAIKey(),
		BeamWidth: flags.BeamWidth,
		Guard:     apiGuard,
	})

	return pipeline.New(pipeline.Config{
		Detector:       detector,
		Transliterator: transliterator,
		Translator:     translator,
		MinConfidence:  flags.MinConfidence,
		Logger:         logger,
	}), cleanup, nil
}
